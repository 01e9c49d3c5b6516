package web

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/robinvdvleuten/payments/errors"
	"github.com/robinvdvleuten/payments/ledger"
	"github.com/robinvdvleuten/payments/report"
)

// BalancesResponse is the JSON response structure for the balances endpoint.
type BalancesResponse struct {
	Clients []report.Balance   `json:"clients"`
	Errors  []errors.ErrorJSON `json:"errors"`
	Stats   ledger.Stats       `json:"stats"`
}

// handleGetBalances handles GET requests to /api/balances.
// When the last replay was aborted, clients is empty and errors holds the
// reason.
func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	response := BalancesResponse{
		Clients: make([]report.Balance, 0, len(s.snapshots)),
		Errors:  []errors.ErrorJSON{},
		Stats:   s.stats,
	}

	for _, snapshot := range s.snapshots {
		response.Clients = append(response.Clients, s.encoder.Balance(snapshot))
	}
	if s.loadErr != nil {
		response.Errors = errors.NewJSONFormatter().FormatAllToSlice([]error{s.loadErr})
	}

	writeJSONResponse(w, response)
}

// handleGetBalance handles GET requests to /api/balances/{client}.
func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("client"), 10, 16)
	if err != nil {
		http.Error(w, "invalid client id: "+r.PathValue("client"), http.StatusBadRequest)
		return
	}
	client := uint16(id)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loadErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, errors.NewJSONFormatter().Format(s.loadErr)+"\n")
		return
	}

	for _, snapshot := range s.snapshots {
		if snapshot.Client == client {
			writeJSONResponse(w, s.encoder.Balance(snapshot))
			return
		}
	}

	http.Error(w, "client not found", http.StatusNotFound)
}

// handleHealth handles GET requests to /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, map[string]string{"status": "ok"})
}

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
