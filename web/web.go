// Package web provides a read-only HTTP view over a transactions file.
//
// The server replays the file once at startup and serves the resulting
// balances as JSON. With watching enabled it replays the file again
// whenever it changes on disk and notifies connected clients through
// server-sent events.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/payments/errors"
	"github.com/robinvdvleuten/payments/ledger"
	"github.com/robinvdvleuten/payments/loader"
	"github.com/robinvdvleuten/payments/report"
	"github.com/robinvdvleuten/payments/telemetry"
)

type Server struct {
	Port           int
	Host           string
	Version        string
	CommitSHA      string
	WatchEnabled   bool
	BufferSize     int
	OwnershipCheck bool

	mu        sync.RWMutex
	snapshots []ledger.Snapshot // Sorted by client id
	stats     ledger.Stats
	loadErr   error  // Error that aborted the last replay, nil on success
	rootFile  string // Absolute path of the transactions file

	// inputFile is the file path passed to New(), used only for initial loading.
	// After loading, rootFile contains the resolved absolute path.
	inputFile string

	encoder   *report.Encoder
	formatter errors.Formatter

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

func New(port int, transactionsFile string) *Server {
	return NewWithVersion(port, transactionsFile, "", "")
}

func NewWithVersion(port int, transactionsFile, version, commitSHA string) *Server {
	return &Server{
		Port:       port,
		Host:       "127.0.0.1",
		Version:    version,
		CommitSHA:  commitSHA,
		inputFile:  transactionsFile,
		encoder:    report.New(report.WithSorting()),
		formatter:  errors.NewTextFormatter(errors.WithSourceFiles()),
		sseClients: make(map[chan string]struct{}),
	}
}

func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))
	defer timer.End()

	if s.inputFile == "" {
		return fmt.Errorf("transactions file is required")
	}

	loadTimer := timer.Child(fmt.Sprintf("web.load %s", filepath.Base(s.inputFile)))
	if err := s.reloadLedger(ctx); err != nil {
		loadTimer.End()
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	loadTimer.End()

	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	setupTimer := timer.Child("web.setup_router")
	mux := s.setupRouter()
	setupTimer.End()

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) setupRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/balances", s.handleGetBalances)
	mux.HandleFunc("GET /api/balances/{client}", s.handleGetBalance)
	mux.HandleFunc("GET /api/events", s.handleSSE)
	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// reloadLedger replays the transactions file.
// Caller must NOT hold the mutex - this method acquires it internally.
//
// Only I/O errors are returned. An error that aborts the replay is kept and
// served by the API; no partial balances or stats are published in that case.
func (s *Server) reloadLedger(ctx context.Context) error {
	ldr := loader.New(loader.WithBufferSize(s.BufferSize))

	src, err := ldr.Load(ctx, s.inputFile)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	var opts []ledger.Option
	if s.OwnershipCheck {
		opts = append(opts, ledger.WithOwnershipCheck())
	}

	l := ledger.New(opts...)
	processErr := l.Process(ctx, src)

	var snapshots []ledger.Snapshot
	var stats ledger.Stats
	if processErr == nil {
		snapshots = report.Sorted(l.Snapshots())
		stats = l.Stats()
	}

	s.mu.Lock()
	s.snapshots = snapshots
	s.stats = stats
	s.loadErr = processErr
	s.rootFile = src.Root
	s.mu.Unlock()

	return nil
}

// startWatcher starts a file watcher for the transactions file.
// It replays the file and broadcasts SSE events when it changes.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	s.mu.RLock()
	root := s.rootFile
	s.mu.RUnlock()

	if err := watcher.Add(root); err != nil {
		log.Printf("Warning: failed to watch %s: %v", root, err)
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove/Rename are common in atomic saves
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// handleFileChange replays the file and re-arms the watch.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	if err := s.reloadLedger(ctx); err != nil {
		log.Printf("Failed to reload transactions: %v", err)
		return
	}

	s.mu.RLock()
	root := s.rootFile
	loadErr := s.loadErr
	s.mu.RUnlock()

	if loadErr != nil {
		log.Printf("Replay of %s aborted:\n%s", root, s.formatter.Format(loadErr))
	}

	// Re-add to catch files re-created by atomic saves
	if err := watcher.Add(root); err != nil {
		log.Printf("Warning: failed to watch root %s: %v", root, err)
	}

	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
