// Package report encodes account snapshots for output.
//
// Three formats are supported: csv (the default, with a
// client,available,held,total,locked header), an aligned text table and
// JSON. Amounts are rendered from their float32 value through
// shopspring/decimal, either in the shortest form that reads back as the
// same float32 or with a fixed number of decimals.
//
// Example usage:
//
//	enc := report.New(report.WithFormat(report.FormatTable), report.WithSorting())
//	if err := enc.Encode(ctx, os.Stdout, l.Snapshots()); err != nil {
//	    return err
//	}
package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/robinvdvleuten/payments/ledger"
	"github.com/robinvdvleuten/payments/output"
	"github.com/robinvdvleuten/payments/telemetry"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formats lists the accepted format names.
var Formats = []string{string(FormatCSV), string(FormatTable), string(FormatJSON)}

// Header holds the column names shared by every format.
var Header = []string{"client", "available", "held", "total", "locked"}

// ParseFormat converts a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown report format %q, expected one of %s", name, strings.Join(Formats, ", "))
}

// Encoder writes snapshots in a configured format.
type Encoder struct {
	format    Format
	precision int
	sorted    bool
	styles    *output.Styles
}

// New creates an encoder. Without options it writes unsorted csv with the
// shortest amount representation.
func New(opts ...Option) *Encoder {
	e := &Encoder{
		format:    FormatCSV,
		precision: -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode writes snapshots to w.
func (e *Encoder) Encode(ctx context.Context, w io.Writer, snapshots []ledger.Snapshot) error {
	timer := telemetry.StartTimer(ctx, "report."+string(e.format))
	defer timer.End()
	timer.Count(len(snapshots))

	if e.sorted {
		snapshots = Sorted(snapshots)
	}

	switch e.format {
	case FormatCSV:
		return e.encodeCSV(w, snapshots)
	case FormatTable:
		return e.encodeTable(w, snapshots)
	case FormatJSON:
		return e.encodeJSON(w, snapshots)
	}
	return fmt.Errorf("unknown report format %q", e.format)
}

// FormatAmount renders an amount with the configured precision. Infinite
// and NaN amounts, which float32 overflow can produce, render as "+Inf",
// "-Inf" and "NaN".
func (e *Encoder) FormatAmount(v float32) string {
	if f := float64(v); math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 32)
	}

	d := decimal.NewFromFloat32(v)
	if e.precision >= 0 {
		return d.StringFixed(int32(e.precision))
	}
	return d.String()
}

// Amount is a rendered amount. It encodes as a JSON number, or as a string
// when it is not finite.
type Amount string

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if json.Valid([]byte(a)) {
		return []byte(a), nil
	}
	return []byte(strconv.Quote(string(a))), nil
}

// Balance is the JSON form of a snapshot.
type Balance struct {
	Client    uint16 `json:"client"`
	Available Amount `json:"available"`
	Held      Amount `json:"held"`
	Total     Amount `json:"total"`
	Locked    bool   `json:"locked"`
}

// Balance converts a snapshot into its JSON form.
func (e *Encoder) Balance(s ledger.Snapshot) Balance {
	return Balance{
		Client:    s.Client,
		Available: Amount(e.FormatAmount(s.Available)),
		Held:      Amount(e.FormatAmount(s.Held)),
		Total:     Amount(e.FormatAmount(s.Total)),
		Locked:    s.Locked,
	}
}

// Sorted returns a copy of snapshots ordered by ascending client id.
func Sorted(snapshots []ledger.Snapshot) []ledger.Snapshot {
	sorted := slices.Clone(snapshots)
	slices.SortFunc(sorted, func(a, b ledger.Snapshot) int {
		return int(a.Client) - int(b.Client)
	})
	return sorted
}

func (e *Encoder) row(s ledger.Snapshot) []string {
	return []string{
		strconv.FormatUint(uint64(s.Client), 10),
		e.FormatAmount(s.Available),
		e.FormatAmount(s.Held),
		e.FormatAmount(s.Total),
		strconv.FormatBool(s.Locked),
	}
}

func (e *Encoder) encodeCSV(w io.Writer, snapshots []ledger.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, s := range snapshots {
		if err := cw.Write(e.row(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *Encoder) encodeJSON(w io.Writer, snapshots []ledger.Snapshot) error {
	balances := make([]Balance, 0, len(snapshots))
	for _, s := range snapshots {
		balances = append(balances, e.Balance(s))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(balances)
}
