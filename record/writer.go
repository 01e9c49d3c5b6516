package record

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
)

// Writer encodes records as CSV using the canonical column order.
type Writer struct {
	csv           *csv.Writer
	headerWritten bool
	row           []string
}

// NewWriter creates a Writer for w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		csv: csv.NewWriter(w),
		row: make([]string, len(Header)),
	}
}

// Write encodes a single record, writing the header first if needed.
func (w *Writer) Write(rec Record) error {
	if !w.headerWritten {
		if err := w.csv.Write(Header); err != nil {
			return err
		}
		w.headerWritten = true
	}

	w.row[0] = rec.Type
	w.row[1] = strconv.FormatUint(uint64(rec.Client), 10)
	w.row[2] = strconv.FormatUint(uint64(rec.Tx), 10)
	w.row[3] = ""
	if rec.Amount != nil {
		w.row[3] = decimal.NewFromFloat32(*rec.Amount).String()
	}

	return w.csv.Write(w.row)
}

// Flush writes any buffered data and reports write errors.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}
