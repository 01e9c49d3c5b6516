package record

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultBufferSize is the read buffer capacity used when none is configured.
const DefaultBufferSize = 4096

var (
	errNegativeAmount = errors.New("amount must not be negative")
	errAmountOverflow = errors.New("amount exceeds single precision range")
)

// Reader decodes records from a CSV stream. The header row is consumed
// lazily by the first call to Read.
type Reader struct {
	filename   string
	bufferSize int

	src     io.Reader
	csv     *csv.Reader
	columns map[string]int
	width   int
	rowLen  int
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithFilename sets the filename reported in positions and errors.
func WithFilename(filename string) ReaderOption {
	return func(r *Reader) {
		r.filename = filename
	}
}

// WithBufferSize sets the capacity of the read buffer. Values below 16
// fall back to the bufio minimum.
func WithBufferSize(size int) ReaderOption {
	return func(r *Reader) {
		r.bufferSize = size
	}
}

// NewReader creates a Reader for the given stream.
func NewReader(src io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{
		bufferSize: DefaultBufferSize,
		src:        src,
	}
	for _, opt := range opts {
		opt(r)
	}

	cr := csv.NewReader(bufio.NewReaderSize(src, r.bufferSize))
	cr.FieldsPerRecord = -1 // rows may omit trailing empty fields
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	r.csv = cr

	return r
}

// Filename returns the filename used for positions.
func (r *Reader) Filename() string {
	return r.filename
}

// Read returns the next record. It returns io.EOF once the stream is
// exhausted; any other error is a *ParseError.
func (r *Reader) Read() (Record, error) {
	if r.columns == nil {
		if err := r.readHeader(); err != nil {
			return Record{}, err
		}
	}

	row, err := r.csv.Read()
	if err != nil {
		return Record{}, r.wrapCSVError(err)
	}
	r.rowLen = len(row)

	return r.decode(row)
}

// ReadAll reads all remaining records.
func (r *Reader) ReadAll() ([]Record, error) {
	var records []Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

func (r *Reader) readHeader() error {
	row, err := r.csv.Read()
	if err != nil {
		return r.wrapCSVError(err)
	}
	r.rowLen = len(row)

	columns := make(map[string]int, len(row))
	for i, name := range row {
		name = strings.TrimSpace(name)
		pos := r.fieldPos(i)

		switch name {
		case ColumnType, ColumnClient, ColumnTx, ColumnAmount:
		default:
			return newRowError(pos,
				fmt.Sprintf("unknown field %q, expected one of %s", name, strings.Join(Header, ", ")), nil)
		}

		if _, dup := columns[name]; dup {
			return newRowError(pos, fmt.Sprintf("duplicate field %q", name), nil)
		}
		columns[name] = i
	}

	for _, required := range []string{ColumnType, ColumnClient, ColumnTx} {
		if _, ok := columns[required]; !ok {
			return newRowError(r.fieldPos(0), fmt.Sprintf("missing field %q", required), nil)
		}
	}

	r.columns = columns
	r.width = len(row)

	return nil
}

func (r *Reader) decode(row []string) (Record, error) {
	rec := Record{Pos: r.fieldPos(0)}

	if len(row) > r.width {
		return Record{}, newRowError(rec.Pos,
			fmt.Sprintf("too many fields: expected at most %d, got %d", r.width, len(row)), nil)
	}

	rec.Type = r.field(row, ColumnType)

	txValue := r.field(row, ColumnTx)
	tx, err := strconv.ParseUint(txValue, 10, 32)
	if err != nil {
		return Record{}, newFieldError(r.columnPos(ColumnTx), ColumnTx, txValue, unwrapNumError(err))
	}
	rec.Tx = uint32(tx)

	clientValue := r.field(row, ColumnClient)
	client, err := strconv.ParseUint(clientValue, 10, 16)
	if err != nil {
		return Record{}, newFieldError(r.columnPos(ColumnClient), ColumnClient, clientValue, unwrapNumError(err))
	}
	rec.Client = uint16(client)

	amountValue := r.field(row, ColumnAmount)
	amount, err := ParseAmount(amountValue)
	if err != nil {
		return Record{}, newFieldError(r.columnPos(ColumnAmount), ColumnAmount, amountValue, err)
	}
	rec.Amount = amount

	return rec, nil
}

// field returns the trimmed value of a column, or "" when the column is
// absent from the header or the row is short.
func (r *Reader) field(row []string, column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (r *Reader) columnPos(column string) Position {
	i, ok := r.columns[column]
	if !ok {
		return r.fieldPos(0)
	}
	return r.fieldPos(i)
}

// fieldPos returns the position of a field of the row most recently read.
// Fields missing from a short row are reported at the start of the row.
func (r *Reader) fieldPos(i int) Position {
	if i >= r.rowLen {
		line, _ := r.csv.FieldPos(0)
		return Position{Filename: r.filename, Line: line}
	}

	line, column := r.csv.FieldPos(i)
	return Position{Filename: r.filename, Line: line, Column: column}
}

func (r *Reader) wrapCSVError(err error) error {
	if err == io.EOF {
		return err
	}

	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		pos := Position{Filename: r.filename, Line: csvErr.Line, Column: csvErr.Column}
		return newRowError(pos, csvErr.Err.Error(), err)
	}

	return newRowError(Position{Filename: r.filename}, fmt.Sprintf("failed to read records: %v", err), err)
}

// ParseAmount parses a textual amount. An empty string yields a nil amount.
// Amounts must be finite, non-negative and fit into a float32.
func ParseAmount(value string) (*float32, error) {
	if value == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		return nil, errNegativeAmount
	}

	// Round once, straight to single precision.
	f, err := strconv.ParseFloat(d.String(), 32)
	if math.IsInf(f, 0) {
		return nil, errAmountOverflow
	}
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, err
	}
	amount := float32(f)

	return &amount, nil
}

func unwrapNumError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}
	return err
}
