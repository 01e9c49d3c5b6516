// Package errors provides error formatting infrastructure for ledger and
// decoding errors. It separates error formatting from domain logic, allowing
// errors to be rendered in multiple formats (text, JSON) for different
// consumers (CLI, web view).
//
// The package defines a Formatter interface and provides two implementations:
//   - TextFormatter: Formats errors for command-line output with the offending input lines
//   - JSONFormatter: Formats errors as structured JSON for APIs and web interfaces
//
// Domain-specific error types remain in their respective packages (record,
// ledger), while this package handles the presentation layer.
package errors

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/robinvdvleuten/payments/record"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string
}

// positioned is implemented by every error that knows its input position.
type positioned interface {
	GetPosition() record.Position
	Error() string
}

// located is implemented by ledger errors, which know the record that
// triggered them.
type located interface {
	positioned
	GetTransaction() uint32
	GetClient() uint16
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	sourceContent []byte // Optional source content for error context
	readSource    bool   // Read context lines from the file named in the position
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content for error context.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// WithSourceFiles makes the formatter read context lines from the file named
// in an error's position when no source content is set. Inputs are streamed,
// so only the lines around the error are read back.
func WithSourceFiles() TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.readSource = true
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error. Ledger errors are followed by the record
// that triggered them, decoding errors by the surrounding lines and a caret.
func (tf *TextFormatter) Format(err error) string {
	if e, ok := err.(located); ok {
		pos := e.GetPosition()
		lines := tf.sourceLines(pos, pos.Line, pos.Line)
		return tf.formatWithRecord(e.Error(), lines)
	}

	if e, ok := err.(positioned); ok {
		pos := e.GetPosition()
		lines := tf.sourceLines(pos, pos.Line-2, pos.Line+1)
		if lines != nil {
			return tf.formatWithSourceContext(pos, e.Error(), lines)
		}
		return tf.formatWithPosition(pos, e.Error())
	}

	return err.Error()
}

// SourceLine is a numbered line of input.
type SourceLine struct {
	Number int // Line number (1-indexed)
	Text   string
}

// sourceLines returns the input lines from..to (1-based, inclusive) that
// exist, or nil when no source is available.
func (tf *TextFormatter) sourceLines(pos record.Position, from, to int) []SourceLine {
	if pos.Line <= 0 {
		return nil
	}

	if tf.sourceContent != nil {
		return Lines(tf.sourceContent, from, to)
	}

	if tf.readSource && pos.Filename != "" {
		lines, err := ReadLines(pos.Filename, from, to)
		if err != nil {
			return nil
		}
		return lines
	}

	return nil
}

// Lines returns lines from..to (1-based, inclusive) of source.
func Lines(source []byte, from, to int) []SourceLine {
	from = max(from, 1)
	all := strings.Split(string(source), "\n")

	var lines []SourceLine
	for n := from; n <= to && n <= len(all); n++ {
		lines = append(lines, SourceLine{Number: n, Text: strings.TrimRight(all[n-1], "\r")})
	}
	return lines
}

// ReadLines reads lines from..to (1-based, inclusive) of filename. It stops
// reading once the last requested line is reached.
func ReadLines(filename string, from, to int) ([]SourceLine, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	from = max(from, 1)

	var lines []SourceLine
	scanner := bufio.NewScanner(f)
	for n := 1; n <= to && scanner.Scan(); n++ {
		if n >= from {
			lines = append(lines, SourceLine{Number: n, Text: strings.TrimRight(scanner.Text(), "\r")})
		}
	}
	return lines, scanner.Err()
}

// formatWithPosition formats an error message with position information.
// The message already carries the location.
func (tf *TextFormatter) formatWithPosition(pos record.Position, message string) string {
	return message
}

// formatWithRecord formats a ledger error followed by its record.
func (tf *TextFormatter) formatWithRecord(message string, lines []SourceLine) string {
	if len(lines) == 0 {
		return message
	}

	var buf bytes.Buffer
	buf.WriteString(message)
	buf.WriteString("\n\n")
	for _, line := range lines {
		buf.WriteString("   ")
		buf.WriteString(line.Text)
		buf.WriteByte('\n')
	}
	return buf.String()
}

// formatWithSourceContext formats a decoding error with the surrounding
// input lines and a caret under the error column.
func (tf *TextFormatter) formatWithSourceContext(pos record.Position, message string, lines []SourceLine) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	for _, line := range lines {
		buf.WriteString("   ")
		buf.WriteString(line.Text)
		buf.WriteByte('\n')

		if line.Number == pos.Line && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Position *PositionJSON  `json:"position,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.ToJSON(err))
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.ToJSON(err))
	}
	return result
}

// ToJSON converts an error to ErrorJSON.
func (jf *JSONFormatter) ToJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Details: make(map[string]any),
	}

	if e, ok := err.(positioned); ok {
		if pos := e.GetPosition(); !pos.IsZero() {
			errJSON.Position = &PositionJSON{
				Filename: pos.Filename,
				Line:     pos.Line,
				Column:   pos.Column,
			}
		}
	}

	switch e := err.(type) {
	case located:
		errJSON.Details["tx"] = e.GetTransaction()
		errJSON.Details["client"] = e.GetClient()
	case *record.ParseError:
		if e.Field != "" {
			errJSON.Details["field"] = e.Field
			errJSON.Details["value"] = e.Value
		}
	}

	return errJSON
}
