package record

import "fmt"

// ParseError represents a row that could not be decoded.
type ParseError struct {
	Pos        Position
	Field      string // Column name, empty for row-level errors
	Value      string // Raw field value
	Message    string
	Underlying error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
	}

	if location := e.Pos.Location(); location != "" {
		return fmt.Sprintf("%s: %s", location, msg)
	}
	return msg
}

func (e *ParseError) GetPosition() Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// newFieldError creates an error for a single field that failed to parse.
func newFieldError(pos Position, field, value string, err error) *ParseError {
	return &ParseError{
		Pos:        pos,
		Field:      field,
		Value:      value,
		Message:    err.Error(),
		Underlying: err,
	}
}

// newRowError creates an error that is not bound to a single field.
func newRowError(pos Position, message string, err error) *ParseError {
	return &ParseError{
		Pos:        pos,
		Message:    message,
		Underlying: err,
	}
}
