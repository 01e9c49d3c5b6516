package report

import "github.com/robinvdvleuten/payments/output"

// Option is a functional option for configuring an Encoder.
type Option func(*Encoder)

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(e *Encoder) {
		e.format = format
	}
}

// WithPrecision renders amounts with a fixed number of decimals. A negative
// precision selects the shortest representation.
func WithPrecision(precision int) Option {
	return func(e *Encoder) {
		e.precision = precision
	}
}

// WithSorting orders snapshots by ascending client id.
func WithSorting() Option {
	return func(e *Encoder) {
		e.sorted = true
	}
}

// WithStyles styles the table header and locked rows.
func WithStyles(styles *output.Styles) Option {
	return func(e *Encoder) {
		e.styles = styles
	}
}
