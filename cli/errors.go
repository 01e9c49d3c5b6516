package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/payments/errors"
	"github.com/robinvdvleuten/payments/record"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
	errDetailStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source     []byte
	readSource bool
}

// RendererOption configures an ErrorRenderer.
type RendererOption func(*ErrorRenderer)

// WithSourceFiles reads context lines from the file named in the error
// position when no source content is available.
func WithSourceFiles() RendererOption {
	return func(r *ErrorRenderer) {
		r.readSource = true
	}
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte, opts ...RendererOption) *ErrorRenderer {
	r := &ErrorRenderer{source: source}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	if e, ok := err.(interface {
		GetPosition() record.Position
		GetTransaction() uint32
		GetClient() uint16
		Error() string
	}); ok {
		pos := e.GetPosition()
		return r.renderWithRecord(e.Error(), r.lines(pos, pos.Line, pos.Line), e.GetTransaction(), e.GetClient())
	}

	if e, ok := err.(interface {
		GetPosition() record.Position
		Error() string
	}); ok {
		pos := e.GetPosition()
		if lines := r.lines(pos, pos.Line-2, pos.Line+1); lines != nil {
			return r.renderWithSourceContext(pos, e.Error(), lines)
		}
	}

	return err.Error()
}

func (r *ErrorRenderer) lines(pos record.Position, from, to int) []errors.SourceLine {
	if pos.Line <= 0 {
		return nil
	}
	if r.source != nil {
		return errors.Lines(r.source, from, to)
	}
	if r.readSource && pos.Filename != "" {
		lines, err := errors.ReadLines(pos.Filename, from, to)
		if err == nil {
			return lines
		}
	}
	return nil
}

func (r *ErrorRenderer) renderWithSourceContext(pos record.Position, message string, lines []errors.SourceLine) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	for _, line := range lines {
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(line.Text))
		buf.WriteByte('\n')

		if line.Number == pos.Line && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

func (r *ErrorRenderer) renderWithRecord(message string, lines []errors.SourceLine, tx uint32, client uint16) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	for _, line := range lines {
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(line.Text))
		buf.WriteByte('\n')
	}

	buf.WriteString("   ")
	buf.WriteString(errDetailStyle.Render(formatRecordDetail(tx, client)))
	buf.WriteByte('\n')

	return buf.String()
}

func formatRecordDetail(tx uint32, client uint16) string {
	return fmt.Sprintf("transaction %d, client %d", tx, client)
}
