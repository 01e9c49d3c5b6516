package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestNewStyles(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	if styles == nil {
		t.Fatal("NewStyles should return non-nil Styles")
	}

	if styles.output == nil {
		t.Error("Styles should have non-nil output")
	}
}

func TestStylesKeepText(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	tests := []struct {
		name  string
		style func(string) string
		text  string
	}{
		{"Success", styles.Success, "processed 10 records"},
		{"Error", styles.Error, "error"},
		{"FilePath", styles.FilePath, "/path/to/transactions.csv"},
		{"Client", styles.Client, "42"},
		{"Amount", styles.Amount, "1.5"},
		{"Keyword", styles.Keyword, "deposit"},
		{"Dim", styles.Dim, "secondary"},
		{"Warning", styles.Warning, "slow"},
		{"Locked", styles.Locked, "locked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.style(tt.text)
			if !strings.Contains(result, tt.text) {
				t.Errorf("%s() result should contain %q, got: %s", tt.name, tt.text, result)
			}
		})
	}
}

func TestStylesPlainWriter(t *testing.T) {
	// A bytes.Buffer is not a terminal, so no escape sequences are emitted.
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	if got := styles.Error("failed"); got != "failed" {
		t.Errorf("Error() on plain writer = %q, want %q", got, "failed")
	}
}

func TestStylesOutput(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	if styles.Output() == nil {
		t.Fatal("Output() should return non-nil termenv.Output")
	}

	if styles.Output().Profile != termenv.Ascii {
		t.Errorf("Output().Profile = %v, want Ascii for a non-terminal writer", styles.Output().Profile)
	}
}
