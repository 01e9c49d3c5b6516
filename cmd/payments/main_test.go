package main

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		commitSHA string
		expected  string
	}{
		{"Dev", "", "", "dev"},
		{"Release", "1.2.0", "", "1.2.0"},
		{"ReleaseWithCommit", "1.2.0", "abc123", "1.2.0 (abc123)"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			Version, CommitSHA = test.version, test.commitSHA
			t.Cleanup(func() { Version, CommitSHA = "", "" })

			assert.Equal(t, test.expected, buildVersion())
		})
	}
}
