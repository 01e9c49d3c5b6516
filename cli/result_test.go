package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCommandError(t *testing.T) {
	t.Run("implements error interface", func(t *testing.T) {
		err := NewCommandError(ExitAborted)
		assert.Error(t, err)
		assert.EqualError(t, err, "exit status 1")
	})

	t.Run("returns exit code", func(t *testing.T) {
		err := NewCommandError(42)
		assert.Equal(t, err.ExitCode(), 42)
	})

	t.Run("supports errors.As through wrapping", func(t *testing.T) {
		err := fmt.Errorf("process: %w", NewCommandError(ExitAborted))

		var cmdErr *CommandError
		assert.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, cmdErr.ExitCode(), 1)
	})
}
