package cli

import "fmt"

// ExitAborted is the exit status of a command whose replay or decoding
// stopped on a hard error. The error itself is already on stderr by then.
const ExitAborted = 1

// CommandError carries the exit status back to main, which is the only
// place that calls os.Exit. Commands return it after printing their own
// diagnostics, so main prints nothing more.
type CommandError struct {
	exitCode int
}

// NewCommandError returns a CommandError for exitCode.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("exit status %d", e.exitCode)
}

// ExitCode returns the process exit status.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}
