package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/payments/errors"
	"github.com/robinvdvleuten/payments/ledger"
)

type CheckCmd struct {
	File FileOrStdin `help:"CSV transactions filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	InputFlags

	JSON bool `help:"Print the result as JSON." name:"json"`
}

// CheckResult is the JSON form of a check.
type CheckResult struct {
	Stats   ledger.Stats       `json:"stats"`
	Clients int                `json:"clients"`
	Locked  int                `json:"locked"`
	Errors  []errors.ErrorJSON `json:"errors"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, finish := startTelemetry(ctx, globals, fmt.Sprintf("check %s", cmd.File.DisplayName()))
	defer finish()

	l, err := replay(runCtx, &cmd.File, cmd.InputFlags)

	if cmd.JSON {
		return cmd.printJSON(ctx, l, err)
	}

	if err != nil {
		return renderFailure(ctx.Stderr, &cmd.File, err, "check failed")
	}

	stats := l.Stats()
	clients, locked := countClients(l)

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed: %d records, %d clients, %d locked", stats.Records, clients, locked))
	printInfof(ctx.Stdout, "%d deposits, %d withdrawals, %d disputes, %d resolves, %d chargebacks",
		stats.Deposits, stats.Withdrawals, stats.Disputes, stats.Resolves, stats.Chargebacks)

	return nil
}

func (cmd *CheckCmd) printJSON(ctx *kong.Context, l *ledger.Ledger, err error) error {
	result := CheckResult{Errors: []errors.ErrorJSON{}}
	if err != nil {
		// An aborted replay reports only its error.
		result.Errors = errors.NewJSONFormatter().FormatAllToSlice([]error{err})
	} else {
		result.Stats = l.Stats()
		result.Clients, result.Locked = countClients(l)
	}

	enc := json.NewEncoder(ctx.Stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(result); encErr != nil {
		return encErr
	}

	if err != nil {
		return NewCommandError(ExitAborted)
	}
	return nil
}

func countClients(l *ledger.Ledger) (clients, locked int) {
	for _, acc := range l.Accounts() {
		clients++
		if acc.IsLocked() {
			locked++
		}
	}
	return clients, locked
}
