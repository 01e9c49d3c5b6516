package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/payments/generator"
	"github.com/robinvdvleuten/payments/record"
	"github.com/robinvdvleuten/payments/telemetry"
)

type GenerateCmd struct {
	Size uint32 `help:"Number of records to generate." arg:""`

	Client uint16 `help:"Client of the generated deposits." default:"1"`
	Amount string `help:"Amount of the generated deposits." default:"0.123"`

	Mixed   bool   `help:"Generate a reproducible random mix of all operations."`
	Clients uint16 `help:"Number of clients in mixed mode." default:"10"`
	Seed    uint64 `help:"Random seed for mixed mode." default:"1"`

	Output string `help:"Write to this file instead of stdout." short:"o" type:"path"`
	Force  bool   `help:"Overwrite the output file without asking."`
}

func (cmd *GenerateCmd) Run(ctx *kong.Context, globals *Globals) error {
	amount, err := record.ParseAmount(cmd.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", cmd.Amount, err)
	}
	if amount == nil {
		return fmt.Errorf("amount is required")
	}

	opts := []generator.Option{
		generator.WithClient(cmd.Client),
		generator.WithAmount(*amount),
	}
	if cmd.Mixed {
		opts = append(opts, generator.WithMixed(cmd.Clients, cmd.Seed))
	}

	runCtx, finish := startTelemetry(ctx, globals, fmt.Sprintf("generate %d", cmd.Size))
	defer finish()

	var w io.Writer = ctx.Stdout
	if cmd.Output != "" {
		f, err := cmd.createOutput()
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	timer := telemetry.StartTimer(runCtx, "generator.write")
	_, err = generator.New(cmd.Size, opts...).WriteTo(w)
	timer.Count(int(cmd.Size))
	timer.End()
	if err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	if cmd.Output != "" {
		printSuccess(ctx.Stdout, fmt.Sprintf("Wrote %d records to %s", cmd.Size, pathStyle.Render(cmd.Output)))
	}
	return nil
}

// createOutput creates the output file, asking before an existing file is
// overwritten unless --force is given.
func (cmd *GenerateCmd) createOutput() (*os.File, error) {
	if _, err := os.Stat(cmd.Output); err == nil && !cmd.Force {
		confirmed, err := promptYesNo(fmt.Sprintf("File %q already exists. Overwrite it?", cmd.Output))
		if err != nil {
			return nil, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			return nil, fmt.Errorf("file already exists: %s (use --force to overwrite)", cmd.Output)
		}
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", cmd.Output, err)
	}
	return f, nil
}
