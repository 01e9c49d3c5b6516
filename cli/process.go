package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/payments/ledger"
	"github.com/robinvdvleuten/payments/loader"
	"github.com/robinvdvleuten/payments/output"
	"github.com/robinvdvleuten/payments/report"
)

type ProcessCmd struct {
	File FileOrStdin `help:"CSV transactions filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	InputFlags

	Format    string `help:"Output format (${enum})." enum:"csv,table,json" default:"csv" short:"f"`
	Precision int    `help:"Number of decimals for amounts (shortest exact form when negative)." default:"-1"`
	Sort      bool   `help:"Order clients by id."`
}

func (cmd *ProcessCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, finish := startTelemetry(ctx, globals, fmt.Sprintf("process %s", cmd.File.DisplayName()))
	defer finish()

	format, err := report.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	l, err := replay(runCtx, &cmd.File, cmd.InputFlags)
	if err != nil {
		return renderFailure(ctx.Stderr, &cmd.File, err, "processing aborted")
	}

	opts := []report.Option{
		report.WithFormat(format),
		report.WithPrecision(cmd.Precision),
	}
	if cmd.Sort {
		opts = append(opts, report.WithSorting())
	}
	if format == report.FormatTable {
		opts = append(opts, report.WithStyles(output.NewStyles(ctx.Stdout)))
	}

	return report.New(opts...).Encode(runCtx, ctx.Stdout, l.Snapshots())
}

// replay processes the whole input into a new ledger.
func replay(ctx context.Context, file *FileOrStdin, flags InputFlags) (*ledger.Ledger, error) {
	src, err := file.Open(ctx, loader.New(loader.WithBufferSize(flags.BufferSize)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	var opts []ledger.Option
	if flags.OwnershipCheck {
		opts = append(opts, ledger.WithOwnershipCheck())
	}

	l := ledger.New(opts...)
	if err := l.Process(ctx, src); err != nil {
		return l, err
	}
	return l, nil
}

// renderFailure prints err with its input context and a summary line, and
// returns the CommandError that makes main exit with ExitAborted.
func renderFailure(w io.Writer, file *FileOrStdin, err error, summary string) error {
	_, _ = fmt.Fprintln(w, file.NewErrorRenderer().Render(err))
	_, _ = fmt.Fprintln(w)
	printError(w, summary)
	return NewCommandError(ExitAborted)
}
