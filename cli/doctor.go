package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/payments/loader"
)

// DoctorCmd provides doctor utilities for debugging transactions files.
type DoctorCmd struct {
	Records RecordsCmd `cmd:"" help:"Show the decoded records of a transactions file."`
}

// RecordsCmd prints every decoded record.
type RecordsCmd struct {
	File       FileOrStdin `help:"CSV transactions filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	BufferSize int         `help:"Capacity of the input read buffer in bytes." default:"4096" env:"PAYMENTS_BUFFER_SIZE"`
}

// Run executes the records command.
func (cmd *RecordsCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, finish := startTelemetry(ctx, globals, fmt.Sprintf("doctor records %s", cmd.File.DisplayName()))
	defer finish()

	src, err := cmd.File.Open(runCtx, loader.New(loader.WithBufferSize(cmd.BufferSize)))
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	printer := repr.New(ctx.Stdout, repr.Indent(""))
	count := 0
	for {
		rec, err := src.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return renderFailure(ctx.Stderr, &cmd.File, err, fmt.Sprintf("decoding stopped after %d records", count))
		}

		printer.Println(rec)
		count++
	}

	return nil
}
