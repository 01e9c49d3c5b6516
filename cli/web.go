package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/payments/telemetry"
	"github.com/robinvdvleuten/payments/web"
)

type WebCmd struct {
	File string `help:"CSV transactions file to serve." arg:"" type:"existingfile"`
	Port int    `help:"Port to listen on." default:"8080"`
	InputFlags

	Watch bool `help:"Reload balances when the file changes." default:"true" negatable:""`
}

func (cmd *WebCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, nil)
		}()
	}

	transactionsFile, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	version := Version
	if version == "" {
		version = "dev"
	}
	commitSHA := CommitSHA
	if commitSHA == "" {
		commitSHA = "local"
	}

	server := web.NewWithVersion(cmd.Port, transactionsFile, version, commitSHA)
	server.WatchEnabled = cmd.Watch
	server.BufferSize = cmd.BufferSize
	server.OwnershipCheck = cmd.OwnershipCheck

	printInfof(ctx.Stdout, "Starting server on %s:%d", server.Host, cmd.Port)
	printInfof(ctx.Stdout, "Serving balances of %s", pathStyle.Render(transactionsFile))

	if cmd.Watch {
		printInfof(ctx.Stdout, "Watching for changes")
	}

	return server.Start(runCtx)
}
