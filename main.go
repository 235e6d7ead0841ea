// dispatch - run commands discovered by name, with shaped and queryable output.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/jeranaias/dispatch/internal/cli"
	"github.com/jeranaias/dispatch/internal/commands"
	"github.com/jeranaias/dispatch/internal/config"
	"github.com/jeranaias/dispatch/internal/docs"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

//go:embed docs
var docsFS embed.FS

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	settings, err := config.Load()
	if err != nil {
		// A broken settings file must not lock users out of "cli config reset".
		fmt.Fprintf(os.Stderr, "Warning: ignoring settings: %v\n", err)
		settings = &config.Settings{}
		settings.ApplyEnvOverrides()
	}

	trace, closer := cli.NewTraceLogger(settings.TraceFile)
	defer closer.Close()

	pages, err := fs.Sub(docsFS, "docs/cmd")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitGeneralError
	}

	engine := cli.New(cli.Config{
		Program:     cli.ProgramTitle,
		Version:     cli.Version,
		Description: cli.ProgramDescription,
		Manifest: commands.Manifest(commands.Deps{
			Version:  cli.Version,
			Settings: settings,
		}),
		Settings: settings,
		Docs:     docs.NewGlamourRenderer(pages, cli.HelpWidth(settings.HelpWrap), cli.ColorsEnabled()),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Trace:    trace,
		Prompter: cli.NewLinerPrompter(os.Stdout),
	})
	return engine.Run(ctx, os.Args[1:])
}
