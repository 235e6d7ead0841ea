// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli is the dispatch engine.
//
// An Engine resolves the command named by the positional words of an
// invocation, validates its options and runs it, shaping everything the
// command logs through the output formatter. When nothing matches, or
// help is requested, it prints the command's help page or a listing of
// the commands and command groups under the typed words.
//
// # Key Types
//
//   - Engine: one dispatcher invocation; Run returns the exit code
//   - Config: collaborators (manifest, settings, docs, streams, trace)
//   - ExecutionContext: registry, matched command and current command name
//   - LinerPrompter: terminal confirmation prompts for commands
//
// # Usage
//
//	engine := cli.New(cli.Config{
//	    Manifest: manifest,
//	    Settings: settings,
//	    Docs:     renderer,
//	})
//	os.Exit(engine.Run(ctx, os.Args[1:]))
//
// # Exit Codes
//
// Run returns ExitSuccess after a successful command or after help, the
// code carried by a *command.Error, or ExitGeneralError otherwise.
package cli
