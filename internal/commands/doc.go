// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the built-in commands of the dispatcher.
//
// Each command implements command.Command and is registered in the
// manifest under the path key derived from its name, so the engine can
// load a single command for a typed invocation.
//
// # Built-in Commands
//
//   - version: Show the CLI version
//   - cli doctor: Diagnostic information about the environment
//   - cli config get|set|list|reset: Manage persisted settings
//   - cli completion sh update: Regenerate the shell completion data
//
// # Usage
//
//	manifest := commands.Manifest(commands.Deps{
//	    Version:  cli.Version,
//	    Settings: settings,
//	})
package commands
