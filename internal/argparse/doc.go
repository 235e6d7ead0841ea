// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package argparse tokenizes raw command-line arguments into an option map.
//
// The parser does not need the set of valid flags up front. Every `--name`
// or `-n` it sees becomes a key, which lets the dispatcher parse once to
// decide between help and execution and again, with per-command typing
// hints, to build the options handed to a command.
//
// # Key Types
//
//   - Options: parsed option map, positional words live under "_"
//   - Config: typing hints (aliases, string keys, boolean keys)
//
// # Usage
//
//	opts := argparse.Parse(os.Args[1:], argparse.Config{
//	    Alias:   map[string]string{"o": "output"},
//	    Boolean: []string{"debug"},
//	})
//	if opts.Bool("debug") {
//	    ...
//	}
package argparse
