// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command defines the contract between the dispatcher and the
// commands it runs.
//
// A command declares its name, options and typing hints, validates the
// parsed options and performs its action, writing every result through a
// Logger. The dispatcher owns everything else: lookup, parsing, output
// shaping and exit codes.
package command

import (
	"context"

	"github.com/jeranaias/dispatch/internal/argparse"
)

// Logger is the output sink handed to a command's action.
type Logger interface {
	// Log writes a value shaped by the output formatter.
	Log(v any)
	// LogRaw writes a value without shaping.
	LogRaw(v any)
	// LogToStderr writes to the diagnostic channel.
	LogToStderr(v any)
}

// Types lists option names that need parsing hints.
type Types struct {
	String  []string
	Boolean []string
}

// Command is implemented by every command the dispatcher can run.
type Command interface {
	// Name is the space separated command identifier, e.g. "cli config set".
	Name() string
	Description() string
	Alias() []string
	// Options returns the command's own options. Global options are
	// appended by the registry.
	Options() []Option
	Types() Types
	AllowUnknownOptions() bool
	// DefaultProperties names the fields kept in text output. Nil keeps all.
	DefaultProperties() []string
	// ProcessOptions normalizes options before validation.
	ProcessOptions(ctx context.Context, opts argparse.Options) error
	// Validate returns a non-nil error describing why opts are unusable.
	Validate(opts argparse.Options) error
	Action(ctx context.Context, log Logger, opts argparse.Options) error
}

// Base provides defaults for the optional parts of Command. Embed it and
// override what the command needs.
type Base struct{}

func (Base) Alias() []string { return nil }
func (Base) Options() []Option { return nil }
func (Base) Types() Types { return Types{} }
func (Base) AllowUnknownOptions() bool { return false }
func (Base) DefaultProperties() []string { return nil }
func (Base) Validate(argparse.Options) error { return nil }

func (Base) ProcessOptions(context.Context, argparse.Options) error { return nil }
