// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"context"

	"github.com/jeranaias/dispatch/internal/argparse"
)

// Output is the result of a captured execution.
type Output struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// Runner executes another command and captures what it logs.
type Runner interface {
	ExecuteCaptured(ctx context.Context, cmd Command, opts argparse.Options) (Output, error)
}

// Prompter asks the user for confirmation.
type Prompter interface {
	Confirm(message string, def bool) (bool, error)
}

type runnerKey struct{}
type prompterKey struct{}

// WithRunner returns a context carrying r.
func WithRunner(ctx context.Context, r Runner) context.Context {
	return context.WithValue(ctx, runnerKey{}, r)
}

// RunnerFrom returns the Runner stored in ctx, if any.
func RunnerFrom(ctx context.Context) (Runner, bool) {
	r, ok := ctx.Value(runnerKey{}).(Runner)
	return r, ok
}

// WithPrompter returns a context carrying p.
func WithPrompter(ctx context.Context, p Prompter) context.Context {
	return context.WithValue(ctx, prompterKey{}, p)
}

// PrompterFrom returns the Prompter stored in ctx, if any.
func PrompterFrom(ctx context.Context) (Prompter, bool) {
	p, ok := ctx.Value(prompterKey{}).(Prompter)
	return p, ok
}

// Info describes a registered command to other commands.
type Info struct {
	Name        string       `json:"name"`
	Aliases     []string     `json:"aliases,omitempty"`
	Description string       `json:"description"`
	Options     []OptionInfo `json:"options"`
}

// Catalog lists the commands known to the dispatcher.
type Catalog interface {
	Commands() []Info
}

type catalogKey struct{}

// WithCatalog returns a context carrying c.
func WithCatalog(ctx context.Context, c Catalog) context.Context {
	return context.WithValue(ctx, catalogKey{}, c)
}

// CatalogFrom returns the Catalog stored in ctx, if any.
func CatalogFrom(ctx context.Context) (Catalog, bool) {
	c, ok := ctx.Value(catalogKey{}).(Catalog)
	return c, ok
}
