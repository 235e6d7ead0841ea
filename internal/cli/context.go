// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/dispatch/internal/registry"
)

// ExecutionContext is the state of one dispatcher invocation: the
// registered commands, the command matched from the arguments and the name
// of the command currently running. Nested executions swap the current
// name and restore it when they finish.
type ExecutionContext struct {
	Registry *registry.Registry
	// RunID identifies this invocation in the trace.
	RunID string

	mu          sync.Mutex
	currentName string
	matched     *registry.Descriptor
}

func newExecutionContext() *ExecutionContext {
	return &ExecutionContext{RunID: uuid.New().String()}
}

// CurrentCommandName returns the name of the command being executed, or
// the words typed by the user before execution starts.
func (c *ExecutionContext) CurrentCommandName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentName
}

func (c *ExecutionContext) setCurrentCommandName(name string) {
	c.mu.Lock()
	c.currentName = name
	c.mu.Unlock()
}

// enter makes name current and returns a func restoring the previous name.
func (c *ExecutionContext) enter(name string) (restore func(), parent string) {
	c.mu.Lock()
	parent = c.currentName
	c.currentName = name
	c.mu.Unlock()
	return func() { c.setCurrentCommandName(parent) }, parent
}

// Matched returns the top-level command resolved from the arguments.
func (c *ExecutionContext) Matched() *registry.Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matched
}

func (c *ExecutionContext) setMatched(d *registry.Descriptor) {
	c.mu.Lock()
	c.matched = d
	c.mu.Unlock()
}
