// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Interactive confirmation for commands run by the dispatcher.
//
// Commands never read stdin directly. They ask the Prompter found in their
// context, which follows a single pattern:
//   1. If stdin is not a TTY, return the default (can't prompt)
//   2. Otherwise, show an interactive prompt and wait for user input
//   3. Ctrl+C cancels and counts as "no"

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// LinerPrompter asks yes/no questions on the terminal.
type LinerPrompter struct {
	// Out receives the blank line printed before the prompt.
	Out io.Writer
	// canPrompt overrides TTY detection in tests.
	canPrompt func() bool
}

// NewLinerPrompter creates a prompter writing its spacing to out.
func NewLinerPrompter(out io.Writer) *LinerPrompter {
	return &LinerPrompter{Out: out, canPrompt: CanPrompt}
}

// Confirm asks message and returns the answer. Empty input selects def.
func (p *LinerPrompter) Confirm(message string, def bool) (bool, error) {
	// USABILITY: piped input, cron jobs and CI/CD never block on a prompt
	if p.canPrompt != nil && !p.canPrompt() {
		return def, nil
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if p.Out != nil {
		fmt.Fprintln(p.Out)
	}
	input, err := line.Prompt(fmt.Sprintf("%s %s: ", message, choiceHint(def)))
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	return parseAnswer(input, def), nil
}

func choiceHint(def bool) string {
	if def {
		return "[Y/n]"
	}
	return "[y/N]"
}

// parseAnswer interprets a typed answer.
func parseAnswer(input string, def bool) bool {
	response := strings.ToLower(strings.TrimSpace(input))
	if response == "" {
		return def
	}
	return response == "y" || response == "yes"
}
