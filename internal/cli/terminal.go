// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for the dispatcher.
//
// Help pages and error lines are colored only on an interactive stdout,
// help is wrapped to the terminal unless the helpWrap setting says
// otherwise, and confirmation prompts need both ends of the terminal.

package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	// DefaultTerminalWidth is used when stdout is not a terminal.
	DefaultTerminalWidth = 80
	// MinTerminalWidth keeps help readable in very narrow windows.
	MinTerminalWidth = 40
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of stdout, clamped to MinTerminalWidth.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return max(width, MinTerminalWidth)
}

// HelpWidth returns the wrap width for help pages. A positive configured
// value wins over the detected terminal width.
func HelpWidth(configured int) int {
	if configured > 0 {
		return configured
	}
	return terminalWidth()
}

var colorsEnabled = sync.OnceValue(func() bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return isTerminal(os.Stdout)
})

// ColorsEnabled reports whether output should be colored. NO_COLOR wins
// over FORCE_COLOR, which wins over terminal detection.
func ColorsEnabled() bool {
	return colorsEnabled()
}

// colorProfile is the termenv profile matching ColorsEnabled.
func colorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// CanPrompt reports whether a confirmation prompt can be shown.
func CanPrompt() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}
