// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Styles for the few colored lines the engine prints itself.
// Command output is never styled here; it goes through package output.

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/dispatch/internal/output"
)

func init() {
	lipgloss.SetColorProfile(colorProfile())
}

var (
	// ErrorStyle colors the "Error: ..." line. It is shared with logged
	// command errors.
	ErrorStyle = output.ErrorStyle

	// SuccessStyle colors the DONE marker of debug and verbose runs.
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

	// TitleStyle colors the program banner above the command listing.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)

	// DimStyle colors the debug echo of an executed command.
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// RenderConditional renders text with style when colors are enabled and
// returns it unchanged otherwise.
func RenderConditional(style lipgloss.Style, text string) string {
	if !ColorsEnabled() {
		return text
	}
	return style.Render(text)
}
