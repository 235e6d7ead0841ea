// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: widths are terminal columns, not bytes or runes, so wide
// characters keep help listings and grids aligned.

// StringWidth returns the display width of s.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces to width columns. Strings that are already
// wide enough are returned unchanged.
func PadRight(s string, width int) string {
	gap := width - StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// MaxWidth returns the widest display width in items.
func MaxWidth(items []string) int {
	widest := 0
	for _, s := range items {
		if w := StringWidth(s); w > widest {
			widest = w
		}
	}
	return widest
}

// TruncateWidth cuts s to at most maxWidth columns, ending in "..." when
// anything was removed.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
