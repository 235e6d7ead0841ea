// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docs

import (
	"path"
	"strings"
)

// Path returns the help page path for a command's name words, relative to
// the docs root. It returns "" for no words.
func Path(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0] + ".md"
	case 2:
		return path.Join(words[0], strings.Join(words, "-")+".md")
	default:
		return path.Join(words[0], words[1], strings.Join(words[1:], "-")+".md")
	}
}
