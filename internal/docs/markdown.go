// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docs

import (
	"bufio"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

// Admonition layout, in columns.
const (
	AdmonitionIndentBefore = 0
	AdmonitionIndentTitle  = 3
	AdmonitionIndentAfter  = 0
)

// maxIncludeDepth bounds nested snippet includes.
const maxIncludeDepth = 5

var (
	snippetLine    = regexp.MustCompile(`^\s*--8<--\s+"([^"]+)"\s*$`)
	admonitionLine = regexp.MustCompile(`^!!!\s+(\w+)(?:\s+"([^"]*)")?\s*$`)
)

// expand resolves snippet includes against fsys and rewrites admonitions
// as block quotes.
func expand(fsys fs.FS, src string) (string, error) {
	included, err := includeSnippets(fsys, src, 0)
	if err != nil {
		return "", err
	}
	return rewriteAdmonitions(included), nil
}

func includeSnippets(fsys fs.FS, src string, depth int) (string, error) {
	if depth > maxIncludeDepth {
		return "", fmt.Errorf("snippet includes nested deeper than %d", maxIncludeDepth)
	}

	var out strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		line := scanner.Text()
		m := snippetLine.FindStringSubmatch(line)
		if m == nil {
			out.WriteString(line)
			out.WriteString("\n")
			continue
		}

		data, err := fs.ReadFile(fsys, path.Clean(m[1]))
		if err != nil {
			// a missing snippet drops the line
			continue
		}
		nested, err := includeSnippets(fsys, string(data), depth+1)
		if err != nil {
			return "", err
		}
		out.WriteString(nested)
	}
	return out.String(), scanner.Err()
}

// rewriteAdmonitions turns
//
//	!!! warning "Destructive"
//	    Removes the channel.
//
// into a block quote whose first line is the indented, bold title.
func rewriteAdmonitions(src string) string {
	lines := strings.Split(src, "\n")
	var out []string
	for i := 0; i < len(lines); i++ {
		m := admonitionLine.FindStringSubmatch(lines[i])
		if m == nil {
			out = append(out, lines[i])
			continue
		}

		title := m[2]
		if title == "" {
			title = strings.ToUpper(m[1][:1]) + m[1][1:]
		}
		out = append(out, blankLines(AdmonitionIndentBefore)...)
		out = append(out, "> "+strings.Repeat(" ", AdmonitionIndentTitle)+"**"+title+"**", ">")

		for i+1 < len(lines) && (strings.HasPrefix(lines[i+1], "    ") || strings.HasPrefix(lines[i+1], "\t") || strings.TrimSpace(lines[i+1]) == "" && continuesBlock(lines, i+1)) {
			i++
			out = append(out, "> "+strings.TrimPrefix(strings.TrimPrefix(lines[i], "    "), "\t"))
		}
		out = append(out, blankLines(AdmonitionIndentAfter)...)
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// continuesBlock reports whether the blank line at i is followed by more
// indented admonition body.
func continuesBlock(lines []string, i int) bool {
	for j := i; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "" {
			continue
		}
		return strings.HasPrefix(lines[j], "    ") || strings.HasPrefix(lines[j], "\t")
	}
	return false
}

func blankLines(n int) []string {
	return make([]string, n)
}
