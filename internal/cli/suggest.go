// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - "Did you mean" hints for mistyped options.
package cli

import (
	"strings"
)

// suggestOption returns the declared option closest to input, or "" when
// input is an exact match, too short or too far from every candidate.
// The allowed distance grows with the input: 1 edit up to 3 characters,
// 2 up to 8 and 3 beyond.
func suggestOption(input string, candidates []string) string {
	if len(input) < 2 {
		return ""
	}

	limit := 1
	switch {
	case len(input) > 8:
		limit = 3
	case len(input) >= 4:
		limit = 2
	}

	needle := strings.ToLower(input)
	best, bestDistance := "", limit+1
	for _, candidate := range candidates {
		if len(candidate) < 2 {
			continue
		}
		d := levenshteinDistance(needle, strings.ToLower(candidate))
		if d == 0 {
			return ""
		}
		if d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

// levenshteinDistance counts the single byte edits turning a into b.
func levenshteinDistance(a, b string) int {
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			diag, row[j] = row[j], min(row[j]+1, row[j-1]+1, diag+cost)
		}
	}
	return row[len(b)]
}
