// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"", false, false},
		{"  ", true, true},
		{"y", false, true},
		{"YES", false, true},
		{"n", true, false},
		{"no", true, false},
		{"maybe", true, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseAnswer(tt.input, tt.def), "input %q default %v", tt.input, tt.def)
	}
}

func TestLinerPrompter_NonInteractiveReturnsDefault(t *testing.T) {
	p := &LinerPrompter{canPrompt: func() bool { return false }}

	for _, def := range []bool{true, false} {
		got, err := p.Confirm("Reset all settings?", def)
		require.NoError(t, err)
		assert.Equal(t, def, got)
	}
}

func TestChoiceHint(t *testing.T) {
	assert.Equal(t, "[Y/n]", choiceHint(true))
	assert.Equal(t, "[y/N]", choiceHint(false))
}
