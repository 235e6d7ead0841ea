// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/dispatch/internal/command"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("x"), ExitGeneralError},
		{"command error", command.NewErrorWithCode(5, "x"), 5},
		{"command error default", command.NewError("x"), ExitGeneralError},
		{"wrapped command error", fmt.Errorf("outer: %w", command.NewErrorWithCode(7, "x")), 7},
		{"captured command error", &CapturedError{Err: command.NewErrorWithCode(2, "x")}, 2},
		{"usage error", &MissingOptionError{Option: "id"}, ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Invalid option: 'foo'\n", (&InvalidOptionError{Option: "foo"}).Error())
	assert.Equal(t, "Required option id not specified", (&MissingOptionError{Option: "id"}).Error())
	assert.Equal(t, "bad", (&ValidationError{Command: "x", Err: errors.New("bad")}).Error())
	assert.Equal(t, "boom", errorMessage(fmt.Errorf("ctx: %w", command.NewError("boom"))))
	assert.Equal(t, "ctx: plain", errorMessage(fmt.Errorf("ctx: %w", errors.New("plain"))))
}

func TestShowsHelp(t *testing.T) {
	assert.True(t, showsHelp(&InvalidOptionError{Option: "x"}))
	assert.True(t, showsHelp(&MissingOptionError{Option: "x"}))
	assert.True(t, showsHelp(&ValidationError{Err: errors.New("x")}))
	assert.False(t, showsHelp(errors.New("x")))
	assert.False(t, showsHelp(command.NewError("x")))
}

func TestSuggestOption(t *testing.T) {
	candidates := []string{"id", "title", "query", "output", "verbose", "debug"}

	tests := []struct {
		input string
		want  string
	}{
		{"outptu", "output"},
		{"titel", "title"},
		{"verbos", "verbose"},
		{"x", ""},
		{"completely-different", ""},
		{"title", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, suggestOption(tt.input, candidates), tt.input)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("abc", "abc"))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, 1, levenshteinDistance("kitten", "sitten"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}
