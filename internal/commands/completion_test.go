// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/dispatch/internal/cli"
	"github.com/jeranaias/dispatch/internal/command"
)

func TestBuildCompletionTree(t *testing.T) {
	infos := []command.Info{
		{
			Name:    "cli config list",
			Aliases: []string{"cli config ls"},
			Options: []command.OptionInfo{
				{Name: "output", Short: "o", Long: "output", Autocomplete: []string{"json", "text"}},
			},
		},
		{
			Name:    "version",
			Options: []command.OptionInfo{{Name: "debug", Long: "debug"}},
		},
	}

	tree := BuildCompletionTree(infos)

	cliNode, ok := tree["cli"].(CompletionTree)
	require.True(t, ok)
	configNode, ok := cliNode["config"].(CompletionTree)
	require.True(t, ok)

	for _, word := range []string{"list", "ls"} {
		leaf, ok := configNode[word].(CompletionTree)
		require.True(t, ok, word)
		assert.Equal(t, []string{"json", "text"}, leaf["--output"])
		assert.Equal(t, []string{"json", "text"}, leaf["-o"])
	}

	version, ok := tree["version"].(CompletionTree)
	require.True(t, ok)
	assert.Equal(t, []string{}, version["--debug"])
	assert.NotContains(t, version, "-")
}

func TestCompletionUpdate_WritesTree(t *testing.T) {
	dir := isolateConfig(t)

	r := dispatch(t, nil, nil, "cli", "completion", "sh", "update", "--verbose")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stderr, "Command completion updated in "+filepath.Join(dir, CompletionFile))

	data, err := os.ReadFile(filepath.Join(dir, CompletionFile))
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, json.Unmarshal(data, &tree))

	cliNode := tree["cli"].(map[string]any)
	configNode := cliNode["config"].(map[string]any)
	get := configNode["get"].(map[string]any)
	assert.Contains(t, get["--key"], "output")
	assert.Contains(t, configNode, "ls")
	assert.Contains(t, cliNode, "doctor")

	version := tree["version"].(map[string]any)
	assert.Equal(t, []any{"json", "text"}, version["--output"])
}
