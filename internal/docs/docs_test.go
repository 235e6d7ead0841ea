// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docs

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	tests := []struct {
		words []string
		want  string
	}{
		{nil, ""},
		{[]string{"version"}, "version.md"},
		{[]string{"cli", "doctor"}, "cli/cli-doctor.md"},
		{[]string{"cli", "config", "set"}, "cli/config/config-set.md"},
		{[]string{"cli", "completion", "sh", "update"}, "cli/completion/completion-sh-update.md"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Path(tt.words))
	}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"version.md": {Data: []byte("# version\n\nShows the version.\n\n--8<-- \"_shared/global.md\"\n")},
		"_shared/global.md": {Data: []byte("## Global options\n\n`--debug`\n: Runs in debug mode\n")},
		"cli/cli-doctor.md": {Data: []byte("# cli doctor\n\n!!! tip\n    Attach the output to bug reports.\n\nDone.\n")},
		"loop.md":           {Data: []byte("--8<-- \"loop.md\"\n")},
	}
}

func TestExpand_Snippets(t *testing.T) {
	out, err := expand(testFS(), "a\n--8<-- \"_shared/global.md\"\n--8<-- \"missing.md\"\nb\n")
	require.NoError(t, err)
	assert.Contains(t, out, "## Global options")
	assert.NotContains(t, out, "missing.md")
	assert.True(t, strings.HasPrefix(out, "a\n"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "b"))

	_, err = expand(testFS(), "--8<-- \"loop.md\"\n")
	assert.Error(t, err)
}

func TestRewriteAdmonitions(t *testing.T) {
	src := "intro\n!!! warning \"Destructive\"\n    Removes the channel.\n\n    Cannot be undone.\nafter"
	out := rewriteAdmonitions(src)

	assert.Contains(t, out, ">    **Destructive**")
	assert.Contains(t, out, "> Removes the channel.")
	assert.Contains(t, out, "> Cannot be undone.")
	assert.Contains(t, out, "\nafter")
	assert.NotContains(t, out, "!!!")

	out = rewriteAdmonitions("!!! tip\n    Short.")
	assert.Contains(t, out, "**Tip**")
}

func TestGlamourRenderer_Render(t *testing.T) {
	r := NewGlamourRenderer(testFS(), 80, false)

	out, err := r.Render("version.md")
	require.NoError(t, err)
	assert.Contains(t, out, "Shows the version.")
	assert.Contains(t, out, "Global options")

	out, err = r.Render("cli/cli-doctor.md")
	require.NoError(t, err)
	assert.Contains(t, out, "Tip")
	assert.Contains(t, out, "Attach the output to bug reports.")
}

func TestGlamourRenderer_Missing(t *testing.T) {
	r := NewGlamourRenderer(testFS(), 80, false)
	_, err := r.Render("teams/teams-list.md")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestTheme(t *testing.T) {
	cfg := Theme(true)
	require.NotNil(t, cfg.Heading.Color)
	assert.Equal(t, "15", *cfg.Heading.Color)
	require.NotNil(t, cfg.Code.Color)
	assert.Equal(t, "14", *cfg.Code.Color)
	assert.Equal(t, CodeTheme, cfg.CodeBlock.Theme)
	require.NotNil(t, cfg.DefinitionList.Indent)
	assert.Equal(t, DefinitionListIndent, *cfg.DefinitionList.Indent)

	plain := Theme(false)
	assert.Empty(t, plain.CodeBlock.Theme)
}
