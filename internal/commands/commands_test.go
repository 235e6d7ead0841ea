// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/dispatch/internal/cli"
	"github.com/jeranaias/dispatch/internal/command"
	"github.com/jeranaias/dispatch/internal/config"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type stubPrompter struct {
	answer bool
	asked  []string
}

func (p *stubPrompter) Confirm(message string, _ bool) (bool, error) {
	p.asked = append(p.asked, message)
	return p.answer, nil
}

type result struct {
	code   int
	stdout string
	stderr string
}

// dispatch runs args against the built-in manifest with an isolated
// configuration directory.
func dispatch(t *testing.T, settings *config.Settings, prompter command.Prompter, args ...string) result {
	t.Helper()

	if settings == nil {
		settings = &config.Settings{}
	}
	deps := Deps{Version: "1.0.0", Settings: settings}

	var stdout, stderr bytes.Buffer
	engine := cli.New(cli.Config{
		Program:  "Test CLI",
		Version:  "1.0.0",
		Manifest: Manifest(deps),
		Settings: settings,
		Stdout:   &stdout,
		Stderr:   &stderr,
		Prompter: prompter,
	})
	code := engine.Run(context.Background(), args)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DISPATCH_CONFIG_DIR", dir)
	return dir
}

// =============================================================================
// MANIFEST
// =============================================================================

func TestManifest_RegistersPathKeys(t *testing.T) {
	m := Manifest(Deps{})

	assert.Equal(t, []string{
		"cli/commands/cli-doctor",
		"cli/commands/completion/completion-sh-update",
		"cli/commands/config/config-get",
		"cli/commands/config/config-list",
		"cli/commands/config/config-reset",
		"cli/commands/config/config-set",
		"commands/version",
	}, m.Keys())
}

func TestManifest_FactoriesMatchTheirKeys(t *testing.T) {
	m := Manifest(Deps{})
	for _, key := range m.Keys() {
		factory, ok := m.Lookup(key)
		require.True(t, ok, key)
		cmd, err := factory()
		require.NoError(t, err, key)
		assert.NotEmpty(t, cmd.Description(), key)
	}
}

// =============================================================================
// VERSION
// =============================================================================

func TestVersion(t *testing.T) {
	isolateConfig(t)

	r := dispatch(t, nil, nil, "version")

	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)
	assert.Equal(t, "v1.0.0\n", r.stdout)
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfigGet(t *testing.T) {
	isolateConfig(t)

	r := dispatch(t, &config.Settings{ErrorOutput: "stdout"}, nil, "cli", "config", "get", "--key", "errorOutput")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)
	assert.Equal(t, "stdout\n", r.stdout)

	r = dispatch(t, &config.Settings{}, nil, "cli", "config", "get", "--key", "output")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)
	assert.Empty(t, r.stdout)
}

func TestConfigSet_PersistsSetting(t *testing.T) {
	isolateConfig(t)

	r := dispatch(t, nil, nil, "cli", "config", "set", "--key", "output", "--value", "json")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)

	saved, err := config.LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "json", saved.Output)

	r = dispatch(t, nil, nil, "cli", "config", "set", "-k", "showHelpOnFailure", "-v", "false")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)

	saved, err = config.LoadFile()
	require.NoError(t, err)
	require.NotNil(t, saved.ShowHelpOnFailure)
	assert.False(t, *saved.ShowHelpOnFailure)
	assert.Equal(t, "json", saved.Output)
}

func TestConfigSet_Validation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown key",
			args:    []string{"--key", "color", "--value", "red"},
			wantErr: "color is not a valid setting",
		},
		{
			name:    "value outside allowed set",
			args:    []string{"--key", "output", "--value", "yaml"},
			wantErr: "yaml is not a valid value for the option output. Allowed values: json, text",
		},
		{
			name:    "non boolean",
			args:    []string{"--key", "showHelpOnFailure", "--value", "sometimes"},
			wantErr: "sometimes is not a valid boolean value",
		},
		{
			name:    "negative width",
			args:    []string{"--key", "helpWrap", "--value=-1"},
			wantErr: "-1 is not a valid width for the option helpWrap",
		},
		{
			name:    "missing value",
			args:    []string{"--key", "output"},
			wantErr: "Required option value not specified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)

			args := append([]string{"cli", "config", "set"}, tt.args...)
			r := dispatch(t, nil, nil, args...)

			assert.Equal(t, cli.ExitGeneralError, r.code)
			assert.Contains(t, r.stderr, tt.wantErr)

			saved, err := config.LoadFile()
			require.NoError(t, err)
			assert.Equal(t, config.Settings{}, *saved)
		})
	}
}

func TestConfigList(t *testing.T) {
	for _, name := range []string{"list", "ls"} {
		t.Run(name, func(t *testing.T) {
			isolateConfig(t)
			settings := &config.Settings{Output: "json", ErrorOutput: "stdout"}

			r := dispatch(t, settings, nil, "cli", "config", name)

			require.Equal(t, cli.ExitSuccess, r.code, r.stderr)
			var got map[string]any
			require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
			assert.Equal(t, map[string]any{"output": "json", "errorOutput": "stdout"}, got)
		})
	}
}

func TestConfigReset(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		answer     bool
		wantOutput string
		wantError  string
		wantAsked  int
	}{
		{"single key confirmed by flag", []string{"--key", "output", "--confirm"}, false, "", "stdout", 0},
		{"all keys confirmed by flag", []string{"--confirm"}, false, "", "", 0},
		{"prompt accepted", []string{"--key", "errorOutput"}, true, "json", "", 1},
		{"prompt declined", nil, false, "json", "stdout", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			require.NoError(t, (&config.Settings{Output: "json", ErrorOutput: "stdout"}).Save())
			prompter := &stubPrompter{answer: tt.answer}

			args := append([]string{"cli", "config", "reset"}, tt.args...)
			r := dispatch(t, nil, prompter, args...)

			require.Equal(t, cli.ExitSuccess, r.code, r.stderr)
			assert.Len(t, prompter.asked, tt.wantAsked)

			saved, err := config.LoadFile()
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutput, saved.Output)
			assert.Equal(t, tt.wantError, saved.ErrorOutput)
		})
	}
}

func TestConfig_RepairsInvalidSettingsFile(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		args       []string
		wantCode   int
		wantOutput string
		wantError  string
	}{
		{
			name: "reset all replaces a bad value",
			file: "output = \"yaml\"\nerror_output = \"stdout\"\n",
			args: []string{"reset", "--confirm"},
		},
		{
			name: "reset all replaces an undecodable file",
			file: "output = \n",
			args: []string{"reset", "--confirm"},
		},
		{
			name:      "reset one key keeps the others",
			file:      "output = \"yaml\"\nerror_output = \"stdout\"\n",
			args:      []string{"reset", "--key", "output", "--confirm"},
			wantError: "stdout",
		},
		{
			name:       "set overwrites a bad value",
			file:       "output = \"yaml\"\n",
			args:       []string{"set", "--key", "output", "--value", "json"},
			wantOutput: "json",
		},
		{
			name:       "set drops an unknown key",
			file:       "colour = \"red\"\nerror_output = \"stdout\"\n",
			args:       []string{"set", "--key", "output", "--value", "text"},
			wantOutput: "text",
			wantError:  "stdout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolateConfig(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(tt.file), 0600))

			args := append([]string{"cli", "config"}, tt.args...)
			r := dispatch(t, nil, nil, args...)
			require.Equal(t, cli.ExitSuccess, r.code, r.stderr)

			saved, err := config.LoadFile()
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutput, saved.Output)
			assert.Equal(t, tt.wantError, saved.ErrorOutput)
		})
	}
}

func TestConfig_UndecodableFileStillFailsSingleKeyChanges(t *testing.T) {
	dir := isolateConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("output = \n"), 0600))

	r := dispatch(t, nil, nil, "cli", "config", "reset", "--key", "output", "--confirm")
	assert.Equal(t, cli.ExitGeneralError, r.code)
	assert.Contains(t, r.stderr, "failed to load settings")
}

// =============================================================================
// DOCTOR
// =============================================================================

func TestDoctor_JSON(t *testing.T) {
	dir := isolateConfig(t)

	r := dispatch(t, &config.Settings{ErrorOutput: "stderr"}, nil, "cli", "doctor", "--output", "json")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)

	var diag Diagnostics
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &diag))
	assert.Equal(t, "v1.0.0", diag.CLIVersion)
	assert.Equal(t, runtime.GOOS, diag.OS)
	assert.Equal(t, runtime.Version(), diag.GoVersion)
	assert.Equal(t, dir, diag.ConfigDir)
	assert.Equal(t, 7, diag.CommandCount)
	assert.Equal(t, map[string]any{"errorOutput": "stderr"}, diag.Settings)
}

func TestDoctor_TextKeepsDefaultProperties(t *testing.T) {
	isolateConfig(t)

	r := dispatch(t, nil, nil, "cli", "doctor")
	require.Equal(t, cli.ExitSuccess, r.code, r.stderr)

	lines := strings.Split(strings.TrimRight(r.stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "cliVersion: v1.0.0", lines[0])
	assert.Equal(t, "goVersion : "+runtime.Version(), lines[1])
	assert.Equal(t, "os        : "+runtime.GOOS, lines[2])
}
