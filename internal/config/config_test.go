// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the settings directory at a fresh temp dir and clears
// every override variable.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DISPATCH_CONFIG_DIR", dir)
	for _, v := range []string{"DISPATCH_OUTPUT", "DISPATCH_ERROR_OUTPUT", "DISPATCH_SHOW_HELP_ON_FAILURE", "DISPATCH_TRACE_FILE"} {
		t.Setenv(v, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	s, err := Load()
	require.NoError(t, err)

	_, ok := s.Get(SettingOutput)
	assert.False(t, ok)
	assert.Equal(t, "stderr", s.GetString(SettingErrorOutput, "stderr"))
	assert.True(t, s.GetBool(SettingShowHelpOnFailure, true))
}

func TestSaveAndLoadTOML(t *testing.T) {
	dir := isolate(t)

	s := &Settings{}
	require.NoError(t, s.Set("output", "json"))
	require.NoError(t, s.Set("show_help_on_failure", "false"))
	require.NoError(t, s.Set("help-wrap", "100"))
	require.NoError(t, s.Save())

	path := filepath.Join(dir, "config.toml")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "json", loaded.Output)
	require.NotNil(t, loaded.ShowHelpOnFailure)
	assert.False(t, *loaded.ShowHelpOnFailure)
	assert.Equal(t, 100, loaded.HelpWrap)
}

func TestLoad_JSONCFallback(t *testing.T) {
	dir := isolate(t)

	content := `{
  // routed to stdout for CI logs
  "errorOutput": "stdout",
  "output": "text"
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600))

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "stdout", s.ErrorOutput)
	assert.Equal(t, "text", s.Output)
}

func TestLoad_TOMLWinsOverJSON(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`output = "json"`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"output": "text"}`), 0600))

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", s.Output)
}

func TestLoad_RejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", `colour = "red"`},
		{"bad value", `error_output = "printer"`},
		{"not toml", `output = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(tt.content), 0600))
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`output = "text"`), 0600))
	t.Setenv("DISPATCH_OUTPUT", "json")
	t.Setenv("DISPATCH_SHOW_HELP_ON_FAILURE", "0")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", s.Output)
	assert.False(t, s.GetBool(SettingShowHelpOnFailure, true))

	file, err := LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "text", file.Output, "overrides never reach the file view")
}

func TestSet_Validation(t *testing.T) {
	tests := []struct {
		name    string
		setting string
		value   string
		wantErr bool
	}{
		{"valid output", "output", "json", false},
		{"invalid output", "output", "yaml", true},
		{"valid error output", "errorOutput", "stdout", false},
		{"invalid error output", "error_output", "printer", true},
		{"boolean", "showHelpOnFailure", "false", false},
		{"bad boolean", "showHelpOnFailure", "maybe", true},
		{"negative wrap", "helpWrap", "-1", true},
		{"unknown", "colour", "red", true},
		{"empty name", "", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Settings{Output: "text"}
			err := s.Set(tt.setting, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, "text", s.Output, "failed set keeps previous value")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGetUnsetAndAll(t *testing.T) {
	s := &Settings{}
	require.NoError(t, s.Set(SettingTraceFile, "/tmp/trace.log"))
	require.NoError(t, s.Set(SettingShowHelpOnFailure, "true"))

	assert.Equal(t, map[string]any{
		SettingTraceFile:         "/tmp/trace.log",
		SettingShowHelpOnFailure: true,
	}, s.All())

	require.NoError(t, s.Unset(SettingShowHelpOnFailure))
	_, ok := s.Get(SettingShowHelpOnFailure)
	assert.False(t, ok)
	assert.Error(t, s.Unset("nope"))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"errorOutput", "helpWrap", "output", "showHelpOnFailure", "traceFile"}, Names())
}

func TestLoadFile_KeepsSettingsThatFailValidation(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{"bad value", "output = \"yaml\"\nerror_output = \"stdout\"\n", SettingOutput},
		{"unknown key", "colour = \"red\"\nerror_output = \"stdout\"\n", "colour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(tt.content), 0600))

			s, err := LoadFile()
			var invalid *ValidationError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantField, invalid.Field)
			require.NotNil(t, s)
			assert.Equal(t, "stdout", s.ErrorOutput)
		})
	}

	t.Run("syntax error returns no settings", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("output = "), 0600))

		s, err := LoadFile()
		assert.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestAllowedValues(t *testing.T) {
	assert.Equal(t, []string{"json", "text"}, AllowedValues(SettingOutput))
	assert.Equal(t, []string{"stderr", "stdout"}, AllowedValues(SettingErrorOutput))
	assert.Nil(t, AllowedValues(SettingTraceFile))

	AllowedValues(SettingOutput)[0] = "yaml"
	assert.Equal(t, []string{"json", "text"}, AllowedValues(SettingOutput))
}
