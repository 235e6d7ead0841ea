// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/dispatch/internal/command"
	"github.com/jeranaias/dispatch/internal/registry"
)

func TestNewTraceLogger_DiscardsWithoutPath(t *testing.T) {
	log, closer := NewTraceLogger("")
	defer closer.Close()

	assert.Equal(t, io.Discard, log.Out)
}

func TestNewTraceLogger_RecordsExecutions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	log, closer := NewTraceLogger(path)

	cmd := &fakeCommand{name: "status", description: "Show status"}
	m := registry.NewManifest()
	m.Add(registry.KeyFor(cmd.name), func() (command.Command, error) { return cmd, nil })

	engine := New(Config{
		Manifest: m,
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		Trace:    log,
	})
	require.Equal(t, ExitSuccess, engine.Run(context.Background(), []string{"status", "--debug"}))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "command finished")
	assert.Contains(t, text, "command=status")
	assert.Contains(t, text, "run_id="+engine.Context().RunID)
}
