// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// completion.go - Shell completion data.
//
// Command: cli completion sh update
//
// The word "completion" makes the engine load every command, so the
// catalog seen here is complete. The tree maps each command word to the
// next words, and each command's last word to its options:
//
//	{"cli": {"config": {"get": {"--key": ["output", ...], "-k": [...]}}}}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jeranaias/dispatch/internal/argparse"
	"github.com/jeranaias/dispatch/internal/command"
	"github.com/jeranaias/dispatch/internal/util"
)

// CompletionFile is the name of the generated completion data file.
const CompletionFile = "completion.json"

// CompletionTree is a node of the completion data. Values are either
// subtrees or, for options, the suggested values.
type CompletionTree map[string]any

// BuildCompletionTree creates the completion tree for commands. Aliases
// are included as separate paths.
func BuildCompletionTree(commands []command.Info) CompletionTree {
	root := CompletionTree{}
	for _, info := range commands {
		for _, name := range append([]string{info.Name}, info.Aliases...) {
			node := root
			for _, word := range strings.Fields(name) {
				child, ok := node[word].(CompletionTree)
				if !ok {
					child = CompletionTree{}
					node[word] = child
				}
				node = child
			}
			for _, o := range info.Options {
				values := o.Autocomplete
				if values == nil {
					values = []string{}
				}
				if o.Long != "" {
					node["--"+o.Long] = values
				}
				if o.Short != "" {
					node["-"+o.Short] = values
				}
			}
		}
	}
	return root
}

type completionUpdateCommand struct {
	command.Base
	configDir func() (string, error)
}

func newCompletionUpdateCommand(deps Deps) *completionUpdateCommand {
	return &completionUpdateCommand{configDir: deps.ConfigDir}
}

func (c *completionUpdateCommand) Name() string { return NameCompletionUpdate }

func (c *completionUpdateCommand) Description() string {
	return "Updates command completion for Zsh, Bash and Fish"
}

func (c *completionUpdateCommand) Action(ctx context.Context, log command.Logger, opts argparse.Options) error {
	catalog, ok := command.CatalogFrom(ctx)
	if !ok {
		return command.NewError("%s must run inside the dispatcher", NameCompletionUpdate)
	}

	dir, err := c.configDir()
	if err != nil {
		return command.NewError("failed to resolve the configuration directory: %v", err)
	}

	data, err := json.Marshal(BuildCompletionTree(catalog.Commands()))
	if err != nil {
		return command.NewError("failed to encode completion data: %v", err)
	}

	path := filepath.Join(dir, CompletionFile)
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return command.NewError("failed to write completion data: %v", err)
	}

	if opts.Bool(command.OptVerbose) {
		log.LogToStderr(fmt.Sprintf("Command completion updated in %s", path))
	}
	return nil
}
