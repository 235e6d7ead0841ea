// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"

	"github.com/jeranaias/dispatch/internal/argparse"
	"github.com/jeranaias/dispatch/internal/command"
)

type versionCommand struct {
	command.Base
	version string
}

func newVersionCommand(deps Deps) *versionCommand {
	return &versionCommand{version: deps.Version}
}

func (c *versionCommand) Name() string        { return NameVersion }
func (c *versionCommand) Description() string { return "Shows the CLI version" }

func (c *versionCommand) Action(_ context.Context, log command.Logger, _ argparse.Options) error {
	log.Log("v" + c.version)
	return nil
}
