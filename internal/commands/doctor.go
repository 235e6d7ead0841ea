// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - Diagnostic information for support requests.
//
// Command: cli doctor
//
// Runs version and cli config list through the captured runner and logs
// one object describing the environment. Text output keeps cliVersion, os
// and goVersion; use --output json for everything.

package commands

import (
	"context"
	"encoding/json"
	"runtime"
	"strings"

	"github.com/jeranaias/dispatch/internal/argparse"
	"github.com/jeranaias/dispatch/internal/command"
)

// Diagnostics is the object logged by cli doctor.
type Diagnostics struct {
	CLIVersion   string         `json:"cliVersion"`
	OS           string         `json:"os"`
	Arch         string         `json:"arch"`
	GoVersion    string         `json:"goVersion"`
	ConfigDir    string         `json:"configDir"`
	CommandCount int            `json:"commandCount"`
	Settings     map[string]any `json:"settings"`
}

type doctorCommand struct {
	command.Base
	deps Deps
}

func newDoctorCommand(deps Deps) *doctorCommand {
	return &doctorCommand{deps: deps}
}

func (c *doctorCommand) Name() string { return NameDoctor }

func (c *doctorCommand) Description() string {
	return "Retrieves diagnostic information about the current environment"
}

func (c *doctorCommand) DefaultProperties() []string {
	return []string{"cliVersion", "os", "goVersion"}
}

func (c *doctorCommand) Action(ctx context.Context, log command.Logger, opts argparse.Options) error {
	runner, ok := command.RunnerFrom(ctx)
	if !ok {
		return command.NewError("%s must run inside the dispatcher", NameDoctor)
	}

	nested := argparse.Options{command.OptDebug: opts.Bool(command.OptDebug)}

	version, err := runner.ExecuteCaptured(ctx, newVersionCommand(c.deps), withOutput(nested, "text"))
	if err != nil {
		return err
	}
	listed, err := runner.ExecuteCaptured(ctx, newConfigListCommand(c.deps), withOutput(nested, "json"))
	if err != nil {
		return err
	}
	if opts.Bool(command.OptDebug) {
		for _, out := range []command.Output{version, listed} {
			if out.Stderr != "" {
				log.LogToStderr(out.Stderr)
			}
		}
	}

	settings := map[string]any{}
	if err := json.Unmarshal([]byte(listed.Stdout), &settings); err != nil {
		return command.NewError("failed to read settings: %v", err)
	}

	diag := Diagnostics{
		CLIVersion: strings.TrimSpace(version.Stdout),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		GoVersion:  runtime.Version(),
		Settings:   settings,
	}
	if dir, err := c.deps.ConfigDir(); err == nil {
		diag.ConfigDir = dir
	}
	if catalog, ok := command.CatalogFrom(ctx); ok {
		diag.CommandCount = len(catalog.Commands())
	}

	log.Log(diag)
	return nil
}

func withOutput(opts argparse.Options, mode string) argparse.Options {
	out := opts.Clone()
	out[command.OptOutput] = mode
	return out
}
