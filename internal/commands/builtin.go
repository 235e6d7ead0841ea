// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/jeranaias/dispatch/internal/command"
	"github.com/jeranaias/dispatch/internal/config"
	"github.com/jeranaias/dispatch/internal/registry"
)

// Command names.
const (
	NameVersion          = "version"
	NameDoctor           = "cli doctor"
	NameConfigGet        = "cli config get"
	NameConfigSet        = "cli config set"
	NameConfigList       = "cli config list"
	NameConfigReset      = "cli config reset"
	NameCompletionUpdate = "cli completion sh update"
)

// Deps are the collaborators shared by the built-in commands.
type Deps struct {
	// Version is reported by version and cli doctor.
	Version string
	// Settings are the effective settings, environment overrides applied.
	Settings *config.Settings
	// LoadSettings reads the persisted settings before they are modified.
	// Nil uses config.LoadFile.
	LoadSettings func() (*config.Settings, error)
	// ConfigDir returns where generated files are written. Nil uses config.Dir.
	ConfigDir func() (string, error)
}

func (d Deps) withDefaults() Deps {
	if d.Settings == nil {
		d.Settings = &config.Settings{}
	}
	if d.LoadSettings == nil {
		d.LoadSettings = config.LoadFile
	}
	if d.ConfigDir == nil {
		d.ConfigDir = config.Dir
	}
	return d
}

// Manifest registers every built-in command under its path key.
func Manifest(deps Deps) *registry.Manifest {
	deps = deps.withDefaults()

	m := registry.NewManifest()
	add := func(name string, build func() command.Command) {
		m.Add(registry.KeyFor(name), func() (command.Command, error) {
			return build(), nil
		})
	}

	add(NameVersion, func() command.Command { return newVersionCommand(deps) })
	add(NameDoctor, func() command.Command { return newDoctorCommand(deps) })
	add(NameConfigGet, func() command.Command { return newConfigGetCommand(deps) })
	add(NameConfigSet, func() command.Command { return newConfigSetCommand(deps) })
	add(NameConfigList, func() command.Command { return newConfigListCommand(deps) })
	add(NameConfigReset, func() command.Command { return newConfigResetCommand(deps) })
	add(NameCompletionUpdate, func() command.Command { return newCompletionUpdateCommand(deps) })
	return m
}
