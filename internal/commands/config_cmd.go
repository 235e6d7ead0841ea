// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Settings management commands.
//
// Command: cli config <get|set|list|reset>
//
// Examples:
//   dispatch cli config get --key output
//   dispatch cli config set --key errorOutput --value stdout
//   dispatch cli config ls --output json
//   dispatch cli config reset --key output --confirm
//
// get and list read the effective settings, environment overrides
// included. set and reset modify the persisted file only.

package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/dispatch/internal/argparse"
	"github.com/jeranaias/dispatch/internal/command"
	"github.com/jeranaias/dispatch/internal/config"
)

func keyOption(required bool) command.Option {
	spec := "-k, --key [key]"
	if required {
		spec = "-k, --key <key>"
	}
	return command.Option{Spec: spec, Autocomplete: config.Names()}
}

func validateKey(opts argparse.Options) error {
	key := opts.String("key")
	for _, name := range config.Names() {
		if name == key {
			return nil
		}
	}
	return fmt.Errorf("%s is not a valid setting. Allowed values: %s", key, strings.Join(config.Names(), ", "))
}

// loadForUpdate reads the persisted settings before a change. A file that
// decodes but fails validation is kept so set and reset can repair it.
func loadForUpdate(load func() (*config.Settings, error)) (*config.Settings, error) {
	settings, err := load()
	if err == nil {
		return settings, nil
	}
	var invalid *config.ValidationError
	if errors.As(err, &invalid) && settings != nil {
		return settings, nil
	}
	return nil, command.NewError("failed to load settings: %v", err)
}

// =============================================================================
// GET
// =============================================================================

type configGetCommand struct {
	command.Base
	settings *config.Settings
}

func newConfigGetCommand(deps Deps) *configGetCommand {
	return &configGetCommand{settings: deps.Settings}
}

func (c *configGetCommand) Name() string        { return NameConfigGet }
func (c *configGetCommand) Description() string { return "Gets the value of a CLI setting" }

func (c *configGetCommand) Options() []command.Option {
	return []command.Option{keyOption(true)}
}

func (c *configGetCommand) Types() command.Types {
	return command.Types{String: []string{"key"}}
}

func (c *configGetCommand) Validate(opts argparse.Options) error {
	return validateKey(opts)
}

func (c *configGetCommand) Action(_ context.Context, log command.Logger, opts argparse.Options) error {
	if v, ok := c.settings.Get(opts.String("key")); ok {
		log.Log(v)
	}
	return nil
}

// =============================================================================
// SET
// =============================================================================

type configSetCommand struct {
	command.Base
	load func() (*config.Settings, error)
}

func newConfigSetCommand(deps Deps) *configSetCommand {
	return &configSetCommand{load: deps.LoadSettings}
}

func (c *configSetCommand) Name() string        { return NameConfigSet }
func (c *configSetCommand) Description() string { return "Manages global configuration settings about the CLI" }

func (c *configSetCommand) Options() []command.Option {
	return []command.Option{
		keyOption(true),
		{Spec: "-v, --value <value>"},
	}
}

func (c *configSetCommand) Types() command.Types {
	return command.Types{String: []string{"key", "value"}}
}

func (c *configSetCommand) Validate(opts argparse.Options) error {
	if err := validateKey(opts); err != nil {
		return err
	}

	key, value := opts.String("key"), opts.String("value")
	if allowed := config.AllowedValues(key); allowed != nil {
		for _, a := range allowed {
			if a == value {
				return nil
			}
		}
		return fmt.Errorf("%s is not a valid value for the option %s. Allowed values: %s", value, key, strings.Join(allowed, ", "))
	}

	switch key {
	case config.SettingShowHelpOnFailure:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%s is not a valid boolean value for the option %s", value, key)
		}
	case config.SettingHelpWrap:
		if n, err := strconv.Atoi(value); err != nil || n < 0 {
			return fmt.Errorf("%s is not a valid width for the option %s", value, key)
		}
	}
	return nil
}

func (c *configSetCommand) Action(_ context.Context, log command.Logger, opts argparse.Options) error {
	settings, err := loadForUpdate(c.load)
	if err != nil {
		return err
	}
	if err := settings.Set(opts.String("key"), opts.String("value")); err != nil {
		return command.NewError("%v", err)
	}
	if err := settings.Save(); err != nil {
		return command.NewError("%v", err)
	}
	if opts.Bool(command.OptVerbose) {
		log.LogToStderr(fmt.Sprintf("Setting %s updated", opts.String("key")))
	}
	return nil
}

// =============================================================================
// LIST
// =============================================================================

type configListCommand struct {
	command.Base
	settings *config.Settings
}

func newConfigListCommand(deps Deps) *configListCommand {
	return &configListCommand{settings: deps.Settings}
}

func (c *configListCommand) Name() string        { return NameConfigList }
func (c *configListCommand) Description() string { return "Lists all CLI settings that have a value" }
func (c *configListCommand) Alias() []string     { return []string{"cli config ls"} }

func (c *configListCommand) Action(_ context.Context, log command.Logger, _ argparse.Options) error {
	log.Log(c.settings.All())
	return nil
}

// =============================================================================
// RESET
// =============================================================================

type configResetCommand struct {
	command.Base
	load func() (*config.Settings, error)
}

func newConfigResetCommand(deps Deps) *configResetCommand {
	return &configResetCommand{load: deps.LoadSettings}
}

func (c *configResetCommand) Name() string        { return NameConfigReset }
func (c *configResetCommand) Description() string { return "Resets the specified CLI setting or all settings" }

func (c *configResetCommand) Options() []command.Option {
	return []command.Option{keyOption(false), {Spec: "--confirm"}}
}

func (c *configResetCommand) Types() command.Types {
	return command.Types{String: []string{"key"}, Boolean: []string{"confirm"}}
}

func (c *configResetCommand) Validate(opts argparse.Options) error {
	if opts.Has("key") {
		return validateKey(opts)
	}
	return nil
}

func (c *configResetCommand) Action(ctx context.Context, log command.Logger, opts argparse.Options) error {
	key := opts.String("key")

	if !opts.Bool("confirm") {
		prompter, ok := command.PrompterFrom(ctx)
		if !ok {
			return command.NewError("confirmation required: use --confirm")
		}
		message := "Are you sure you want to reset all settings?"
		if key != "" {
			message = fmt.Sprintf("Are you sure you want to reset the setting %s?", key)
		}
		confirmed, err := prompter.Confirm(message, false)
		if err != nil {
			return command.NewError("%v", err)
		}
		if !confirmed {
			return nil
		}
	}

	// resetting everything never reads the old file, which may not decode
	settings := &config.Settings{}
	if key != "" {
		var err error
		if settings, err = loadForUpdate(c.load); err != nil {
			return err
		}
		if err := settings.Unset(key); err != nil {
			return command.NewError("%v", err)
		}
	}
	if err := settings.Save(); err != nil {
		return command.NewError("%v", err)
	}
	if opts.Bool(command.OptVerbose) {
		log.LogToStderr("Settings reset")
	}
	return nil
}
