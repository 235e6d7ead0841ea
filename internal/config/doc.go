// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides the persisted settings the dispatcher consults.
//
// Settings are stored as TOML, with a JSON (comments allowed) fallback, and
// can be overridden through environment variables.
//
// # Key Types
//
//   - Settings: every persisted setting, unset values are zero
//
// # Configuration Precedence
//
// Settings are loaded from (in order of precedence):
//   - Environment variables (DISPATCH_*)
//   - ~/.dispatch/config.toml
//   - ~/.dispatch/config.json
//   - Built-in defaults
//
// DISPATCH_CONFIG_DIR replaces ~/.dispatch.
//
// # Usage
//
//	settings, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	if mode, ok := settings.Get(config.SettingOutput); ok {
//	    ...
//	}
package config
