// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package registry resolves invocation words to command descriptors.
//
// Commands are listed in a Manifest under a path-convention key derived
// from their name:
//
//	1 word    version              -> commands/version
//	2 words   cli doctor           -> cli/commands/cli-doctor
//	3+ words  cli config set       -> cli/commands/config/config-set
//
// Resolving an invocation first tries the single key its words map to and
// only instantiates that command. When the key is missing, the factory
// fails or the invocation needs the full set (no words, or a completion
// request), every command in the manifest is instantiated instead.
package registry
