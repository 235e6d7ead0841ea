// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Program identity shown in the general help banner.
const (
	ProgramName        = "dispatch"
	ProgramTitle       = "Dispatch CLI"
	ProgramDescription = "Run commands discovered by name, with shaped and queryable output"
)
