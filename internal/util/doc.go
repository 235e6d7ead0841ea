// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides helpers shared by the dispatcher's packages.
//
// # Key Functions
//
// Display Width:
//   - StringWidth: terminal column width of a string
//   - PadRight: left-aligns a string in a fixed number of columns
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	// Align help listings regardless of wide characters
//	line := util.PadRight(name, width) + "  " + description
//
//	// Persist settings without leaving a half-written file behind
//	err := util.AtomicWriteFile(path, data, 0600)
package util
