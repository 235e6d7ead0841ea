// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package output turns values logged by commands into terminal text.
//
// Every value goes through the same pipeline: an optional JMESPath query,
// then one of four shapes. JSON mode prints the (filtered) value indented.
// Otherwise scalars and lists of scalars print one per line, a single object
// prints as an aligned key/value block and a list of objects prints as a
// grid. In text mode a command's default properties narrow objects before
// they are shaped, unless a query already changed their shape.
package output
