// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package docs locates and renders command help pages.
//
// Help pages are Markdown files laid out by the same word convention as
// command keys:
//
//	version               -> version.md
//	cli doctor            -> cli/cli-doctor.md
//	cli config set        -> cli/config/config-set.md
//
// Pages may pull shared fragments in with a snippet line
// (--8<-- "shared/global-options.md") resolved against the docs root, and
// use "!!! note" admonition blocks.
package docs
