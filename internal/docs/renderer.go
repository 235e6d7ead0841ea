// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package docs

import (
	"fmt"
	"io/fs"

	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// CodeTheme is the chroma style used for fenced code blocks.
const CodeTheme = "solarized-light"

// DefinitionListIndent is the indent of definition list bodies.
const DefinitionListIndent uint = 2

// Renderer turns a help page into terminal text.
type Renderer interface {
	// Render returns the themed page at name. A missing page returns an
	// error wrapping fs.ErrNotExist.
	Render(name string) (string, error)
}

// GlamourRenderer renders Markdown help pages from an fs.FS with glamour.
type GlamourRenderer struct {
	fsys   fs.FS
	wrap   int
	colors bool
}

// NewGlamourRenderer creates a renderer over fsys. wrap is the word-wrap
// width; colors selects the themed style over the plain one.
func NewGlamourRenderer(fsys fs.FS, wrap int, colors bool) *GlamourRenderer {
	return &GlamourRenderer{fsys: fsys, wrap: wrap, colors: colors}
}

// Render implements Renderer.
func (r *GlamourRenderer) Render(name string) (string, error) {
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return "", err
	}

	md, err := expand(r.fsys, string(data))
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", name, err)
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(Theme(r.colors)),
		glamour.WithWordWrap(r.wrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := tr.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return out, nil
}

// Theme returns the help page style: white headings, cyan inline code and
// solarized code blocks. Without colors it returns the plain ASCII style.
func Theme(colors bool) ansi.StyleConfig {
	if !colors {
		return styles.NoTTYStyleConfig
	}

	cfg := styles.DarkStyleConfig
	white, cyan := "15", "14"
	indent := DefinitionListIndent

	cfg.Heading.Color = &white
	for _, h := range []*ansi.StyleBlock{&cfg.H1, &cfg.H2, &cfg.H3, &cfg.H4, &cfg.H5, &cfg.H6} {
		h.Color = &white
		h.BackgroundColor = nil
	}
	cfg.Code.Color = &cyan
	cfg.Code.BackgroundColor = nil
	cfg.CodeBlock.Theme = codeTheme()
	cfg.CodeBlock.Chroma = nil
	cfg.DefinitionList.Indent = &indent
	return cfg
}

// codeTheme returns CodeTheme when chroma knows it, otherwise chroma's
// fallback style.
func codeTheme() string {
	if s := chromastyles.Get(CodeTheme); s != chromastyles.Fallback {
		return s.Name
	}
	return chromastyles.Fallback.Name
}
