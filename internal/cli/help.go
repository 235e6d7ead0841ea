// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// help.go - Command help and the general command listing.

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/dispatch/internal/docs"
	"github.com/jeranaias/dispatch/internal/registry"
	"github.com/jeranaias/dispatch/internal/util"
)

// printHelp shows help for the matched command, or the banner and command
// listing when nothing matched, and returns code.
func (e *Engine) printHelp(code int) int {
	if d := e.exec.Matched(); d != nil {
		e.printCommandHelp(d)
		return code
	}

	out := e.cfg.Stdout
	e.writeLine(out, "")
	e.writeLine(out, RenderConditional(TitleStyle, fmt.Sprintf("%s v%s", e.cfg.Program, e.cfg.Version)))
	e.writeLine(out, e.cfg.Description)
	e.writeLine(out, "")
	e.printAvailableCommands()
	return code
}

// printCommandHelp renders the documentation page of d. A missing page
// prints nothing.
func (e *Engine) printCommandHelp(d *registry.Descriptor) {
	if e.cfg.Docs == nil {
		return
	}

	page := docs.Path(strings.Fields(d.Name))
	rendered, err := e.cfg.Docs.Render(page)
	if err != nil {
		entry := e.traceEntry().WithFields(logrus.Fields{"command": d.Name, "page": page})
		if errors.Is(err, fs.ErrNotExist) {
			entry.Debug("no help page")
		} else {
			entry.WithError(err).Warn("failed to render help page")
		}
		return
	}

	e.writeLine(e.cfg.Stdout, "")
	e.writeLine(e.cfg.Stdout, rendered)
}

// listing is the result of matching commands against a group prefix.
type listing struct {
	commands map[string]*registry.Descriptor
	groups   map[string]int
}

func (l listing) empty() bool {
	return len(l.commands) == 0 && len(l.groups) == 0
}

// collectListing splits names starting with group into commands directly
// inside the group and counts of commands in each subgroup.
func collectListing(descriptors []*registry.Descriptor, group string) listing {
	l := listing{
		commands: make(map[string]*registry.Descriptor),
		groups:   make(map[string]int),
	}

	add := func(name string, d *registry.Descriptor) {
		pos := indexFrom(name, ' ', len(group)+1)
		if pos == -1 {
			l.commands[name] = d
			return
		}
		l.groups[name[:pos]]++
	}

	for _, d := range descriptors {
		for _, name := range d.Names() {
			if strings.HasPrefix(name, group) {
				add(name, d)
			}
		}
	}
	return l
}

// printAvailableCommands lists the commands and groups under the typed
// words, falling back to the top level when nothing matches them.
func (e *Engine) printAvailableCommands() {
	descriptors := e.exec.Registry.Commands()

	group := strings.Join(e.words, " ")
	if group != "" {
		group += " "
	}

	l := collectListing(descriptors, group)
	if l.empty() {
		l = collectListing(descriptors, "")
	}

	out := e.cfg.Stdout

	if len(l.commands) > 0 {
		names := sortedKeys(l.commands)
		width := util.MaxWidth(names) + 10

		e.writeLine(out, "Commands:")
		e.writeLine(out, "")
		for _, name := range names {
			label := util.PadRight(name+" [options]", width)
			e.writeLine(out, "  "+label+"  "+l.commands[name].Command.Description())
		}
	}

	if len(l.groups) > 0 {
		if len(l.commands) > 0 {
			e.writeLine(out, "")
		}

		names := sortedKeys(l.groups)
		width := util.MaxWidth(names) + 2

		e.writeLine(out, "Commands groups:")
		e.writeLine(out, "")
		for _, name := range names {
			count := l.groups[name]
			plural := "s"
			if count == 1 {
				plural = ""
			}
			e.writeLine(out, fmt.Sprintf("  %s  %d command%s", util.PadRight(name+" *", width), count, plural))
		}
	}

	e.writeLine(out, "")
}

// indexFrom returns the index of c in s at or after from, or -1.
func indexFrom(s string, c byte, from int) int {
	if from >= len(s) {
		return -1
	}
	if i := strings.IndexByte(s[from:], c); i >= 0 {
		return from + i
	}
	return -1
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
