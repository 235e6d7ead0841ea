// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jeranaias/dispatch/internal/command"
)

// commandPattern selects the manifest keys a full scan instantiates.
const commandPattern = "**/commands/**"

// Factory constructs a command. A nil command with a nil error is treated
// as "not a command".
type Factory func() (command.Command, error)

// Manifest maps path-convention keys to command factories.
type Manifest struct {
	factories map[string]Factory
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{factories: make(map[string]Factory)}
}

// Add registers f under key. It panics if key already exists.
func (m *Manifest) Add(key string, f Factory) {
	if _, exists := m.factories[key]; exists {
		panic(fmt.Sprintf("command %s already registered", key))
	}
	m.factories[key] = f
}

// Lookup returns the factory for key and whether it exists.
func (m *Manifest) Lookup(key string) (Factory, bool) {
	f, ok := m.factories[key]
	return f, ok
}

// Keys returns the keys that hold commands, sorted.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, len(m.factories))
	for k := range m.factories {
		if ok, err := doublestar.Match(commandPattern, k); err == nil && ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered factories.
func (m *Manifest) Len() int {
	return len(m.factories)
}

// PathKey maps invocation words to their manifest key. It returns "" for
// no words.
func PathKey(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return path.Join("commands", words[0])
	case 2:
		return path.Join(words[0], "commands", strings.Join(words, "-"))
	default:
		return path.Join(words[0], "commands", words[1], strings.Join(words[1:], "-"))
	}
}

// KeyFor returns the manifest key for a space separated command name.
func KeyFor(name string) string {
	return PathKey(strings.Fields(name))
}
