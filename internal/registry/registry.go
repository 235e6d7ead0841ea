// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"errors"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/dispatch/internal/command"
)

// =============================================================================
// DESCRIPTOR
// =============================================================================

// Descriptor is the registry's view of a loaded command.
type Descriptor struct {
	Name              string
	Aliases           []string
	Options           []command.OptionInfo
	DefaultProperties []string
	Command           command.Command
	Key               string
}

// Names returns the canonical name followed by the aliases.
func (d *Descriptor) Names() []string {
	return append([]string{d.Name}, d.Aliases...)
}

// Option returns the option matching key by long or short form.
func (d *Descriptor) Option(key string) (command.OptionInfo, bool) {
	for _, o := range d.Options {
		if o.Matches(key) {
			return o, true
		}
	}
	return command.OptionInfo{}, false
}

func newDescriptor(key string, cmd command.Command) *Descriptor {
	specs := append(append([]command.Option(nil), cmd.Options()...), command.GlobalOptions()...)
	options := make([]command.OptionInfo, 0, len(specs))
	for _, spec := range specs {
		options = append(options, command.ParseOption(spec))
	}
	return &Descriptor{
		Name:              cmd.Name(),
		Aliases:           cmd.Alias(),
		Options:           options,
		DefaultProperties: cmd.DefaultProperties(),
		Command:           cmd,
		Key:               key,
	}
}

// =============================================================================
// REGISTRY
// =============================================================================

var errNotACommand = errors.New("factory returned no command")

// Registry holds the descriptors loaded for this process. It is populated
// once per invocation and only read afterwards.
type Registry struct {
	manifest    *Manifest
	log         logrus.FieldLogger
	descriptors []*Descriptor
	loaded      map[string]bool
	scanned     bool
}

// New creates a registry over m. A nil log discards trace output.
func New(m *Manifest, log logrus.FieldLogger) *Registry {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Registry{
		manifest: m,
		log:      log,
		loaded:   make(map[string]bool),
	}
}

// LoadFromWords loads the command the words name, or every command when
// the words cannot be resolved to a single one.
func (r *Registry) LoadFromWords(words []string) {
	if len(words) == 0 || contains(words, "completion") {
		r.LoadAll()
		return
	}

	key := PathKey(words)
	factory, ok := r.manifest.Lookup(key)
	if !ok {
		r.log.WithField("key", key).Debug("no command at path, scanning all commands")
		r.LoadAll()
		return
	}
	if err := r.load(key, factory); err != nil {
		r.log.WithFields(logrus.Fields{"key": key, "error": err}).Debug("command failed to load, scanning all commands")
		r.LoadAll()
	}
}

// LoadAll instantiates every command in the manifest. Commands that fail
// to load are skipped.
func (r *Registry) LoadAll() {
	if r.scanned {
		return
	}
	r.scanned = true
	for _, key := range r.manifest.Keys() {
		if r.loaded[key] {
			continue
		}
		factory, _ := r.manifest.Lookup(key)
		if err := r.load(key, factory); err != nil {
			r.log.WithFields(logrus.Fields{"key": key, "error": err}).Debug("skipping command")
		}
	}
}

func (r *Registry) load(key string, factory Factory) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.New("command factory panicked")
			r.log.WithFields(logrus.Fields{"key": key, "panic": rec}).Debug("recovered command factory")
		}
	}()

	cmd, err := factory()
	if err != nil {
		return err
	}
	if cmd == nil {
		return errNotACommand
	}
	r.loaded[key] = true
	r.descriptors = append(r.descriptors, newDescriptor(key, cmd))
	return nil
}

// Find returns the descriptor whose name or alias equals name.
func (r *Registry) Find(name string) (*Descriptor, bool) {
	if name == "" {
		return nil, false
	}
	for _, d := range r.descriptors {
		if d.Name == name || contains(d.Aliases, name) {
			return d, true
		}
	}
	return nil, false
}

// Commands returns the loaded descriptors sorted by name.
func (r *Registry) Commands() []*Descriptor {
	out := append([]*Descriptor(nil), r.descriptors...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Scanned reports whether a full scan has run.
func (r *Registry) Scanned() bool {
	return r.scanned
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
