// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// engine.go - Argument resolution and the validation pipeline.
//
// Run is the single entry point. It resolves the command named by the
// positional words, decides whether help is wanted, validates options in a
// fixed order and hands the result to ExecuteAttached. Every failure ends
// in closeWithError, which returns the exit code instead of exiting.

package cli

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/dispatch/internal/argparse"
	"github.com/jeranaias/dispatch/internal/command"
	"github.com/jeranaias/dispatch/internal/config"
	"github.com/jeranaias/dispatch/internal/docs"
	"github.com/jeranaias/dispatch/internal/output"
	"github.com/jeranaias/dispatch/internal/registry"
)

// Settings is the read side of the settings store.
type Settings interface {
	Get(name string) (any, bool)
}

// Config wires an Engine to its collaborators. Only Manifest is required.
type Config struct {
	Program     string
	Version     string
	Description string

	Manifest *registry.Manifest
	Settings Settings
	// Docs renders command help pages. Nil shows no command help.
	Docs docs.Renderer

	Stdout io.Writer
	Stderr io.Writer

	// Trace receives diagnostic entries. Nil discards them.
	Trace    *logrus.Logger
	Prompter command.Prompter
}

// Engine dispatches one invocation.
type Engine struct {
	cfg   Config
	exec  *ExecutionContext
	trace *logrus.Logger
	// words are the positional words of the untargeted parse.
	words []string
}

// New creates an engine, filling unset collaborators with defaults.
func New(cfg Config) *Engine {
	if cfg.Program == "" {
		cfg.Program = ProgramTitle
	}
	if cfg.Version == "" {
		cfg.Version = Version
	}
	if cfg.Manifest == nil {
		cfg.Manifest = registry.NewManifest()
	}
	if cfg.Settings == nil {
		cfg.Settings = noSettings{}
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Prompter == nil {
		cfg.Prompter = NewLinerPrompter(cfg.Stdout)
	}

	trace := cfg.Trace
	if trace == nil {
		trace = discardLogger()
	}

	e := &Engine{cfg: cfg, trace: trace, exec: newExecutionContext()}
	e.exec.Registry = registry.New(cfg.Manifest, e.traceEntry())
	return e
}

// Context returns the execution context of this engine.
func (e *Engine) Context() *ExecutionContext {
	return e.exec
}

// Run dispatches raw and returns the process exit code.
func (e *Engine) Run(ctx context.Context, raw []string) int {
	args := append([]string(nil), raw...)

	// "help <words>" shows help for <words> while still resolving them
	showHelp := false
	if len(args) > 0 && args[0] == "help" {
		showHelp = true
		args = args[1:]
	}

	untargeted := argparse.Parse(args, argparse.Config{})
	e.words = untargeted.Positional()
	name := strings.Join(e.words, " ")

	e.exec.Registry.LoadFromWords(e.words)
	e.exec.setCurrentCommandName(name)

	matched, found := e.exec.Registry.Find(name)
	if found {
		e.exec.setMatched(matched)
	}
	e.traceEntry().WithFields(logrus.Fields{
		"command": name,
		"matched": found,
		"scanned": e.exec.Registry.Scanned(),
	}).Debug("resolved command")

	if !found || showHelp || truthy(untargeted["h"]) || truthy(untargeted["help"]) {
		return e.printHelp(ExitSuccess)
	}

	opts := argparse.Parse(args, parseConfig(matched))
	if opts.Bool(command.OptDebug) {
		e.trace.SetLevel(logrus.DebugLevel)
	}

	prepared, err := e.prepare(ctx, matched, opts)
	if err != nil {
		return e.closeWithError(err, showsHelp(err))
	}

	if err := e.ExecuteAttached(ctx, matched.Command, prepared); err != nil {
		return e.closeWithError(err, false)
	}
	return ExitSuccess
}

// parseConfig builds the targeted parse configuration for d: short forms
// alias their long forms and the command's type hints apply.
func parseConfig(d *registry.Descriptor) argparse.Config {
	types := d.Command.Types()
	global := command.GlobalTypes()

	cfg := argparse.Config{
		Alias:   make(map[string]string),
		String:  append(append([]string(nil), types.String...), global.String...),
		Boolean: append(append([]string(nil), types.Boolean...), global.Boolean...),
	}
	for _, o := range d.Options {
		if o.Short != "" && o.Long != "" {
			cfg.Alias[o.Short] = o.Long
		}
	}
	return cfg
}

// =============================================================================
// VALIDATION PIPELINE
// =============================================================================

// prepare runs the ordered checks on opts and returns the options handed
// to the action.
func (e *Engine) prepare(ctx context.Context, d *registry.Descriptor, opts argparse.Options) (argparse.Options, error) {
	cmd := d.Command

	if !cmd.AllowUnknownOptions() {
		for _, key := range opts.Keys() {
			if _, ok := d.Option(key); !ok {
				return nil, &InvalidOptionError{
					Option:     key,
					Suggestion: suggestOption(key, optionNames(d)),
				}
			}
		}
	}

	for _, o := range d.Options {
		if o.Required && !opts.Has(o.Name) {
			return nil, &MissingOptionError{Option: o.Name}
		}
	}

	prepared := removeShortOptions(opts)

	if err := loadOptionValuesFromFiles(prepared); err != nil {
		return nil, err
	}

	if err := cmd.ProcessOptions(ctx, prepared); err != nil {
		return nil, err
	}

	if err := cmd.Validate(prepared); err != nil {
		return nil, &ValidationError{Command: d.Name, Err: err}
	}

	if query := prepared.String(command.OptQuery); query != "" {
		if err := output.CompileQuery(query); err != nil {
			return nil, err
		}
	}

	if !prepared.Has(command.OptOutput) {
		if v, ok := e.cfg.Settings.Get(config.SettingOutput); ok {
			prepared[command.OptOutput] = v
		}
	}

	return prepared, nil
}

// removeShortOptions drops single character keys. Positionals stay.
func removeShortOptions(opts argparse.Options) argparse.Options {
	out := opts.Clone()
	for key := range out {
		if key != argparse.PositionalKey && len(key) == 1 {
			delete(out, key)
		}
	}
	return out
}

// loadOptionValuesFromFiles replaces "@path" values with the content of
// path when that file exists. Missing files leave the value untouched.
func loadOptionValuesFromFiles(opts argparse.Options) error {
	for _, key := range opts.Keys() {
		value, ok := opts[key].(string)
		if !ok || !strings.HasPrefix(value, "@") {
			continue
		}
		path := value[1:]
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return &OptionFileError{Option: key, Path: path, Err: err}
		}
		opts[key] = string(data)
	}
	return nil
}

func optionNames(d *registry.Descriptor) []string {
	names := make([]string, 0, len(d.Options))
	for _, o := range d.Options {
		names = append(names, o.Name)
	}
	return names
}

// =============================================================================
// ERROR POLICY
// =============================================================================

// closeWithError prints err and returns its exit code, showing help first
// when withHelp is set and the showHelpOnFailure setting allows it.
func (e *Engine) closeWithError(err error, withHelp bool) int {
	code := ExitCode(err)
	e.writeLine(e.errorWriter(), RenderConditional(ErrorStyle, "Error: "+errorMessage(err)))

	e.traceEntry().WithFields(logrus.Fields{
		"command":   e.exec.CurrentCommandName(),
		"exit_code": code,
	}).WithError(err).Debug("command failed")

	if withHelp && e.settingBool(config.SettingShowHelpOnFailure, true) {
		e.writeLine(e.cfg.Stdout, "")
		return e.printHelp(code)
	}
	return code
}

// errorWriter is the diagnostic channel selected by the errorOutput setting.
func (e *Engine) errorWriter() io.Writer {
	if e.settingString(config.SettingErrorOutput, "stderr") == "stdout" {
		return e.cfg.Stdout
	}
	return e.cfg.Stderr
}

func (e *Engine) writeLine(w io.Writer, s string) {
	_, _ = io.WriteString(w, s+"\n")
}

// =============================================================================
// SETTINGS AND TRACE HELPERS
// =============================================================================

func (e *Engine) settingString(name, def string) string {
	v, ok := e.cfg.Settings.Get(name)
	if !ok {
		return def
	}
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func (e *Engine) settingBool(name string, def bool) bool {
	v, ok := e.cfg.Settings.Get(name)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case *bool:
		if t != nil {
			return *t
		}
	case string:
		if b, err := strconv.ParseBool(t); err == nil {
			return b
		}
	}
	return def
}

func (e *Engine) traceEntry() *logrus.Entry {
	return e.trace.WithField("run_id", e.exec.RunID)
}

func (e *Engine) traceExecution(mode, name, parent string, start time.Time, err error) {
	entry := e.traceEntry().WithFields(logrus.Fields{
		"command":  name,
		"parent":   parent,
		"mode":     mode,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Info("command failed")
		return
	}
	entry.Info("command finished")
}

// truthy reports whether an untargeted parse value counts as set.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	}
	return true
}

type noSettings struct{}

func (noSettings) Get(string) (any, bool) { return nil, false }
