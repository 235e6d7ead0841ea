// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// execute.go - Attached and captured command execution.
//
// Attached execution streams what a command logs to the terminal. Captured
// execution collects it into buffers so one command can run another and
// inspect the result. Both make the running command current for the
// duration of its action and restore the previous name afterwards.

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jeranaias/dispatch/internal/argparse"
	"github.com/jeranaias/dispatch/internal/command"
	"github.com/jeranaias/dispatch/internal/output"
)

// ExecuteAttached runs cmd with opts, writing to the engine's streams.
func (e *Engine) ExecuteAttached(ctx context.Context, cmd command.Command, opts argparse.Options) error {
	log := &streamLogger{
		format: e.formatOptions(opts),
		stdout: e.cfg.Stdout,
		stderr: e.errorWriter(),
	}

	debug := opts.Bool(command.OptDebug)
	if debug {
		log.LogToStderr(RenderConditional(DimStyle, debugEcho(cmd, opts)))
	}

	err := e.runAction(ctx, "attached", cmd, log, opts)
	if err == nil {
		err = log.err
	}
	if err != nil {
		return err
	}

	if debug || opts.Bool(command.OptVerbose) {
		log.LogToStderr(RenderConditional(SuccessStyle, "DONE"))
	}
	return nil
}

// ExecuteCaptured runs cmd with opts and returns what it logged. A failure
// is returned as a *CapturedError carrying the captured diagnostics.
func (e *Engine) ExecuteCaptured(ctx context.Context, cmd command.Command, opts argparse.Options) (command.Output, error) {
	log := &capturedLogger{format: e.formatOptions(opts)}

	if opts.Bool(command.OptDebug) {
		log.LogToStderr(debugEcho(cmd, opts))
	}

	err := e.runAction(ctx, "captured", cmd, log, opts)
	if err == nil {
		err = log.err
	}

	stderr := strings.Join(log.stderr, output.LineSeparator)
	if err != nil {
		return command.Output{}, &CapturedError{Err: err, Stderr: stderr}
	}
	return command.Output{
		Stdout: strings.Join(log.stdout, output.LineSeparator),
		Stderr: stderr,
	}, nil
}

// runAction makes cmd current, runs its action and restores the parent
// name whether or not the action fails.
func (e *Engine) runAction(ctx context.Context, mode string, cmd command.Command, log command.Logger, opts argparse.Options) error {
	restore, parent := e.exec.enter(cmd.Name())
	defer restore()

	start := time.Now()
	err := cmd.Action(e.actionContext(ctx), log, opts)
	e.traceExecution(mode, cmd.Name(), parent, start, err)
	return err
}

// actionContext exposes nested execution, the command catalog and
// confirmation prompts to a command's action.
func (e *Engine) actionContext(ctx context.Context) context.Context {
	ctx = command.WithRunner(ctx, e)
	ctx = command.WithCatalog(ctx, e)
	return command.WithPrompter(ctx, e.cfg.Prompter)
}

// formatOptions shapes output for opts using the default properties of
// the command matched from the arguments, also for nested executions.
func (e *Engine) formatOptions(opts argparse.Options) output.Options {
	o := output.Options{
		Output: opts.String(command.OptOutput),
		Query:  opts.String(command.OptQuery),
		Help:   opts.Bool("help"),
	}
	if d := e.exec.Matched(); d != nil {
		o.DefaultProperties = d.DefaultProperties
	}
	return o
}

// Commands lists every registered command, loading all of them first.
func (e *Engine) Commands() []command.Info {
	e.exec.Registry.LoadAll()
	descriptors := e.exec.Registry.Commands()
	out := make([]command.Info, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, command.Info{
			Name:        d.Name,
			Aliases:     d.Aliases,
			Description: d.Command.Description(),
			Options:     d.Options,
		})
	}
	return out
}

func debugEcho(cmd command.Command, opts argparse.Options) string {
	data, err := json.Marshal(map[string]any{"options": opts})
	if err != nil {
		data = []byte("{}")
	}
	return fmt.Sprintf("Executing command %s with options %s", cmd.Name(), data)
}

// =============================================================================
// LOGGERS
// =============================================================================

// streamLogger writes formatted output to stdout and diagnostics to the
// configured error stream.
type streamLogger struct {
	format output.Options
	stdout io.Writer
	stderr io.Writer
	// err is the first formatting failure.
	err error
}

func (l *streamLogger) Log(v any) {
	if v == nil {
		return
	}
	s, err := output.Format(v, l.format)
	if err != nil {
		if l.err == nil {
			l.err = err
		}
		return
	}
	_, _ = io.WriteString(l.stdout, s+"\n")
}

func (l *streamLogger) LogRaw(v any) {
	_, _ = io.WriteString(l.stdout, rawString(v)+"\n")
}

func (l *streamLogger) LogToStderr(v any) {
	_, _ = io.WriteString(l.stderr, rawString(v)+"\n")
}

// capturedLogger collects output. Both Log and LogRaw are formatted.
type capturedLogger struct {
	format output.Options
	stdout []string
	stderr []string
	err    error
}

func (l *capturedLogger) Log(v any) {
	if v == nil {
		return
	}
	s, err := output.Format(v, l.format)
	if err != nil {
		if l.err == nil {
			l.err = err
		}
		return
	}
	l.stdout = append(l.stdout, s)
}

func (l *capturedLogger) LogRaw(v any) {
	l.Log(v)
}

func (l *capturedLogger) LogToStderr(v any) {
	l.stderr = append(l.stderr, rawString(v))
}

// rawString renders v without output shaping.
func rawString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
