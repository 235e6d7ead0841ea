// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for the dispatcher.
//
// STANDARDIZED PATTERN:
//   - Every stage returns errors instead of printing them
//   - Engine.closeWithError is the only place errors are displayed
//   - Exit codes come from ExitCode, never from ad-hoc checks
//
// ERROR HANDLING: Errors must not be silently ignored. Command load
// failures are the one exception and are only traced.

package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/dispatch/internal/command"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError is used for every failure without an explicit code
	ExitGeneralError = 1
)

// =============================================================================
// ERROR TYPES FOR STRUCTURED ERROR HANDLING
// =============================================================================

// InvalidOptionError reports an option the matched command does not declare.
type InvalidOptionError struct {
	Option     string
	Suggestion string // closest declared option, if any
}

func (e *InvalidOptionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("Invalid option: '%s'. Did you mean '%s'?\n", e.Option, e.Suggestion)
	}
	return fmt.Sprintf("Invalid option: '%s'\n", e.Option)
}

// MissingOptionError reports a required option that was not given.
type MissingOptionError struct {
	Option string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("Required option %s not specified", e.Option)
}

// ValidationError wraps a command's rejection of its options.
type ValidationError struct {
	Command string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// OptionFileError reports an @file option value that exists but cannot be read.
type OptionFileError struct {
	Option string
	Path   string
	Err    error
}

func (e *OptionFileError) Error() string {
	return fmt.Sprintf("failed to read %s for option %s: %v", e.Path, e.Option, e.Err)
}

func (e *OptionFileError) Unwrap() error {
	return e.Err
}

// CapturedError is returned by a failed captured execution. Stderr holds
// what the command wrote to its diagnostic channel before failing.
type CapturedError struct {
	Err    error
	Stderr string
}

func (e *CapturedError) Error() string {
	return e.Err.Error()
}

func (e *CapturedError) Unwrap() error {
	return e.Err
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// ExitCode maps err to a process exit code. Command errors carrying a code
// keep it; everything else exits with ExitGeneralError.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cmdErr *command.Error
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode()
	}
	return ExitGeneralError
}

// errorMessage is the text shown after "Error: ".
func errorMessage(err error) string {
	var cmdErr *command.Error
	if errors.As(err, &cmdErr) {
		return cmdErr.Message
	}
	return err.Error()
}

// showsHelp reports whether err is a usage error that may be followed by help.
func showsHelp(err error) bool {
	var invalid *InvalidOptionError
	var missing *MissingOptionError
	var validation *ValidationError
	return errors.As(err, &invalid) || errors.As(err, &missing) || errors.As(err, &validation)
}
