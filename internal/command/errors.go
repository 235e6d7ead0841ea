// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import "fmt"

// Error is a failure reported by a command's action. Code is the process
// exit code; zero means the default of 1.
type Error struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// ExitCode returns Code, or 1 when unset.
func (e *Error) ExitCode() int {
	if e.Code > 0 {
		return e.Code
	}
	return 1
}

// NewError creates an Error with the default exit code.
func NewError(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// NewErrorWithCode creates an Error carrying an explicit exit code.
func NewErrorWithCode(code int, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Code: code}
}
