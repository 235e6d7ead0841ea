// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package output

import (
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// QueryError reports a JMESPath expression that failed to compile or run.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid query %q: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// CompileQuery checks that expr is a valid JMESPath expression.
func CompileQuery(expr string) error {
	if _, err := jmespath.Compile(expr); err != nil {
		return &QueryError{Query: expr, Err: err}
	}
	return nil
}

// applyQuery runs expr against a normalized value and returns the result
// in normalized form.
func applyQuery(expr string, v any) (any, error) {
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, &QueryError{Query: expr, Err: err}
	}
	result, err := compiled.Search(toPlain(v))
	if err != nil {
		return nil, &QueryError{Query: expr, Err: err}
	}
	return fromPlain(result, keyOrder(v, nil)), nil
}
