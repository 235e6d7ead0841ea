// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package argparse

import (
	"fmt"
	"sort"
	"strconv"
)

// PositionalKey is the reserved key holding positional words.
const PositionalKey = "_"

// Options is the result of parsing. Values are string, float64, bool or
// []any when a key was given more than once.
type Options map[string]any

// Has reports whether key was set.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Positional returns the positional words in order.
func (o Options) Positional() []string {
	if v, ok := o[PositionalKey].([]string); ok {
		return v
	}
	return nil
}

// String returns the value of key rendered as a string. Repeated keys
// yield the last value.
func (o Options) String(key string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return ""
	}
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return ""
		}
		v = list[len(list)-1]
	}
	return FormatValue(v)
}

// Bool returns the value of key as a boolean. Strings "true", "1" and
// "yes" count as true.
func (o Options) Bool(key string) bool {
	switch v := o[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b || v == "yes"
	case float64:
		return v != 0
	}
	return false
}

// Strings returns every value given for key.
func (o Options) Strings(key string) []string {
	v, ok := o[key]
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return []string{FormatValue(v)}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, FormatValue(item))
	}
	return out
}

// Keys returns the option keys in sorted order, excluding positionals.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		if k == PositionalKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy with its own positional slice.
func (o Options) Clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	if pos := o.Positional(); pos != nil {
		out[PositionalKey] = append([]string(nil), pos...)
	}
	return out
}

// FormatValue renders a parsed value the way it was most likely typed.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
