// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package output

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/dispatch/internal/command"
	"github.com/jeranaias/dispatch/internal/util"
)

// Output modes with built-in renderers.
const (
	ModeJSON = "json"
	ModeText = "text"
)

// LineSeparator joins values that render one per line.
const LineSeparator = "\n"

// ErrorStyle renders "Error:" lines, both logged command errors and the
// dispatcher's own failures.
var ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

// Options controls how a value is rendered.
type Options struct {
	// Output is the requested mode. Empty means text.
	Output string
	// Query is a JMESPath expression applied before shaping.
	Query string
	// Help disables the query while help is being shown.
	Help bool
	// DefaultProperties are the fields kept in text mode.
	DefaultProperties []string
}

func (o Options) textMode() bool {
	return o.Output == "" || o.Output == ModeText
}

// element kinds used to pick a shape
const (
	kindNone   = ""
	kindObject = "object"
	kindArray  = "array"
	kindScalar = "scalar"
)

// Format renders v. A nil v renders as the empty string.
func Format(v any, opts Options) (string, error) {
	if v == nil {
		return "", nil
	}
	if t, ok := v.(time.Time); ok {
		return t.String(), nil
	}

	var cmdErr *command.Error
	if err, ok := v.(error); ok {
		if !errors.As(err, &cmdErr) {
			v = err.Error()
		}
	}

	value, err := normalize(v)
	if err != nil {
		return "", err
	}

	// The representative object is taken before the query so a query that
	// reshapes objects can be told apart from one that only filters them.
	originalProps := propertyNames(representative(value))

	queried := opts.Query != "" && !opts.Help
	if queried {
		if value, err = applyQuery(opts.Query, value); err != nil {
			return "", err
		}
	}

	if opts.Output == ModeJSON {
		data, err := marshal(value, "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if cmdErr != nil && !queried {
		return ErrorStyle.Render("Error: " + cmdErr.Message), nil
	}

	items, kind := asList(value)
	if kind != kindObject {
		lines := make([]string, len(items))
		for i, item := range items {
			lines[i] = scalarString(item)
		}
		return strings.Join(lines, LineSeparator), nil
	}

	if opts.textMode() && opts.DefaultProperties != nil {
		if sameProperties(originalProps, propertyNames(items[0])) {
			items = project(items, opts.DefaultProperties)
		}
	}

	if len(items) == 1 {
		return keyValueBlock(items[0]), nil
	}
	return grid(items), nil
}

// representative returns the object whose shape stands for v.
func representative(v any) any {
	list, ok := v.([]any)
	if !ok {
		return v
	}
	for _, item := range list {
		if item != nil {
			return item
		}
	}
	return nil
}

func propertyNames(v any) []string {
	if obj, ok := v.(*Object); ok {
		return obj.Keys()
	}
	return nil
}

func sameProperties(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// asList wraps v in a list and reports the kind of its first defined
// element. Any nested list makes the kind array.
func asList(v any) ([]any, string) {
	list, ok := v.([]any)
	if !ok {
		return []any{v}, kindOf(v)
	}
	for _, item := range list {
		if _, nested := item.([]any); nested {
			return list, kindArray
		}
		if item != nil {
			return list, kindOf(item)
		}
	}
	return list, kindNone
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return kindNone
	case *Object:
		return kindObject
	case []any:
		return kindArray
	}
	return kindScalar
}

// project keeps only the default properties of each object, unwrapping a
// "value" list envelope first.
func project(items []any, props []string) []any {
	if first, ok := items[0].(*Object); ok {
		if inner, ok := first.values["value"].([]any); ok {
			items = inner
		}
	}

	keep := make(map[string]bool, len(props))
	for _, p := range props {
		keep[p] = true
	}

	out := make([]any, len(items))
	for i, item := range items {
		obj, ok := item.(*Object)
		if !ok {
			out[i] = item
			continue
		}
		filtered := NewObject()
		for _, k := range obj.keys {
			if keep[k] {
				filtered.Set(k, obj.values[k])
			}
		}
		out[i] = filtered
	}
	return out
}

// keyValueBlock renders one object as sorted, aligned "key: value" lines.
func keyValueBlock(item any) string {
	obj, ok := item.(*Object)
	if !ok {
		return scalarString(item) + "\n"
	}

	keys := obj.Keys()
	sort.Strings(keys)
	width := util.MaxWidth(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(util.PadRight(k, width))
		b.WriteString(": ")
		b.WriteString(inlineValue(obj.values[k]))
	}
	b.WriteString("\n")
	return b.String()
}

func inlineValue(v any) string {
	switch v.(type) {
	case nil, *Object, []any:
		return compact(v)
	}
	return scalarString(v)
}

// grid renders objects as a table with one column per property. Values
// that are not objects are skipped.
func grid(items []any) string {
	var columns []string
	seen := make(map[string]bool)
	var rows []*Object
	for _, item := range items {
		obj, ok := item.(*Object)
		if !ok {
			continue
		}
		rows = append(rows, obj)
		for _, k := range obj.keys {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	if len(rows) == 0 {
		return ""
	}

	cells := make([][]string, len(rows))
	widths := make([]int, len(columns))
	for c, col := range columns {
		widths[c] = util.StringWidth(col)
	}
	for r, row := range rows {
		cells[r] = make([]string, len(columns))
		for c, col := range columns {
			v, ok := row.values[col]
			if !ok || v == nil {
				continue
			}
			cell := gridCell(v)
			cells[r][c] = cell
			if w := util.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(values []string) {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = util.PadRight(v, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		b.WriteString("\n")
	}

	writeRow(columns)
	dashes := make([]string, len(columns))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}
	writeRow(dashes)
	for _, row := range cells {
		writeRow(row)
	}
	return b.String()
}

func gridCell(v any) string {
	switch v.(type) {
	case *Object, []any:
		return compact(v)
	}
	return strings.ReplaceAll(scalarString(v), "\n", " ")
}
