// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Object is a JSON object that remembers the order of its keys.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores v under key, appending key if it is new.
func (o *Object) Set(key string, v any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// MarshalJSON writes the keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshal(o.values[k], "")
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// normalize converts any JSON-encodable value into nil, bool, string,
// json.Number, []any or *Object.
func normalize(v any) (any, error) {
	switch v.(type) {
	case nil, bool, string, json.Number, *Object:
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("value cannot be rendered: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := NewObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(keyTok.(string), val)
		}
		_, err = dec.Token()
		return obj, err
	case '[':
		list := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		_, err = dec.Token()
		return list, err
	}
	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}

// toPlain converts a normalized value into the map/float64 form the query
// engine understands.
func toPlain(v any) any {
	switch t := v.(type) {
	case *Object:
		m := make(map[string]any, t.Len())
		for _, k := range t.keys {
			m[k] = toPlain(t.values[k])
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = toPlain(item)
		}
		return out
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	}
	return v
}

// fromPlain converts a query result back to the normalized form. Object
// keys follow their position in order; unknown keys sort after them.
func fromPlain(v any, order map[string]int) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			pi, iok := order[keys[i]]
			pj, jok := order[keys[j]]
			switch {
			case iok && jok:
				return pi < pj
			case iok != jok:
				return iok
			}
			return keys[i] < keys[j]
		})
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, fromPlain(t[k], order))
		}
		return obj
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = fromPlain(item, order)
		}
		return out
	case float64:
		return json.Number(strconv.FormatFloat(t, 'f', -1, 64))
	case int:
		return json.Number(strconv.Itoa(t))
	}
	return v
}

// keyOrder records the first position each object key appears at.
func keyOrder(v any, order map[string]int) map[string]int {
	if order == nil {
		order = make(map[string]int)
	}
	switch t := v.(type) {
	case *Object:
		for _, k := range t.keys {
			if _, seen := order[k]; !seen {
				order[k] = len(order)
			}
		}
		for _, k := range t.keys {
			keyOrder(t.values[k], order)
		}
	case []any:
		for _, item := range t {
			keyOrder(item, order)
		}
	}
	return order
}

// marshal encodes v without HTML escaping, indented when indent is set.
func marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// scalarString renders a value the way it reads in plain text.
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = scalarString(item)
		}
		return strings.Join(parts, ",")
	}
	return compact(v)
}

func compact(v any) string {
	data, err := marshal(v, "")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
