// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"regexp"
	"strings"
)

// Option is a raw option declaration such as "-i, --id <id>". Angle
// brackets mark the option as required, square brackets as optional.
type Option struct {
	Spec         string
	Autocomplete []string
}

// OptionInfo is the parsed form of an Option.
type OptionInfo struct {
	Name         string   `json:"name"`
	Short        string   `json:"short,omitempty"`
	Long         string   `json:"long,omitempty"`
	Required     bool     `json:"required"`
	Autocomplete []string `json:"autocomplete,omitempty"`
}

var specSeparators = regexp.MustCompile(`[ ,|]+`)

// ParseOption classifies the tokens of an option spec.
func ParseOption(o Option) OptionInfo {
	info := OptionInfo{
		Required:     strings.Contains(o.Spec, "<"),
		Autocomplete: o.Autocomplete,
	}
	for _, token := range specSeparators.Split(o.Spec, -1) {
		switch {
		case strings.HasPrefix(token, "--"):
			info.Long = token[2:]
		case strings.HasPrefix(token, "-"):
			info.Short = token[1:]
		}
	}
	info.Name = info.Long
	if info.Name == "" {
		info.Name = info.Short
	}
	return info
}

// Matches reports whether key is either form of the option.
func (i OptionInfo) Matches(key string) bool {
	return key != "" && (key == i.Long || key == i.Short)
}

// Global option names shared by every command.
const (
	OptQuery   = "query"
	OptOutput  = "output"
	OptVerbose = "verbose"
	OptDebug   = "debug"
)

// GlobalOptions returns the options every command accepts.
func GlobalOptions() []Option {
	return []Option{
		{Spec: "--query [query]"},
		{Spec: "-o, --output [output]", Autocomplete: []string{"json", "text"}},
		{Spec: "--verbose"},
		{Spec: "--debug"},
	}
}

// GlobalTypes returns parsing hints for the global options.
func GlobalTypes() Types {
	return Types{
		String:  []string{OptQuery, OptOutput},
		Boolean: []string{OptVerbose, OptDebug},
	}
}
