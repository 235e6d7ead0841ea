// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package argparse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Config carries typing hints for a targeted parse. The zero value parses
// without hints.
type Config struct {
	// Alias maps a short name to its long name. Aliases are bidirectional:
	// setting either one sets both.
	Alias map[string]string
	// String lists keys whose values are never coerced to numbers.
	String []string
	// Boolean lists keys that never consume the next word and default to false.
	Boolean []string
}

var (
	numberPattern  = regexp.MustCompile(`^[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?$`)
	hexPattern     = regexp.MustCompile(`^0[xX][0-9a-fA-F]+$`)
	trailingNumber = regexp.MustCompile(`-?\d+(\.\d*)?(e-?\d+)?$`)
	flagLike       = regexp.MustCompile(`^(-|--)[^-]`)
)

type parser struct {
	aliases map[string][]string
	strings map[string]bool
	bools   map[string]bool
	out     Options
}

// Parse tokenizes raw into an Options map.
//
// Recognized forms: `--k=v`, `--k v`, `--k` (true), `--no-k` (false),
// `-abc` (grouped shorts), `-n5` and `-k=v`. A bare `--` ends option
// parsing. Keys given more than once accumulate into a list.
func Parse(raw []string, cfg Config) Options {
	p := newParser(cfg)

	var rest []string
	args := raw
	for i, a := range raw {
		if a == "--" {
			args = raw[:i]
			rest = raw[i+1:]
			break
		}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		var next string
		hasNext := i+1 < len(args)
		if hasNext {
			next = args[i+1]
		}

		switch {
		case strings.HasPrefix(arg, "--") && strings.Contains(arg[2:], "=") && strings.Index(arg, "=") > 2:
			eq := strings.Index(arg, "=")
			key, value := arg[2:eq], arg[eq+1:]
			if p.bools[key] {
				p.set(key, value != "false")
			} else {
				p.set(key, value)
			}

		case strings.HasPrefix(arg, "--no-") && len(arg) > 5:
			p.set(arg[5:], false)

		case strings.HasPrefix(arg, "--") && len(arg) > 2:
			key := arg[2:]
			switch {
			case hasNext && !flagLike.MatchString(next) && !p.isBool(key):
				p.set(key, next)
				i++
			case hasNext && (next == "true" || next == "false"):
				p.set(key, next == "true")
				i++
			default:
				p.set(key, p.emptyValue(key))
			}

		case strings.HasPrefix(arg, "-") && len(arg) > 1 && arg[1] != '-':
			if p.shortGroup(arg, next, hasNext) {
				i++
			}

		default:
			p.positional(arg)
		}
	}

	for _, word := range rest {
		p.positional(word)
	}
	return p.out
}

func newParser(cfg Config) *parser {
	p := &parser{
		aliases: map[string][]string{},
		strings: map[string]bool{},
		bools:   map[string]bool{},
		out:     Options{PositionalKey: []string{}},
	}

	for short, long := range cfg.Alias {
		if short == long {
			continue
		}
		p.aliases[short] = appendUnique(p.aliases[short], long)
		p.aliases[long] = appendUnique(p.aliases[long], short)
	}

	for _, key := range cfg.String {
		p.strings[key] = true
		for _, a := range p.aliases[key] {
			p.strings[a] = true
		}
	}
	for _, key := range cfg.Boolean {
		p.bools[key] = true
		for _, a := range p.aliases[key] {
			p.bools[a] = true
		}
	}

	for key := range p.bools {
		if _, set := p.out[key]; !set {
			p.set(key, false)
		}
	}
	return p
}

// shortGroup handles a `-abc` token. It reports whether the following
// word was consumed as a value.
func (p *parser) shortGroup(arg, next string, hasNext bool) bool {
	letters := []rune(arg[1:])
	body := letters[:len(letters)-1]

	for j, letter := range body {
		after := string(letters[j+1:])
		key := string(letter)

		if after == "-" {
			p.set(key, after)
			continue
		}
		if unicode.IsLetter(letter) && strings.HasPrefix(after, "=") {
			p.set(key, after[1:])
			return false
		}
		if unicode.IsLetter(letter) && trailingNumber.MatchString(after) {
			p.set(key, after)
			return false
		}
		if nextRune := letters[j+1]; !isWordRune(nextRune) {
			p.set(key, after)
			return false
		}
		p.set(key, p.emptyValue(key))
	}

	key := string(letters[len(letters)-1])
	if key == "-" {
		return false
	}
	switch {
	case hasNext && next != "" && !flagLike.MatchString(next) && !p.isBool(key):
		p.set(key, next)
		return true
	case hasNext && (next == "true" || next == "false"):
		p.set(key, next == "true")
		return true
	default:
		p.set(key, p.emptyValue(key))
	}
	return false
}

func (p *parser) positional(word string) {
	p.out[PositionalKey] = append(p.out.Positional(), word)
}

func (p *parser) emptyValue(key string) any {
	if p.strings[key] {
		return ""
	}
	return true
}

func (p *parser) isBool(key string) bool {
	if p.bools[key] {
		return true
	}
	for _, a := range p.aliases[key] {
		if p.bools[a] {
			return true
		}
	}
	return false
}

// set stores value under key and every alias of key.
func (p *parser) set(key string, value any) {
	if s, ok := value.(string); ok && !p.strings[key] {
		if n, ok := toNumber(s); ok {
			value = n
		}
	}
	p.store(key, value)
	for _, a := range p.aliases[key] {
		p.store(a, value)
	}
}

func (p *parser) store(key string, value any) {
	existing, ok := p.out[key]
	switch {
	case !ok || p.bools[key]:
		p.out[key] = value
	case isBoolValue(existing):
		p.out[key] = value
	default:
		if list, isList := existing.([]any); isList {
			p.out[key] = append(list, value)
		} else {
			p.out[key] = []any{existing, value}
		}
	}
}

func toNumber(s string) (float64, bool) {
	if hexPattern.MatchString(s) {
		n, err := strconv.ParseInt(s[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	if !numberPattern.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isBoolValue(v any) bool {
	_, ok := v.(bool)
	return ok
}

func isWordRune(r rune) bool {
	return r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
