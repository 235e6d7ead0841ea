// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/muhammadmuzzammil1998/jsonc"

	"github.com/jeranaias/dispatch/internal/util"
)

// =============================================================================
// SETTINGS
// =============================================================================

// Setting names as users type them.
const (
	SettingOutput            = "output"
	SettingErrorOutput       = "errorOutput"
	SettingShowHelpOnFailure = "showHelpOnFailure"
	SettingTraceFile         = "traceFile"
	SettingHelpWrap          = "helpWrap"
)

// Settings holds every persisted setting. Zero values mean "not set".
type Settings struct {
	// Output is the default output mode when --output is not given.
	Output string `toml:"output,omitempty" json:"output,omitempty"`

	// ErrorOutput routes the diagnostic channel: "stderr" or "stdout".
	ErrorOutput string `toml:"error_output,omitempty" json:"errorOutput,omitempty"`

	// ShowHelpOnFailure prints help after usage errors. Unset means true.
	ShowHelpOnFailure *bool `toml:"show_help_on_failure,omitempty" json:"showHelpOnFailure,omitempty"`

	// TraceFile receives the diagnostic trace log.
	TraceFile string `toml:"trace_file,omitempty" json:"traceFile,omitempty"`

	// HelpWrap is the word-wrap width for command help. 0 uses the terminal width.
	HelpWrap int `toml:"help_wrap,omitempty" json:"helpWrap,omitempty"`
}

// Names returns every setting name, sorted.
func Names() []string {
	names := []string{
		SettingOutput,
		SettingErrorOutput,
		SettingShowHelpOnFailure,
		SettingTraceFile,
		SettingHelpWrap,
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the settings directory.
func Dir() (string, error) {
	if dir := os.Getenv("DISPATCH_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".dispatch"), nil
}

// PathTOML returns the path to the TOML settings file.
func PathTOML() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// PathJSON returns the path to the JSON settings file.
func PathJSON() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the settings file and applies environment overrides. A missing
// file yields empty settings.
func Load() (*Settings, error) {
	s, err := LoadFile()
	if err != nil {
		return nil, err
	}
	s.ApplyEnvOverrides()
	return s, nil
}

// LoadFile reads the settings file without environment overrides. Use it
// before modifying and saving settings. When the file decodes but holds a
// value that fails validation, the decoded settings are returned together
// with the *ValidationError so the file can be repaired.
func LoadFile() (*Settings, error) {
	s := &Settings{}

	tomlPath, err := PathTOML()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(tomlPath); statErr == nil {
		if err := LoadTOML(s, tomlPath); err != nil {
			return decoded(s, err)
		}
		return s, s.Validate()
	}

	jsonPath, err := PathJSON()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(jsonPath); statErr == nil {
		if err := LoadJSON(s, jsonPath); err != nil {
			return nil, err
		}
		return s, s.Validate()
	}

	return s, nil
}

// decoded keeps s alongside a validation failure and drops it otherwise.
func decoded(s *Settings, err error) (*Settings, error) {
	var invalid *ValidationError
	if errors.As(err, &invalid) {
		return s, err
	}
	return nil, err
}

// LoadTOML decodes a TOML settings file into s.
func LoadTOML(s *Settings, path string) error {
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return &ValidationError{Field: undecoded[0].String(), Message: "unknown setting in " + path}
	}
	return nil
}

// LoadJSON decodes a JSON settings file, comments and trailing commas
// allowed, into s.
func LoadJSON(s *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), s); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes s to the TOML settings file.
func (s *Settings) Save() error {
	path, err := PathTOML()
	if err != nil {
		return err
	}
	return s.SaveTOML(path)
}

// SaveTOML writes s to path.
// SECURITY: settings files are created 0600 (owner read/write only).
func (s *Settings) SaveTOML(path string) error {
	var b strings.Builder
	b.WriteString("# dispatch settings\n")
	b.WriteString("# Managed by `dispatch cli config set` - edit with care\n\n")
	if err := toml.NewEncoder(&b).Encode(s); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a setting value that is not allowed.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
}

// allowedValues restricts settings with a fixed set of values.
var allowedValues = map[string][]string{
	SettingOutput:      {"json", "text"},
	SettingErrorOutput: {"stderr", "stdout"},
}

// AllowedValues returns the values name accepts, or nil when any value of
// the setting's type is allowed.
func AllowedValues(name string) []string {
	values, ok := allowedValues[name]
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

// Validate checks every set value.
func (s *Settings) Validate() error {
	if err := checkAllowed(SettingOutput, s.Output); err != nil {
		return err
	}
	if err := checkAllowed(SettingErrorOutput, s.ErrorOutput); err != nil {
		return err
	}
	if s.HelpWrap < 0 {
		return &ValidationError{Field: SettingHelpWrap, Value: strconv.Itoa(s.HelpWrap), Message: "must not be negative"}
	}
	return nil
}

func checkAllowed(name, value string) error {
	if value == "" {
		return nil
	}
	for _, v := range allowedValues[name] {
		if v == value {
			return nil
		}
	}
	return &ValidationError{
		Field:   name,
		Value:   value,
		Message: "must be one of " + strings.Join(allowedValues[name], ", "),
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to s.
//
// Supported environment variables:
//   - DISPATCH_OUTPUT: overrides output
//   - DISPATCH_ERROR_OUTPUT: overrides errorOutput
//   - DISPATCH_SHOW_HELP_ON_FAILURE: "1"/"true" or "0"/"false"
//   - DISPATCH_TRACE_FILE: overrides traceFile
func (s *Settings) ApplyEnvOverrides() {
	if v := os.Getenv("DISPATCH_OUTPUT"); v != "" {
		s.Output = v
	}
	if v := os.Getenv("DISPATCH_ERROR_OUTPUT"); v != "" {
		s.ErrorOutput = v
	}
	if v := os.Getenv("DISPATCH_SHOW_HELP_ON_FAILURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.ShowHelpOnFailure = &b
		}
	}
	if v := os.Getenv("DISPATCH_TRACE_FILE"); v != "" {
		s.TraceFile = v
	}
}

// =============================================================================
// GET/SET HELPERS
// =============================================================================

// Get returns the value of a setting and whether it is set. Names may be
// camelCase, snake_case or kebab-case.
func (s *Settings) Get(name string) (any, bool) {
	field, err := s.field(name)
	if err != nil {
		return nil, false
	}
	switch field.Kind() {
	case reflect.Ptr:
		if field.IsNil() {
			return nil, false
		}
		return field.Elem().Interface(), true
	default:
		if field.IsZero() {
			return nil, false
		}
		return field.Interface(), true
	}
}

// GetString returns a string setting or def when it is unset.
func (s *Settings) GetString(name, def string) string {
	if v, ok := s.Get(name); ok {
		if str, ok := v.(string); ok {
			return str
		}
		return fmt.Sprint(v)
	}
	return def
}

// GetBool returns a boolean setting or def when it is unset.
func (s *Settings) GetBool(name string, def bool) bool {
	if v, ok := s.Get(name); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Set parses value for the named setting, stores it and validates the
// result. The previous value is kept when validation fails.
func (s *Settings) Set(name, value string) error {
	field, err := s.field(name)
	if err != nil {
		return err
	}
	previous := reflect.New(field.Type()).Elem()
	previous.Set(field)

	if err := setFieldValue(field, value); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := s.Validate(); err != nil {
		field.Set(previous)
		return err
	}
	return nil
}

// Unset clears the named setting.
func (s *Settings) Unset(name string) error {
	field, err := s.field(name)
	if err != nil {
		return err
	}
	field.Set(reflect.Zero(field.Type()))
	return nil
}

// All returns every set value keyed by setting name.
func (s *Settings) All() map[string]any {
	out := make(map[string]any)
	for _, name := range Names() {
		if v, ok := s.Get(name); ok {
			out[name] = v
		}
	}
	return out
}

func (s *Settings) field(name string) (reflect.Value, error) {
	if name == "" {
		return reflect.Value{}, errors.New("empty setting name")
	}
	fieldName := normalizeFieldName(name)
	v := reflect.ValueOf(s).Elem()
	field := v.FieldByNameFunc(func(n string) bool {
		return strings.EqualFold(n, fieldName)
	})
	if !field.IsValid() {
		return reflect.Value{}, fmt.Errorf("unknown setting: %s", name)
	}
	return field, nil
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go
// field name. camelCase names pass through with a capital first letter.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(part[1:])
	}
	return result.String()
}

// setFieldValue parses a user-typed string into field.
func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value %q", value)
		}
		field.SetInt(int64(n))
	case reflect.Ptr:
		if field.Type().Elem().Kind() != reflect.Bool {
			return fmt.Errorf("unsupported setting type %s", field.Type())
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value %q", value)
		}
		field.Set(reflect.ValueOf(&b))
	default:
		return fmt.Errorf("unsupported setting type %s", field.Type())
	}
	return nil
}
