package config

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// OptionType represents the expected type of a configuration option value.
type OptionType string

const (
	// TypeString is a plain string value (the default for all config values).
	TypeString OptionType = "string"
	// TypeBool is a boolean value (true/false/yes/no/1/0/on/off).
	TypeBool OptionType = "bool"
	// TypeInt is an integer value.
	TypeInt OptionType = "int"
	// TypeDuration is a Go time.Duration value (e.g. "150ms", "1s").
	TypeDuration OptionType = "duration"
)

// ConfigOption declares a single configuration option with its type, default,
// documentation, and environment variable override.
type ConfigOption struct {
	// Key is the option name as it appears in the config file (kebab-case).
	Key string
	// Type is the expected value type for validation.
	Type OptionType
	// Default is the default value as a string, or "" for no default.
	Default string
	// Description is a human-readable description of the option.
	Description string
	// Section is "" for global options, or a [section] name.
	Section string
	// EnvVar is the environment variable that overrides this option, or "".
	EnvVar string
	// Values restricts the option to a fixed set of spellings. Empty allows
	// anything of Type.
	Values []string
}

// Check reports whether value is acceptable for o.
func (o *ConfigOption) Check(value string) error {
	if err := validateType(o.Type, value); err != nil {
		return err
	}
	if len(o.Values) > 0 && value != "" && !slices.Contains(o.Values, value) {
		return fmt.Errorf("expected one of %s, got %q", strings.Join(o.Values, ", "), value)
	}
	return nil
}

// ConfigSchema declares the expected configuration options for the application.
// It is used for validation, documentation, typed getters, and env var mapping.
type ConfigSchema struct {
	options []*ConfigOption
	// byKey indexes global options by key for fast lookup.
	byKey map[string]*ConfigOption
	// bySection indexes section options by section then key.
	bySection map[string]map[string]*ConfigOption
}

// NewSchema creates a new empty ConfigSchema.
func NewSchema() *ConfigSchema {
	return &ConfigSchema{
		byKey:     make(map[string]*ConfigOption),
		bySection: make(map[string]map[string]*ConfigOption),
	}
}

// Register adds a ConfigOption to the schema. Duplicate keys within the same
// section are silently overwritten (last registration wins).
func (s *ConfigSchema) Register(opt ConfigOption) {
	ref := new(ConfigOption)
	*ref = opt
	s.options = append(s.options, ref)
	if opt.Section == "" {
		s.byKey[opt.Key] = ref
	} else {
		if s.bySection[opt.Section] == nil {
			s.bySection[opt.Section] = make(map[string]*ConfigOption)
		}
		s.bySection[opt.Section][opt.Key] = ref
	}
}

// RegisterAll adds multiple ConfigOptions to the schema.
func (s *ConfigSchema) RegisterAll(opts []ConfigOption) {
	for _, opt := range opts {
		s.Register(opt)
	}
}

// Lookup returns the ConfigOption for a key in a given section ("" for global).
// Returns nil if the key is not registered.
func (s *ConfigSchema) Lookup(section, key string) *ConfigOption {
	if section == "" {
		return s.byKey[key]
	}
	if sec, ok := s.bySection[section]; ok {
		return sec[key]
	}
	return nil
}

// IsKnown returns true if the key is registered in the given section.
func (s *ConfigSchema) IsKnown(section, key string) bool {
	return s.Lookup(section, key) != nil
}

// GlobalOptions returns all registered global options (Section == "").
func (s *ConfigSchema) GlobalOptions() []ConfigOption {
	var out []ConfigOption
	for _, o := range s.options {
		if o.Section == "" {
			out = append(out, *o)
		}
	}
	return out
}

// SectionOptions returns all registered options for a specific section.
func (s *ConfigSchema) SectionOptions(section string) []ConfigOption {
	var out []ConfigOption
	for _, o := range s.options {
		if o.Section == section {
			out = append(out, *o)
		}
	}
	return out
}

// Sections returns the names of all sections with registered options, sorted.
func (s *ConfigSchema) Sections() []string {
	return slices.Sorted(maps.Keys(s.bySection))
}

// Resolve returns the effective value for a global config key by checking,
// in order: (1) the non-empty environment variable declared in the schema for
// this key, (2) the config value, (3) the schema default. Returns "" if the
// key is not found anywhere.
func (s *ConfigSchema) Resolve(c *Config, key string) string {
	return s.ResolveSection(c, "", key)
}

// ResolveSection is Resolve for an option in a [section] block.
func (s *ConfigSchema) ResolveSection(c *Config, section, key string) string {
	opt := s.Lookup(section, key)
	// Check env var override from schema.
	if opt != nil && opt.EnvVar != "" {
		if v := os.Getenv(opt.EnvVar); v != "" {
			return v
		}
	}
	// Check config value.
	var (
		v  string
		ok bool
	)
	if section == "" {
		v, ok = c.GetGlobalOption(key)
	} else {
		v, ok = c.GetSectionOption(section, key)
	}
	if ok {
		return v
	}
	// Fall back to schema default.
	if opt != nil {
		return opt.Default
	}
	return ""
}

// ValidateConfig lists every problem with c: options the schema does not
// know, and values that fail the option's Check. The result is sorted and
// empty for a valid config.
func ValidateConfig(c *Config, s *ConfigSchema) []string {
	var issues []string
	for key, value := range c.Global {
		switch opt := s.Lookup("", key); {
		case opt == nil:
			issues = append(issues, fmt.Sprintf("unknown global option: %q (value: %q)", key, value))
		case opt.Check(value) != nil:
			issues = append(issues, fmt.Sprintf("global option %q: %v", key, opt.Check(value)))
		}
	}
	for section, opts := range c.Sections {
		for key, value := range opts {
			switch opt := s.Lookup(section, key); {
			case opt == nil:
				issues = append(issues, fmt.Sprintf("unknown option in [%s]: %q (value: %q)", section, key, value))
			case opt.Check(value) != nil:
				issues = append(issues, fmt.Sprintf("option %q in [%s]: %v", key, section, opt.Check(value)))
			}
		}
	}
	sort.Strings(issues)
	return issues
}

// validateType checks that a string value matches the expected OptionType.
func validateType(t OptionType, value string) error {
	switch t {
	case TypeString, "":
		return nil
	case TypeBool:
		if _, err := parseBool(value); err != nil {
			return fmt.Errorf("expected bool, got %q", value)
		}
	case TypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("expected int, got %q", value)
		}
	case TypeDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("expected duration, got %q", value)
		}
	default:
		return fmt.Errorf("unknown option type %q", t)
	}
	return nil
}

// --- Help text generation ---

// FormatHelp returns a formatted, human-readable reference of all registered
// options in the schema, grouped by section.
func (s *ConfigSchema) FormatHelp() string {
	var b strings.Builder

	// Global options first.
	globals := s.GlobalOptions()
	if len(globals) > 0 {
		b.WriteString("Global Options:\n")
		for _, o := range globals {
			writeOptionHelp(&b, o)
		}
	}

	// Section options.
	for _, sec := range s.Sections() {
		opts := s.SectionOptions(sec)
		if len(opts) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n[%s] Options:\n", sec)
		for _, o := range opts {
			writeOptionHelp(&b, o)
		}
	}

	return b.String()
}

func writeOptionHelp(b *strings.Builder, o ConfigOption) {
	var notes []string
	if o.Type != "" && o.Type != TypeString {
		notes = append(notes, "type: "+string(o.Type))
	}
	if len(o.Values) > 0 {
		notes = append(notes, "one of: "+strings.Join(o.Values, "|"))
	}
	if o.Default != "" {
		notes = append(notes, "default: "+o.Default)
	}
	if o.EnvVar != "" {
		notes = append(notes, "env: "+o.EnvVar)
	}
	fmt.Fprintf(b, "  %-20s %s", o.Key, o.Description)
	if len(notes) > 0 {
		fmt.Fprintf(b, " (%s)", strings.Join(notes, ", "))
	}
	b.WriteByte('\n')
}

// --- Default schema ---

// DefaultSchema returns the canonical schema declaring all known linkterm
// configuration options.
func DefaultSchema() *ConfigSchema {
	s := NewSchema()
	s.RegisterAll(defaultGlobalOptions())
	s.RegisterAll(defaultSectionOptions())
	return s
}

func defaultGlobalOptions() []ConfigOption {
	return []ConfigOption{
		// Terminal identity and display
		{Key: "terminal.user", Type: TypeString, Default: "guest", Description: "User name shown in the prompt", EnvVar: "LINKTERM_USER"},
		{Key: "terminal.home-user", Type: TypeString, Default: "", Description: "Owner of the home directory (default: the sole entry under /home)"},
		{Key: "terminal.hostname", Type: TypeString, Default: "linkterm", Description: "Host name shown by whoami and neofetch"},
		{Key: "terminal.width", Type: TypeInt, Default: "0", Description: "Display width in columns (0 detects the terminal)"},
		{Key: "terminal.theme", Type: TypeString, Default: "default", Description: "Colour theme: alien, default, dracula, matrix"},
		{Key: "terminal.mode", Type: TypeString, Default: "tui", Description: "Front-end", Values: []string{"tui", "line"}},

		// History
		{Key: "history.size", Type: TypeInt, Default: "100", Description: "Maximum number of remembered command lines"},
		{Key: "history.file", Type: TypeString, Default: "", Description: "Line mode history file"},

		// Filesystem snapshot
		{Key: "snapshot.path", Type: TypeString, Default: "", Description: "Snapshot file (.json, .yaml, .toml); empty uses the built-in tree", EnvVar: "LINKTERM_SNAPSHOT"},

		// Scores
		{Key: "scores.backend", Type: TypeString, Default: "fs", Description: "Score storage backend", Values: []string{"fs", "memory"}},
		{Key: "scores.dir", Type: TypeString, Default: "", Description: "Score directory for the fs backend"},

		// Logging options
		{Key: "log.file", Type: TypeString, Default: "", Description: "Log file path (JSON output)", EnvVar: "LINKTERM_LOG_FILE"},
		{Key: "log.level", Type: TypeString, Default: "info", Description: "Log level: debug, info, warn, error", EnvVar: "LINKTERM_LOG_LEVEL"},
		{Key: "log.max-size-mb", Type: TypeInt, Default: "10", Description: "Max log file size in MB before rotation"},
		{Key: "log.max-files", Type: TypeInt, Default: "5", Description: "Max number of rotated log backup files"},
	}
}

func defaultSectionOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "tick", Section: "snake", Type: TypeDuration, Default: "150ms", Description: "Time between snake moves"},
		{Key: "difficulty", Section: "typing", Type: TypeString, Default: "medium", Description: "Initial typing test difficulty", Values: []string{"easy", "medium", "hard"}},
		{Key: "animate", Section: "cat", Type: TypeBool, Default: "", Description: "Type file contents out slowly (default: only with the alien theme)"},
	}
}
