package config

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config represents the application configuration.
type Config struct {
	// Global options
	Global map[string]string
	// Sections holds the options of each [section] block, keyed by section
	// name.
	Sections map[string]map[string]string
	// Warnings contains any warnings generated during config loading
	Warnings []string
}

// NewConfig creates a new empty configuration.
func NewConfig() *Config {
	return &Config{
		Global:   make(map[string]string),
		Sections: make(map[string]map[string]string),
		Warnings: make([]string, 0),
	}
}

// Load loads configuration from the default config file path.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads configuration from the specified file path.
// The file uses dnsmasq-style format: optionName remainingLineIsTheValue
//
// Symlinks are rejected: only the final path component is checked.
func LoadFromPath(path string) (*Config, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if fi.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("symlink not allowed in config path: %s", path)
	}

	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader loads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	config := NewConfig()
	scanner := bufio.NewScanner(r)

	var section string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Check for section header [section_name]
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(strings.Trim(line, "[]"))
			if section != "" && config.Sections[section] == nil {
				config.Sections[section] = make(map[string]string)
			}
			continue
		}

		// Parse option line: optionName remainingLineIsTheValue
		name, value, _ := strings.Cut(line, " ")
		value = strings.TrimSpace(value)

		if section == "" {
			config.Global[name] = value
		} else {
			config.Sections[section][name] = value
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	// Validate config against schema: detect unknown options and type mismatches.
	for _, issue := range ValidateConfig(config, DefaultSchema()) {
		config.addWarning("%s", issue)
	}

	return config, nil
}

// addWarning adds a warning to the config's warnings list.
func (c *Config) addWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.Warnings = append(c.Warnings, msg)
	slog.Warn("[Config] " + msg)
}

// parseBool parses a boolean value from string.
// Accepts: true, false, 1, 0, yes, no, on, off (case-insensitive)
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}

// GetGlobalOption returns a global configuration option.
func (c *Config) GetGlobalOption(name string) (string, bool) {
	value, exists := c.Global[name]
	return value, exists
}

// GetSectionOption returns an option from a [section] block.
func (c *Config) GetSectionOption(section, name string) (string, bool) {
	value, exists := c.Sections[section][name]
	return value, exists
}

// SetGlobalOption sets a global configuration option.
func (c *Config) SetGlobalOption(name, value string) {
	c.Global[name] = value
}

// SetSectionOption sets an option within a [section] block.
func (c *Config) SetSectionOption(section, name, value string) {
	if c.Sections[section] == nil {
		c.Sections[section] = make(map[string]string)
	}
	c.Sections[section][name] = value
}

// GetWarnings returns any warnings generated during config loading.
func (c *Config) GetWarnings() []string {
	return c.Warnings
}
