package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath returns the configuration file path. The LINKTERM_CONFIG
// environment variable wins; otherwise ~/.linkterm/config is used.
func GetConfigPath() (string, error) {
	if configPath := os.Getenv("LINKTERM_CONFIG"); configPath != "" {
		return configPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".linkterm", "config"), nil
}

// EnsureConfigDir ensures that the configuration directory exists.
func EnsureConfigDir() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}
