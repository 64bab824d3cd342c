package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Overridable so tests never touch the user's config directory.
var scoresDirectory = ScoresDirectory

// SetTestPaths points the default scores directory at dir.
// This should only be used in tests.
func SetTestPaths(dir string) {
	scoresDirectory = func() (string, error) { return dir, nil }
}

// ResetPaths restores the default scores directory.
// This should only be used in tests.
func ResetPaths() {
	scoresDirectory = ScoresDirectory
}

// ScoresDirectory returns {UserConfigDir}/linkterm/scores.
func ScoresDirectory() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "linkterm", "scores"), nil
}

func scoresFilePath(dir string) string { return filepath.Join(dir, "scores.json") }

func scoresLockFilePath(dir string) string { return filepath.Join(dir, "scores.lock") }
