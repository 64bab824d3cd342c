package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// testHookCrashBeforeRename simulates a crash between writing the temp file
// and renaming it.
var testHookCrashBeforeRename func()

// RenameError wraps a rename failure with the orphaned temporary file path.
type RenameError struct {
	Err      error
	tempPath string
}

func (e RenameError) Error() string    { return e.Err.Error() }
func (e RenameError) TempPath() string { return e.tempPath }
func (e RenameError) Unwrap() error    { return e.Err }

// AtomicWriteFile writes data to a temporary file in the target directory
// and renames it over filename.
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".tmp-linkterm-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	var success bool
	defer func() {
		if !success {
			if err := os.Remove(tempFile.Name()); err != nil && !os.IsNotExist(err) {
				slog.Warn("failed to remove temporary file", "path", tempFile.Name(), "error", err)
			}
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file %q: %w", tempFile.Name(), err)
	}
	if err := os.Chmod(tempFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if testHookCrashBeforeRename != nil {
		testHookCrashBeforeRename()
	}

	if err := os.Rename(tempFile.Name(), filename); err != nil {
		return RenameError{Err: err, tempPath: tempFile.Name()}
	}
	success = true
	return nil
}
