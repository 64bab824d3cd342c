//go:build !unix

package storage

import (
	"fmt"
	"os"
)

// acquireFileLock only opens the lock file; there is no advisory locking on
// this platform.
var acquireFileLock = func(path string) (*os.File, error) {
	lockFile, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	return lockFile, nil
}

func releaseFileLock(lockFile *os.File) error {
	if lockFile == nil {
		return nil
	}
	return lockFile.Close()
}
