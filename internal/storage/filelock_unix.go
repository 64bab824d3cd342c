//go:build unix

package storage

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// acquireFileLock takes an exclusive, non-blocking flock on path.
var acquireFileLock = func(path string) (*os.File, error) {
	lockFile, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	err = unix.Flock(int(lockFile.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		lockFile.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ErrWouldBlock
		}
		return nil, fmt.Errorf("failed to acquire file lock: %w", err)
	}

	return lockFile, nil
}

// releaseFileLock unlocks and closes the lock file. The file itself is left
// in place; removing it would race with a waiter that already opened it.
func releaseFileLock(lockFile *os.File) error {
	if lockFile == nil {
		return nil
	}
	_ = unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)
	return lockFile.Close()
}
