package storage

import (
	"errors"
	"os"
	"time"
)

// ErrWouldBlock signals that a non-blocking lock attempt failed because
// another process holds the lock.
var ErrWouldBlock = errors.New("file lock would block")

var (
	lockRetries    = 50
	lockRetryDelay = 10 * time.Millisecond
)

// lockWithRetry acquires the lock at path, retrying briefly while another
// process holds it.
func lockWithRetry(path string) (*os.File, error) {
	for attempt := 0; ; attempt++ {
		f, err := acquireFileLock(path)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, ErrWouldBlock) || attempt >= lockRetries {
			return nil, err
		}
		time.Sleep(lockRetryDelay)
	}
}
