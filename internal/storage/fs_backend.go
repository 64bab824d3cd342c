package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"time"
)

// FileSystemBackend stores scores in a single JSON file. Every operation
// takes a flock on a sibling lock file, so several terminals may share one
// scores directory.
type FileSystemBackend struct {
	dir string
	now func() time.Time
}

// NewFileSystemBackend creates a backend rooted at dir, or at the default
// scores directory when dir is empty.
func NewFileSystemBackend(dir string) (*FileSystemBackend, error) {
	if dir == "" {
		var err error
		dir, err = scoresDirectory()
		if err != nil {
			return nil, fmt.Errorf("failed to get scores directory: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scores directory: %w", err)
	}
	return &FileSystemBackend{dir: dir, now: time.Now}, nil
}

// Dir returns the directory holding the scores file.
func (b *FileSystemBackend) Dir() string { return b.dir }

// Best returns the stored value for key.
func (b *FileSystemBackend) Best(key string) (int, bool, error) {
	var (
		rec Record
		ok  bool
	)
	err := b.withLock(func() error {
		file, err := b.read()
		if err != nil {
			return err
		}
		rec, ok = file.Scores[key]
		return nil
	})
	return rec.Value, ok, err
}

// Submit records value for key if it improves on the stored best.
func (b *FileSystemBackend) Submit(key string, value int) (int, bool, error) {
	var (
		best     int
		improved bool
	)
	err := b.withLock(func() error {
		file, err := b.read()
		if err != nil {
			return err
		}
		prev, ok := file.Scores[key]
		if ok && prev.Value >= value {
			best = prev.Value
			return nil
		}
		file.Scores[key] = Record{Value: value, UpdatedAt: b.now()}
		best, improved = value, true
		return b.write(file)
	})
	return best, improved, err
}

// All returns every stored record.
func (b *FileSystemBackend) All() (map[string]Record, error) {
	var all map[string]Record
	err := b.withLock(func() error {
		file, err := b.read()
		if err != nil {
			return err
		}
		all = maps.Clone(file.Scores)
		return nil
	})
	return all, err
}

// Close is a no-op; locks are held only for the duration of each call.
func (b *FileSystemBackend) Close() error { return nil }

func (b *FileSystemBackend) withLock(fn func() error) error {
	lockFile, err := lockWithRetry(scoresLockFilePath(b.dir))
	if err != nil {
		return fmt.Errorf("failed to lock scores: %w", err)
	}
	return errors.Join(fn(), releaseFileLock(lockFile))
}

func (b *FileSystemBackend) read() (*scoreFile, error) {
	file := &scoreFile{Version: currentSchemaVersion, Scores: make(map[string]Record)}
	data, err := os.ReadFile(scoresFilePath(b.dir))
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return nil, fmt.Errorf("failed to read scores file: %w", err)
	}
	if err := json.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
	}
	if file.Scores == nil {
		file.Scores = make(map[string]Record)
	}
	return file, nil
}

func (b *FileSystemBackend) write(file *scoreFile) error {
	file.Version = currentSchemaVersion
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}
	if err := AtomicWriteFile(scoresFilePath(b.dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write scores file: %w", err)
	}
	return nil
}

var _ Backend = (*FileSystemBackend)(nil)
