package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// RotatingFileWriter is an io.WriteCloser with size-based rotation. When a
// write would take the file past its limit the file is renamed to <path>.1,
// older backups shift up by one, and backups past maxFiles are removed.
//
// All operations are safe for concurrent use.
type RotatingFileWriter struct {
	mu           sync.Mutex
	path         string
	maxSizeBytes int64
	maxFiles     int
	currentSize  int64
	file         *os.File
}

// NewRotatingFileWriter opens path for appending, creating it and its parent
// directory as needed. maxSizeMB is clamped to at least 1; maxFiles to at
// least 0, where 0 keeps no backups.
func NewRotatingFileWriter(path string, maxSizeMB, maxFiles int) (*RotatingFileWriter, error) {
	maxSizeMB = max(maxSizeMB, 1)
	maxFiles = max(maxFiles, 0)

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("log file: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("log file: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("log file: stat %s: %w", path, err)
	}

	return &RotatingFileWriter{
		path:         path,
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
		maxFiles:     maxFiles,
		currentSize:  info.Size(),
		file:         f,
	}, nil
}

// Write rotates first if p would overflow the current file, so a single
// record is never split across files.
func (w *RotatingFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.currentSize > 0 && w.currentSize+int64(len(p)) > w.maxSizeBytes {
		if err := w.rotate(); err != nil {
			return 0, fmt.Errorf("log file: rotate: %w", err)
		}
	}

	n, err := w.file.Write(p)
	w.currentSize += int64(n)
	return n, err
}

func (w *RotatingFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// rotate must be called with w.mu held.
func (w *RotatingFileWriter) rotate() error {
	if err := w.file.Close(); err != nil {
		return err
	}

	backups := w.listBackups()
	// highest first, so nothing is overwritten
	sort.Sort(sort.Reverse(sort.IntSlice(backups)))
	for _, num := range backups {
		src := w.backupPath(num)
		if num+1 > w.maxFiles {
			_ = os.Remove(src)
		} else {
			_ = os.Rename(src, w.backupPath(num+1))
		}
	}

	if w.maxFiles > 0 {
		_ = os.Rename(w.path, w.backupPath(1))
	} else {
		_ = os.Remove(w.path)
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	w.file = f
	w.currentSize = 0
	return nil
}

func (w *RotatingFileWriter) backupPath(n int) string {
	return w.path + "." + strconv.Itoa(n)
}

func (w *RotatingFileWriter) listBackups() []int {
	entries, err := os.ReadDir(filepath.Dir(w.path))
	if err != nil {
		return nil
	}
	prefix := filepath.Base(w.path) + "."
	var nums []int
	for _, e := range entries {
		suffix, ok := strings.CutPrefix(e.Name(), prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil && n >= 1 {
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)
	return nums
}

var _ io.WriteCloser = (*RotatingFileWriter)(nil)
