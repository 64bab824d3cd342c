package logging

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// newTinyWriter bypasses the 1 MB floor of the constructor.
func newTinyWriter(t *testing.T, path string, maxBytes int64, maxFiles int) *RotatingFileWriter {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	return &RotatingFileWriter{path: path, maxSizeBytes: maxBytes, maxFiles: maxFiles, file: f}
}

func TestRotatingFileWriter_BasicWrite(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")

	w, err := NewRotatingFileWriter(path, 1, 3)
	if err != nil {
		t.Fatalf("NewRotatingFileWriter: %v", err)
	}
	defer w.Close()

	msg := "hello world\n"
	n, err := w.Write([]byte(msg))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len(msg) {
		t.Fatalf("Write returned %d, want %d", n, len(msg))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != msg {
		t.Fatalf("file content = %q, want %q", string(data), msg)
	}
}

func TestRotatingFileWriter_RotatesAtSizeLimit(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")
	w := newTinyWriter(t, path, 50, 3)

	line := strings.Repeat("A", 39) + "\n"
	for i := range 2 {
		if _, err := w.Write([]byte(line)); err != nil {
			t.Fatalf("Write %d: %v", i, err)
		}
	}
	if w.currentSize != 40 {
		t.Fatalf("after rotation currentSize = %d, want 40", w.currentSize)
	}
	w.Close()

	for _, p := range []string{path, path + ".1"} {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("ReadFile %s: %v", p, err)
		}
		if string(data) != line {
			t.Fatalf("%s content = %q, want %q", p, string(data), line)
		}
	}
}

func TestRotatingFileWriter_MaxFilesEnforced(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")
	w := newTinyWriter(t, path, 20, 2)

	for i := 1; i <= 4; i++ {
		if _, err := w.Write([]byte(strings.Repeat("line-"+strconv.Itoa(i)+"\n", 3))); err != nil {
			t.Fatalf("Write %d: %v", i, err)
		}
	}
	w.Close()

	for _, suffix := range []string{".1", ".2"} {
		if _, err := os.Stat(path + suffix); err != nil {
			t.Errorf("expected backup %s to exist: %v", suffix, err)
		}
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Errorf("expected backup .3 to NOT exist, but stat returned: %v", err)
	}
	data, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "line-3") {
		t.Errorf("expected newest backup to hold line-3, got %q", data)
	}
}

func TestRotatingFileWriter_ZeroMaxFiles(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")
	w := newTinyWriter(t, path, 10, 0)

	for _, s := range []string{"first-line\n", "second-line\n"} {
		if _, err := w.Write([]byte(s)); err != nil {
			t.Fatal(err)
		}
	}
	w.Close()

	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Errorf("expected no backups, stat returned: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second-line\n" {
		t.Errorf("current file = %q", data)
	}
}

func TestRotatingFileWriter_ConcurrentWrites(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")
	w := newTinyWriter(t, path, 1024, 50)

	const writers, perWriter = 8, 50
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWriter {
				if _, err := w.Write([]byte("writer-" + strconv.Itoa(i) + "\n")); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	w.Close()

	total := 0
	for _, p := range append([]string{path}, backups(path)...) {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		total += strings.Count(string(data), "\n")
	}
	if total != writers*perWriter {
		t.Errorf("expected %d lines across files, got %d", writers*perWriter, total)
	}
}

func backups(path string) []string {
	matches, _ := filepath.Glob(path + ".*")
	return matches
}

func TestRotatingFileWriter_CreatesParentDirs(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "a", "b", "test.log")
	w, err := NewRotatingFileWriter(path, 1, 1)
	if err != nil {
		t.Fatalf("NewRotatingFileWriter: %v", err)
	}
	defer w.Close()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestRotatingFileWriter_AppendsToExisting(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := NewRotatingFileWriter(path, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if w.currentSize != 4 {
		t.Errorf("currentSize = %d, want 4", w.currentSize)
	}
	if _, err := w.Write([]byte("new\n")); err != nil {
		t.Fatal(err)
	}
	w.Close()
	data, _ := os.ReadFile(path)
	if string(data) != "old\nnew\n" {
		t.Errorf("content = %q", data)
	}
}

func TestRotatingFileWriter_Clamps(t *testing.T) {
	t.Parallel()
	w, err := NewRotatingFileWriter(filepath.Join(t.TempDir(), "test.log"), 0, -3)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if w.maxSizeBytes != 1024*1024 || w.maxFiles != 0 {
		t.Errorf("got maxSizeBytes=%d maxFiles=%d", w.maxSizeBytes, w.maxFiles)
	}
}
