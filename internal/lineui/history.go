package lineui

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joeycumines/linkterm/internal/storage"
)

// loadHistory reads up to limit non-blank lines from filename, keeping the
// most recent. A missing or unreadable file yields no history.
func loadHistory(filename string, limit int) []string {
	if filename == "" {
		return nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read history file", "file", filename, "error", err)
		}
		return nil
	}
	var history []string
	for line := range strings.SplitSeq(string(content), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			history = append(history, line)
		}
	}
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history
}

func saveHistory(filename string, history []string) error {
	if filename == "" {
		return nil
	}
	var content string
	if len(history) > 0 {
		content = strings.Join(history, "\n") + "\n"
	}
	return storage.AtomicWriteFile(filename, []byte(content), 0o600)
}
