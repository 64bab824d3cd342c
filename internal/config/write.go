package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeycumines/linkterm/internal/storage"
)

// SetOptionInFile sets key in section ("" for the global block) of the
// config file at path, creating the file if needed. Comments, blank lines and
// every other option are kept as written. An existing line for key is
// rewritten in place; otherwise the option is added at the end of its block,
// and a missing section gets a new header at the end of the file.
func SetOptionInFile(path, section, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config file: %w", err)
	}
	var lines []string
	if len(data) > 0 {
		lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	}

	entry := key
	if value != "" {
		entry += " " + value
	}
	lines = setOption(lines, section, key, entry)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return storage.AtomicWriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

// setOption returns lines with entry written for key in section.
func setOption(lines []string, section, key, entry string) []string {
	current := ""
	start, end := -1, -1 // the section's block: header+1 up to the next header
	if section == "" {
		start = 0
	}
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if name, ok := sectionHeader(trimmed); ok {
			if current == section && end < 0 && start >= 0 {
				end = i
			}
			current = name
			if name == section && start < 0 {
				start = i + 1
			}
			continue
		}
		if current != section || trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if name, _, _ := strings.Cut(trimmed, " "); name == key {
			lines[i] = entry
			return lines
		}
	}

	switch {
	case start < 0:
		if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) != "" {
			lines = append(lines, "")
		}
		return append(lines, "["+section+"]", entry)
	case end < 0:
		end = len(lines)
	}
	// after the block's last option, so trailing blank lines stay between blocks
	at := end
	for at > start && strings.TrimSpace(lines[at-1]) == "" {
		at--
	}
	return append(lines[:at], append([]string{entry}, lines[at:]...)...)
}

func sectionHeader(trimmed string) (string, bool) {
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return "", false
	}
	return strings.TrimSpace(strings.Trim(trimmed, "[]")), true
}
