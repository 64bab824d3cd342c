// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joeycumines/linkterm/internal/config"
)

// Options selects where records go and at what level.
type Options struct {
	// File is the log path. Empty discards all records.
	File      string
	Level     string
	MaxSizeMB int
	MaxFiles  int
}

// FromSettings builds Options from resolved config, letting non-empty flag
// values win.
func FromSettings(s config.Settings, flagPath, flagLevel string) Options {
	opts := Options{
		File:      s.LogFile,
		Level:     s.LogLevel,
		MaxSizeMB: s.LogMaxSizeMB,
		MaxFiles:  s.LogMaxFiles,
	}
	if flagPath != "" {
		opts.File = flagPath
	}
	if flagLevel != "" {
		opts.Level = flagLevel
	}
	return opts
}

// ParseLevel accepts debug, info, warn and error, case-insensitively. The
// empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", s)
	}
}

// New builds a logger for opts. The returned closer releases the log file
// and is never nil.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.File == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
	w, err := NewRotatingFileWriter(opts.File, opts.MaxSizeMB, opts.MaxFiles)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), w, nil
}

// Setup installs the logger for opts as the slog default.
func Setup(opts Options) (io.Closer, error) {
	logger, closer, err := New(opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
