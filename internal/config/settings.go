package config

import (
	"fmt"
	"strconv"
	"time"
)

// Settings is the typed view of a Config after environment overrides and
// schema defaults have been applied.
type Settings struct {
	User         string
	HomeUser     string
	Hostname     string
	Width        int
	Theme        string
	Mode         string
	HistorySize  int
	HistoryFile  string
	SnapshotPath string

	ScoresBackend string
	ScoresDir     string

	LogFile      string
	LogLevel     string
	LogMaxSizeMB int
	LogMaxFiles  int

	SnakeTick        time.Duration
	TypingDifficulty string
	// CatAnimate is nil when unset, leaving the choice to the theme.
	CatAnimate *bool
}

// Resolve builds Settings from c using the default schema.
func Resolve(c *Config) (Settings, error) {
	r := resolver{schema: DefaultSchema(), config: c}
	s := Settings{
		User:             r.str("", "terminal.user"),
		HomeUser:         r.str("", "terminal.home-user"),
		Hostname:         r.str("", "terminal.hostname"),
		Width:            r.integer("", "terminal.width"),
		Theme:            r.str("", "terminal.theme"),
		Mode:             r.str("", "terminal.mode"),
		HistorySize:      r.integer("", "history.size"),
		HistoryFile:      r.str("", "history.file"),
		SnapshotPath:     r.str("", "snapshot.path"),
		ScoresBackend:    r.str("", "scores.backend"),
		ScoresDir:        r.str("", "scores.dir"),
		LogFile:          r.str("", "log.file"),
		LogLevel:         r.str("", "log.level"),
		LogMaxSizeMB:     r.integer("", "log.max-size-mb"),
		LogMaxFiles:      r.integer("", "log.max-files"),
		SnakeTick:        r.duration("snake", "tick"),
		TypingDifficulty: r.str("typing", "difficulty"),
		CatAnimate:       r.optionalBool("cat", "animate"),
	}
	if r.err != nil {
		return Settings{}, r.err
	}
	switch s.Mode {
	case "tui", "line":
	default:
		return Settings{}, fmt.Errorf("invalid terminal.mode %q: want tui or line", s.Mode)
	}
	return s, nil
}

// resolver keeps the first conversion error.
type resolver struct {
	schema *ConfigSchema
	config *Config
	err    error
}

func (r *resolver) str(section, key string) string {
	return r.schema.ResolveSection(r.config, section, key)
}

func (r *resolver) fail(section, key, value string, err error) {
	if r.err != nil {
		return
	}
	if section != "" {
		key = "[" + section + "] " + key
	}
	r.err = fmt.Errorf("invalid value %q for %s: %w", value, key, err)
}

func (r *resolver) integer(section, key string) int {
	v := r.str(section, key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(section, key, v, err)
	}
	return n
}

func (r *resolver) duration(section, key string) time.Duration {
	v := r.str(section, key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(section, key, v, err)
	}
	return d
}

func (r *resolver) optionalBool(section, key string) *bool {
	v := r.str(section, key)
	if v == "" {
		return nil
	}
	b, err := parseBool(v)
	if err != nil {
		r.fail(section, key, v, err)
		return nil
	}
	return &b
}
