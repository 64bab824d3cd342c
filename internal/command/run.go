package command

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/joeycumines/linkterm/internal/builtin"
	"github.com/joeycumines/linkterm/internal/config"
	"github.com/joeycumines/linkterm/internal/games/typing"
	"github.com/joeycumines/linkterm/internal/lineui"
	"github.com/joeycumines/linkterm/internal/logging"
	"github.com/joeycumines/linkterm/internal/shell"
	"github.com/joeycumines/linkterm/internal/storage"
	"github.com/joeycumines/linkterm/internal/theme"
	"github.com/joeycumines/linkterm/internal/tui"
	"github.com/joeycumines/linkterm/internal/vfs"
)

// RunCommand starts a terminal session.
type RunCommand struct {
	*BaseCommand
	config  *config.Config
	version string
	stdin   io.Reader

	script   string
	logFile  string
	logLevel string
	theme    string
	mode     string
	snapshot string
	user     string
	noColor  bool
}

// NewRunCommand creates a new run command.
func NewRunCommand(cfg *config.Config, version string) *RunCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &RunCommand{
		BaseCommand: NewBaseCommand(
			"run",
			"Start the terminal (full-screen, line mode, or a batch of commands)",
			"run [options]",
		),
		config:  cfg,
		version: version,
		stdin:   os.Stdin,
	}
}

// SetupFlags configures the flags for the run command.
func (c *RunCommand) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.script, "c", "", "Run ';'-separated commands and exit")
	fs.StringVar(&c.logFile, "log-file", "", "Path to log file (overrides config log.file)")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&c.theme, "theme", "", "Colour theme (overrides terminal.theme)")
	fs.StringVar(&c.mode, "mode", "", "Front-end: tui or line (overrides terminal.mode)")
	fs.StringVar(&c.snapshot, "snapshot", "", "Filesystem snapshot file (.json, .yaml, .toml)")
	fs.StringVar(&c.user, "user", "", "User name shown in the prompt")
	fs.BoolVar(&c.noColor, "no-color", false, "Disable colour in line and batch output")
}

// Execute runs the terminal until exit.
func (c *RunCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}

	settings, err := c.settings()
	if err != nil {
		return err
	}

	closer, err := logging.Setup(logging.FromSettings(settings, expandHome(c.logFile), c.logLevel))
	if err != nil {
		return err
	}
	defer closer.Close()
	// load warnings are the schema issues; repeat them into the log file
	for _, w := range c.config.GetWarnings() {
		slog.Warn("[Config] " + w)
	}

	s, scores, err := c.newSession(settings, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := scores.Close(); err != nil {
			slog.Warn("failed to close scores backend", "error", err)
		}
	}()
	slog.Info("session started", "session", s.ID(), "mode", settings.Mode, "user", s.User(), "theme", s.Theme())

	noColor := c.noColor || os.Getenv("NO_COLOR") != "" || !isTerminal(stdout)
	if c.script != "" {
		return lineui.RunBatch(s, c.script, stdout, noColor)
	}
	if !isTerminal(c.stdin) {
		lines, err := readLines(c.stdin)
		if err != nil {
			return err
		}
		return lineui.RunLines(s, lines, stdout, noColor)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	if settings.Mode == "line" {
		return lineui.Run(ctx, s, lineui.Options{
			HistoryFile: settings.HistoryFile,
			HistorySize: settings.HistorySize,
			NoColor:     noColor,
			Output:      stdout,
			GameOptions: []tea.ProgramOption{tea.WithOutput(stdout)},
		})
	}
	return tui.Run(ctx, s, tea.WithInput(c.stdin), tea.WithOutput(stdout))
}

// settings resolves the config and applies flag overrides.
func (c *RunCommand) settings() (config.Settings, error) {
	settings, err := config.Resolve(c.config)
	if err != nil {
		return settings, err
	}
	if c.theme != "" {
		settings.Theme = c.theme
	}
	if c.mode != "" {
		settings.Mode = c.mode
	}
	if c.snapshot != "" {
		settings.SnapshotPath = c.snapshot
	}
	if c.user != "" {
		settings.User = c.user
	}
	if settings.Mode != "tui" && settings.Mode != "line" {
		return settings, fmt.Errorf("invalid mode %q: want tui or line", settings.Mode)
	}
	if _, ok := theme.Get(settings.Theme); !ok {
		return settings, fmt.Errorf("unknown theme %q (available: %s)", settings.Theme, strings.Join(theme.Names(), ", "))
	}
	settings.HistoryFile = expandHome(settings.HistoryFile)
	settings.SnapshotPath = expandHome(settings.SnapshotPath)
	settings.ScoresDir = expandHome(settings.ScoresDir)
	settings.LogFile = expandHome(settings.LogFile)
	return settings, nil
}

func (c *RunCommand) newSession(settings config.Settings, stdout io.Writer) (*shell.Session, storage.Backend, error) {
	fs, err := loadSnapshot(settings.SnapshotPath)
	if err != nil {
		return nil, nil, err
	}
	difficulty, ok := typing.ParseDifficulty(settings.TypingDifficulty)
	if !ok {
		return nil, nil, fmt.Errorf("invalid [typing] difficulty %q", settings.TypingDifficulty)
	}

	reg := shell.NewRegistry()
	if err := builtin.Register(reg, builtin.Options{
		Version:          c.version,
		SnakeTick:        settings.SnakeTick,
		TypingDifficulty: difficulty,
		CatAnimate:       settings.CatAnimate,
	}); err != nil {
		return nil, nil, err
	}

	scores, err := storage.GetBackend(settings.ScoresBackend, settings.ScoresDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open scores: %w", err)
	}

	width := settings.Width
	if width <= 0 {
		width = terminalWidth(stdout)
	}
	s, err := shell.New(shell.Options{
		FS:          fs,
		Registry:    reg,
		User:        settings.User,
		HomeUser:    settings.HomeUser,
		Hostname:    settings.Hostname,
		HistorySize: settings.HistorySize,
		Width:       width,
		Theme:       settings.Theme,
		Scores:      scores,
	})
	if err != nil {
		_ = scores.Close()
		return nil, nil, err
	}
	return s, scores, nil
}

func loadSnapshot(path string) (*vfs.FS, error) {
	if path == "" {
		return vfs.Default()
	}
	fs, err := vfs.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", path, err)
	}
	return fs, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth is the column count of w, or zero when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
