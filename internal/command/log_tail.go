package command

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/joeycumines/linkterm/internal/config"
)

// defaultLogLines is how many trailing lines log prints without -n.
const defaultLogLines = 10

// Follow polling cadence.
const (
	followInterval  = 200 * time.Millisecond
	waitFilePoll    = 500 * time.Millisecond
	waitFileTimeout = 30 * time.Second
)

// LogCommand prints or follows the session log written by 'run'.
type LogCommand struct {
	*BaseCommand
	config *config.Config
	follow bool
	lines  int
	file   string
}

// NewLogCommand creates a new log command.
func NewLogCommand(cfg *config.Config) *LogCommand {
	return &LogCommand{
		BaseCommand: NewBaseCommand("log", "View and tail the session log", "log [tail] [options]"),
		config:      cfg,
		lines:       defaultLogLines,
	}
}

// SetupFlags configures the flags for the log command.
func (c *LogCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.follow, "f", false, "Follow the log file (like tail -f)")
	fs.BoolVar(&c.follow, "follow", false, "Follow the log file (like tail -f)")
	fs.IntVar(&c.lines, "n", defaultLogLines, "Number of lines to show from the end of the file")
	fs.StringVar(&c.file, "file", "", "Path to log file (overrides config log.file)")
}

// Execute runs the log command. "log tail" is the same as "log --follow".
func (c *LogCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "tail" {
		c.follow = true
		args = args[1:]
	}
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unknown subcommand: %s\n", args[0])
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}

	logPath := c.file
	if logPath == "" {
		logPath = resolveLogPath(c.config)
	}
	if logPath == "" {
		_, _ = fmt.Fprintln(stderr, "No log file configured. Use --file or set log.file in config.")
		return fmt.Errorf("no log file configured")
	}

	if c.follow {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return c.tailFollow(ctx, logPath, stdout, stderr)
	}
	return c.tailLines(logPath, stdout, stderr)
}

// resolveLogPath returns log.file after env and config resolution.
func resolveLogPath(cfg *config.Config) string {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return expandHome(config.DefaultSchema().Resolve(cfg, "log.file"))
}

func (c *LogCommand) tailLines(logPath string, stdout, stderr io.Writer) error {
	f, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			_, _ = fmt.Fprintf(stderr, "Log file does not exist: %s\n", logPath)
			return fmt.Errorf("log file not found: %s", logPath)
		}
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	for _, line := range readLastNLines(f, c.lines) {
		_, _ = fmt.Fprintln(stdout, line)
	}
	return nil
}

// readLastNLines returns the last n lines of r, holding at most n in memory.
func readLastNLines(r io.Reader, n int) []string {
	if n <= 0 {
		return nil
	}
	ring := make([]string, n)
	count := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		ring[count%n] = scanner.Text()
		count++
	}
	if count == 0 {
		return nil
	}
	total := min(count, n)
	result := make([]string, total)
	start := count - total
	for i := range total {
		result[i] = ring[(start+i)%n]
	}
	return result
}

// tailFollow prints the last lines, then new lines as they are written,
// until ctx is cancelled.
func (c *LogCommand) tailFollow(ctx context.Context, logPath string, stdout, stderr io.Writer) error {
	f, err := os.Open(logPath)
	if os.IsNotExist(err) {
		_, _ = fmt.Fprintf(stderr, "Waiting for log file: %s\n", logPath)
		f, err = waitForFile(ctx, logPath)
	}
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	for _, line := range readLastNLines(f, c.lines) {
		_, _ = fmt.Fprintln(stdout, line)
	}
	pos, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to seek to end: %w", err)
	}
	err = followFile(ctx, f, logPath, pos, stdout, stderr)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// followFile polls f for appended lines. When the file at logPath shrinks
// below pos or disappears, it has been rotated and is reopened.
func followFile(ctx context.Context, f *os.File, logPath string, pos int64, stdout, stderr io.Writer) error {
	reader := bufio.NewReader(f)
	ticker := time.NewTicker(followInterval)
	defer ticker.Stop()
	defer func() { _ = f.Close() }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		rotated, err := detectRotation(logPath, pos)
		if err != nil {
			_ = f.Close()
			_, _ = fmt.Fprintln(stderr, "Log file rotated, waiting for new file...")
			if f, err = waitForFile(ctx, logPath); err != nil {
				return err
			}
			reader, pos = bufio.NewReader(f), 0
			continue
		}
		if rotated {
			_ = f.Close()
			if f, err = os.Open(logPath); err != nil {
				continue
			}
			reader, pos = bufio.NewReader(f), 0
		}

		for {
			line, err := reader.ReadString('\n')
			if len(line) > 0 {
				pos += int64(len(line))
				if line[len(line)-1] == '\n' {
					line = line[:len(line)-1]
				}
				_, _ = fmt.Fprintln(stdout, line)
			}
			if err != nil {
				break
			}
		}
	}
}

// detectRotation reports whether the file at logPath is now shorter than
// pos. An error means the file is gone.
func detectRotation(logPath string, pos int64) (bool, error) {
	info, err := os.Stat(logPath)
	if err != nil {
		return false, err
	}
	return info.Size() < pos, nil
}

// waitForFile polls for path to appear.
func waitForFile(ctx context.Context, path string) (*os.File, error) {
	ctx, cancel := context.WithTimeout(ctx, waitFileTimeout)
	defer cancel()
	ticker := time.NewTicker(waitFilePoll)
	defer ticker.Stop()
	for {
		f, err := os.Open(path)
		if err == nil {
			return f, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for log file: %s", path)
		case <-ticker.C:
		}
	}
}
