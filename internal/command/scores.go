package command

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joeycumines/linkterm/internal/config"
	"github.com/joeycumines/linkterm/internal/storage"
)

// ScoresCommand prints the stored best scores.
type ScoresCommand struct {
	*BaseCommand
	config  *config.Config
	backend string
	dir     string
}

// NewScoresCommand creates a new scores command.
func NewScoresCommand(cfg *config.Config) *ScoresCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &ScoresCommand{
		BaseCommand: NewBaseCommand("scores", "Show best game scores", "scores [options]"),
		config:      cfg,
	}
}

// SetupFlags configures the flags for the scores command.
func (c *ScoresCommand) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.backend, "backend", "", "Scores backend, one of "+strings.Join(storage.BackendNames(), ", ")+" (overrides scores.backend)")
	fs.StringVar(&c.dir, "dir", "", "Scores directory (overrides scores.dir)")
}

// Execute lists every record, sorted by key.
func (c *ScoresCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}
	settings, err := config.Resolve(c.config)
	if err != nil {
		return err
	}
	name, dir := settings.ScoresBackend, expandHome(settings.ScoresDir)
	if c.backend != "" {
		name = c.backend
	}
	if c.dir != "" {
		dir = c.dir
	}

	backend, err := storage.GetBackend(name, dir)
	if err != nil {
		return err
	}
	defer backend.Close()
	records, err := backend.All()
	if err != nil {
		return fmt.Errorf("failed to read scores: %w", err)
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(stdout, "No scores recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "GAME\tBEST\tUPDATED")
	for _, key := range sortedKeys(records) {
		r := records[key]
		updated := "-"
		if !r.UpdatedAt.IsZero() {
			updated = r.UpdatedAt.Local().Format(time.DateTime)
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", key, r.Value, updated)
	}
	return w.Flush()
}
