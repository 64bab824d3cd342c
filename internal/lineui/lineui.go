// Package lineui is the line-oriented front-end: a go-prompt REPL for
// terminals where the full-screen interface is unwanted, and a batch runner
// for scripted command lines.
package lineui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	prompt "github.com/joeycumines/go-prompt"
	istrings "github.com/joeycumines/go-prompt/strings"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/shell"
	"github.com/joeycumines/linkterm/internal/tui"
)

// Options configures Run.
type Options struct {
	// HistoryFile persists submitted lines between runs. Empty disables it.
	HistoryFile string
	// HistorySize bounds the persisted history.
	HistorySize int
	NoColor     bool
	// Output receives command results. Defaults to os.Stdout.
	Output io.Writer
	// Reader replaces the terminal input of the prompt.
	Reader prompt.Reader
	// GameOptions are passed to the bubbletea program hosting a game.
	GameOptions []tea.ProgramOption
}

type repl struct {
	ctx      context.Context
	session  *shell.Session
	renderer *Renderer
	opts     Options
	history  []string
}

func newREPL(ctx context.Context, s *shell.Session, opts Options) *repl {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = shell.DefaultHistorySize
	}
	return &repl{
		ctx:      ctx,
		session:  s,
		renderer: NewRenderer(opts.Output, opts.NoColor),
		opts:     opts,
		history:  loadHistory(opts.HistoryFile, opts.HistorySize),
	}
}

// Run reads lines until exit is requested or input ends.
func Run(ctx context.Context, s *shell.Session, opts Options) error {
	r := newREPL(ctx, s, opts)
	if err := r.renderer.Render(s.Welcome()); err != nil {
		return err
	}

	options := []prompt.Option{
		prompt.WithPrefixCallback(s.Prompt),
		prompt.WithCompleter(r.complete),
		prompt.WithHistory(append([]string(nil), r.history...)),
		prompt.WithExitChecker(func(string, bool) bool {
			return s.ExitRequested() || ctx.Err() != nil
		}),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithInputTextColor(prompt.DefaultColor),
		prompt.WithSuggestionBGColor(prompt.DarkGray),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkGray),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithSelectedDescriptionBGColor(prompt.Cyan),
		prompt.WithSelectedDescriptionTextColor(prompt.Black),
	}
	if opts.Reader != nil {
		options = append(options, prompt.WithReader(opts.Reader))
	}

	slog.Info("line mode started", "session", s.ID())
	prompt.New(r.execute, options...).Run()
	slog.Info("line mode stopped", "session", s.ID(), "commands", len(s.History()))
	return nil
}

// execute runs one submitted line. A launched game takes over the screen
// until it ends, then its summary is printed.
func (r *repl) execute(line string) {
	out := r.session.SubmitLine(line)
	if line = strings.TrimSpace(line); line != "" {
		r.remember(line)
	}
	r.render(out)
	if !r.session.IsBusy() {
		return
	}
	summary, err := tui.RunGame(r.ctx, r.session, r.opts.GameOptions...)
	if err != nil {
		slog.Error("game host failed", "session", r.session.ID(), "error", err)
		summary = output.Append(summary, output.ErrorLine(err.Error()))
	}
	r.render(summary)
}

func (r *repl) render(out output.Output) {
	if err := r.renderer.Render(out); err != nil {
		slog.Error("failed to render output", "session", r.session.ID(), "error", err)
	}
}

func (r *repl) remember(line string) {
	r.history = append(r.history, line)
	if over := len(r.history) - r.opts.HistorySize; over > 0 {
		r.history = r.history[over:]
	}
	if err := saveHistory(r.opts.HistoryFile, r.history); err != nil {
		slog.Warn("failed to save history", "file", r.opts.HistoryFile, "error", err)
	}
}

func (r *repl) complete(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	before := d.TextBeforeCursor()
	suggestions, start := r.suggestions(before)
	return suggestions, istrings.RuneNumber(start), istrings.RuneNumber(runeLen(before))
}

// suggestions completes the token under the cursor. start is the rune index
// where that token begins.
func (r *repl) suggestions(before string) (suggestions []prompt.Suggest, start int) {
	word := before[strings.LastIndex(before, " ")+1:]
	start = runeLen(before) - runeLen(word)
	if strings.TrimSpace(before) == "" {
		return nil, start
	}
	_, candidates := r.session.Complete(before)
	first := !strings.Contains(before, " ")
	for _, c := range candidates {
		sug := prompt.Suggest{Text: c[strings.LastIndex(c, " ")+1:]}
		if first {
			if cmd, ok := r.session.Registry().Lookup(sug.Text); ok {
				sug.Description = cmd.Description()
			}
		}
		suggestions = append(suggestions, sug)
	}
	return suggestions, start
}

func runeLen(s string) int { return len([]rune(s)) }

// RunBatch submits each ';'-separated command of script in order. See
// RunLines.
func RunBatch(s *shell.Session, script string, w io.Writer, noColor bool) error {
	return RunLines(s, strings.Split(script, ";"), w, noColor)
}

// RunLines submits lines in order, echoing each after the prompt. Blank
// lines are skipped. Launched programs are interrupted straight away and
// their summaries printed. Execution stops after exit. The error reports how
// many commands failed.
func RunLines(s *shell.Session, lines []string, w io.Writer, noColor bool) error {
	r := NewRenderer(w, noColor)
	var total, failed int
	for _, line := range lines {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		total++
		echo := output.Line{Text: s.Prompt() + line, Style: output.Echo}
		out := s.SubmitLine(line)
		if s.IsBusy() {
			summary, _ := s.Interrupt()
			out = output.Append(out, summary)
		}
		if out.Failed {
			failed++
		}
		out.Clear = false
		out.Lines = append([]output.Line{echo}, out.Lines...)
		if err := r.Render(out); err != nil {
			return err
		}
		if s.ExitRequested() {
			break
		}
	}
	slog.Debug("batch finished", "session", s.ID(), "commands", total, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d commands failed", failed, total)
	}
	return nil
}
