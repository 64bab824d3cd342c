package builtin

import (
	"strings"
	"time"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/program"
	"github.com/joeycumines/linkterm/internal/shell"
	"github.com/joeycumines/linkterm/internal/theme"
)

// CatCommand prints a file.
type CatCommand struct {
	*shell.BaseCommand
	animate *bool
}

// NewCatCommand creates cat. A nil animate defers to the active theme.
func NewCatCommand(animate *bool) *CatCommand {
	return &CatCommand{
		BaseCommand: shell.NewBaseCommand(
			"cat",
			"Display file contents",
			"cat <file>",
			shell.Navigation,
		),
		animate: animate,
	}
}

func (c *CatCommand) Execute(s *shell.Session, inv shell.Invocation, out *output.Buffer) error {
	if inv.HasFlag('h', "help") {
		out.Println("Usage: cat [FILE]...")
		out.Println("Concatenate FILE(s) to standard output.")
		return nil
	}
	name := inv.Arg(0)
	if name == "" {
		return shell.WithHint(shell.MissingArgument("file operand"), "Try 'cat --help' for more information.")
	}
	_, id, err := s.Resolver().Resolve(s.CurrentPath(), name)
	if err != nil {
		return fileError(name, err)
	}
	n := s.FS().Node(id)
	switch {
	case n.IsDir():
		return fileError(name, ErrIsADirectory)
	case n.Content == "":
		return fileError(name, ErrEmptyFile)
	}

	lines := strings.Split(n.Content, "\n")
	if c.animated(s) {
		s.Launch(NewReveal(lines), out)
		return nil
	}
	for _, l := range lines {
		out.Println(l)
	}
	return nil
}

func (c *CatCommand) animated(s *shell.Session) bool {
	if c.animate != nil {
		return *c.animate
	}
	return theme.MustGet(s.Theme()).Animated
}

func (c *CatCommand) CompleteArg(s *shell.Session, partial string) []string {
	return s.EntriesWithPrefix(partial, false)
}

// Reveal pacing.
const (
	revealIntro     = 1200 * time.Millisecond
	revealChar      = 15 * time.Millisecond
	revealSpace     = 50 * time.Millisecond
	revealLineBreak = 300 * time.Millisecond
	revealOutro     = 1100 * time.Millisecond
)

type revealStep struct {
	// wait precedes the step
	wait time.Duration
	r    rune
	// newline ends the current line instead of adding r
	newline bool
	// final completes the reveal
	final bool
}

// Reveal types out file content a character at a time. Interrupting it
// keeps what has been shown so far; letting it finish yields the content
// unchanged.
type Reveal struct {
	content []string
	steps   []revealStep
	next    int

	done    []string
	partial []rune
	phase   program.Phase
	cut     bool
}

// NewReveal prepares a reveal of lines.
func NewReveal(lines []string) *Reveal {
	r := &Reveal{content: lines}
	wait := revealIntro
	for _, line := range lines {
		for _, ch := range line {
			r.steps = append(r.steps, revealStep{wait: wait, r: ch})
			wait = revealChar
			if ch == ' ' || ch == '\t' {
				wait = revealSpace
			}
		}
		r.steps = append(r.steps, revealStep{wait: wait, newline: true})
		wait = revealLineBreak
	}
	r.steps = append(r.steps, revealStep{wait: wait + revealOutro, final: true})
	return r
}

func (r *Reveal) Name() string { return "cat" }

func (r *Reveal) Start() {
	if r.phase == program.NotStarted {
		r.phase = program.Running
	}
}

func (r *Reveal) HandleKey(k program.Key) {
	if k.IsCancel() {
		r.Interrupt()
	}
}

func (r *Reveal) Tick() {
	if r.phase != program.Running || r.next >= len(r.steps) {
		return
	}
	step := r.steps[r.next]
	r.next++
	switch {
	case step.final:
		r.phase = program.Ended
	case step.newline:
		r.done = append(r.done, string(r.partial))
		r.partial = r.partial[:0]
	default:
		r.partial = append(r.partial, step.r)
	}
}

func (r *Reveal) Interval() time.Duration {
	if r.phase != program.Running || r.next >= len(r.steps) {
		return 0
	}
	return r.steps[r.next].wait
}

func (r *Reveal) Interrupt() {
	if r.phase == program.Ended {
		return
	}
	r.phase = program.Ended
	r.cut = true
}

func (r *Reveal) Phase() program.Phase { return r.phase }

func (r *Reveal) View() []output.Line {
	lines := make([]output.Line, 0, len(r.done)+1)
	for _, l := range r.done {
		lines = append(lines, output.Line{Text: l})
	}
	return append(lines, output.Line{Text: string(r.partial) + "▋"})
}

func (r *Reveal) Summary() output.Output {
	var b output.Buffer
	if !r.cut {
		for _, l := range r.content {
			b.Println(l)
		}
		return b.Output()
	}
	for _, l := range r.done {
		b.Println(l)
	}
	b.Println(string(r.partial))
	b.Info("^C")
	return b.Output()
}

var _ program.Program = (*Reveal)(nil)
