// Package shell implements the terminal command interpreter: line parsing,
// the command registry, and the per-terminal session state that commands
// operate on.
package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/program"
	"github.com/joeycumines/linkterm/internal/vfs"
)

const (
	DefaultHistorySize = 100
	DefaultWidth       = 80
	DefaultUser        = "guest"
	DefaultHostname    = "linkterm"
	DefaultTheme       = "default"
)

// Options configures a Session.
type Options struct {
	// FS is the snapshot the session navigates. Required.
	FS *vfs.FS
	// Registry resolves command names. Required.
	Registry *Registry
	// User is the logged-in user name.
	User string
	// HomeUser owns the home directory, /home/<HomeUser>. Defaults to the
	// snapshot's only home directory, then User.
	HomeUser string
	Hostname string
	// HistorySize bounds the history. Zero means DefaultHistorySize.
	HistorySize int
	// Width is the display width in columns.
	Width int
	Theme string
	// Scores persists program results; nil discards them.
	Scores program.Scores
	// Now and Rand are injectable for tests.
	Now  func() time.Time
	Rand *rand.Rand
}

// Session is one terminal instance: the interpreter together with its
// working directory, history, and the program host that owns input while a
// game runs. A Session is not safe for concurrent SubmitLine calls.
type Session struct {
	id          string
	registry    *Registry
	resolver    *vfs.Resolver
	cwd         vfs.Path
	history     []string
	historySize int
	user        string
	hostname    string
	width       int
	theme       string
	scores      program.Scores
	now         func() time.Time
	started     time.Time
	rand        *rand.Rand
	host        program.Host
	exit        bool
}

// New creates a Session positioned at the home directory.
func New(opts Options) (*Session, error) {
	if opts.FS == nil {
		return nil, errors.New("shell: filesystem is required")
	}
	if opts.Registry == nil {
		return nil, errors.New("shell: registry is required")
	}
	s := &Session{
		id:          uuid.NewString(),
		registry:    opts.Registry,
		historySize: opts.HistorySize,
		user:        opts.User,
		hostname:    opts.Hostname,
		width:       opts.Width,
		theme:       opts.Theme,
		scores:      opts.Scores,
		now:         opts.Now,
		rand:        opts.Rand,
	}
	if s.historySize <= 0 {
		s.historySize = DefaultHistorySize
	}
	if s.user == "" {
		s.user = DefaultUser
	}
	if s.hostname == "" {
		s.hostname = DefaultHostname
	}
	if s.width <= 0 {
		s.width = DefaultWidth
	}
	if s.theme == "" {
		s.theme = DefaultTheme
	}
	if s.scores == nil {
		s.scores = discardScores{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.started = s.now()
	if s.rand == nil {
		s.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	homeUser := opts.HomeUser
	if homeUser == "" {
		homeUser = vfs.HomeUser(opts.FS)
	}
	if homeUser == "" {
		homeUser = s.user
	}
	resolver, err := vfs.NewResolver(opts.FS, vfs.Path{"home", homeUser})
	if err != nil {
		return nil, fmt.Errorf("shell: %w", err)
	}
	s.resolver = resolver
	s.cwd = resolver.Home()
	return s, nil
}

// ID uniquely identifies the session in logs.
func (s *Session) ID() string { return s.id }

// SubmitLine interprets one input line. Blank lines do nothing. Every other
// line is appended to history whether or not it succeeds. While a program
// owns input the line is ignored.
func (s *Session) SubmitLine(line string) output.Output {
	if s.host.Busy() {
		slog.Debug("line ignored while program active", "session", s.id)
		return output.Output{}
	}
	inv, ok := ParseLine(line)
	if !ok {
		return output.Output{}
	}
	s.appendHistory(inv.Line)

	cmd, found := s.registry.Lookup(inv.Name)
	var out output.Buffer
	err := s.execute(cmd, inv, &out)
	slog.Debug("command executed", "session", s.id, "command", inv.Name, "found", found, "error", err)
	if err != nil {
		renderError(&out, inv.Name, err)
	}
	res := out.Output()
	res.Failed = err != nil
	return res
}

func (s *Session) execute(cmd Command, inv Invocation, out *output.Buffer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("command panicked", "session", s.id, "command", inv.Name, "panic", r)
			s.host.Abort()
			err = &HandlerFault{Command: inv.Name, Value: r}
		}
	}()
	return cmd.Execute(s, inv, out)
}

func renderError(out *output.Buffer, name string, err error) {
	var (
		notFound *NotFoundError
		fault    *HandlerFault
	)
	switch {
	case errors.As(err, &notFound):
		out.Error(notFound.Error())
	case errors.As(err, &fault):
		out.Error(fault.Error())
	default:
		out.Error(name + ": " + err.Error())
	}
	var hinted interface{ Hint() string }
	if errors.As(err, &hinted) && hinted.Hint() != "" {
		out.Info(hinted.Hint())
	}
}

func (s *Session) appendHistory(line string) {
	s.history = append(s.history, line)
	if over := len(s.history) - s.historySize; over > 0 {
		s.history = append(s.history[:0:0], s.history[over:]...)
	}
}

// History returns a copy of the submitted lines, oldest first.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// CurrentPath returns a copy of the working directory.
func (s *Session) CurrentPath() vfs.Path { return s.cwd.Clone() }

// SetCurrentPath replaces the working directory. It is used by cd once the
// target has been resolved.
func (s *Session) SetCurrentPath(p vfs.Path) { s.cwd = p.Clone() }

// DisplayPath renders the working directory in tilde form.
func (s *Session) DisplayPath() string { return s.resolver.Display(s.cwd) }

// Prompt renders "<user>:<cwd>$ ".
func (s *Session) Prompt() string { return s.user + ":" + s.DisplayPath() + "$ " }

func (s *Session) Resolver() *vfs.Resolver { return s.resolver }
func (s *Session) FS() *vfs.FS             { return s.resolver.FS() }
func (s *Session) Registry() *Registry     { return s.registry }
func (s *Session) User() string            { return s.user }
func (s *Session) Hostname() string        { return s.hostname }
func (s *Session) Width() int              { return s.width }
func (s *Session) Theme() string           { return s.theme }
func (s *Session) Scores() program.Scores  { return s.scores }
func (s *Session) Now() time.Time          { return s.now() }
func (s *Session) Started() time.Time      { return s.started }
func (s *Session) Rand() *rand.Rand        { return s.rand }

// SetWidth updates the display width, ignoring non-positive values.
func (s *Session) SetWidth(w int) {
	if w > 0 {
		s.width = w
	}
}

// SetTheme records the active theme name. Validation is the caller's job.
func (s *Session) SetTheme(name string) { s.theme = name }

// RequestExit asks the front-end to close the terminal.
func (s *Session) RequestExit() { s.exit = true }

// ExitRequested reports whether exit has been requested.
func (s *Session) ExitRequested() bool { return s.exit }

// Launch hands input to p. Any summary produced by an immediate end is
// written to out.
func (s *Session) Launch(p program.Program, out *output.Buffer) {
	if summary, done := s.host.Launch(p); done {
		out.Lines(summary.Lines...)
	}
}

// IsBusy reports whether an interactive program owns input.
func (s *Session) IsBusy() bool { return s.host.Busy() }

// ProgramContext is cancelled when the active program ends.
func (s *Session) ProgramContext() context.Context { return s.host.Context() }

// HandleKey routes a keystroke to the active program. When the program ends,
// done is set and the summary returned.
func (s *Session) HandleKey(k program.Key) (summary output.Output, done bool) {
	defer s.recoverProgram(&summary, &done)
	return s.host.HandleKey(k)
}

// NextTick schedules the active program's next tick, if it wants one.
func (s *Session) NextTick() (program.Token, time.Duration, bool) { return s.host.NextTick() }

// Tick delivers a tick scheduled by NextTick.
func (s *Session) Tick(tok program.Token) (summary output.Output, done bool) {
	defer s.recoverProgram(&summary, &done)
	return s.host.Tick(tok)
}

// Interrupt forwards a cancel to whichever consumer owns input. With no
// program running there is nothing to cancel and the result is empty.
func (s *Session) Interrupt() (summary output.Output, done bool) {
	defer s.recoverProgram(&summary, &done)
	return s.host.Interrupt()
}

// ProgramView renders the active program's current frame.
func (s *Session) ProgramView() []output.Line { return s.host.View() }

func (s *Session) recoverProgram(summary *output.Output, done *bool) {
	r := recover()
	if r == nil {
		return
	}
	name := "program"
	if p := s.host.Active(); p != nil {
		name = p.Name()
	}
	slog.Error("program panicked", "session", s.id, "program", name, "panic", r)
	s.host.Abort()
	*summary = output.ErrorLine((&HandlerFault{Command: name, Value: r}).Error())
	*done = true
}

type discardScores struct{}

func (discardScores) Best(string) (int, bool, error) { return 0, false, nil }
func (discardScores) Submit(_ string, v int) (int, bool, error) {
	return v, false, nil
}
