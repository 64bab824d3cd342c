package shell

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/program"
	"github.com/joeycumines/linkterm/internal/vfs"
)

type funcCommand struct {
	*BaseCommand
	run      func(s *Session, inv Invocation, out *output.Buffer) error
	complete func(s *Session, partial string) []string
}

func (c *funcCommand) Execute(s *Session, inv Invocation, out *output.Buffer) error {
	return c.run(s, inv, out)
}

type completingCommand struct{ *funcCommand }

func (c completingCommand) CompleteArg(s *Session, partial string) []string {
	return c.complete(s, partial)
}

type stubProgram struct {
	phase      program.Phase
	keys       int
	panicOnKey bool
}

func (p *stubProgram) Name() string { return "stub" }
func (p *stubProgram) Start()       { p.phase = program.Running }
func (p *stubProgram) HandleKey(k program.Key) {
	if p.panicOnKey {
		panic("bad key")
	}
	p.keys++
	if k.IsRune('q') || k.IsCancel() {
		p.phase = program.Ended
	}
}
func (p *stubProgram) Tick()                   {}
func (p *stubProgram) Interval() time.Duration { return 0 }
func (p *stubProgram) Interrupt()              { p.phase = program.Ended }
func (p *stubProgram) Phase() program.Phase    { return p.phase }
func (p *stubProgram) View() []output.Line     { return nil }
func (p *stubProgram) Summary() output.Output {
	return output.Output{Lines: []output.Line{{Text: "stub over"}}}
}

func newTestSession(t *testing.T) (*Session, *stubProgram) {
	t.Helper()
	fs, err := vfs.New(vfs.Snapshot{
		"home": {Type: "directory", Contents: map[string]*vfs.SnapshotNode{
			"user": {Type: "directory", Contents: map[string]*vfs.SnapshotNode{
				"README.md": {Type: "file", Content: "hello"},
				"projects":  {Type: "directory"},
				"pictures":  {Type: "directory"},
				".secret":   {Type: "file", Content: "x"},
			}},
		}},
	})
	require.NoError(t, err)

	stub := &stubProgram{}
	reg := NewRegistry()
	reg.MustRegister(
		&funcCommand{
			BaseCommand: NewBaseCommand("echo", "Print arguments", "echo [ARG]...", Utilities),
			run: func(_ *Session, inv Invocation, out *output.Buffer) error {
				out.Println(strings.Join(inv.Args, " "))
				return nil
			},
		},
		&funcCommand{
			BaseCommand: NewBaseCommand("fail", "Always fails", "fail", Utilities),
			run: func(*Session, Invocation, *output.Buffer) error {
				return WithHint(errors.New("it broke"), "Try again later.")
			},
		},
		&funcCommand{
			BaseCommand: NewBaseCommand("crash", "Panics", "crash", Utilities),
			run: func(*Session, Invocation, *output.Buffer) error {
				panic("kaboom")
			},
		},
		&funcCommand{
			BaseCommand: NewBaseCommand("stub", "Launches a program", "stub", Games),
			run: func(s *Session, _ Invocation, out *output.Buffer) error {
				s.Launch(stub, out)
				return nil
			},
		},
		completingCommand{&funcCommand{
			BaseCommand: NewBaseCommand("cd", "Change directory", "cd [DIR]", Navigation),
			run:         func(*Session, Invocation, *output.Buffer) error { return nil },
			complete: func(s *Session, partial string) []string {
				return s.EntriesWithPrefix(partial, true)
			},
		}},
	)
	require.NoError(t, reg.Alias("say", "echo"))

	s, err := New(Options{
		FS:          fs,
		Registry:    reg,
		HistorySize: 5,
		Now:         func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return s, stub
}

func TestSubmitLine_BlankLinesRecordNothing(t *testing.T) {
	s, _ := newTestSession(t)
	for _, line := range []string{"", "   ", "\t"} {
		out := s.SubmitLine(line)
		assert.True(t, out.IsEmpty())
	}
	assert.Empty(t, s.History())
}

func TestSubmitLine_UnknownCommand(t *testing.T) {
	s, _ := newTestSession(t)
	out := s.SubmitLine("foo")
	require.Len(t, out.Lines, 1)
	assert.Equal(t, output.Line{
		Text:  "Command not found: foo. Type 'help' for available commands.",
		Style: output.Error,
	}, out.Lines[0])
	assert.True(t, out.Failed)
	assert.Equal(t, []string{"foo"}, s.History())
}

func TestSubmitLine_UnknownCommandSuggests(t *testing.T) {
	s, _ := newTestSession(t)
	out := s.SubmitLine("ecoh hi")
	require.Len(t, out.Lines, 2)
	assert.Equal(t, output.Error, out.Lines[0].Style)
	assert.Equal(t, output.Line{Text: "Did you mean: echo?", Style: output.Info}, out.Lines[1])
}

func TestSubmitLine_Dispatch(t *testing.T) {
	s, _ := newTestSession(t)
	assert.Equal(t, "a b", s.SubmitLine("  ECHO a  -x b ").Text())
	assert.Equal(t, "via alias", s.SubmitLine("say via alias").Text())
	assert.Equal(t, []string{"ECHO a  -x b", "say via alias"}, s.History())
}

func TestSubmitLine_ErrorsAreLines(t *testing.T) {
	s, _ := newTestSession(t)

	out := s.SubmitLine("fail now")
	assert.Equal(t, []output.Line{
		{Text: "fail: it broke", Style: output.Error},
		{Text: "Try again later.", Style: output.Info},
	}, out.Lines)
	assert.True(t, out.Failed)

	out = s.SubmitLine("crash")
	assert.Equal(t, []output.Line{{Text: "crash: kaboom", Style: output.Error}}, out.Lines)
	assert.True(t, out.Failed)

	// the session survives and records both lines
	out = s.SubmitLine("echo ok")
	assert.Equal(t, "ok", out.Text())
	assert.False(t, out.Failed)
	assert.Equal(t, []string{"fail now", "crash", "echo ok"}, s.History())
}

func TestSubmitLine_HistoryBounded(t *testing.T) {
	s, _ := newTestSession(t)
	for i := range 8 {
		s.SubmitLine("echo " + string(rune('a'+i)))
	}
	assert.Equal(t, []string{"echo d", "echo e", "echo f", "echo g", "echo h"}, s.History())
}

func TestSession_ProgramOwnsInput(t *testing.T) {
	s, stub := newTestSession(t)
	assert.False(t, s.IsBusy())

	out := s.SubmitLine("stub")
	assert.True(t, out.IsEmpty())
	require.True(t, s.IsBusy())

	// lines are not interpreted while the program runs
	assert.True(t, s.SubmitLine("echo hi").IsEmpty())
	assert.Equal(t, []string{"stub"}, s.History())

	_, done := s.HandleKey(program.Rune('x'))
	assert.False(t, done)
	assert.Equal(t, 1, stub.keys)

	summary, done := s.HandleKey(program.Rune('q'))
	require.True(t, done)
	assert.Equal(t, "stub over", summary.Text())
	assert.False(t, s.IsBusy())
	assert.Equal(t, "back", s.SubmitLine("echo back").Text())
}

func TestSession_InterruptEndsProgram(t *testing.T) {
	s, _ := newTestSession(t)
	_, done := s.Interrupt()
	assert.False(t, done)

	s.SubmitLine("stub")
	summary, done := s.Interrupt()
	require.True(t, done)
	assert.NotEmpty(t, summary.Lines)
	assert.False(t, s.IsBusy())
}

func TestSession_ProgramPanicRecovered(t *testing.T) {
	s, stub := newTestSession(t)
	s.SubmitLine("stub")
	stub.panicOnKey = true

	summary, done := s.HandleKey(program.Rune('x'))
	require.True(t, done)
	assert.Equal(t, []output.Line{{Text: "stub: bad key", Style: output.Error}}, summary.Lines)
	assert.False(t, s.IsBusy())
}

func TestSession_PathsAndPrompt(t *testing.T) {
	s, _ := newTestSession(t)
	assert.Equal(t, vfs.Path{"home", "user"}, s.CurrentPath())
	assert.Equal(t, "guest:~$ ", s.Prompt())

	s.SetCurrentPath(vfs.Path{"home", "user", "projects"})
	assert.Equal(t, "guest:~/projects$ ", s.Prompt())

	p := s.CurrentPath()
	p[0] = "x"
	assert.Equal(t, "/home/user/projects", s.CurrentPath().String())
	assert.NotEmpty(t, s.ID())
}

func TestComplete(t *testing.T) {
	s, _ := newTestSession(t)

	line, cands := s.Complete("ec")
	assert.Equal(t, "echo", line)
	assert.Equal(t, []string{"echo"}, cands)

	line, cands = s.Complete("")
	assert.Equal(t, "", line)
	assert.Len(t, cands, 6)

	line, cands = s.Complete("cd p")
	assert.Equal(t, "cd p", line)
	assert.Equal(t, []string{"cd pictures", "cd projects"}, cands)

	line, _ = s.Complete("cd pr")
	assert.Equal(t, "cd projects", line)

	// files are not offered to cd
	_, cands = s.Complete("cd R")
	assert.Empty(t, cands)

	// commands without a completer offer nothing
	_, cands = s.Complete("echo p")
	assert.Empty(t, cands)
}

func TestEntriesWithPrefix_Hidden(t *testing.T) {
	s, _ := newTestSession(t)
	assert.Equal(t, []string{"README.md", "pictures", "projects"}, s.EntriesWithPrefix("", false))
	assert.Equal(t, []string{".secret"}, s.EntriesWithPrefix(".", false))
}

func TestWelcome(t *testing.T) {
	s, _ := newTestSession(t)
	s.SubmitLine("echo one")
	out := s.Welcome()
	text := out.Text()
	assert.Contains(t, text, "Good morning, welcome to linkterm")
	assert.Contains(t, text, "Session: 1 commands | CWD: ~")

	for _, l := range out.Lines[:len(out.Lines)-1] {
		assert.Equal(t, 55, uniseg.StringWidth(l.Text), l.Text)
	}

	s.SetWidth(30)
	assert.Equal(t, 42, uniseg.StringWidth(s.Welcome().Lines[0].Text))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{Registry: NewRegistry()})
	assert.Error(t, err)

	fs, err := vfs.New(vfs.Snapshot{"home": {Type: "directory"}})
	require.NoError(t, err)
	_, err = New(Options{FS: fs})
	assert.Error(t, err)

	// no home directory for the user
	_, err = New(Options{FS: fs, Registry: NewRegistry(), User: "nobody"})
	assert.Error(t, err)
}
