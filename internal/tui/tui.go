// Package tui is the full-screen terminal front-end: a scrollback viewport
// with a scrollbar, a prompt line, and a frame for the running game.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/program"
	"github.com/joeycumines/linkterm/internal/shell"
	"github.com/joeycumines/linkterm/internal/termui/scrollbar"
	"github.com/joeycumines/linkterm/internal/theme"
)

// gutter is the width taken by the scrollbar and the space before it.
const gutter = 2

type tickMsg struct{ tok program.Token }

// Model is the bubbletea model driving one Session.
type Model struct {
	session  *shell.Session
	input    textinput.Model
	viewport viewport.Model
	lines    []output.Line

	// histPos indexes Session.History while recalling; len(history) means
	// the draft being typed.
	histPos int
	draft   string

	width, height int
	ready         bool
}

// New creates a model whose scrollback starts with the session's welcome
// banner.
func New(s *shell.Session) *Model {
	in := textinput.New()
	in.Focus()
	m := &Model{
		session:  s,
		input:    in,
		viewport: viewport.New(0, 0),
		lines:    s.Welcome().Lines,
		histPos:  len(s.History()),
	}
	m.viewport.MouseWheelEnabled = true
	m.syncPrompt()
	return m
}

func (m *Model) Init() tea.Cmd { return textinput.Blink }

func (m *Model) theme() *theme.Theme { return theme.MustGet(m.session.Theme()) }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		summary, done := m.session.Tick(msg.tok)
		if done {
			m.appendLines(summary.Lines)
		}
		return m, m.schedule()

	case tea.KeyMsg:
		if m.session.IsBusy() {
			return m, m.programKey(msg)
		}
		return m, m.promptKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) programKey(msg tea.KeyMsg) tea.Cmd {
	if summary, done := sendKey(m.session, msg); done {
		m.appendLines(summary.Lines)
	}
	return m.schedule()
}

// sendKey routes msg to the running program. Ctrl+C always interrupts.
func sendKey(s *shell.Session, msg tea.KeyMsg) (summary output.Output, done bool) {
	if msg.Type == tea.KeyCtrlC {
		return s.Interrupt()
	}
	for _, k := range programKeys(msg) {
		if summary, done = s.HandleKey(k); done {
			return summary, done
		}
	}
	return summary, done
}

func (m *Model) promptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyCtrlC:
		m.appendLines([]output.Line{{Text: m.session.Prompt() + m.input.Value() + "^C", Style: output.Echo}})
		m.resetInput()
		return nil
	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			return tea.Quit
		}
	case tea.KeyUp:
		m.recall(-1)
		return nil
	case tea.KeyDown:
		m.recall(1)
		return nil
	case tea.KeyTab:
		m.complete()
		return nil
	case tea.KeyPgUp:
		m.viewport.HalfPageUp()
		return nil
	case tea.KeyPgDown:
		m.viewport.HalfPageDown()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) submit() tea.Cmd {
	line := m.input.Value()
	echo := output.Line{Text: m.session.Prompt() + line, Style: output.Echo}
	out := m.session.SubmitLine(line)
	if out.Clear {
		m.lines = nil
	} else {
		m.lines = append(m.lines, echo)
	}
	m.appendLines(out.Lines)
	m.resetInput()
	if m.session.ExitRequested() {
		slog.Debug("exit requested", "session", m.session.ID())
		return tea.Quit
	}
	return m.schedule()
}

func (m *Model) resetInput() {
	m.input.Reset()
	m.histPos = len(m.session.History())
	m.draft = ""
	m.syncPrompt()
}

func (m *Model) recall(delta int) {
	history := m.session.History()
	if m.histPos > len(history) {
		m.histPos = len(history)
	}
	if m.histPos == len(history) {
		m.draft = m.input.Value()
	}
	pos := m.histPos + delta
	if pos < 0 || pos > len(history) {
		return
	}
	m.histPos = pos
	if pos == len(history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(history[pos])
	}
	m.input.CursorEnd()
}

func (m *Model) complete() {
	line, candidates := m.session.Complete(m.input.Value())
	switch len(candidates) {
	case 0:
	case 1:
		m.input.SetValue(line)
		m.input.CursorEnd()
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c[strings.LastIndex(c, " ")+1:]
		}
		m.appendLines([]output.Line{
			{Text: m.session.Prompt() + line, Style: output.Echo},
			{Text: strings.Join(names, "  "), Style: output.Muted},
		})
	}
}

func (m *Model) schedule() tea.Cmd { return schedule(m.session) }

// schedule asks the session for the active program's next tick.
func schedule(s *shell.Session) tea.Cmd {
	tok, d, ok := s.NextTick()
	if !ok {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{tok: tok} })
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.session.SetWidth(w - gutter)
	m.viewport.Width = max(1, w-gutter)
	m.viewport.Height = max(1, h-1)
	m.input.Width = max(1, w-runewidth.StringWidth(m.input.Prompt)-1)
	m.ready = true
	m.refresh()
}

func (m *Model) appendLines(lines []output.Line) {
	m.lines = append(m.lines, lines...)
	m.refresh()
}

func (m *Model) syncPrompt() {
	th := m.theme()
	m.input.Prompt = m.session.Prompt()
	m.input.PromptStyle = th.Prompt()
	m.input.TextStyle = th.Style(output.Plain)
}

// refresh re-renders the scrollback into the viewport, pinned to the bottom.
func (m *Model) refresh() {
	m.viewport.SetContent(renderLines(m.theme(), m.lines, m.viewport.Width))
	m.viewport.GotoBottom()
}

func renderLines(th *theme.Theme, lines []output.Line, width int) string {
	rendered := make([]string, len(lines))
	for i, l := range lines {
		rendered[i] = th.Render(truncate(l, width))
	}
	return strings.Join(rendered, "\n")
}

// truncate cuts l to width display cells, segment by segment, so styling
// never splits an escape sequence.
func truncate(l output.Line, width int) output.Line {
	if width <= 0 || runewidth.StringWidth(l.Text) <= width {
		return l
	}
	if len(l.Segments) == 0 {
		l.Text = runewidth.Truncate(l.Text, width, "")
		return l
	}
	var segs []output.Segment
	left := width
	for _, s := range l.Segments {
		if left <= 0 {
			break
		}
		if w := runewidth.StringWidth(s.Text); w > left {
			s.Text = runewidth.Truncate(s.Text, left, "")
			left = 0
		} else {
			left -= w
		}
		segs = append(segs, s)
	}
	return output.Segmented(segs...)
}

func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	th := m.theme()
	if m.session.IsBusy() {
		return renderLines(th, m.session.ProgramView(), m.width)
	}
	sb := scrollbar.New(th)
	sb.ContentHeight = m.viewport.TotalLineCount()
	sb.ViewportHeight = m.viewport.Height
	sb.YOffset = m.viewport.YOffset
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), " ", sb.View())
	return body + "\n" + m.input.View()
}

// Run drives s in a full-screen bubbletea program until the user exits or
// ctx is cancelled. A game still running at exit is interrupted so its score
// is recorded.
func Run(ctx context.Context, s *shell.Session, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(s), opts...).Run()
	if s.IsBusy() {
		s.Interrupt()
	}
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
