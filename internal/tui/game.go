package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/shell"
	"github.com/joeycumines/linkterm/internal/theme"
)

// gameModel shows only the running program's frame. It is used by the line
// front-end, which has no screen of its own to draw a game on.
type gameModel struct {
	session *shell.Session
	width   int
	summary output.Output
}

func (m *gameModel) Init() tea.Cmd { return m.check(schedule(m.session)) }

func (m *gameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		if summary, done := m.session.Tick(msg.tok); done {
			m.summary = summary
		}
		return m, m.check(schedule(m.session))
	case tea.KeyMsg:
		if summary, done := sendKey(m.session, msg); done {
			m.summary = summary
		}
		return m, m.check(schedule(m.session))
	}
	return m, nil
}

func (m *gameModel) check(next tea.Cmd) tea.Cmd {
	if !m.session.IsBusy() {
		return tea.Quit
	}
	return next
}

func (m *gameModel) View() string {
	return renderLines(theme.MustGet(m.session.Theme()), m.session.ProgramView(), m.width)
}

// RunGame hosts the session's active program until it ends and returns its
// summary. With no program running it returns immediately.
func RunGame(ctx context.Context, s *shell.Session, opts ...tea.ProgramOption) (output.Output, error) {
	if !s.IsBusy() {
		return output.Output{}, nil
	}
	m := &gameModel{session: s}
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	// the program may end without a key or tick reaching the model
	stop := context.AfterFunc(s.ProgramContext(), p.Quit)
	defer stop()
	_, err := p.Run()
	if s.IsBusy() {
		if summary, done := s.Interrupt(); done {
			m.summary = summary
		}
	}
	if err != nil && ctx.Err() != nil {
		err = nil
	}
	return m.summary, err
}
