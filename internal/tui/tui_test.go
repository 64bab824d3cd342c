package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/program"
	"github.com/joeycumines/linkterm/internal/shell"
	"github.com/joeycumines/linkterm/internal/testutil"
)

func newSession(t *testing.T) *shell.Session { return testutil.NewSession(t) }

func newModel(t *testing.T) (*Model, *shell.Session) {
	t.Helper()
	orig := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(orig) })
	lipgloss.SetColorProfile(termenv.Ascii)

	s := newSession(t)
	m := New(s)
	m.Update(tea.WindowSizeMsg{Width: 82, Height: 30})
	return m, s
}

func typeLine(m *Model, line string) tea.Cmd {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func lineTexts(m *Model) []string {
	out := make([]string, len(m.lines))
	for i, l := range m.lines {
		out[i] = l.Text
	}
	return out
}

func TestNew_WelcomeAndWidth(t *testing.T) {
	m, s := newModel(t)
	assert.Equal(t, 80, s.Width())
	require.NotEmpty(t, m.lines)
	assert.Contains(t, strings.Join(lineTexts(m), "\n"), "Good morning")
	assert.Equal(t, "user:~$ ", m.input.Prompt)
}

func TestSubmit_EchoAndOutput(t *testing.T) {
	m, s := newModel(t)
	before := len(m.lines)

	assert.Nil(t, typeLine(m, "cd projects"))
	assert.Nil(t, typeLine(m, "pwd"))

	got := lineTexts(m)[before:]
	assert.Equal(t, []string{"user:~$ cd projects", "user:~/projects$ pwd", "/home/user/projects"}, got)
	assert.Equal(t, output.Echo, m.lines[before].Style)
	assert.Equal(t, "user:~/projects$ ", m.input.Prompt)
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, []string{"cd projects", "pwd"}, s.History())
	assert.Contains(t, m.View(), "/home/user/projects")
}

func TestSubmit_Clear(t *testing.T) {
	m, _ := newModel(t)
	typeLine(m, "ls")
	typeLine(m, "clear")
	assert.Empty(t, m.lines)
}

func TestSubmit_Exit(t *testing.T) {
	m, _ := newModel(t)
	cmd := typeLine(m, "exit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, lineTexts(m), "Closing terminal...")
}

func TestPrompt_CtrlCAndCtrlD(t *testing.T) {
	m, s := newModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ls -")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.Equal(t, "user:~$ ls -^C", lineTexts(m)[len(m.lines)-1])
	assert.Equal(t, "", m.input.Value())
	assert.Empty(t, s.History())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHistoryRecall(t *testing.T) {
	m, _ := newModel(t)
	typeLine(m, "pwd")
	typeLine(m, "ls")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("wh")})
	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	m.Update(up)
	assert.Equal(t, "ls", m.input.Value())
	m.Update(up)
	assert.Equal(t, "pwd", m.input.Value())
	m.Update(up)
	assert.Equal(t, "pwd", m.input.Value(), "stops at the oldest entry")
	m.Update(down)
	assert.Equal(t, "ls", m.input.Value())
	m.Update(down)
	assert.Equal(t, "wh", m.input.Value(), "draft restored")
	m.Update(down)
	assert.Equal(t, "wh", m.input.Value())
}

func TestTabCompletion(t *testing.T) {
	m, _ := newModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pw")})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "pwd", m.input.Value())

	m.input.SetValue("cd p")
	before := len(m.lines)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "cd p", m.input.Value())
	require.Len(t, m.lines, before+2)
	assert.Equal(t, "pictures  projects", m.lines[before+1].Text)
	assert.Equal(t, output.Muted, m.lines[before+1].Style)

	m.input.SetValue("cd pr")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "cd projects", m.input.Value())
}

func TestGame_KeysTicksAndSummary(t *testing.T) {
	m, s := newModel(t)

	cmd := typeLine(m, "snake")
	require.True(t, s.IsBusy())
	require.NotNil(t, cmd, "a running snake schedules its first tick")
	assert.Contains(t, m.View(), "SNAKE GAME")
	assert.NotContains(t, m.View(), "user:~$", "the game frame replaces the prompt")

	msg := cmd()
	require.IsType(t, tickMsg{}, msg)
	_, cmd = m.Update(msg)
	assert.NotNil(t, cmd, "the next tick is scheduled")

	// lines typed while busy go to the game, not the interpreter
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ls")})
	assert.Equal(t, []string{"snake"}, s.History())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.False(t, s.IsBusy())
	assert.Contains(t, strings.Join(lineTexts(m), "\n"), "GAME OVER")
	assert.Contains(t, m.View(), "user:~$")
}

func TestGame_StaleTickIgnored(t *testing.T) {
	m, s := newModel(t)
	cmd := typeLine(m, "snake")
	require.NotNil(t, cmd)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, s.IsBusy())

	before := len(m.lines)
	_, next := m.Update(cmd())
	assert.Nil(t, next)
	assert.Len(t, m.lines, before)
}

func TestProgramKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []program.Key
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, []program.Key{program.Rune('w')}},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, []program.Key{program.Rune('a'), program.Rune('b')}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, []program.Key{program.Rune(' ')}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []program.Key{{Type: program.KeyEnter}}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []program.Key{{Type: program.KeyBackspace}}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []program.Key{{Type: program.KeyEsc}}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, []program.Key{{Type: program.KeyLeft}}},
		{"ignored", tea.KeyMsg{Type: tea.KeyF5}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, programKeys(tt.msg))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate(output.Line{Text: "hello"}, 10).Text)
	assert.Equal(t, "hel", truncate(output.Line{Text: "hello"}, 3).Text)
	assert.Equal(t, "日本", truncate(output.Line{Text: "日本語"}, 5).Text)

	seg := output.Segmented(
		output.Segment{Text: "docs  ", Style: output.Directory},
		output.Segment{Text: "notes.txt"},
		output.Segment{Text: "  x"},
	)
	got := truncate(seg, 8)
	assert.Equal(t, "docs  no", got.Text)
	require.Len(t, got.Segments, 2)
	assert.Equal(t, output.Directory, got.Segments[0].Style)
	assert.Equal(t, "no", got.Segments[1].Text)
}

func TestView_Scrollbar(t *testing.T) {
	m, _ := newModel(t)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 6})
	for range 10 {
		typeLine(m, "pwd")
	}
	rows := strings.Split(m.View(), "\n")
	require.Len(t, rows, 6)
	assert.True(t, strings.HasSuffix(rows[4], "┃"), "thumb at the bottom: %q", rows[4])
	assert.True(t, strings.HasSuffix(rows[0], "│"), "track at the top: %q", rows[0])
	assert.True(t, strings.HasPrefix(rows[5], "user:~$ "))
}

func TestGameModel(t *testing.T) {
	_, s := newModel(t)
	s.SubmitLine("2048")
	require.True(t, s.IsBusy())

	m := &gameModel{session: s, width: 80}
	assert.Nil(t, m.Init(), "2048 has no ticks")
	assert.Contains(t, m.View(), "2048")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, s.IsBusy())
	assert.False(t, m.summary.IsEmpty())
}

func TestRunGame_Idle(t *testing.T) {
	s := newSession(t)
	out, err := RunGame(t.Context(), s)
	require.NoError(t, err)
	assert.True(t, out.IsEmpty())
}
