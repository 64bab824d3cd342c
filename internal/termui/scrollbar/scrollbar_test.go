package scrollbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/linkterm/internal/theme"
)

func plain(content, viewport, offset int) Model {
	return Model{
		ContentHeight:  content,
		ViewportHeight: viewport,
		YOffset:        offset,
		ThumbChar:      "T",
		TrackChar:      ".",
	}
}

func TestThumb(t *testing.T) {
	tests := []struct {
		name       string
		content    int
		viewport   int
		off        int
		wantTop    int
		wantHeight int
	}{
		{"fits", 10, 10, 0, 0, 10},
		{"empty", 0, 10, 0, 0, 10},
		{"double at top", 20, 10, 0, 0, 5},
		{"double at bottom", 20, 10, 10, 5, 5},
		{"double half way", 20, 10, 5, 2, 5},
		{"huge", 1000, 10, 0, 0, 1},
		{"huge at bottom", 1000, 10, 990, 9, 1},
		{"offset above max", 20, 10, 999, 5, 5},
		{"offset below zero", 20, 10, -5, 0, 5},
		{"no viewport", 10, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, height := plain(tt.content, tt.viewport, tt.off).Thumb()
			assert.Equal(t, tt.wantTop, top, "top")
			assert.Equal(t, tt.wantHeight, height, "height")
		})
	}
}

func TestView(t *testing.T) {
	orig := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(orig) })
	lipgloss.SetColorProfile(termenv.Ascii)

	assert.Equal(t, ".\nT\nT\n.\n.", plain(10, 5, 3).View())
	assert.Equal(t, "", plain(10, 0, 0).View())

	view := plain(20, 10, 10).View()
	rows := strings.Split(view, "\n")
	require.Len(t, rows, 10)
	assert.Equal(t, ".....TTTTT", strings.Join(rows, ""))
}

func TestNew_ThemeColours(t *testing.T) {
	orig := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(orig) })
	lipgloss.SetColorProfile(termenv.TrueColor)

	th := theme.MustGet("dracula")
	m := New(th)
	m.ContentHeight, m.ViewportHeight = 4, 2

	rows := strings.Split(m.View(), "\n")
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0], "┃")
	assert.Contains(t, rows[0], "\x1b[")
	assert.Contains(t, rows[1], "│")
	assert.NotEqual(t, New(theme.MustGet("matrix")).ThumbStyle.Render("┃"), m.ThumbStyle.Render("┃"))
}
