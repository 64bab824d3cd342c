// Package scrollbar renders the vertical scrollbar drawn beside the terminal
// scrollback.
package scrollbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joeycumines/linkterm/internal/theme"
)

// Model is the scroll state of a window onto taller content.
type Model struct {
	// ContentHeight is the number of scrollback rows.
	ContentHeight int
	// ViewportHeight is the number of rows shown.
	ViewportHeight int
	// YOffset is the index of the first row shown.
	YOffset int

	ThumbStyle lipgloss.Style
	TrackStyle lipgloss.Style
	ThumbChar  string
	TrackChar  string
}

// New returns a scrollbar styled from th.
func New(th *theme.Theme) Model {
	return Model{
		ThumbChar:  "┃",
		TrackChar:  "│",
		ThumbStyle: lipgloss.NewStyle().Foreground(th.Palette.Accent),
		TrackStyle: lipgloss.NewStyle().Foreground(th.Palette.Scrollbar),
	}
}

// Thumb returns the first row and the height of the thumb. Content that fits
// gets a full-height thumb.
func (m Model) Thumb() (top, height int) {
	vh := m.ViewportHeight
	if vh <= 0 {
		return 0, 0
	}
	ch := max(m.ContentHeight, 0)
	if ch <= vh {
		return 0, vh
	}
	maxOffset := ch - vh
	offset := min(max(m.YOffset, 0), maxOffset)

	height = min(max(vh*vh/ch, 1), vh)
	top = offset * (vh - height) / maxOffset
	return top, height
}

// View renders exactly ViewportHeight rows, one character wide.
func (m Model) View() string {
	if m.ViewportHeight <= 0 {
		return ""
	}
	top, height := m.Thumb()
	rows := make([]string, m.ViewportHeight)
	for i := range rows {
		if i >= top && i < top+height {
			rows[i] = m.ThumbStyle.Render(m.ThumbChar)
		} else {
			rows[i] = m.TrackStyle.Render(m.TrackChar)
		}
	}
	return strings.Join(rows, "\n")
}
