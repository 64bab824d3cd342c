package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joeycumines/linkterm/internal/program"
)

// programKeys translates a bubbletea key event into program keystrokes. A
// paste arrives as one event with several runes and becomes several keys.
func programKeys(msg tea.KeyMsg) []program.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]program.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, program.Rune(r))
		}
		return keys
	case tea.KeySpace:
		return []program.Key{program.Rune(' ')}
	case tea.KeyEnter:
		return []program.Key{{Type: program.KeyEnter}}
	case tea.KeyBackspace:
		return []program.Key{{Type: program.KeyBackspace}}
	case tea.KeyTab:
		return []program.Key{{Type: program.KeyTab}}
	case tea.KeyEsc:
		return []program.Key{{Type: program.KeyEsc}}
	case tea.KeyCtrlC:
		return []program.Key{{Type: program.KeyCtrlC}}
	case tea.KeyUp:
		return []program.Key{{Type: program.KeyUp}}
	case tea.KeyDown:
		return []program.Key{{Type: program.KeyDown}}
	case tea.KeyLeft:
		return []program.Key{{Type: program.KeyLeft}}
	case tea.KeyRight:
		return []program.Key{{Type: program.KeyRight}}
	}
	return nil
}
