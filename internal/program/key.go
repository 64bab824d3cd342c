package program

import "fmt"

// KeyType classifies a keystroke.
type KeyType uint8

const (
	KeyRune KeyType = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEsc
	KeyCtrlC
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Key is a single keystroke as seen by a Program. Rune is set only for
// KeyRune, and includes the space character.
type Key struct {
	Type KeyType
	Rune rune
}

// Rune returns a printable-character key.
func Rune(r rune) Key { return Key{Type: KeyRune, Rune: r} }

// IsRune reports whether k is the printable character r.
func (k Key) IsRune(r rune) bool { return k.Type == KeyRune && k.Rune == r }

// IsCancel reports whether k is Esc or Ctrl+C, which end every program.
func (k Key) IsCancel() bool { return k.Type == KeyEsc || k.Type == KeyCtrlC }

func (k Key) String() string {
	switch k.Type {
	case KeyRune:
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	case KeyEsc:
		return "esc"
	case KeyCtrlC:
		return "ctrl+c"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return fmt.Sprintf("KeyType(%d)", uint8(k.Type))
	}
}

// Direction is a movement decoded from arrow keys or WASD.
type Direction uint8

const (
	NoDirection Direction = iota
	Up
	Down
	Left
	Right
)

// Direction decodes arrows and WASD (either case).
func (k Key) Direction() Direction {
	switch k.Type {
	case KeyUp:
		return Up
	case KeyDown:
		return Down
	case KeyLeft:
		return Left
	case KeyRight:
		return Right
	case KeyRune:
		switch k.Rune {
		case 'w', 'W':
			return Up
		case 's', 'S':
			return Down
		case 'a', 'A':
			return Left
		case 'd', 'D':
			return Right
		}
	}
	return NoDirection
}
