// Package builtin provides the terminal's commands: navigation, system
// information, utilities, and the game launchers.
package builtin

import (
	"errors"
	"time"

	"github.com/joeycumines/linkterm/internal/games/typing"
	"github.com/joeycumines/linkterm/internal/shell"
	"github.com/joeycumines/linkterm/internal/vfs"
)

var (
	// ErrIsADirectory is returned by cat for directory targets.
	ErrIsADirectory = errors.New("is a directory")
	// ErrEmptyFile is returned by cat for files without content.
	ErrEmptyFile = errors.New("file is empty")
)

// Options tunes the commands registered by Register.
type Options struct {
	// Version is shown by neofetch.
	Version string
	// SnakeTick overrides the snake game speed.
	SnakeTick time.Duration
	// TypingDifficulty is the typing test's initial difficulty.
	TypingDifficulty typing.Difficulty
	// CatAnimate forces the animated cat reveal on or off. When nil the
	// active theme decides.
	CatAnimate *bool
}

// Register adds every builtin command and alias to reg.
func Register(reg *shell.Registry, opts Options) error {
	cmds := []shell.Command{
		NewLSCommand(),
		NewCDCommand(),
		NewPWDCommand(),
		NewCatCommand(opts.CatAnimate),
		NewWhoAmICommand(),
		NewNeofetchCommand(opts.Version),
		NewHelpCommand(),
		NewClearCommand(),
		NewThemeCommand(),
		NewExitCommand(),
		NewGamesCommand(),
		NewSnakeCommand(opts.SnakeTick),
		NewTetrisCommand(),
		NewTwenty48Command(),
		NewTypingCommand(opts.TypingDifficulty),
	}
	for _, cmd := range cmds {
		if err := reg.Register(cmd); err != nil {
			return err
		}
	}
	for alias, target := range map[string]string{
		"dir":    "ls",
		"cls":    "clear",
		"typing": "typing-test",
	} {
		if err := reg.Alias(alias, target); err != nil {
			return err
		}
	}
	return nil
}

// describedError prefixes a filesystem error with context, rendering it the
// way a Unix tool would.
type describedError struct {
	prefix string
	err    error
}

func (e *describedError) Error() string { return e.prefix + describe(e.err) }

func (e *describedError) Unwrap() error { return e.err }

func fileError(name string, err error) error {
	return &describedError{prefix: name + ": ", err: err}
}

func describe(err error) string {
	switch {
	case errors.Is(err, ErrIsADirectory):
		return "Is a directory"
	case errors.Is(err, ErrEmptyFile):
		return "File is empty"
	default:
		return vfs.Describe(err)
	}
}

// owner is the name shown in long listings.
func owner(s *shell.Session) string {
	home := s.Resolver().Home()
	if len(home) == 0 {
		return s.User()
	}
	return home[len(home)-1]
}
