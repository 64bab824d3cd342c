package builtin

import (
	"strings"
	"time"

	"github.com/joeycumines/linkterm/internal/games/snake"
	"github.com/joeycumines/linkterm/internal/games/tetris"
	"github.com/joeycumines/linkterm/internal/games/twenty48"
	"github.com/joeycumines/linkterm/internal/games/typing"
	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/program"
	"github.com/joeycumines/linkterm/internal/shell"
)

// GamesCommand lists the game launchers.
type GamesCommand struct {
	*shell.BaseCommand
}

func NewGamesCommand() *GamesCommand {
	return &GamesCommand{shell.NewBaseCommand(
		"games",
		"Show available games",
		"games",
		shell.Games,
	)}
}

func (c *GamesCommand) Execute(s *shell.Session, _ shell.Invocation, out *output.Buffer) error {
	banner(out, output.Accent, "Available Games")
	var launchers []shell.Command
	width := 0
	for _, cmd := range s.Registry().Commands() {
		if _, ok := cmd.(*LaunchCommand); ok {
			launchers = append(launchers, cmd)
			width = max(width, len(cmd.Name()))
		}
	}
	for _, cmd := range launchers {
		out.Lines(output.Segmented(
			output.Segment{Text: "  "},
			output.Segment{Text: cmd.Name() + strings.Repeat(" ", width+2-len(cmd.Name())), Style: output.Warning},
			output.Segment{Text: "- " + cmd.Description()},
		))
	}
	out.Blank()
	out.Info("Tip: Press ESC or Ctrl+C to exit any game")
	return nil
}

// LaunchCommand starts an interactive program.
type LaunchCommand struct {
	*shell.BaseCommand
	build func(s *shell.Session, inv shell.Invocation) program.Program
}

func (c *LaunchCommand) Execute(s *shell.Session, inv shell.Invocation, out *output.Buffer) error {
	s.Launch(c.build(s, inv), out)
	return nil
}

func NewSnakeCommand(tick time.Duration) *LaunchCommand {
	return &LaunchCommand{
		BaseCommand: shell.NewBaseCommand(snake.Name, "Classic snake game", "snake", shell.Games),
		build: func(s *shell.Session, _ shell.Invocation) program.Program {
			return snake.New(snake.Options{Rand: s.Rand(), Scores: s.Scores(), Tick: tick})
		},
	}
}

func NewTetrisCommand() *LaunchCommand {
	return &LaunchCommand{
		BaseCommand: shell.NewBaseCommand(tetris.Name, "Block puzzle game", "tetris", shell.Games),
		build: func(s *shell.Session, _ shell.Invocation) program.Program {
			return tetris.New(tetris.Options{Rand: s.Rand(), Scores: s.Scores()})
		},
	}
}

func NewTwenty48Command() *LaunchCommand {
	return &LaunchCommand{
		BaseCommand: shell.NewBaseCommand(twenty48.Name, "Number puzzle game", "2048", shell.Games),
		build: func(s *shell.Session, _ shell.Invocation) program.Program {
			return twenty48.New(twenty48.Options{Rand: s.Rand(), Scores: s.Scores()})
		},
	}
}

// NewTypingCommand launches the typing test. An argument of easy, medium or
// hard overrides the default difficulty; anything else is ignored.
func NewTypingCommand(difficulty typing.Difficulty) *LaunchCommand {
	return &LaunchCommand{
		BaseCommand: shell.NewBaseCommand(typing.Name, "Typing speed test", "typing-test [easy|medium|hard]", shell.Games),
		build: func(s *shell.Session, inv shell.Invocation) program.Program {
			d := difficulty
			if parsed, ok := typing.ParseDifficulty(inv.Arg(0)); ok {
				d = parsed
			}
			return typing.New(typing.Options{Rand: s.Rand(), Scores: s.Scores(), Difficulty: d, Now: s.Now})
		},
	}
}
