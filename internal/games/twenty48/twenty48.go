// Package twenty48 implements the 2048 sliding tile puzzle.
package twenty48

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/program"
)

const (
	Name = "2048"
	Size = 4
	Goal = 2048
)

// Board is the tile grid, row-major. Zero is an empty cell.
type Board [Size][Size]int

// Options configures a Game.
type Options struct {
	Rand   *rand.Rand
	Scores program.Scores
}

// Game is an event-driven 2048 session.
type Game struct {
	rng    *rand.Rand
	scores program.Scores

	board Board
	score int
	phase program.Phase
	won   bool

	best     int
	improved bool
}

// New creates a game. Start places the first two tiles.
func New(opts Options) *Game {
	return &Game{rng: opts.Rand, scores: opts.Scores}
}

// NewWithBoard creates a running game from a fixed board, for tests and
// puzzles.
func NewWithBoard(opts Options, b Board) *Game {
	g := New(opts)
	g.board = b
	g.phase = program.Running
	return g
}

func (g *Game) Name() string { return Name }

func (g *Game) Start() {
	if g.phase != program.NotStarted {
		return
	}
	g.phase = program.Running
	g.addRandomTile()
	g.addRandomTile()
}

// Board returns a copy of the grid.
func (g *Game) Board() Board { return g.board }

// Score returns the running score.
func (g *Game) Score() int { return g.score }

// Won reports whether the goal tile was reached.
func (g *Game) Won() bool { return g.won }

func (g *Game) HandleKey(k program.Key) {
	if !g.phase.Active() {
		return
	}
	switch {
	case k.IsCancel() || k.IsRune('q') || k.IsRune('Q'):
		g.end()
		return
	case k.IsRune(' '):
		if g.phase == program.Paused {
			g.phase = program.Running
		} else {
			g.phase = program.Paused
		}
		return
	}
	if g.phase == program.Paused {
		return
	}
	dir := k.Direction()
	if dir == program.NoDirection || !g.Move(dir) {
		return
	}
	g.addRandomTile()
	switch {
	case g.board.Contains(Goal):
		g.won = true
		g.end()
	case !g.board.CanMove():
		g.end()
	}
}

// Move slides the board in dir, merging equal neighbours once per move. It
// reports whether anything changed.
func (g *Game) Move(dir program.Direction) bool {
	next, gained := g.board.Slide(dir)
	if next == g.board {
		return false
	}
	g.board = next
	g.score += gained
	return true
}

func (g *Game) Tick()                   {}
func (g *Game) Interval() time.Duration { return 0 }

func (g *Game) Interrupt() {
	if g.phase != program.Ended {
		g.end()
	}
}

func (g *Game) Phase() program.Phase { return g.phase }

func (g *Game) end() {
	g.phase = program.Ended
	if g.scores != nil {
		g.best, g.improved = program.RecordScore(g.scores, Name, g.score)
	} else {
		g.best = g.score
	}
}

func (g *Game) addRandomTile() {
	var empty [][2]int
	for r := range Size {
		for c := range Size {
			if g.board[r][c] == 0 {
				empty = append(empty, [2]int{r, c})
			}
		}
	}
	if len(empty) == 0 {
		return
	}
	cell := empty[g.rng.IntN(len(empty))]
	value := 2
	if g.rng.Float64() >= 0.9 {
		value = 4
	}
	g.board[cell[0]][cell[1]] = value
}

func (g *Game) View() []output.Line {
	var b output.Buffer
	b.Write(output.Heading, "🎯 2048 GAME")
	b.Write(output.Muted, "WASD/Arrow Keys: Move tiles | SPACE: Pause | Q/ESC: Quit")
	b.Write(output.Muted, "Combine tiles with the same number to reach 2048!")
	b.Blank()
	if g.phase == program.Paused {
		b.Write(output.Warning, " ⏸  PAUSED - Press SPACE to continue ")
		b.Blank()
	}
	b.Writef(output.Plain, "Score: %d", g.score)
	b.Blank()
	b.Write(output.Accent, "┌"+strings.Repeat("────┬", Size-1)+"────┐")
	for r := range Size {
		var line strings.Builder
		line.WriteString("│")
		for c := range Size {
			if v := g.board[r][c]; v == 0 {
				line.WriteString("    ")
			} else {
				fmt.Fprintf(&line, "%4d", v)
			}
			line.WriteString("│")
		}
		b.Write(output.Plain, line.String())
		if r < Size-1 {
			b.Write(output.Accent, "├"+strings.Repeat("────┼", Size-1)+"────┤")
		}
	}
	b.Write(output.Accent, "└"+strings.Repeat("────┴", Size-1)+"────┘")
	return b.Output().Lines
}

func (g *Game) Summary() output.Output {
	var b output.Buffer
	if g.won {
		b.Success("🎉 CONGRATULATIONS! YOU REACHED 2048! 🎉")
	} else {
		b.Error("Game Over!")
	}
	b.Writef(output.Info, "Final Score: %d", g.score)
	b.Writef(output.Warning, "High Score: %d", g.best)
	if g.improved && g.score > 0 {
		b.Success("NEW HIGH SCORE!")
	}
	return b.Output()
}

var _ program.Program = (*Game)(nil)
