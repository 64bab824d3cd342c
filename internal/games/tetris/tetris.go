// Package tetris implements falling-block Tetris with levels and line
// scoring.
package tetris

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/program"
)

const (
	Name   = "tetris"
	Width  = 10
	Height = 20
)

// Options configures a Game.
type Options struct {
	Rand   *rand.Rand
	Scores program.Scores
}

type piece struct {
	kind     PieceType
	rotation int
	x, y     int
}

func (p piece) shape() Shape { return Pieces[p.kind][p.rotation] }

// Game is one round of Tetris. Gravity is a tick; its period shrinks with
// the level.
type Game struct {
	rng    *rand.Rand
	scores program.Scores

	// board cells hold PieceType+1, or zero when empty
	board [Height][Width]uint8
	cur   piece
	score int
	level int
	lines int
	phase program.Phase

	best     int
	improved bool
}

// New creates a game.
func New(opts Options) *Game {
	return &Game{rng: opts.Rand, scores: opts.Scores, level: 1}
}

func (g *Game) Name() string { return Name }

func (g *Game) Start() {
	if g.phase != program.NotStarted {
		return
	}
	g.phase = program.Running
	g.spawn()
}

func (g *Game) Score() int { return g.score }
func (g *Game) Level() int { return g.level }
func (g *Game) Lines() int { return g.lines }

func (g *Game) spawn() {
	kind := PieceType(g.rng.IntN(len(Pieces)))
	g.spawnKind(kind)
}

func (g *Game) spawnKind(kind PieceType) {
	w := len(Pieces[kind][0][0])
	g.cur = piece{kind: kind, x: (Width - w) / 2, y: kind.spawnY()}
	if g.collides(g.cur) {
		g.end()
	}
}

func (g *Game) collides(p piece) bool {
	for dy, row := range p.shape() {
		for dx, cell := range row {
			if cell == 0 {
				continue
			}
			x, y := p.x+dx, p.y+dy
			if x < 0 || x >= Width || y >= Height {
				return true
			}
			if y >= 0 && g.board[y][x] != 0 {
				return true
			}
		}
	}
	return false
}

func (g *Game) HandleKey(k program.Key) {
	if g.phase != program.Running {
		return
	}
	if k.IsCancel() || k.IsRune('q') || k.IsRune('Q') {
		g.end()
		return
	}
	switch k.Direction() {
	case program.Left:
		g.shift(-1)
	case program.Right:
		g.shift(1)
	case program.Down:
		g.drop()
	case program.Up:
		g.rotate()
	}
}

func (g *Game) shift(dx int) bool {
	next := g.cur
	next.x += dx
	if g.collides(next) {
		return false
	}
	g.cur = next
	return true
}

// drop moves the piece down one row, locking it in place when it cannot
// move.
func (g *Game) drop() {
	next := g.cur
	next.y++
	if !g.collides(next) {
		g.cur = next
		return
	}
	g.lock()
	g.clearLines()
	g.spawn()
}

func (g *Game) rotate() {
	rotations := len(Pieces[g.cur.kind])
	if rotations == 1 {
		return
	}
	for _, dx := range g.cur.kind.kicks() {
		next := g.cur
		next.rotation = (next.rotation + 1) % rotations
		next.x += dx
		if !g.collides(next) {
			g.cur = next
			return
		}
	}
}

func (g *Game) lock() {
	for dy, row := range g.cur.shape() {
		for dx, cell := range row {
			if y := g.cur.y + dy; cell != 0 && y >= 0 {
				g.board[y][g.cur.x+dx] = uint8(g.cur.kind) + 1
			}
		}
	}
}

func (g *Game) clearLines() {
	var cleared int
	for y := Height - 1; y >= 0; {
		if !full(g.board[y]) {
			y--
			continue
		}
		copy(g.board[1:y+1], g.board[:y])
		g.board[0] = [Width]uint8{}
		cleared++
	}
	if cleared == 0 {
		return
	}
	g.lines += cleared
	g.score += lineScores[min(cleared, len(lineScores)-1)] * g.level
	g.level = max(g.level, g.lines/10+1)
}

func full(row [Width]uint8) bool {
	for _, c := range row {
		if c == 0 {
			return false
		}
	}
	return true
}

// Tick applies gravity.
func (g *Game) Tick() {
	if g.phase != program.Running {
		return
	}
	g.drop()
}

// Interval speeds up by 75ms per level, bottoming out at 50ms.
func (g *Game) Interval() time.Duration {
	if g.phase != program.Running {
		return 0
	}
	return time.Duration(max(50, 800-(g.level-1)*75)) * time.Millisecond
}

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

func (g *Game) View() []output.Line {
	var b output.Buffer
	b.Write(output.Accent, "🧩 TETRIS")
	b.Write(output.Muted, "A/D: Move | S: Drop | W: Rotate | Q/ESC: Quit")
	b.Writef(output.Plain, "Score: %d | Level: %d | Lines: %d", g.score, g.level, g.lines)
	b.Blank()

	var display [Height][Width]rune
	for y := range Height {
		for x := range Width {
			display[y][x] = ' '
			if g.board[y][x] != 0 {
				display[y][x] = '█'
			}
		}
	}
	if g.phase != program.Ended {
		for dy, row := range g.cur.shape() {
			for dx, cell := range row {
				x, y := g.cur.x+dx, g.cur.y+dy
				if cell != 0 && y >= 0 && y < Height && x >= 0 && x < Width {
					display[y][x] = '▓'
				}
			}
		}
	}
	b.Write(output.Accent, "┌"+strings.Repeat("─", Width)+"┐")
	for _, row := range display {
		b.Write(output.Plain, "│"+string(row[:])+"│")
	}
	b.Write(output.Accent, "└"+strings.Repeat("─", Width)+"┘")
	return b.Output().Lines
}

func (g *Game) Summary() output.Output {
	var b output.Buffer
	b.Blank()
	b.Write(output.Error, "        🧩 GAME OVER! 🧩         ")
	b.Blank()
	b.Writef(output.Info, "📊 Final Score: %d", g.score)
	b.Writef(output.Info, "🏆 Level Reached: %d", g.level)
	b.Writef(output.Info, "📈 Lines Cleared: %d", g.lines)
	b.Writef(output.Info, "🥇 Best Score: %d", g.best)
	if g.improved && g.score > 0 {
		b.Success("🎉 NEW HIGH SCORE! 🎉")
	}
	return b.Output()
}

var _ program.Program = (*Game)(nil)
