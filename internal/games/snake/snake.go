// Package snake implements the classic snake game on a fixed grid.
package snake

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/program"
)

const (
	Name          = "snake"
	DefaultWidth  = 30
	DefaultHeight = 20
	DefaultTick   = 150 * time.Millisecond
	foodPoints    = 10
)

// Point is a grid cell; X grows right and Y grows down.
type Point struct{ X, Y int }

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

var (
	up    = Point{0, -1}
	down  = Point{0, 1}
	left  = Point{-1, 0}
	right = Point{1, 0}
)

// Options configures a Game. Zero values select the defaults.
type Options struct {
	Rand          *rand.Rand
	Scores        program.Scores
	Tick          time.Duration
	Width, Height int
}

// Game is one round of snake. The snake advances one cell per tick.
type Game struct {
	rng    *rand.Rand
	scores program.Scores
	tick   time.Duration
	width  int
	height int

	body    []Point // body[0] is the head
	heading Point   // direction of the last move
	next    Point   // direction for the next move
	food    Point
	score   int
	phase   program.Phase

	best     int
	improved bool
}

// New creates a game.
func New(opts Options) *Game {
	g := &Game{
		rng:    opts.Rand,
		scores: opts.Scores,
		tick:   opts.Tick,
		width:  opts.Width,
		height: opts.Height,
	}
	if g.tick <= 0 {
		g.tick = DefaultTick
	}
	if g.width <= 0 {
		g.width = DefaultWidth
	}
	if g.height <= 0 {
		g.height = DefaultHeight
	}
	return g
}

func (g *Game) Name() string { return Name }

// Start places the snake in the centre heading right, with food elsewhere.
func (g *Game) Start() {
	if g.phase != program.NotStarted {
		return
	}
	g.phase = program.Running
	g.body = []Point{{g.width / 2, g.height / 2}}
	g.heading, g.next = right, right
	g.placeFood()
}

// Body returns a copy of the snake, head first.
func (g *Game) Body() []Point { return append([]Point(nil), g.body...) }

// Food returns the food position.
func (g *Game) Food() Point { return g.food }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

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
	var want Point
	switch k.Direction() {
	case program.Up:
		want = up
	case program.Down:
		want = down
	case program.Left:
		want = left
	case program.Right:
		want = right
	default:
		return
	}
	// no reversing into the neck; checked against the last move actually made
	if want.add(g.heading) == (Point{}) {
		return
	}
	g.next = want
}

// Tick advances the snake one cell.
func (g *Game) Tick() {
	if g.phase != program.Running {
		return
	}
	g.heading = g.next
	head := g.body[0].add(g.heading)
	if head.X < 0 || head.X >= g.width || head.Y < 0 || head.Y >= g.height {
		g.end()
		return
	}
	for _, seg := range g.body[1:] {
		if seg == head {
			g.end()
			return
		}
	}
	g.body = append([]Point{head}, g.body...)
	if head == g.food {
		g.score += foodPoints
		if !g.placeFood() {
			g.end()
		}
		return
	}
	g.body = g.body[:len(g.body)-1]
}

// Interval is the tick period while running; a paused snake wants no ticks.
func (g *Game) Interval() time.Duration {
	if g.phase != program.Running {
		return 0
	}
	return g.tick
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

// placeFood puts food on a random free cell. It reports false when the
// snake fills the grid.
func (g *Game) placeFood() bool {
	occupied := make(map[Point]bool, len(g.body))
	for _, p := range g.body {
		occupied[p] = true
	}
	free := make([]Point, 0, g.width*g.height-len(g.body))
	for y := range g.height {
		for x := range g.width {
			if p := (Point{x, y}); !occupied[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return false
	}
	g.food = free[g.rng.IntN(len(free))]
	return true
}

func (g *Game) View() []output.Line {
	var b output.Buffer
	b.Write(output.Success, "🐍 SNAKE GAME")
	b.Write(output.Muted, "WASD/Arrow Keys: Move | SPACE: Pause | Q/ESC: Quit")
	b.Writef(output.Plain, "Score: %d | Length: %d", g.score, len(g.body))
	if g.phase == program.Paused {
		b.Write(output.Warning, " ⏸  PAUSED - Press SPACE to continue ")
	}
	b.Blank()

	grid := make([][]rune, g.height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", g.width))
	}
	if len(g.body) > 0 {
		grid[g.food.Y][g.food.X] = '♦'
	}
	for i, p := range g.body {
		if i == 0 {
			grid[p.Y][p.X] = '●'
		} else {
			grid[p.Y][p.X] = '○'
		}
	}
	b.Write(output.Accent, "┌"+strings.Repeat("─", g.width)+"┐")
	for _, row := range grid {
		b.Write(output.Success, "│"+string(row)+"│")
	}
	b.Write(output.Accent, "└"+strings.Repeat("─", g.width)+"┘")
	return b.Output().Lines
}

func (g *Game) Summary() output.Output {
	var b output.Buffer
	b.Blank()
	b.Write(output.Error, "         🐍 GAME OVER! 🐍          ")
	b.Blank()
	b.Writef(output.Info, "📊 Final Score: %d", g.score)
	b.Writef(output.Info, "🏆 High Score: %d", g.best)
	b.Writef(output.Info, "📏 Snake Length: %d", len(g.body))
	if g.improved && g.score > 0 {
		b.Blank()
		b.Success("🎉 NEW HIGH SCORE! 🎉")
	}
	return b.Output()
}

var _ program.Program = (*Game)(nil)
