package snake

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/linkterm/internal/program"
	"github.com/joeycumines/linkterm/internal/storage"
)

func newGame(t *testing.T, w, h int) *Game {
	t.Helper()
	storage.ClearAllInMemoryScores()
	t.Cleanup(storage.ClearAllInMemoryScores)
	g := New(Options{
		Rand:   rand.New(rand.NewPCG(7, 7)),
		Scores: storage.NewInMemoryBackend(),
		Width:  w,
		Height: h,
	})
	g.Start()
	return g
}

func TestStart(t *testing.T) {
	g := newGame(t, 0, 0)
	assert.Equal(t, program.Running, g.Phase())
	assert.Equal(t, []Point{{15, 10}}, g.Body())
	assert.NotEqual(t, Point{15, 10}, g.Food())
	assert.Equal(t, DefaultTick, g.Interval())
}

func TestTick_MovesRightAndHitsWall(t *testing.T) {
	g := newGame(t, 5, 3)
	g.food = Point{0, 0}
	require.Equal(t, []Point{{2, 1}}, g.Body())

	g.Tick()
	assert.Equal(t, []Point{{3, 1}}, g.Body())
	g.Tick()
	assert.Equal(t, []Point{{4, 1}}, g.Body())
	g.Tick()
	assert.Equal(t, program.Ended, g.Phase())
	assert.Zero(t, g.Interval())
}

func TestTick_EatGrows(t *testing.T) {
	g := newGame(t, 5, 3)
	g.food = Point{3, 1}
	g.Tick()
	assert.Equal(t, 10, g.Score())
	assert.Equal(t, []Point{{3, 1}, {2, 1}}, g.Body())
	assert.NotContains(t, g.Body(), g.Food())

	g.food = Point{0, 0}
	g.HandleKey(program.Rune('s'))
	g.Tick()
	assert.Equal(t, []Point{{3, 2}, {3, 1}}, g.Body())
}

func TestHandleKey_NoReverse(t *testing.T) {
	g := newGame(t, 9, 9)
	g.food = Point{0, 0}

	g.HandleKey(program.Key{Type: program.KeyLeft})
	g.Tick()
	assert.Equal(t, Point{5, 4}, g.Body()[0], "reverse ignored")

	// two quick turns before a tick cannot fold the snake back on itself
	g.HandleKey(program.Key{Type: program.KeyUp})
	g.HandleKey(program.Key{Type: program.KeyLeft})
	g.Tick()
	assert.Equal(t, Point{5, 3}, g.Body()[0])
}

func TestTick_SelfCollision(t *testing.T) {
	g := newGame(t, 9, 9)
	g.body = []Point{{4, 4}, {3, 4}, {3, 5}, {4, 5}, {5, 5}}
	g.heading, g.next = right, right
	g.food = Point{0, 0}

	g.HandleKey(program.Rune('s'))
	g.Tick()
	assert.Equal(t, program.Ended, g.Phase())
}

func TestPause(t *testing.T) {
	g := newGame(t, 9, 9)
	g.HandleKey(program.Rune(' '))
	require.Equal(t, program.Paused, g.Phase())
	assert.Zero(t, g.Interval())
	before := g.Body()
	g.Tick()
	assert.Equal(t, before, g.Body())
	assert.Contains(t, g.View()[3].Text, "PAUSED")

	g.HandleKey(program.Rune(' '))
	assert.Equal(t, program.Running, g.Phase())
}

func TestQuitRecordsHighScore(t *testing.T) {
	g := newGame(t, 9, 9)
	g.score = 30
	g.HandleKey(program.Rune('q'))
	require.Equal(t, program.Ended, g.Phase())
	text := g.Summary().Text()
	assert.Contains(t, text, "Final Score: 30")
	assert.Contains(t, text, "High Score: 30")
	assert.Contains(t, text, "NEW HIGH SCORE!")

	g2 := newGameKeepScores(t)
	g2.score = 10
	g2.HandleKey(program.Key{Type: program.KeyEsc})
	text = g2.Summary().Text()
	assert.Contains(t, text, "High Score: 30")
	assert.NotContains(t, text, "NEW HIGH SCORE!")
}

func newGameKeepScores(t *testing.T) *Game {
	g := New(Options{Rand: rand.New(rand.NewPCG(1, 1)), Scores: storage.NewInMemoryBackend()})
	g.Start()
	return g
}

func TestFillingGridEnds(t *testing.T) {
	g := newGame(t, 2, 1)
	g.body = []Point{{0, 0}}
	g.food = Point{1, 0}
	g.Tick()
	assert.Equal(t, program.Ended, g.Phase())
	assert.Equal(t, 10, g.Score())
}

func TestView(t *testing.T) {
	g := newGame(t, 4, 2)
	g.food = Point{0, 0}
	lines := g.View()
	require.Len(t, lines, 8)
	assert.Equal(t, "Score: 0 | Length: 1", lines[2].Text)
	assert.Equal(t, "┌────┐", lines[4].Text)
	assert.Equal(t, "│♦   │", lines[5].Text)
	assert.Equal(t, "│  ● │", lines[6].Text)
	assert.Equal(t, "└────┘", lines[7].Text)
}

func TestCustomTick(t *testing.T) {
	g := New(Options{Rand: rand.New(rand.NewPCG(1, 1)), Tick: 80 * time.Millisecond})
	g.Start()
	assert.Equal(t, 80*time.Millisecond, g.Interval())
	g.Interrupt()
	assert.Contains(t, g.Summary().Text(), "GAME OVER")
}
