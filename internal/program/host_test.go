package program

import (
	"testing"
	"time"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProgram struct {
	phase    Phase
	ticks    int
	keys     []Key
	interval time.Duration
	endAt    int
}

func (f *fakeProgram) Name() string { return "fake" }
func (f *fakeProgram) Start()       { f.phase = Running }
func (f *fakeProgram) HandleKey(k Key) {
	f.keys = append(f.keys, k)
	switch {
	case k.IsRune('q') || k.IsCancel():
		f.phase = Ended
	case k.IsRune(' ') && f.phase == Running:
		f.phase = Paused
	case k.IsRune(' ') && f.phase == Paused:
		f.phase = Running
	}
}
func (f *fakeProgram) Tick() {
	f.ticks++
	if f.endAt > 0 && f.ticks >= f.endAt {
		f.phase = Ended
	}
}
func (f *fakeProgram) Interval() time.Duration {
	if f.phase != Running {
		return 0
	}
	return f.interval
}
func (f *fakeProgram) Interrupt()          { f.phase = Ended }
func (f *fakeProgram) Phase() Phase        { return f.phase }
func (f *fakeProgram) View() []output.Line { return []output.Line{{Text: "frame"}} }
func (f *fakeProgram) Summary() output.Output {
	return output.Output{Lines: []output.Line{{Text: "bye"}}}
}

func TestHost_LaunchAndQuit(t *testing.T) {
	var h Host
	assert.False(t, h.Busy())
	assert.Error(t, h.Context().Err())

	p := &fakeProgram{}
	_, done := h.Launch(p)
	require.False(t, done)
	assert.True(t, h.Busy())
	assert.Same(t, p, h.Active())
	assert.Equal(t, Running, p.Phase())
	ctx := h.Context()
	assert.NoError(t, ctx.Err())
	assert.Equal(t, []output.Line{{Text: "frame"}}, h.View())

	summary, done := h.HandleKey(Rune('x'))
	assert.False(t, done)
	assert.True(t, summary.IsEmpty())

	summary, done = h.HandleKey(Rune('q'))
	require.True(t, done)
	assert.Equal(t, "bye", summary.Text())
	assert.False(t, h.Busy())
	assert.Error(t, ctx.Err())
	assert.Nil(t, h.View())
}

func TestHost_TickSchedule(t *testing.T) {
	var h Host
	p := &fakeProgram{interval: 50 * time.Millisecond, endAt: 3}
	h.Launch(p)

	tok, d, ok := h.NextTick()
	require.True(t, ok)
	assert.Equal(t, 50*time.Millisecond, d)

	// only one outstanding tick at a time
	_, _, ok = h.NextTick()
	assert.False(t, ok)

	_, done := h.Tick(tok)
	assert.False(t, done)
	assert.Equal(t, 1, p.ticks)

	// replaying a consumed token does nothing
	h.Tick(tok)
	assert.Equal(t, 1, p.ticks)

	tok, _, ok = h.NextTick()
	require.True(t, ok)
	h.Tick(tok)
	tok, _, ok = h.NextTick()
	require.True(t, ok)
	summary, done := h.Tick(tok)
	require.True(t, done)
	assert.Equal(t, "bye", summary.Text())
	assert.Equal(t, 3, p.ticks)
}

func TestHost_PausedProgramWantsNoTicks(t *testing.T) {
	var h Host
	p := &fakeProgram{interval: time.Second}
	h.Launch(p)
	h.HandleKey(Rune(' '))
	assert.Equal(t, Paused, p.Phase())
	_, _, ok := h.NextTick()
	assert.False(t, ok)

	h.HandleKey(Rune(' '))
	_, _, ok = h.NextTick()
	assert.True(t, ok)
}

func TestHost_StaleTickAfterRelaunch(t *testing.T) {
	var h Host
	first := &fakeProgram{interval: time.Second}
	h.Launch(first)
	stale, _, ok := h.NextTick()
	require.True(t, ok)

	h.Interrupt()
	second := &fakeProgram{interval: time.Second}
	h.Launch(second)

	_, done := h.Tick(stale)
	assert.False(t, done)
	assert.Zero(t, first.ticks)
	assert.Zero(t, second.ticks)
}

func TestHost_LaunchReplacesActive(t *testing.T) {
	var h Host
	first := &fakeProgram{}
	h.Launch(first)
	second := &fakeProgram{}
	h.Launch(second)
	assert.Equal(t, Ended, first.Phase())
	assert.Same(t, second, h.Active())
}

func TestHost_InterruptIdle(t *testing.T) {
	var h Host
	summary, done := h.Interrupt()
	assert.False(t, done)
	assert.True(t, summary.IsEmpty())
}

func TestScoreKey(t *testing.T) {
	assert.Equal(t, "snake", ScoreKey("snake", ""))
	assert.Equal(t, "typing/hard", ScoreKey("typing", "hard"))
}

func TestHost_Abort(t *testing.T) {
	var h Host
	p := &fakeProgram{interval: time.Second}
	h.Launch(p)
	tok, _, _ := h.NextTick()
	ctx := h.Context()

	h.Abort()
	assert.False(t, h.Busy())
	assert.Error(t, ctx.Err())
	assert.Equal(t, Running, p.Phase(), "abort must not call into the program")
	_, done := h.Tick(tok)
	assert.False(t, done)

	h.Abort() // idle abort is a no-op
}

func TestKeyDirection(t *testing.T) {
	tests := map[Key]Direction{
		{Type: KeyUp}:    Up,
		Rune('W'):        Up,
		Rune('s'):        Down,
		{Type: KeyLeft}:  Left,
		Rune('d'):        Right,
		Rune('x'):        NoDirection,
		{Type: KeyEnter}: NoDirection,
	}
	for k, want := range tests {
		assert.Equal(t, want, k.Direction(), k.String())
	}
}

type failingScores struct{}

func (failingScores) Best(string) (int, bool, error) { return 0, false, assert.AnError }
func (failingScores) Submit(string, int) (int, bool, error) {
	return 0, false, assert.AnError
}

func TestRecordScore_SwallowsErrors(t *testing.T) {
	best, improved := RecordScore(failingScores{}, "snake", 40)
	assert.Equal(t, 40, best)
	assert.False(t, improved)
	_, ok := BestScore(failingScores{}, "snake")
	assert.False(t, ok)
}
