// Package typing implements a typing speed test.
//
// The program opens on a difficulty menu. Once the test starts every
// printable key counts toward accuracy, and the test ends when the cursor
// reaches the end of the passage.
package typing

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/program"
)

const (
	Name = "typing-test"

	// wrapWidth is the passage width on screen.
	wrapWidth = 60
)

// Options configures a Test.
type Options struct {
	Rand       *rand.Rand
	Scores     program.Scores
	Difficulty Difficulty
	// Now defaults to time.Now.
	Now func() time.Time
}

type stage int

const (
	stageMenu stage = iota
	stageTyping
)

// Test is one typing test session, menu included.
type Test struct {
	rng    *rand.Rand
	scores program.Scores
	now    func() time.Time

	difficulty Difficulty
	stage      stage
	phase      program.Phase

	text    []rune
	input   []rune
	index   int
	errors  int
	correct int
	total   int

	started, finished time.Time

	result *result
}

type result struct {
	wpm      int
	accuracy int
	elapsed  time.Duration
	best     int
	improved bool
}

// New creates a test.
func New(opts Options) *Test {
	t := &Test{
		rng:        opts.Rand,
		scores:     opts.Scores,
		now:        opts.Now,
		difficulty: opts.Difficulty,
	}
	if t.now == nil {
		t.now = time.Now
	}
	if _, ok := texts[t.difficulty]; !ok {
		t.difficulty = Medium
	}
	return t
}

func (t *Test) Name() string { return Name }

func (t *Test) Start() {
	if t.phase == program.NotStarted {
		t.phase = program.Running
	}
}

// Difficulty reports the currently selected difficulty.
func (t *Test) Difficulty() Difficulty { return t.difficulty }

// Text is the passage being typed, empty while on the menu.
func (t *Test) Text() string { return string(t.text) }

func (t *Test) HandleKey(k program.Key) {
	if t.phase != program.Running {
		return
	}
	if k.IsCancel() {
		t.end()
		return
	}
	switch t.stage {
	case stageMenu:
		t.handleMenu(k)
	case stageTyping:
		t.handleTyping(k)
	}
}

func (t *Test) handleMenu(k program.Key) {
	switch {
	case k.Type == program.KeyEnter:
		t.begin()
		return
	case k.IsRune('q') || k.IsRune('Q'):
		// only on the menu; while typing, q is passage input
		t.end()
		return
	case k.Type != program.KeyRune:
		return
	}
	if n := int(k.Rune - '1'); n >= 0 && n < len(Difficulties) {
		t.difficulty = Difficulties[n]
	}
}

func (t *Test) begin() {
	pool := texts[t.difficulty]
	t.text = []rune(pool[t.rng.IntN(len(pool))])
	t.input = t.input[:0]
	t.index, t.errors, t.correct, t.total = 0, 0, 0, 0
	t.started, t.finished = time.Time{}, time.Time{}
	t.stage = stageTyping
}

func (t *Test) handleTyping(k program.Key) {
	switch {
	case k.Type == program.KeyBackspace:
		if len(t.input) > 0 {
			t.input = t.input[:len(t.input)-1]
			t.index = max(0, t.index-1)
		}
	case k.Type == program.KeyRune && k.Rune >= ' ':
		if t.started.IsZero() {
			t.started = t.now()
		}
		t.input = append(t.input, k.Rune)
		t.total++
		// mistakes still advance the cursor
		if k.Rune == t.text[t.index] {
			t.correct++
		} else {
			t.errors++
		}
		t.index++
		if t.index >= len(t.text) {
			t.finished = t.now()
			t.end()
		}
	}
}

// Accuracy is the live percentage of correct keystrokes.
func (t *Test) Accuracy() int {
	if t.total == 0 {
		return 100
	}
	return round(float64(t.correct) / float64(t.total) * 100)
}

// WPM is the live speed, counting five characters as a word.
func (t *Test) WPM() int {
	if t.started.IsZero() || t.index == 0 {
		return 0
	}
	return wpm(t.index, t.now().Sub(t.started))
}

func wpm(chars int, elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return round(float64(chars) / 5 / elapsed.Minutes())
}

func round(f float64) int { return int(math.Round(f)) }

// Tick is a no-op; the test is driven by keys alone.
func (t *Test) Tick() {}

func (t *Test) Interval() time.Duration { return 0 }

func (t *Test) Phase() program.Phase { return t.phase }

func (t *Test) Interrupt() { t.end() }

func (t *Test) completed() bool { return !t.finished.IsZero() }

func (t *Test) scoreKey(d Difficulty) string {
	return program.ScoreKey(Name, string(d))
}

func (t *Test) end() {
	if t.phase == program.Ended {
		return
	}
	t.phase = program.Ended
	if !t.completed() {
		return
	}
	n := len(t.text)
	r := &result{
		elapsed:  t.finished.Sub(t.started),
		accuracy: round(float64(n-t.errors) / float64(n) * 100),
	}
	r.wpm = wpm(n, r.elapsed)
	if t.scores != nil {
		if r.wpm > 0 {
			r.best, r.improved = program.RecordScore(t.scores, t.scoreKey(t.difficulty), r.wpm)
		} else {
			r.best, _ = program.BestScore(t.scores, t.scoreKey(t.difficulty))
		}
	}
	t.result = r
}

func (t *Test) View() []output.Line {
	var b output.Buffer
	if t.stage == stageMenu {
		b.Write(output.Accent, "⌨️  TYPING SPEED TEST")
		b.Write(output.Muted, "Select difficulty or start with current setting")
		b.Blank()
		b.Writef(output.Warning, "Current difficulty: %s", upper(t.difficulty))
		b.Blank()
		b.Write(output.Info, "1 - Easy (short, simple words)")
		b.Write(output.Info, "2 - Medium (standard sentences)")
		b.Write(output.Info, "3 - Hard (complex programming text)")
		b.Blank()
		b.Write(output.Success, "ENTER - Start test with current difficulty")
		b.Write(output.Muted, "Q / ESC / Ctrl+C - Return to terminal")
		return b.Output().Lines
	}

	b.Writef(output.Accent, "⌨️  TYPING SPEED TEST (%s)", upper(t.difficulty))
	b.Write(output.Muted, "Type the text below as accurately and quickly as possible.")
	b.Write(output.Muted, "Press ESC or Ctrl+C to quit.")
	b.Blank()
	b.Writef(output.Info, "WPM: %d | Accuracy: %d%% | Progress: %d%%",
		t.WPM(), t.Accuracy(), round(float64(t.index)/float64(len(t.text))*100))
	b.Writef(output.Plain, "Errors: %d | Correct: %d", t.errors, t.correct)
	b.Blank()
	b.Write(output.Plain, "📝 Text to type:")
	for _, span := range wrap(t.text, wrapWidth) {
		b.Write(output.Plain, string(t.text[span[0]:span[1]]))
		if marks, bad := t.marks(span[0], span[1]); marks != "" {
			style := output.Success
			if bad {
				style = output.Error
			}
			b.Write(style, marks)
		}
	}
	b.Blank()
	b.Write(output.Plain, "✍️  Your input:")
	b.Write(output.Info, string(t.input)+"▋")
	return b.Output().Lines
}

// marks renders the status of text[from:to]: '·' typed correctly, 'x' a
// mistake, '^' the cursor. Trailing untyped text is omitted.
func (t *Test) marks(from, to int) (string, bool) {
	var sb strings.Builder
	var bad bool
	for i := from; i < to; i++ {
		switch {
		case i < len(t.input) && t.input[i] == t.text[i]:
			sb.WriteRune('·')
		case i < len(t.input):
			sb.WriteRune('x')
			bad = true
		case i == t.index:
			sb.WriteRune('^')
		default:
			return sb.String(), bad
		}
	}
	return sb.String(), bad
}

// wrap splits text into [start, end) spans of at most width runes, breaking
// after spaces where possible.
func wrap(text []rune, width int) [][2]int {
	var spans [][2]int
	for start := 0; start < len(text); {
		end := min(start+width, len(text))
		if end < len(text) {
			for i := end; i > start; i-- {
				if text[i-1] == ' ' {
					end = i
					break
				}
			}
		}
		spans = append(spans, [2]int{start, end})
		start = end
	}
	return spans
}

func upper(d Difficulty) string { return strings.ToUpper(string(d)) }

func (t *Test) Summary() output.Output {
	var b output.Buffer
	if t.result == nil {
		b.Warning("Test cancelled.")
		return b.Output()
	}
	r := t.result
	b.Success("✓ TYPING TEST COMPLETED!")
	b.Blank()
	b.Info("Final Results:")
	b.Writef(output.Warning, "  WPM: %d", r.wpm)
	b.Writef(output.Success, "  Accuracy: %d%%", r.accuracy)
	b.Writef(output.Error, "  Errors: %d", t.errors)
	b.Writef(output.Info, "  Time: %.1fs", r.elapsed.Seconds())
	b.Writef(output.Accent, "  Difficulty: %s", upper(t.difficulty))
	b.Blank()
	if t.scores == nil {
		b.Write(output.Muted, "(Score saving not available)")
		return b.Output()
	}
	if r.improved {
		b.Success(fmt.Sprintf("🎊 New personal best WPM for %s!", upper(t.difficulty)))
	} else {
		b.Info(fmt.Sprintf("Your best %s WPM: %d", upper(t.difficulty), r.best))
	}
	b.Blank()
	b.Write(output.Muted, "--- Personal Bests ---")
	for _, d := range Difficulties {
		if best, ok := program.BestScore(t.scores, t.scoreKey(d)); ok {
			b.Writef(output.Plain, "%s: %d WPM", upper(d), best)
		} else {
			b.Writef(output.Plain, "%s: No record", upper(d))
		}
	}
	return b.Output()
}

var _ program.Program = (*Test)(nil)
