// Package program defines interactive programs: games and other input loops
// that take exclusive ownership of the keyboard while they run.
package program

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joeycumines/linkterm/internal/output"
)

// Phase is the lifecycle state of a Program.
type Phase uint8

const (
	NotStarted Phase = iota
	Running
	Paused
	Ended
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Active reports whether a program in this phase owns input.
func (p Phase) Active() bool { return p == Running || p == Paused }

// Program is a self-contained input loop.
//
// A program moves NotStarted -> Running on Start, may toggle between Running
// and Paused, and finishes in Ended. Once Ended it ignores further input and
// ticks. All methods are called from a single goroutine.
type Program interface {
	// Name identifies the program, e.g. "snake".
	Name() string
	// Start transitions out of NotStarted.
	Start()
	// HandleKey processes one keystroke.
	HandleKey(k Key)
	// Tick advances a timer-driven program by one step.
	Tick()
	// Interval is the delay before the next Tick, or zero when the program
	// is purely event-driven in its current phase.
	Interval() time.Duration
	// Interrupt forces the program to Ended from any phase.
	Interrupt()
	// Phase reports the lifecycle state.
	Phase() Phase
	// View renders the current frame.
	View() []output.Line
	// Summary is displayed once the program has ended. It is never empty.
	Summary() output.Output
}

// Scores persists best results, keyed by program and difficulty. Higher is
// better.
type Scores interface {
	Best(key string) (value int, ok bool, err error)
	Submit(key string, value int) (best int, improved bool, err error)
}

// ScoreKey joins a program name and an optional difficulty into a Scores key.
func ScoreKey(name, difficulty string) string {
	if difficulty == "" {
		return name
	}
	return name + "/" + difficulty
}

// RecordScore submits value to s. Storage failures are logged and treated as
// "not improved" so that a broken score file never interrupts a game.
func RecordScore(s Scores, key string, value int) (best int, improved bool) {
	best, improved, err := s.Submit(key, value)
	if err != nil {
		slog.Warn("failed to record score", "key", key, "value", value, "error", err)
		return value, false
	}
	return best, improved
}

// BestScore reads the stored best for key, logging failures.
func BestScore(s Scores, key string) (int, bool) {
	v, ok, err := s.Best(key)
	if err != nil {
		slog.Warn("failed to read score", "key", key, "error", err)
		return 0, false
	}
	return v, ok
}
