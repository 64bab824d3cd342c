package program

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/joeycumines/linkterm/internal/output"
)

// Token identifies one scheduled tick. A tick delivered with a token that is
// no longer current (the program ended, or another program was launched) is
// dropped.
type Token struct {
	gen uint64
	seq uint64
}

// Host owns at most one active Program and its tick schedule.
//
// Front-ends pull the schedule: after launching a program, and after every
// key or tick, they call NextTick and arrange for Tick to be called with the
// returned token once the delay elapses.
type Host struct {
	mu      sync.Mutex
	active  Program
	gen     uint64
	seq     uint64
	pending bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Launch starts p and makes it the active program. If p ends immediately its
// summary is returned with done set.
func (h *Host) Launch(p Program) (summary output.Output, done bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active != nil {
		h.active.Interrupt()
		h.finishLocked()
	}
	h.gen++
	h.seq = 0
	h.pending = false
	h.active = p
	h.ctx, h.cancel = context.WithCancel(context.Background())
	slog.Debug("program launched", "program", p.Name())
	p.Start()
	return h.checkLocked()
}

// Busy reports whether a program currently owns input.
func (h *Host) Busy() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active != nil
}

// Active returns the running program, or nil.
func (h *Host) Active() Program {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// Context is cancelled when the active program ends. With no program it is
// already cancelled.
func (h *Host) Context() context.Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ctx == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return h.ctx
}

// HandleKey forwards k to the active program.
func (h *Host) HandleKey(k Key) (summary output.Output, done bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return output.Output{}, false
	}
	h.active.HandleKey(k)
	return h.checkLocked()
}

// NextTick schedules the next tick of the active program. It returns false
// when there is no program, a tick is already pending, or the program does
// not want one right now.
func (h *Host) NextTick() (Token, time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil || h.pending {
		return Token{}, 0, false
	}
	d := h.active.Interval()
	if d <= 0 {
		return Token{}, 0, false
	}
	h.seq++
	h.pending = true
	return Token{gen: h.gen, seq: h.seq}, d, true
}

// Tick delivers a scheduled tick. Stale tokens are ignored.
func (h *Host) Tick(tok Token) (summary output.Output, done bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil || tok.gen != h.gen || tok.seq != h.seq || !h.pending {
		return output.Output{}, false
	}
	h.pending = false
	h.active.Tick()
	return h.checkLocked()
}

// Interrupt forces the active program to end and returns its summary.
func (h *Host) Interrupt() (summary output.Output, done bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return output.Output{}, false
	}
	h.active.Interrupt()
	return h.checkLocked()
}

// Abort drops the active program without calling into it. It is used after
// the program has panicked.
func (h *Host) Abort() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return
	}
	slog.Debug("program aborted", "program", h.active.Name())
	h.active = nil
	h.pending = false
	h.gen++
	if h.cancel != nil {
		h.cancel()
	}
}

// View renders the active program, or nil.
func (h *Host) View() []output.Line {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		return nil
	}
	return h.active.View()
}

func (h *Host) checkLocked() (output.Output, bool) {
	if h.active.Phase() != Ended {
		return output.Output{}, false
	}
	return h.finishLocked(), true
}

func (h *Host) finishLocked() output.Output {
	p := h.active
	summary := p.Summary()
	slog.Debug("program ended", "program", p.Name())
	h.active = nil
	h.pending = false
	h.gen++
	if h.cancel != nil {
		h.cancel()
	}
	return summary
}
