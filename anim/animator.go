package anim

import (
	"sync"
	"time"

	"github.com/Neumenon/flicker/flicker"
)

// Animator steps through a symbol table, two ticks per symbol. It owns the
// playback cursor and clock; the symbol table itself is read-only and may
// be shared with the code that built it.
type Animator struct {
	mu sync.Mutex

	table flicker.SymbolTable

	cursor   int  // index into table, wraps at len(table)
	clock    bool // toggles every drawn frame; true on the first tick of a symbol
	interval time.Duration

	// pendingInterval marks that SetInterval was called and the next tick
	// must reschedule instead of drawing.
	pendingInterval bool
}

// NewAnimator creates an animator positioned at the first symbol with the
// clock bit set, ready for its first tick.
func NewAnimator(table flicker.SymbolTable, interval time.Duration) *Animator {
	return &Animator{
		table:    table,
		clock:    true,
		interval: interval,
	}
}

// Tick performs one state transition and returns the frame to draw.
//
// The boolean result is false for exactly one tick after SetInterval: that
// tick consumes the pending interval change and draws nothing, and the
// caller must cancel its timer and reschedule at Interval(). Cursor and
// clock are untouched by such a tick, so no symbol is skipped or repeated.
//
// Otherwise Tick emits the symbol under the cursor with the clock bit
// filled in, then toggles the clock; when the clock wraps back to true the
// cursor advances (modulo table length). The result is the frame and true.
func (a *Animator) Tick() (flicker.Frame, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pendingInterval {
		a.pendingInterval = false
		return flicker.Frame{}, false
	}

	frame := flicker.Frame(a.table[a.cursor])
	frame[0] = a.clock

	if a.clock {
		a.clock = false
	} else {
		a.clock = true
		a.cursor++
		if a.cursor >= len(a.table) {
			a.cursor = 0
		}
	}
	return frame, true
}

// SetInterval stores a new tick interval and flags it for pickup. The
// change takes effect when the in-flight timer fires next: that tick
// reschedules instead of drawing, so one more tick happens at the old
// cadence before the new one applies.
func (a *Animator) SetInterval(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.interval = d
	a.pendingInterval = true
}

// Interval returns the current tick interval.
func (a *Animator) Interval() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.interval
}

// Table returns the symbol table being played.
func (a *Animator) Table() flicker.SymbolTable {
	return a.table
}
