package anim

import (
	"sync"
	"testing"
	"time"

	"github.com/Neumenon/flicker/flicker"
)

// fakeScheduler fires ticks on demand so tests control time.
type fakeScheduler struct {
	mu        sync.Mutex
	handles   []*fakeHandle
	cancelled int
}

type fakeHandle struct {
	interval time.Duration
	fn       func() bool
	retired  bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (s *fakeScheduler) Schedule(interval time.Duration, fn func() bool) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &fakeHandle{interval: interval, fn: fn}
	s.handles = append(s.handles, h)
	return h
}

func (s *fakeScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fh, ok := h.(*fakeHandle); ok && !fh.retired {
		fh.retired = true
		s.cancelled++
	}
}

// current returns the newest non-retired handle.
func (s *fakeScheduler) current() *fakeHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.handles) - 1; i >= 0; i-- {
		if !s.handles[i].retired {
			return s.handles[i]
		}
	}
	return nil
}

// fire dispatches one tick on the current handle, retiring it if the
// callback declines.
func (s *fakeScheduler) fire(t *testing.T) {
	t.Helper()
	h := s.current()
	if h == nil {
		t.Fatal("no live timer to fire")
	}
	if !h.fn() {
		s.mu.Lock()
		h.retired = true
		s.mu.Unlock()
	}
}

func TestSession_RendersFramesInOrder(t *testing.T) {
	sched := newFakeScheduler()
	var frames []flicker.Frame

	s, err := StartSession("1A", DefaultConfig(), sched, func(f flicker.Frame) {
		frames = append(frames, f)
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	defer s.Stop()

	if h := sched.current(); h == nil || h.interval != DefaultDelay {
		t.Fatalf("initial timer = %+v, want interval %v", h, DefaultDelay)
	}

	for i := 0; i < 4; i++ {
		sched.fire(t)
	}
	if len(frames) != 4 {
		t.Fatalf("rendered %d frames, want 4", len(frames))
	}
	table := s.Table()
	// Ticks 0,1 show symbol 0; ticks 2,3 show symbol 1.
	if !frames[0].Clock() || frames[1].Clock() {
		t.Error("clock cadence wrong on first symbol")
	}
	for b := 1; b < flicker.SymbolBits; b++ {
		if frames[2].Bit(b) != table[1][b] {
			t.Errorf("frame 2 bit %d = %v, want table[1] value", b, frames[2].Bit(b))
		}
	}
}

func TestSession_SetDelayReschedules(t *testing.T) {
	sched := newFakeScheduler()
	rendered := 0

	s, err := StartSession("1A", DefaultConfig(), sched, func(flicker.Frame) {
		rendered++
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	defer s.Stop()

	sched.fire(t)
	sched.fire(t)

	if err := s.SetDelay(200 * time.Millisecond); err != nil {
		t.Fatalf("SetDelay failed: %v", err)
	}

	// Next tick still fires on the old timer, draws nothing, and replaces
	// the timer with one at the new interval.
	old := sched.current()
	sched.fire(t)
	if rendered != 2 {
		t.Fatalf("rendered = %d after interval-change tick, want 2", rendered)
	}
	cur := sched.current()
	if cur == old || cur == nil {
		t.Fatal("interval-change tick did not replace the timer")
	}
	if cur.interval != 200*time.Millisecond {
		t.Errorf("new timer interval = %v, want 200ms", cur.interval)
	}

	// Playback resumes without skipping: the next frame completes the
	// symbol that was mid-display.
	sched.fire(t)
	if rendered != 3 {
		t.Errorf("rendered = %d, want 3", rendered)
	}
}

func TestSession_SetDelayRejectsOutOfRange(t *testing.T) {
	sched := newFakeScheduler()
	s, err := StartSession("1A", DefaultConfig(), sched, func(flicker.Frame) {})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	defer s.Stop()

	if err := s.SetDelay(5 * time.Millisecond); err == nil {
		t.Error("SetDelay(5ms) succeeded, want range error")
	}
	if err := s.SetDelay(2 * time.Second); err == nil {
		t.Error("SetDelay(2s) succeeded, want range error")
	}
	// Unchanged: the next tick still draws.
	before := sched.current()
	sched.fire(t)
	if sched.current() != before {
		t.Error("rejected SetDelay still replaced the timer")
	}
}

func TestSession_StopIsIdempotent(t *testing.T) {
	sched := newFakeScheduler()
	s, err := StartSession("1A", DefaultConfig(), sched, func(flicker.Frame) {})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	s.Stop()
	s.Stop()
	if sched.cancelled != 1 {
		t.Errorf("cancelled %d timers, want 1", sched.cancelled)
	}
	if sched.current() != nil {
		t.Error("live timer remains after Stop")
	}
}

func TestSession_RejectsInvalidConfig(t *testing.T) {
	sched := newFakeScheduler()
	cfg := Config{BarWidth: 5, Delay: DefaultDelay}
	if _, err := StartSession("1A", cfg, sched, func(flicker.Frame) {}); err == nil {
		t.Error("StartSession accepted barwidth 5, want range error")
	}
	cfg = Config{BarWidth: flicker.DefaultBarWidth, Delay: time.Millisecond}
	if _, err := StartSession("1A", cfg, sched, func(flicker.Frame) {}); err == nil {
		t.Error("StartSession accepted 1ms delay, want range error")
	}
}

func TestRegistry(t *testing.T) {
	sched := newFakeScheduler()
	reg := NewRegistry()

	s1, err := StartSession("1A", DefaultConfig(), sched, func(flicker.Frame) {})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	s2, err := StartSession("2B", DefaultConfig(), sched, func(flicker.Frame) {})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	reg.Add(s1)
	reg.Add(s2)

	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
	if got := reg.Get(s1.ID()); got != s1 {
		t.Error("Get returned wrong session")
	}
	if len(reg.All()) != 2 {
		t.Errorf("All() returned %d ids, want 2", len(reg.All()))
	}

	reg.Remove(s1.ID())
	if reg.Get(s1.ID()) != nil {
		t.Error("session still present after Remove")
	}
	if sched.cancelled != 1 {
		t.Errorf("Remove cancelled %d timers, want 1", sched.cancelled)
	}

	reg.StopAll()
	if reg.Len() != 0 {
		t.Errorf("Len() = %d after StopAll, want 0", reg.Len())
	}
	if sched.cancelled != 2 {
		t.Errorf("cancelled %d timers total, want 2", sched.cancelled)
	}
}
