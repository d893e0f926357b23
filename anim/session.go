package anim

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Neumenon/flicker/flicker"
)

// RenderFunc receives each frame the animator emits. It runs on the
// scheduler's tick goroutine and should return quickly; a slow renderer
// delays subsequent ticks.
type RenderFunc func(flicker.Frame)

// Session is one flicker display: one challenge, one symbol table, one
// animator, one timer. Sessions are created by StartSession and must be
// stopped exactly once; Stop is safe to call more than once but later
// calls do nothing.
type Session struct {
	id    uuid.UUID
	anim  *Animator
	sched Scheduler

	render RenderFunc

	mu      sync.Mutex
	handle  Handle
	stopped bool
}

// StartSession encodes the challenge, builds the animator and schedules
// the first tick after cfg.Delay. Frames are delivered to render until
// Stop is called. cfg must be valid (see Config.Validate).
func StartSession(challenge string, cfg Config, sched Scheduler, render RenderFunc) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		id:     uuid.New(),
		anim:   NewAnimator(flicker.Encode(challenge), cfg.Delay),
		sched:  sched,
		render: render,
	}
	s.mu.Lock()
	s.handle = sched.Schedule(cfg.Delay, s.tick)
	s.mu.Unlock()
	return s, nil
}

// tick is the scheduler callback. A normal tick renders one frame and
// keeps the timer. A tick that consumed an interval change renders
// nothing, starts a replacement timer at the new interval and retires the
// old one by returning false.
func (s *Session) tick() bool {
	frame, redraw := s.anim.Tick()
	if redraw {
		s.render(frame)
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.handle = s.sched.Schedule(s.anim.Interval(), s.tick)
	return false
}

// ID returns the session's identity.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Table returns the symbol table being displayed.
func (s *Session) Table() flicker.SymbolTable {
	return s.anim.Table()
}

// SetDelay changes the tick interval at runtime. The change is picked up
// by the next tick, which draws nothing and reschedules; playback then
// resumes from the same symbol and clock state at the new cadence.
func (s *Session) SetDelay(d time.Duration) error {
	if d < MinDelay || d > MaxDelay {
		return &RangeError{
			Name: "delay",
			Got:  d.Milliseconds(),
			Min:  MinDelay.Milliseconds(),
			Max:  MaxDelay.Milliseconds(),
		}
	}
	s.anim.SetInterval(d)
	return nil
}

// Stop cancels the session's timer. No frame is rendered after Stop
// returns. Stopping twice is harmless.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	h := s.handle
	s.handle = nil
	s.mu.Unlock()

	if h != nil {
		s.sched.Cancel(h)
	}
}
