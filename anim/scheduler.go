package anim

import (
	"sync"
	"time"
)

// Scheduler is the periodic-callback source that drives an animator:
// "call fn every interval until it declines or is cancelled".
type Scheduler interface {
	// Schedule arranges for fn to be called every interval, starting one
	// interval from now. Callbacks for a single handle are serialized.
	// When fn returns false the handle is retired and fn is not called
	// again; this lets a callback replace its own timer without
	// deadlocking on Cancel.
	Schedule(interval time.Duration, fn func() bool) Handle

	// Cancel stops a handle's callbacks. After Cancel returns no new
	// callback is dispatched; a callback already running may complete.
	// Cancelling a retired or already-cancelled handle is a no-op.
	Cancel(h Handle)
}

// Handle identifies one scheduled periodic callback.
type Handle interface{}

// TickerScheduler implements Scheduler on time.Ticker, one goroutine per
// handle. The single goroutine guarantees that ticks for one handle never
// interleave.
type TickerScheduler struct{}

// NewTickerScheduler returns the real-time scheduler.
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

type tickerHandle struct {
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Schedule starts a ticker goroutine calling fn every interval.
func (s *TickerScheduler) Schedule(interval time.Duration, fn func() bool) Handle {
	h := &tickerHandle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(h.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				// Re-check stop so a cancel that raced the ticker wins.
				select {
				case <-h.stop:
					return
				default:
				}
				if !fn() {
					return
				}
			}
		}
	}()
	return h
}

// Cancel stops the handle's goroutine and waits for it to exit, so no
// callback starts after Cancel returns. Cancel must not be called from
// inside the handle's own callback; a callback that wants to stop returns
// false instead.
func (s *TickerScheduler) Cancel(h Handle) {
	th, ok := h.(*tickerHandle)
	if !ok || th == nil {
		return
	}
	th.stopOnce.Do(func() { close(th.stop) })
	<-th.done
}
