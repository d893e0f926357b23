package main

import (
	"sync"

	"github.com/Neumenon/flicker/flicker"
)

// frameHub fans one session's frames out to any number of SSE watchers.
// Slow watchers drop frames rather than stall the animator: the flicker
// cadence is only meaningful in real time.
type frameHub struct {
	mu     sync.Mutex
	subs   map[chan flicker.Frame]struct{}
	closed bool
}

func newFrameHub() *frameHub {
	return &frameHub{subs: make(map[chan flicker.Frame]struct{})}
}

// broadcast delivers a frame to every subscriber without blocking.
func (h *frameHub) broadcast(f flicker.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- f:
		default:
		}
	}
}

// subscribe registers a watcher. The returned channel is closed when the
// hub shuts down.
func (h *frameHub) subscribe() chan flicker.Frame {
	ch := make(chan flicker.Frame, 8)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.subs[ch] = struct{}{}
	return ch
}

// unsubscribe removes a watcher.
func (h *frameHub) unsubscribe(ch chan flicker.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

// close shuts the hub down and disconnects all watchers.
func (h *frameHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		close(ch)
	}
	h.subs = make(map[chan flicker.Frame]struct{})
}
