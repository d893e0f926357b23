// Package anim drives the timed playback of a flicker symbol table.
//
// The central type is Animator, a small cyclic state machine: an external
// scheduler calls Tick every interval, and each Tick either emits the next
// Frame for the presentation layer to draw or applies a pending interval
// change. Every symbol is shown for exactly two consecutive ticks, first
// with the clock bit set and then cleared, so the TAN generator sees one
// light/dark edge per symbol. When the cursor reaches the end of the table
// it wraps to the start; the animation loops until the session stops.
//
// Session bundles one challenge with one animator and one timer: it
// encodes the challenge, schedules the ticks, and hands frames to a render
// callback. Registry tracks live sessions by UUID for hosts that manage
// several displays at once.
//
// All transitions for a session are serialized: the scheduler fires ticks
// from a single goroutine and the animator guards its state with a mutex
// so that control calls (SetInterval, Stop) from other goroutines never
// interleave with a transition in progress.
package anim
