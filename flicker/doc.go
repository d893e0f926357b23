// Package flicker implements the chipTAN optical ("Flicker") challenge
// codec used by banking TAN generators with a photodiode interface.
//
// A bank issues a challenge as a string of ASCII hex digits. The challenge
// is shown on screen as five flashing black/white bars; the handheld TAN
// generator is held against the screen and reads the bars optically. Each
// displayed unit ("symbol") is 5 bits wide:
//
//	[clock, b1, b2, b3, b4]
//
// where b1..b4 carry one hex nibble with its bits reversed (b1 is the
// least significant bit, b4 the most significant) and the clock bit
// alternates between frames so the generator can detect an edge per
// symbol instead of relying on absolute light levels.
//
// # Encoding
//
// Encode prepends the fixed synchronization prefix "0FFF" and then walks
// the prefixed challenge in character pairs. The two nibbles of each pair
// are cross-assigned: the second character's pattern lands at the first
// character's table index and vice versa (low-order nibble first). This
// reordering is mandated by the chipTAN optical protocol.
//
// # Division of labor
//
// This package is pure computation: it produces the symbol table, formats
// it as text, and computes bar/marker geometry for a presentation layer.
// The timed playback state machine lives in package anim; drawing pixels
// is entirely up to the caller.
package flicker
