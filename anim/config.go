package anim

import (
	"fmt"
	"time"

	"github.com/Neumenon/flicker/flicker"
)

// Tick interval defaults and limits. Small delays flicker faster; old TAN
// generators need the slower end of the range.
const (
	DefaultDelay = 50 * time.Millisecond
	MinDelay     = 10 * time.Millisecond
	MaxDelay     = 1000 * time.Millisecond
)

// Config holds the two user-adjustable display settings: the bar width
// (matched to the TAN generator's sensor spacing) and the tick delay.
type Config struct {
	BarWidth int
	Delay    time.Duration
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		BarWidth: flicker.DefaultBarWidth,
		Delay:    DefaultDelay,
	}
}

// RangeError reports a configuration value outside its permitted range.
type RangeError struct {
	Name string
	Got  int64
	Min  int64
	Max  int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("anim: %s = %d out of range [%d, %d]", e.Name, e.Got, e.Min, e.Max)
}

// Validate reports the first out-of-range setting, or nil.
func (c Config) Validate() error {
	if c.BarWidth < flicker.MinBarWidth || c.BarWidth > flicker.MaxBarWidth {
		return &RangeError{
			Name: "barwidth",
			Got:  int64(c.BarWidth),
			Min:  flicker.MinBarWidth,
			Max:  flicker.MaxBarWidth,
		}
	}
	if c.Delay < MinDelay || c.Delay > MaxDelay {
		return &RangeError{
			Name: "delay",
			Got:  c.Delay.Milliseconds(),
			Min:  MinDelay.Milliseconds(),
			Max:  MaxDelay.Milliseconds(),
		}
	}
	return nil
}

// Clamp returns a copy with both settings forced into their ranges.
func (c Config) Clamp() Config {
	if c.BarWidth < flicker.MinBarWidth {
		c.BarWidth = flicker.MinBarWidth
	}
	if c.BarWidth > flicker.MaxBarWidth {
		c.BarWidth = flicker.MaxBarWidth
	}
	if c.Delay < MinDelay {
		c.Delay = MinDelay
	}
	if c.Delay > MaxDelay {
		c.Delay = MaxDelay
	}
	return c
}
