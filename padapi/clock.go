package padapi

import "time"

// Clock provides a monotonic millisecond timestamp source.
type Clock interface {
	NowMs() uint32
}

type systemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock backed by the monotonic system clock,
// counting milliseconds since construction.
func NewSystemClock() Clock {
	return &systemClock{start: time.Now()}
}

func (c *systemClock) NowMs() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// ManualClock is a Clock advanced explicitly. Useful in tests and for
// driving force feedback computations from a caller-owned timeline.
type ManualClock struct {
	now uint32
}

func (c *ManualClock) NowMs() uint32 {
	return c.now
}

// Advance moves the clock forward by the given number of milliseconds.
func (c *ManualClock) Advance(ms uint32) {
	c.now += ms
}

// Set positions the clock at an absolute millisecond timestamp.
func (c *ManualClock) Set(ms uint32) {
	c.now = ms
}
