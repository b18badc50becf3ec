package core

import "time"

// RuntimeConfig is what the host hands to a scene when it starts or restarts.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Scheduler period
	Seed         int64         // RNG seed; 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 25 ticks
// per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickInterval: 40 * time.Millisecond,
	}
}

// TickMs returns the tick interval in whole milliseconds, at least 1.
func (c RuntimeConfig) TickMs() int64 {
	ms := c.TickInterval.Milliseconds()
	if ms < 1 {
		return 1
	}
	return ms
}

// Scene is a time-driven text screen such as the boot listing.
// Scenes never read the wall clock; the host passes a monotonic millisecond
// timestamp to every call.
type Scene interface {
	// Reset rewinds the scene to its first frame.
	Reset(cfg RuntimeConfig, now int64)

	// Update advances the scene to now.
	Update(now int64)

	// Render draws the scene into dst. The screen is pre-cleared.
	Render(dst *Screen)

	// Done reports whether the scene has finished and the host may move on.
	Done() bool
}
