package timer

import "time"

// Clock supplies the engine's notion of time for session timestamps.
// Injected so transitions are testable without wall-clock waits; the
// periodic tick cadence comes from whatever drives Tick (a Runner or a TUI
// tick loop), not from the Clock itself.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
