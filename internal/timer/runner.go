package timer

import (
	"context"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// Runner drives an Engine from a wall-clock ticker at a fixed cadence. It
// is the scheduling source for headless operation; the interactive TUI has
// its own tick loop and does not use a Runner.
type Runner struct {
	engine   *Engine
	interval time.Duration
}

// NewRunner creates a Runner ticking at the given interval. Intervals of
// one second or below keep the displayed countdown smooth; zero or
// negative falls back to one second.
func NewRunner(engine *Engine, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{engine: engine, interval: interval}
}

// Run ticks the engine until it returns to idle or the context is
// canceled. Deltas are measured between ticks rather than assumed, so a
// delayed wakeup does not lose time.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			r.engine.Tick(now.Sub(last))
			last = now
			if r.engine.Phase() == domain.PhaseIdle {
				return nil
			}
		}
	}
}
