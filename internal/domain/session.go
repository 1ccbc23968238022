package domain

import "time"

// SessionRecord is an immutable log entry for one completed or
// early-terminated phase. Records are produced by the timer engine and
// handed to storage; Completed is false when the phase was skipped or
// stopped before its planned duration elapsed.
type SessionRecord struct {
	ID         string
	CategoryID string
	Phase      Phase
	StartedAt  time.Time
	EndedAt    time.Time
	Planned    time.Duration
	Actual     time.Duration
	Completed  bool
	Note       string
	CreatedAt  time.Time
}

// CompletionFraction returns Actual/Planned clamped to [0, 1].
func (r SessionRecord) CompletionFraction() float64 {
	if r.Planned <= 0 {
		return 0
	}
	f := float64(r.Actual) / float64(r.Planned)
	if f > 1 {
		return 1
	}
	return f
}
