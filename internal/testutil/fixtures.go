package testutil

import (
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/google/uuid"
)

// Category options
type CategoryOption func(*domain.Category)

func WithDurations(focus, brk int) CategoryOption {
	return func(c *domain.Category) {
		c.FocusMinutes = focus
		c.BreakMinutes = brk
	}
}

func WithColor(color string) CategoryOption {
	return func(c *domain.Category) {
		c.Color = color
	}
}

func NewTestCategory(name string, opts ...CategoryOption) *domain.Category {
	c := &domain.Category{
		ID:           uuid.New().String(),
		Name:         name,
		FocusMinutes: 25,
		BreakMinutes: 5,
		Color:        domain.DefaultColor,
		CreatedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionRecord options
type RecordOption func(*domain.SessionRecord)

func WithPhase(p domain.Phase) RecordOption {
	return func(r *domain.SessionRecord) {
		r.Phase = p
	}
}

func WithStartedAt(at time.Time) RecordOption {
	return func(r *domain.SessionRecord) {
		r.StartedAt = at
		r.EndedAt = at.Add(r.Actual)
	}
}

func WithDuration(planned, actual time.Duration) RecordOption {
	return func(r *domain.SessionRecord) {
		r.Planned = planned
		r.Actual = actual
		r.EndedAt = r.StartedAt.Add(actual)
		r.Completed = actual >= planned
	}
}

func WithCompleted(completed bool) RecordOption {
	return func(r *domain.SessionRecord) {
		r.Completed = completed
	}
}

func WithNote(note string) RecordOption {
	return func(r *domain.SessionRecord) {
		r.Note = note
	}
}

// NewTestRecord builds a completed 25-minute focus record for the given
// category, ending now. Options adjust phase, timing and completion.
func NewTestRecord(categoryID string, opts ...RecordOption) *domain.SessionRecord {
	now := time.Now().UTC()
	r := &domain.SessionRecord{
		ID:         uuid.New().String(),
		CategoryID: categoryID,
		Phase:      domain.PhaseFocus,
		StartedAt:  now.Add(-25 * time.Minute),
		EndedAt:    now,
		Planned:    25 * time.Minute,
		Actual:     25 * time.Minute,
		Completed:  true,
		CreatedAt:  now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
