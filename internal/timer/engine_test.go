package timer

import (
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// recordingSink collects every delivered event in order.
type recordingSink struct {
	events []Event
}

func (s *recordingSink) HandleEvent(ev Event) {
	s.events = append(s.events, ev)
}

func (s *recordingSink) types() []EventType {
	out := make([]EventType, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

func (s *recordingSink) lastRecord() *domain.SessionRecord {
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].Type == EventPhaseCompleted {
			return s.events[i].Record
		}
	}
	return nil
}

var classic = domain.Preset{Name: "Classic", FocusMinutes: 25, BreakMinutes: 5}

func TestEngine_StartFocus(t *testing.T) {
	sink := &recordingSink{}
	e := New(sink, WithClock(newFakeClock()))

	err := e.StartFocus("cat-1", classic)
	require.NoError(t, err)

	snap := e.Snapshot()
	assert.Equal(t, domain.PhaseFocus, snap.Phase)
	assert.Equal(t, domain.RunRunning, snap.RunState)
	assert.Equal(t, 25*time.Minute, snap.Remaining)
	assert.Equal(t, 25*time.Minute, snap.Planned)
	assert.Equal(t, time.Duration(0), snap.Elapsed)
	assert.Equal(t, "cat-1", snap.CategoryID)

	require.Len(t, sink.events, 1)
	assert.Equal(t, EventPhaseStarted, sink.events[0].Type)
	assert.Equal(t, domain.PhaseFocus, sink.events[0].Phase)
	assert.Equal(t, 25*time.Minute, sink.events[0].Remaining)
}

func TestEngine_StartFocusRejectedWhenNotIdle(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.StartFocus("cat-1", classic))

	before := e.Snapshot()
	err := e.StartFocus("cat-1", classic)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// Rejected command leaves state untouched
	assert.Equal(t, before, e.Snapshot())
}

func TestEngine_StartFocusValidatesPreset(t *testing.T) {
	e := New(nil)
	err := e.StartFocus("cat-1", domain.Preset{Name: "Custom", FocusMinutes: 0, BreakMinutes: 5})
	require.ErrorIs(t, err, domain.ErrInvalidPreset)
	assert.Equal(t, domain.PhaseIdle, e.Phase())
}

func TestEngine_PauseResume(t *testing.T) {
	sink := &recordingSink{}
	e := New(sink)
	require.NoError(t, e.StartFocus("cat-1", classic))

	e.Tick(time.Minute)
	require.NoError(t, e.Pause())
	assert.Equal(t, domain.RunPaused, e.RunState())

	// Paused ticks do not advance the countdown
	e.Tick(10 * time.Minute)
	assert.Equal(t, 24*time.Minute, e.Remaining())
	assert.Equal(t, time.Minute, e.Elapsed())

	require.NoError(t, e.Resume())
	assert.Equal(t, domain.RunRunning, e.RunState())
	e.Tick(time.Minute)
	assert.Equal(t, 23*time.Minute, e.Remaining())

	assert.Equal(t, []EventType{
		EventPhaseStarted, EventTick, EventPaused, EventResumed, EventTick,
	}, sink.types())
}

func TestEngine_PauseRequiresRunning(t *testing.T) {
	e := New(nil)
	require.ErrorIs(t, e.Pause(), ErrInvalidTransition)

	require.NoError(t, e.StartFocus("cat-1", classic))
	require.NoError(t, e.Pause())
	require.ErrorIs(t, e.Pause(), ErrInvalidTransition)
}

func TestEngine_ResumeRequiresPaused(t *testing.T) {
	e := New(nil)
	require.ErrorIs(t, e.Resume(), ErrInvalidTransition)

	require.NoError(t, e.StartFocus("cat-1", classic))
	require.ErrorIs(t, e.Resume(), ErrInvalidTransition)
}

func TestEngine_TickCountdown(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.StartFocus("cat-1", classic))

	for i := 0; i < 10; i++ {
		e.Tick(time.Minute)
		snap := e.Snapshot()
		assert.Equal(t, snap.Planned, snap.Elapsed+snap.Remaining)
	}
	assert.Equal(t, 15*time.Minute, e.Remaining())
	assert.Equal(t, 10*time.Minute, e.Elapsed())
}

func TestEngine_TickClampsOvershoot(t *testing.T) {
	e := New(nil, WithAutoStartBreak(false))
	require.NoError(t, e.StartFocus("cat-1", classic))

	sink := &recordingSink{}
	e.sink = sink
	e.Tick(24 * time.Minute)
	// Final tick overshoots; actual never exceeds planned
	e.Tick(5 * time.Minute)

	rec := sink.lastRecord()
	require.NotNil(t, rec)
	assert.Equal(t, 25*time.Minute, rec.Actual)
	assert.Equal(t, 25*time.Minute, rec.Planned)
	assert.True(t, rec.Completed)
}

func TestEngine_FocusCompletionChainsIntoBreak(t *testing.T) {
	clock := newFakeClock()
	sink := &recordingSink{}
	e := New(sink, WithClock(clock), WithAutoStartBreak(true))
	require.NoError(t, e.StartFocus("cat-1", classic))

	clock.Advance(25 * time.Minute)
	e.Tick(25 * time.Minute)

	snap := e.Snapshot()
	assert.Equal(t, domain.PhaseBreak, snap.Phase)
	assert.Equal(t, domain.RunRunning, snap.RunState)
	assert.Equal(t, 5*time.Minute, snap.Remaining)
	assert.Equal(t, "cat-1", snap.CategoryID)

	assert.Equal(t, []EventType{
		EventPhaseStarted, EventTick, EventPhaseCompleted, EventPhaseStarted,
	}, sink.types())

	rec := sink.lastRecord()
	require.NotNil(t, rec)
	assert.Equal(t, domain.PhaseFocus, rec.Phase)
	assert.True(t, rec.Completed)
	assert.Equal(t, 25*time.Minute, rec.Actual)
	assert.Equal(t, clock.now, rec.EndedAt)
}

func TestEngine_FocusCompletionWithoutAutoBreakGoesIdle(t *testing.T) {
	sink := &recordingSink{}
	e := New(sink, WithAutoStartBreak(false))
	require.NoError(t, e.StartFocus("cat-1", classic))

	e.Tick(25 * time.Minute)

	snap := e.Snapshot()
	assert.Equal(t, domain.PhaseIdle, snap.Phase)
	assert.Equal(t, domain.RunStopped, snap.RunState)
	assert.Equal(t, []EventType{
		EventPhaseStarted, EventTick, EventPhaseCompleted, EventPhaseIdle,
	}, sink.types())
}

func TestEngine_BreakCompletionChainsIntoFocus(t *testing.T) {
	sink := &recordingSink{}
	e := New(sink, WithAutoStartBreak(true), WithAutoStartFocus(true))
	require.NoError(t, e.StartFocus("cat-1", classic))

	e.Tick(25 * time.Minute) // focus done, break started
	e.Tick(5 * time.Minute)  // break done, next focus started

	snap := e.Snapshot()
	assert.Equal(t, domain.PhaseFocus, snap.Phase)
	assert.Equal(t, domain.RunRunning, snap.RunState)
	assert.Equal(t, 25*time.Minute, snap.Remaining)
	assert.Equal(t, "cat-1", snap.CategoryID)
	assert.Equal(t, classic, snap.Preset)
}

func TestEngine_BreakCompletionWithoutAutoFocusGoesIdle(t *testing.T) {
	e := New(nil, WithAutoStartBreak(true), WithAutoStartFocus(false))
	require.NoError(t, e.StartFocus("cat-1", classic))

	e.Tick(25 * time.Minute)
	e.Tick(5 * time.Minute)

	assert.Equal(t, domain.PhaseIdle, e.Phase())
	assert.Equal(t, domain.RunStopped, e.RunState())
}

func TestEngine_Skip(t *testing.T) {
	clock := newFakeClock()
	sink := &recordingSink{}
	e := New(sink, WithClock(clock), WithAutoStartBreak(true))
	require.NoError(t, e.StartFocus("cat-1", classic))

	clock.Advance(10 * time.Minute)
	e.Tick(10 * time.Minute)
	require.NoError(t, e.Skip())

	rec := sink.lastRecord()
	require.NotNil(t, rec)
	assert.False(t, rec.Completed)
	assert.Equal(t, 10*time.Minute, rec.Actual)
	assert.Equal(t, 25*time.Minute, rec.Planned)

	// Skip applies the same chaining policy as natural completion
	assert.Equal(t, domain.PhaseBreak, e.Phase())
	assert.Equal(t, domain.RunRunning, e.RunState())
}

func TestEngine_SkipDuringBreak(t *testing.T) {
	sink := &recordingSink{}
	e := New(sink, WithAutoStartBreak(true), WithAutoStartFocus(false))
	require.NoError(t, e.StartFocus("cat-1", classic))
	e.Tick(25 * time.Minute)

	require.NoError(t, e.Skip())

	rec := sink.lastRecord()
	require.NotNil(t, rec)
	assert.Equal(t, domain.PhaseBreak, rec.Phase)
	assert.False(t, rec.Completed)
	assert.Equal(t, domain.PhaseIdle, e.Phase())
}

func TestEngine_SkipRequiresActivePhase(t *testing.T) {
	e := New(nil)
	require.ErrorIs(t, e.Skip(), ErrInvalidTransition)
}

func TestEngine_Reset(t *testing.T) {
	sink := &recordingSink{}
	e := New(sink)
	require.NoError(t, e.StartFocus("cat-1", classic))
	e.Tick(10 * time.Minute)

	require.NoError(t, e.Reset())

	snap := e.Snapshot()
	assert.Equal(t, domain.PhaseIdle, snap.Phase)
	assert.Equal(t, domain.RunStopped, snap.RunState)
	assert.Equal(t, time.Duration(0), snap.Remaining)
	assert.Empty(t, snap.CategoryID)

	// Reset discards the session: no record is emitted
	assert.Nil(t, sink.lastRecord())
	assert.Equal(t, EventPhaseIdle, sink.events[len(sink.events)-1].Type)
}

func TestEngine_ResetFromIdle(t *testing.T) {
	sink := &recordingSink{}
	e := New(sink)
	require.NoError(t, e.Reset())
	assert.Equal(t, []EventType{EventPhaseIdle}, sink.types())
}

func TestEngine_TickIgnoredWhenIdle(t *testing.T) {
	sink := &recordingSink{}
	e := New(sink)
	e.Tick(time.Minute)
	assert.Empty(t, sink.events)
	assert.Equal(t, domain.PhaseIdle, e.Phase())
}

func TestEngine_StoppedIffIdle(t *testing.T) {
	e := New(nil, WithAutoStartBreak(true), WithAutoStartFocus(false))

	check := func() {
		snap := e.Snapshot()
		if snap.Phase == domain.PhaseIdle {
			assert.Equal(t, domain.RunStopped, snap.RunState)
		} else {
			assert.NotEqual(t, domain.RunStopped, snap.RunState)
		}
	}

	check()
	require.NoError(t, e.StartFocus("cat-1", classic))
	check()
	require.NoError(t, e.Pause())
	check()
	require.NoError(t, e.Resume())
	check()
	e.Tick(25 * time.Minute)
	check()
	require.NoError(t, e.Skip())
	check()
	require.NoError(t, e.Reset())
	check()
}

func TestEngine_SetAutoStartAffectsNextCompletion(t *testing.T) {
	e := New(nil, WithAutoStartBreak(false))
	require.NoError(t, e.StartFocus("cat-1", classic))

	e.SetAutoStart(true, false)
	e.Tick(25 * time.Minute)

	assert.Equal(t, domain.PhaseBreak, e.Phase())
}

func TestEngine_SinkCommandDeferredToNextTick(t *testing.T) {
	var e *Engine
	var seen []EventType
	sink := SinkFunc(func(ev Event) {
		seen = append(seen, ev.Type)
		if ev.Type == EventPhaseCompleted {
			// Command issued mid-delivery must not run re-entrantly
			require.NoError(t, e.Reset())
		}
	})
	e = New(sink, WithAutoStartBreak(true))
	require.NoError(t, e.StartFocus("cat-1", classic))

	e.Tick(25 * time.Minute)
	// The deferred Reset has not run yet: the chained break is still active
	assert.Equal(t, domain.PhaseBreak, e.Phase())

	e.Tick(time.Second)
	assert.Equal(t, domain.PhaseIdle, e.Phase())
	assert.Equal(t, EventPhaseIdle, seen[len(seen)-1])
}

func TestEngine_NilSink(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.StartFocus("cat-1", classic))
	e.Tick(25 * time.Minute)
	assert.Equal(t, domain.PhaseIdle, e.Phase())
}

func TestEngine_ZeroBreakPreset(t *testing.T) {
	e := New(nil, WithAutoStartBreak(true))
	require.NoError(t, e.StartFocus("cat-1", domain.Preset{Name: "Custom", FocusMinutes: 10, BreakMinutes: 0}))

	e.Tick(10 * time.Minute)
	assert.Equal(t, domain.PhaseBreak, e.Phase())
	assert.Equal(t, time.Duration(0), e.Remaining())

	// A zero-length break finishes on the next tick
	e.Tick(time.Second)
	assert.Equal(t, domain.PhaseIdle, e.Phase())
}
