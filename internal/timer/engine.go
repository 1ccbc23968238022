package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// ErrInvalidTransition indicates a command issued in a state that forbids
// it. The rejected command leaves engine state unchanged.
var ErrInvalidTransition = errors.New("invalid transition")

// Engine is the phase state machine at the core of the timer. It owns the
// current phase, run state, remaining time and active category/preset, and
// emits lifecycle events to its Sink on every transition.
//
// Commands and Tick must be serialized by the caller's scheduling source; a
// mutex additionally guards against commands arriving from a second
// goroutine. Events are emitted only after the full state mutation for a
// transition is complete, with the mutex released, so a slow sink cannot
// hold the engine mid-transition.
type Engine struct {
	mu    sync.Mutex
	clock Clock
	sink  Sink

	phase      domain.Phase
	runState   domain.RunState
	remaining  time.Duration
	elapsed    time.Duration
	planned    time.Duration
	categoryID string
	preset     domain.Preset
	startedAt  time.Time

	autoStartBreak bool
	autoStartFocus bool

	// Commands issued from inside event delivery are deferred here and
	// applied at the start of the next Tick.
	delivering bool
	deferred   []func() []Event
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Phase          domain.Phase
	RunState       domain.RunState
	Remaining      time.Duration
	Elapsed        time.Duration
	Planned        time.Duration
	CategoryID     string
	Preset         domain.Preset
	AutoStartBreak bool
	AutoStartFocus bool
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithClock replaces the system clock, typically with a fake in tests.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithAutoStartBreak controls whether a completed focus phase chains
// directly into its break.
func WithAutoStartBreak(on bool) Option {
	return func(e *Engine) { e.autoStartBreak = on }
}

// WithAutoStartFocus controls whether a completed break chains directly
// into the next focus phase with the same category and preset.
func WithAutoStartFocus(on bool) Option {
	return func(e *Engine) { e.autoStartFocus = on }
}

// New creates an idle Engine delivering events to sink. A nil sink
// discards events.
func New(sink Sink, opts ...Option) *Engine {
	e := &Engine{
		clock:    SystemClock(),
		sink:     sink,
		phase:    domain.PhaseIdle,
		runState: domain.RunStopped,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartFocus begins a focus phase for the given category and preset. Valid
// only from idle; fails with ErrInvalidTransition otherwise, and with
// ErrInvalidPreset if the preset fails validation.
func (e *Engine) StartFocus(categoryID string, preset domain.Preset) error {
	return e.dispatch(func() ([]Event, error) {
		if e.phase != domain.PhaseIdle {
			return nil, fmt.Errorf("start focus while %s: %w", e.phase, ErrInvalidTransition)
		}
		if err := preset.Validate(); err != nil {
			return nil, err
		}
		e.beginPhaseLocked(domain.PhaseFocus, categoryID, preset)
		return []Event{e.eventLocked(EventPhaseStarted)}, nil
	})
}

// Pause halts the countdown. Valid only while running.
func (e *Engine) Pause() error {
	return e.dispatch(func() ([]Event, error) {
		if e.runState != domain.RunRunning {
			return nil, fmt.Errorf("pause while %s: %w", e.runState, ErrInvalidTransition)
		}
		e.runState = domain.RunPaused
		return []Event{e.eventLocked(EventPaused)}, nil
	})
}

// Resume restarts a paused countdown. Valid only while paused.
func (e *Engine) Resume() error {
	return e.dispatch(func() ([]Event, error) {
		if e.runState != domain.RunPaused {
			return nil, fmt.Errorf("resume while %s: %w", e.runState, ErrInvalidTransition)
		}
		e.runState = domain.RunRunning
		return []Event{e.eventLocked(EventResumed)}, nil
	})
}

// Skip ends the current phase early. The emitted record has
// Completed=false and Actual set to the elapsed time; the same auto-start
// policy as natural completion applies, for breaks as well as focus.
func (e *Engine) Skip() error {
	return e.dispatch(func() ([]Event, error) {
		if e.phase == domain.PhaseIdle {
			return nil, fmt.Errorf("skip while idle: %w", ErrInvalidTransition)
		}
		return e.completePhaseLocked(false), nil
	})
}

// Reset forces the engine back to idle from any state, discarding elapsed
// time without emitting a session record. An explicit cancel, not a skip.
func (e *Engine) Reset() error {
	return e.dispatch(func() ([]Event, error) {
		e.toIdleLocked()
		return []Event{e.eventLocked(EventPhaseIdle)}, nil
	})
}

// Tick advances the countdown by delta. A no-op unless running, so
// late-arriving or duplicate timer callbacks after a phase has advanced are
// tolerated. Commands deferred from inside event delivery are applied
// before the countdown advances.
func (e *Engine) Tick(delta time.Duration) {
	e.mu.Lock()
	if e.delivering {
		e.deferred = append(e.deferred, func() []Event { return e.tickLocked(delta) })
		e.mu.Unlock()
		return
	}
	pending := e.deferred
	e.deferred = nil
	var events []Event
	for _, fn := range pending {
		events = append(events, fn()...)
	}
	events = append(events, e.tickLocked(delta)...)
	e.emit(events)
}

// SetAutoStart updates the chaining policy. Takes effect at the next phase
// completion.
func (e *Engine) SetAutoStart(breakOn, focusOn bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.autoStartBreak = breakOn
	e.autoStartFocus = focusOn
}

// Phase returns the current phase.
func (e *Engine) Phase() domain.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// RunState returns the current run state.
func (e *Engine) RunState() domain.RunState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runState
}

// Remaining returns the time left in the current phase.
func (e *Engine) Remaining() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remaining
}

// Elapsed returns the time spent in the current phase, excluding pauses.
func (e *Engine) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsed
}

// Snapshot returns a consistent copy of the full engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Phase:          e.phase,
		RunState:       e.runState,
		Remaining:      e.remaining,
		Elapsed:        e.elapsed,
		Planned:        e.planned,
		CategoryID:     e.categoryID,
		Preset:         e.preset,
		AutoStartBreak: e.autoStartBreak,
		AutoStartFocus: e.autoStartFocus,
	}
}

// dispatch runs a command body under the mutex and delivers its events with
// the mutex released. Commands arriving while events are being delivered
// (i.e. issued by a sink handler) are deferred to the next Tick and report
// no error to their caller.
func (e *Engine) dispatch(fn func() ([]Event, error)) error {
	e.mu.Lock()
	if e.delivering {
		e.deferred = append(e.deferred, func() []Event {
			events, _ := fn()
			return events
		})
		e.mu.Unlock()
		return nil
	}
	events, err := fn()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.emit(events)
	return nil
}

// emit delivers events in order. Called with e.mu held; releases it.
func (e *Engine) emit(events []Event) {
	if len(events) == 0 || e.sink == nil {
		e.mu.Unlock()
		return
	}
	e.delivering = true
	e.mu.Unlock()
	for _, ev := range events {
		e.sink.HandleEvent(ev)
	}
	e.mu.Lock()
	e.delivering = false
	e.mu.Unlock()
}

func (e *Engine) tickLocked(delta time.Duration) []Event {
	if e.runState != domain.RunRunning {
		return nil
	}
	if delta < 0 {
		delta = 0
	}
	step := delta
	if step > e.remaining {
		step = e.remaining
	}
	e.remaining -= step
	e.elapsed += step
	events := []Event{e.eventLocked(EventTick)}
	if e.remaining > 0 {
		return events
	}
	return append(events, e.completePhaseLocked(true)...)
}

// completePhaseLocked emits the session record for the finishing phase,
// then applies the auto-start policy: focus chains into break, break chains
// into the next focus, otherwise the engine returns to idle.
func (e *Engine) completePhaseLocked(completed bool) []Event {
	record := e.recordLocked(completed)
	events := []Event{{
		Type:      EventPhaseCompleted,
		Phase:     record.Phase,
		Remaining: e.remaining,
		Record:    &record,
		At:        record.EndedAt,
	}}

	switch {
	case record.Phase == domain.PhaseFocus && e.autoStartBreak:
		e.beginPhaseLocked(domain.PhaseBreak, e.categoryID, e.preset)
		events = append(events, e.eventLocked(EventPhaseStarted))
	case record.Phase == domain.PhaseBreak && e.autoStartFocus:
		e.beginPhaseLocked(domain.PhaseFocus, e.categoryID, e.preset)
		events = append(events, e.eventLocked(EventPhaseStarted))
	default:
		e.toIdleLocked()
		events = append(events, e.eventLocked(EventPhaseIdle))
	}
	return events
}

func (e *Engine) beginPhaseLocked(phase domain.Phase, categoryID string, preset domain.Preset) {
	e.phase = phase
	e.runState = domain.RunRunning
	e.categoryID = categoryID
	e.preset = preset
	if phase == domain.PhaseFocus {
		e.planned = preset.FocusDuration()
	} else {
		e.planned = preset.BreakDuration()
	}
	e.remaining = e.planned
	e.elapsed = 0
	e.startedAt = e.clock.Now()
}

func (e *Engine) toIdleLocked() {
	e.phase = domain.PhaseIdle
	e.runState = domain.RunStopped
	e.remaining = 0
	e.elapsed = 0
	e.planned = 0
	e.categoryID = ""
	e.preset = domain.Preset{}
	e.startedAt = time.Time{}
}

func (e *Engine) recordLocked(completed bool) domain.SessionRecord {
	return domain.SessionRecord{
		CategoryID: e.categoryID,
		Phase:      e.phase,
		StartedAt:  e.startedAt,
		EndedAt:    e.clock.Now(),
		Planned:    e.planned,
		Actual:     e.elapsed,
		Completed:  completed,
	}
}

func (e *Engine) eventLocked(t EventType) Event {
	return Event{
		Type:      t,
		Phase:     e.phase,
		Remaining: e.remaining,
		At:        e.clock.Now(),
	}
}
