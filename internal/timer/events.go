package timer

import (
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// EventType defines the type of engine lifecycle event.
type EventType string

const (
	EventPhaseStarted   EventType = "phase_started"
	EventTick           EventType = "tick"
	EventPaused         EventType = "paused"
	EventResumed        EventType = "resumed"
	EventPhaseCompleted EventType = "phase_completed"
	EventPhaseIdle      EventType = "phase_idle"
)

// Event describes one engine transition for sinks. Record is set only on
// EventPhaseCompleted; Phase and Remaining reflect the engine state at the
// moment the event was produced.
type Event struct {
	Type      EventType
	Phase     domain.Phase
	Remaining time.Duration
	Record    *domain.SessionRecord
	At        time.Time
}

// Sink consumes engine events. Delivery is synchronous and ordered; a sink
// must not invoke engine commands from inside HandleEvent — such commands
// are deferred to the next tick (see Engine).
type Sink interface {
	HandleEvent(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) HandleEvent(ev Event) { f(ev) }

// MultiSink fans one event out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) HandleEvent(ev Event) {
	for _, s := range m {
		s.HandleEvent(ev)
	}
}
