package notify

import "github.com/alexanderramin/tempo/internal/timer"

// ChannelSink buffers events onto a channel for a consumer running on
// another goroutine, such as the TUI event loop. Sends never block: when
// the buffer is full the event is dropped, since a consumer that far
// behind will resynchronize from the next engine snapshot anyway.
type ChannelSink struct {
	ch chan timer.Event
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{ch: make(chan timer.Event, buffer)}
}

func (s *ChannelSink) HandleEvent(ev timer.Event) {
	select {
	case s.ch <- ev:
	default:
	}
}

// Events returns the receive side of the sink.
func (s *ChannelSink) Events() <-chan timer.Event {
	return s.ch
}

// Close closes the event channel. Call only after the engine can emit no
// further events.
func (s *ChannelSink) Close() {
	close(s.ch)
}
