package notify

import (
	"fmt"
	"io"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/timer"
)

// TerminalNotifier announces phase transitions on a writer, with a BEL on
// completion when sound is enabled. Used in headless mode; the TUI renders
// its own status and bell. It never calls back into the engine.
type TerminalNotifier struct {
	w        io.Writer
	sound    bool
	messages bool
}

func NewTerminalNotifier(w io.Writer, sound, messages bool) *TerminalNotifier {
	return &TerminalNotifier{w: w, sound: sound, messages: messages}
}

func (n *TerminalNotifier) HandleEvent(ev timer.Event) {
	switch ev.Type {
	case timer.EventPhaseStarted:
		n.printf("%s started (%s remaining)\n", phaseLabel(ev.Phase), ev.Remaining)
	case timer.EventPhaseCompleted:
		if n.sound {
			fmt.Fprint(n.w, "\a")
		}
		if ev.Record != nil && !ev.Record.Completed {
			n.printf("%s skipped after %s\n", phaseLabel(ev.Record.Phase), ev.Record.Actual)
			return
		}
		n.printf("%s complete\n", phaseLabel(ev.Phase))
	case timer.EventPaused:
		n.printf("Paused (%s remaining)\n", ev.Remaining)
	case timer.EventResumed:
		n.printf("Resumed (%s remaining)\n", ev.Remaining)
	case timer.EventPhaseIdle:
		n.printf("Timer idle\n")
	}
}

func (n *TerminalNotifier) printf(format string, args ...any) {
	if !n.messages {
		return
	}
	fmt.Fprintf(n.w, format, args...)
}

func phaseLabel(p domain.Phase) string {
	switch p {
	case domain.PhaseFocus:
		return "Focus"
	case domain.PhaseBreak:
		return "Break"
	default:
		return "Idle"
	}
}
