package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/timer"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const tickInterval = time.Second

type tickMsg time.Time

type engineEventMsg timer.Event

type timerKeyMap struct {
	PauseResume key.Binding
	Skip        key.Binding
	Reset       key.Binding
	Quit        key.Binding
}

func defaultTimerKeyMap() timerKeyMap {
	return timerKeyMap{
		PauseResume: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip phase"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// timerModel is the bubbletea model for the interactive countdown. It is
// the engine's single scheduling source: commands and ticks both originate
// from Update, so engine access is serialized by bubbletea's event loop.
type timerModel struct {
	engine   *timer.Engine
	events   <-chan timer.Event
	category *domain.Category
	preset   domain.Preset
	sound    bool

	bar      progress.Model
	keys     timerKeyMap
	snapshot timer.Snapshot
	lastTick time.Time
	width    int
	recorded int
	bell     bool
	quitting bool
}

func newTimerModel(engine *timer.Engine, events <-chan timer.Event, category *domain.Category, preset domain.Preset, sound bool) timerModel {
	bar := progress.New(progress.WithGradient("#8ec07c", "#fabd2f"))
	bar.ShowPercentage = false
	return timerModel{
		engine:   engine,
		events:   events,
		category: category,
		preset:   preset,
		sound:    sound,
		bar:      bar,
		keys:     defaultTimerKeyMap(),
		width:    60,
	}
}

func (m timerModel) Init() tea.Cmd {
	// StartFocus happens here rather than in the constructor so the first
	// events are consumed by an already-running program.
	return tea.Batch(m.startFocus(), tickCmd(), waitForEvent(m.events))
}

func (m timerModel) startFocus() tea.Cmd {
	return func() tea.Msg {
		_ = m.engine.StartFocus(m.category.ID, m.preset)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForEvent(ch <-chan timer.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return engineEventMsg(ev)
	}
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(msg.Width-12, 50)
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		delta := tickInterval
		sawTick := !m.lastTick.IsZero()
		if sawTick {
			// Measure the real interval so a delayed wakeup loses no time.
			delta = now.Sub(m.lastTick)
		}
		m.lastTick = now
		// The bell rings for one render per completion, not once per tick.
		m.bell = false
		m.engine.Tick(delta)
		m.snapshot = m.engine.Snapshot()
		if sawTick && m.snapshot.Phase == domain.PhaseIdle && m.snapshot.RunState == domain.RunStopped {
			// Nothing left to count down, whether the chain ran out or a
			// deferred reset landed.
			m.quitting = true
			return m, tea.Quit
		}
		return m, tickCmd()

	case engineEventMsg:
		ev := timer.Event(msg)
		switch ev.Type {
		case timer.EventPhaseCompleted:
			if ev.Record != nil {
				m.recorded++
			}
			m.bell = m.sound
		case timer.EventPhaseStarted:
			m.snapshot = m.engine.Snapshot()
		}
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m timerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PauseResume):
		if m.snapshot.RunState == domain.RunPaused {
			_ = m.engine.Resume()
		} else {
			_ = m.engine.Pause()
		}
		m.snapshot = m.engine.Snapshot()
		return m, nil

	case key.Matches(msg, m.keys.Skip):
		_ = m.engine.Skip()
		m.snapshot = m.engine.Snapshot()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		_ = m.engine.Reset()
		m.snapshot = m.engine.Snapshot()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Quit):
		// Quit discards the in-flight phase; skip first (s) to log it.
		_ = m.engine.Reset()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m timerModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.snapshot
	var b strings.Builder

	if m.bell {
		b.WriteString("\a")
	}

	title := formatter.Swatch(m.category.Color) + " " + formatter.Bold(m.category.Name) +
		formatter.Dim("  ·  "+m.preset.String())
	b.WriteString(title + "\n\n")

	b.WriteString(formatter.PhaseBadge(snap.Phase) + "  " + formatter.RunStatePill(snap.RunState) + "\n\n")

	countdown := lipgloss.NewStyle().
		Foreground(formatter.ColorFg).
		Bold(true).
		Render(formatter.Countdown(snap.Remaining))
	b.WriteString("  " + countdown + "\n\n")

	pct := 0.0
	if snap.Planned > 0 {
		pct = float64(snap.Elapsed) / float64(snap.Planned)
	}
	b.WriteString(m.bar.ViewAs(pct) + "\n\n")

	if m.recorded > 0 {
		b.WriteString(formatter.Dim("sessions logged: ") + formatter.Bold(strconv.Itoa(m.recorded)) + "\n")
	}

	var hints []string
	for _, binding := range []key.Binding{m.keys.PauseResume, m.keys.Skip, m.keys.Reset, m.keys.Quit} {
		hints = append(hints, binding.Help().Key+" "+binding.Help().Desc)
	}
	b.WriteString("\n" + formatter.Dim(strings.Join(hints, "  ·  ")))

	return formatter.RenderBox("tempo", b.String())
}
