package domain

// Phase is the kind of interval currently active.
type Phase string

const (
	PhaseIdle  Phase = "idle"
	PhaseFocus Phase = "focus"
	PhaseBreak Phase = "break"
)

// RunState describes whether the active phase is counting down.
type RunState string

const (
	RunStopped RunState = "stopped"
	RunRunning RunState = "running"
	RunPaused  RunState = "paused"
)
