package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPreset indicates an unknown preset name or custom values that
// fail validation.
var ErrInvalidPreset = errors.New("invalid preset")

// PresetCustom is the reserved name for user-supplied durations.
const PresetCustom = "Custom"

// Preset is a named pair of focus/break durations.
type Preset struct {
	Name         string
	FocusMinutes int
	BreakMinutes int
}

// BuiltinPresets are the fixed presets offered at session start.
var BuiltinPresets = []Preset{
	{Name: "Classic", FocusMinutes: 25, BreakMinutes: 5},
	{Name: "Extended", FocusMinutes: 50, BreakMinutes: 10},
	{Name: "Long", FocusMinutes: 60, BreakMinutes: 15},
	{Name: "Deep Work", FocusMinutes: 90, BreakMinutes: 20},
}

// ResolvePreset resolves a preset name to concrete durations. For
// PresetCustom the explicit minute values are used and validated; for any
// other name the minute arguments are ignored and the built-in table is
// consulted. Name matching is case-insensitive.
func ResolvePreset(name string, focusMinutes, breakMinutes int) (Preset, error) {
	if strings.EqualFold(name, PresetCustom) {
		p := Preset{Name: PresetCustom, FocusMinutes: focusMinutes, BreakMinutes: breakMinutes}
		if err := p.Validate(); err != nil {
			return Preset{}, err
		}
		return p, nil
	}
	for _, p := range BuiltinPresets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q: %w", name, ErrInvalidPreset)
}

// Validate checks the duration rules: at least one focus minute, and a
// non-negative break.
func (p Preset) Validate() error {
	if p.FocusMinutes < 1 {
		return fmt.Errorf("focus minutes must be at least 1, got %d: %w", p.FocusMinutes, ErrInvalidPreset)
	}
	if p.BreakMinutes < 0 {
		return fmt.Errorf("break minutes must not be negative, got %d: %w", p.BreakMinutes, ErrInvalidPreset)
	}
	return nil
}

// FocusDuration returns the focus length as a time.Duration.
func (p Preset) FocusDuration() time.Duration {
	return time.Duration(p.FocusMinutes) * time.Minute
}

// BreakDuration returns the break length as a time.Duration.
func (p Preset) BreakDuration() time.Duration {
	return time.Duration(p.BreakMinutes) * time.Minute
}

func (p Preset) String() string {
	return fmt.Sprintf("%s (%d/%d)", p.Name, p.FocusMinutes, p.BreakMinutes)
}
