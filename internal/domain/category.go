package domain

import (
	"fmt"
	"regexp"
	"time"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DefaultColor is assigned to categories created without an explicit color.
const DefaultColor = "#8ec07c"

// Category groups focus sessions (Study, Work, Coding, ...). Each category
// carries default focus/break durations used when a session is started
// without a preset.
type Category struct {
	ID           string
	Name         string
	FocusMinutes int
	BreakMinutes int
	Color        string
	CreatedAt    time.Time
}

// Validate checks name, durations and color format.
func (c *Category) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	if c.FocusMinutes < 1 {
		return fmt.Errorf("category %q: default focus minutes must be at least 1, got %d", c.Name, c.FocusMinutes)
	}
	if c.BreakMinutes < 0 {
		return fmt.Errorf("category %q: default break minutes must not be negative, got %d", c.Name, c.BreakMinutes)
	}
	if c.Color != "" && !colorPattern.MatchString(c.Color) {
		return fmt.Errorf("category %q: color %q must be a hex value like #8ec07c", c.Name, c.Color)
	}
	return nil
}

// DefaultPreset returns the category's default durations as a preset.
func (c *Category) DefaultPreset() Preset {
	return Preset{Name: c.Name, FocusMinutes: c.FocusMinutes, BreakMinutes: c.BreakMinutes}
}
