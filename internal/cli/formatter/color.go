package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PhaseColor returns the lipgloss style for the given phase.
func PhaseColor(phase domain.Phase) lipgloss.Style {
	switch phase {
	case domain.PhaseFocus:
		return StyleGreen
	case domain.PhaseBreak:
		return StyleBlue
	default:
		return StyleDim
	}
}

// PhaseBadge returns a colored phase indicator such as "● FOCUS".
func PhaseBadge(phase domain.Phase) string {
	switch phase {
	case domain.PhaseFocus:
		return StyleGreen.Render("● FOCUS")
	case domain.PhaseBreak:
		return StyleBlue.Render("● BREAK")
	default:
		return StyleDim.Render("○ IDLE")
	}
}

// RunStatePill returns a colored run-state indicator.
func RunStatePill(state domain.RunState) string {
	switch state {
	case domain.RunRunning:
		return StyleGreen.Render("▶ Running")
	case domain.RunPaused:
		return StyleYellow.Render("⏸ Paused")
	default:
		return StyleDim.Render("■ Stopped")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
