package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a share bar like [████░░░░]  45%. When colorHex is
// non-empty the filled segment uses that color, so per-category bars carry
// the category's own swatch color; otherwise the fill grades green/yellow/red
// by share. The unfilled segment is always dimmed.
func RenderProgress(pct float64, width int, colorHex string) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	style := StyleGreen
	switch {
	case colorHex != "":
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorHex))
	case pct < 0.33:
		style = StyleRed
	case pct < 0.66:
		style = StyleYellow
	}

	bar := style.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
	return fmt.Sprintf("[%s] %3.0f%%", bar, pct*100)
}
