package components

import (
	"charm.land/lipgloss/v2"

	"github.com/whotakesshowers/wts/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stage sections so
// boxes line up.
func ContentWidth(frameWidth int) int {
	// Border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// Stage centers content inside a double-border frame of the given size.
func Stage(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(max(cw-2, 0)).
		Align(lipgloss.Center).
		Render(content)
}
