package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/whotakesshowers/wts/internal/ui/theme"
)

// Reel lists candidates vertically and highlights one of them.
type Reel struct {
	Rows     []string
	Selected int // -1 for none
	Height   int // visible rows; 0 shows all
	Width    int
}

// window returns the [start, end) range of rows to draw.
func (r Reel) window() (int, int) {
	n := len(r.Rows)
	if r.Height <= 0 || r.Height >= n {
		return 0, n
	}
	start := 0
	if r.Selected >= 0 {
		start = r.Selected - r.Height/2
	}
	start = min(max(start, 0), n-r.Height)
	return start, start + r.Height
}

// View renders the visible rows.
func (r Reel) View() string {
	start, end := r.window()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := truncate(r.Rows[i], max(r.Width-4, 1))
		if i == r.Selected {
			lines = append(lines, theme.Highlight.
				Width(r.Width).
				Render(" ▸ "+row))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(r.Width).
			Render("   "+row))
	}
	return strings.Join(lines, "\n")
}
