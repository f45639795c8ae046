package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/whotakesshowers/wts/internal/spin"
	"github.com/whotakesshowers/wts/internal/ui/theme"
)

// Wheel draws the rim of a spinning wheel as a horizontal strip, with the
// pointer over the middle column.
type Wheel struct {
	Labels   []string
	Rotation float64
	Width    int
	// Span is how many degrees of the rim are visible across Width.
	Span float64
}

// NewWheel creates a wheel strip showing half of the rim.
func NewWheel(labels []string, rotation float64, width int) Wheel {
	return Wheel{Labels: labels, Rotation: rotation, Width: width, Span: 180}
}

// SegmentAt returns the segment drawn in column x.
func (w Wheel) SegmentAt(x int) int {
	n := len(w.Labels)
	center := w.Width / 2
	perCol := w.Span / float64(max(w.Width, 1))
	// Columns to the right show rim that has yet to reach the pointer.
	return spin.WinnerUnderPointer(w.Rotation-float64(x-center)*perCol, n)
}

// View renders the pointer, the rim strip, and a base line.
func (w Wheel) View() string {
	if len(w.Labels) == 0 || w.Width <= 0 {
		return ""
	}

	center := w.Width / 2
	pointer := strings.Repeat(" ", center) +
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("▼")

	var rim strings.Builder
	for x := 0; x < w.Width; {
		seg := w.SegmentAt(x)
		run := 1
		for x+run < w.Width && w.SegmentAt(x+run) == seg {
			run++
		}
		rim.WriteString(w.renderRun(seg, run))
		x += run
	}

	base := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", w.Width))
	return pointer + "\n" + rim.String() + "\n" + base
}

func (w Wheel) renderRun(seg, width int) string {
	label := truncate(w.Labels[seg], width-2)
	pad := width - lipgloss.Width(label)
	left := pad / 2
	text := strings.Repeat(" ", left) + label + strings.Repeat(" ", pad-left)

	return lipgloss.NewStyle().
		Background(theme.SegmentColor(seg)).
		Foreground(theme.TextDark).
		Bold(true).
		Render(text)
}

// truncate shortens s to at most width cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > width {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}
