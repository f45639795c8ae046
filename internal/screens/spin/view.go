package spin

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"charm.land/lipgloss/v2"

	sp "github.com/whotakesshowers/wts/internal/spin"
	"github.com/whotakesshowers/wts/internal/ui/components"
	"github.com/whotakesshowers/wts/internal/ui/layout"
	"github.com/whotakesshowers/wts/internal/ui/theme"
)

func (s *SpinScreen) View(width, height int) string {
	if !s.loaded {
		return centered(width, lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("\n\n%s Loading roster...", s.loading.View())))
	}
	if s.errMsg != "" {
		return centered(width, theme.Failure.Render("\n\nError: "+s.errMsg)+
			"\n\n"+theme.Hint.Render("Press Esc to go back"))
	}
	if s.snap.Empty() {
		return centered(width, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("\n\nNo %s in this project yet.", s.display.CandidateTerm)))
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw).Render(fmt.Sprintf("Who will it be? Pick a %s!", s.display.CandidateTerm)))
	b.WriteString("\n\n")
	b.WriteString(s.renderVisual(cw, height))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("", s.frame.Progress, false, cw).View())
	b.WriteString("\n\n")
	b.WriteString(s.renderStatus(cw))
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("SPIN", s.StartEnabled(), nil).View())

	return centered(width, b.String())
}

func (s *SpinScreen) renderVisual(cw, height int) string {
	if s.anim.Config().Variant == sp.Wheel {
		return components.NewWheel(s.snap.Names(), s.frame.Rotation, cw).View()
	}

	rows := make([]string, 0, s.snap.Len())
	for _, c := range s.snap.All() {
		rows = append(rows, s.avatars.Render(c)+" "+c.Name)
	}
	visible := 0
	if layout.IsCompactHeight(height) {
		visible = 5
	}
	return components.Reel{Rows: rows, Selected: s.frame.Index, Height: visible, Width: cw}.View()
}

func (s *SpinScreen) renderStatus(cw int) string {
	switch s.frame.Phase {
	case sp.Running:
		return theme.Hint.Render("Spinning...")
	case sp.Settling:
		return theme.Hint.Render("Slowing down...")
	case sp.Landed:
		return s.renderWinner(cw)
	case sp.Failed:
		return theme.Failure.Render(failureText(s.frame.Err)) + "\n" +
			theme.Hint.Render("Press Enter to try again")
	}
	if s.notice != "" {
		return theme.Hint.Render(s.notice)
	}
	return theme.Hint.Render(fmt.Sprintf("%d %s ready", s.snap.Len(), s.display.CandidateTerm))
}

func (s *SpinScreen) renderWinner(cw int) string {
	w := s.frame.Winner
	if w == nil {
		return ""
	}
	name := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(w.Name)
	body := s.confetti + "\n\n" + s.avatars.Render(*w) + "  " + name + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render("is up! 🎉")
	return theme.WinnerCard.Width(cw).Render(body)
}

// failureText explains a failed session.
func failureText(err error) string {
	var ce *sp.ConsistencyError
	if errors.As(err, &ce) {
		return "The roster changed while spinning. Go back and reload the project."
	}
	if err != nil {
		return "Could not get a result: " + err.Error()
	}
	return "Could not get a result"
}

var confettiGlyphs = []string{"✦", "✧", "★", "•", "✶", "❋"}

// confetti renders a strip of colored glyphs.
func confetti(rng *rand.Rand, n int) string {
	var b strings.Builder
	for i := range n {
		glyph := confettiGlyphs[rng.IntN(len(confettiGlyphs))]
		b.WriteString(lipgloss.NewStyle().Foreground(theme.SegmentColor(rng.IntN(8)+i)).Render(glyph))
	}
	return b.String()
}

func centered(width int, content string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}
