package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whotakesshowers/wts/internal/config"
	"github.com/whotakesshowers/wts/internal/roster"
	"github.com/whotakesshowers/wts/internal/spin"
)

func TestWheelPointerColumnMatchesWinner(t *testing.T) {
	labels := []string{"Ann", "Bea", "Cal", "Dee", "Eve"}
	for _, rot := range []float64{0, 17, 90, 359.5, 1234.5} {
		w := NewWheel(labels, rot, 41)
		assert.Equal(t, spin.WinnerUnderPointer(rot, len(labels)), w.SegmentAt(w.Width/2), "rotation %v", rot)
	}
}

func TestWheelViewShowsPointerAndLabels(t *testing.T) {
	w := NewWheel([]string{"Ann", "Bea"}, 0, 40)
	out := w.View()
	assert.Contains(t, out, "▼")
	assert.Contains(t, out, "Ann")
	assert.Len(t, strings.Split(out, "\n"), 3)
}

func TestWheelEmpty(t *testing.T) {
	assert.Empty(t, NewWheel(nil, 0, 40).View())
}

func TestReelWindowFollowsSelection(t *testing.T) {
	r := Reel{Rows: []string{"a", "b", "c", "d", "e", "f"}, Selected: 5, Height: 3, Width: 10}
	start, end := r.window()
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)

	r.Selected = 0
	start, end = r.window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	r.Height = 0
	start, end = r.window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 6, end)
}

func TestReelMarksSelected(t *testing.T) {
	out := Reel{Rows: []string{"Ann", "Bea"}, Selected: 1, Width: 12}.View()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "▸")
	assert.NotContains(t, lines[0], "▸")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "ab", truncate("ab", 3))
	assert.Equal(t, "候选", truncate("候选人", 4))
	assert.Empty(t, truncate("abc", 0))
}

func TestAvatarPhotoMarker(t *testing.T) {
	d := config.DefaultDisplay()
	withPhoto := roster.Candidate{ID: "a", PhotoURL: "/uploads/a.png"}
	assert.Contains(t, Avatar(withPhoto, d.Avatar(nil)), PhotoMarker)

	plain := roster.Candidate{ID: "b"}
	assert.Contains(t, Avatar(plain, d.Avatar(nil)), d.DefaultEmoji)
}

func TestAvatarSetIsStable(t *testing.T) {
	d := config.DefaultDisplay()
	d.RandomAvatar = true
	snap := roster.Capture([]roster.Candidate{{ID: "a"}, {ID: "b"}})
	set := NewAvatarSet(snap, d)

	first := set.Render(snap.At(0))
	for range 10 {
		assert.Equal(t, first, set.Render(snap.At(0)))
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	pressed := ""
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { pressed = "one"; return nil }},
		{Label: "two", Action: func() tea.Cmd { pressed = "two"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "two", pressed)
}

func TestButtonInactiveIgnoresEnter(t *testing.T) {
	pressed := false
	b := NewButton("SPIN", false, func() tea.Cmd { pressed = true; return nil })
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.False(t, pressed)

	b.Active = true
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, pressed)
}

func TestTextInputEditClearsSubmit(t *testing.T) {
	ti := NewTextInput("term", "  勇士 ", 16)
	assert.Equal(t, "勇士", ti.Value())

	ti.Submit(true)
	assert.True(t, ti.Submitted())
	assert.Contains(t, ti.View(), "✓")

	ti, _ = ti.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.False(t, ti.Submitted())
}
