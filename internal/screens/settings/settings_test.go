package settings

import (
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whotakesshowers/wts/internal/config"
	"github.com/whotakesshowers/wts/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestCycleWraps(t *testing.T) {
	opts := []string{"a", "b", "c"}
	assert.Equal(t, "b", cycle(opts, "a", 1))
	assert.Equal(t, "a", cycle(opts, "c", 1))
	assert.Equal(t, "c", cycle(opts, "a", -1))
	assert.Equal(t, "a", cycle(opts, "zzz", 1))
}

func TestQuickOptionCyclesTerm(t *testing.T) {
	s := New(config.Default(), "")
	s.Update(specialKey(tea.KeyRight))

	assert.Equal(t, "机灵鬼", s.Config().Display.CandidateTerm)
	assert.True(t, s.dirty)
	assert.Contains(t, s.View(80, 30), "Unsaved changes")
}

func TestCustomTerm(t *testing.T) {
	s := New(config.Default(), "")
	s.Update(keyPress('e'))
	require.True(t, s.editing)
	assert.True(t, s.CapturingInput())

	s.input.Model.SetValue("  值日生 ")
	s.Update(specialKey(tea.KeyEnter))

	assert.False(t, s.editing)
	assert.Equal(t, "值日生", s.Config().Display.CandidateTerm)
}

func TestCustomTermRejectsEmpty(t *testing.T) {
	s := New(config.Default(), "")
	s.Update(keyPress('e'))
	s.input.Model.SetValue("   ")
	s.Update(specialKey(tea.KeyEnter))

	assert.True(t, s.editing)
	assert.Equal(t, "候选人", s.Config().Display.CandidateTerm)

	s.Update(specialKey(tea.KeyEscape))
	assert.False(t, s.editing)
}

func TestToggleRows(t *testing.T) {
	s := New(config.Default(), "")
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyRight))
	assert.Equal(t, config.AvatarEmojis[1], s.Config().Display.DefaultEmoji)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyLeft))
	assert.Equal(t, config.AvatarColors[len(config.AvatarColors)-1], s.Config().Display.DefaultColor)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeySpace))
	assert.True(t, s.Config().Display.RandomAvatar)
}

func TestVariantKeepsTuning(t *testing.T) {
	cfg := config.Default()
	cfg.Spin.RetryAttempts = 3
	cfg.Spin.InitialRate = 14
	s := New(cfg, "")
	for range int(rowVariant) {
		s.Update(specialKey(tea.KeyDown))
	}
	s.Update(specialKey(tea.KeyRight))

	got := s.Config().Spin
	assert.Equal(t, "wheel", got.Variant)
	assert.Equal(t, config.DefaultSpin("wheel").SettleDuration, got.SettleDuration)
	assert.Equal(t, 3, got.RetryAttempts)
	assert.Equal(t, 14.0, got.InitialRate)
}

func TestSaveWritesAndBroadcasts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wts", "config.yaml")
	s := New(config.Default(), path)
	s.Update(specialKey(tea.KeyRight))

	_, cmd := s.Update(keyPress('s'))
	require.NotNil(t, cmd)
	_, cmd = s.Update(cmd())
	require.NotNil(t, cmd)

	changed, ok := cmd().(screen.ConfigChangedMsg)
	require.True(t, ok)
	assert.Equal(t, "机灵鬼", changed.Config.Display.CandidateTerm)
	assert.False(t, s.dirty)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "机灵鬼", loaded.Display.CandidateTerm)
}

func TestSaveInvalidReportsError(t *testing.T) {
	cfg := config.Default()
	cfg.API.BaseURL = ""
	s := New(cfg, "")

	_, cmd := s.Update(keyPress('s'))
	_, follow := s.Update(cmd())

	assert.Nil(t, follow)
	assert.Contains(t, s.View(80, 30), "Save failed")
}

func TestReloadSkippedWhileDirty(t *testing.T) {
	s := New(config.Default(), "")
	s.Update(specialKey(tea.KeyRight))

	other := config.Default()
	other.Display.CandidateTerm = "勇士"
	s.Update(screen.ConfigChangedMsg{Config: other})
	assert.Equal(t, "机灵鬼", s.Config().Display.CandidateTerm)

	clean := New(config.Default(), "")
	clean.Update(screen.ConfigChangedMsg{Config: other})
	assert.Equal(t, "勇士", clean.Config().Display.CandidateTerm)
}
