package settings

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/whotakesshowers/wts/internal/config"
	"github.com/whotakesshowers/wts/internal/screen"
	"github.com/whotakesshowers/wts/internal/ui/components"
	"github.com/whotakesshowers/wts/internal/ui/layout"
	"github.com/whotakesshowers/wts/internal/ui/theme"
)

const maxTermLength = 16

type row int

const (
	rowTerm row = iota
	rowEmoji
	rowColor
	rowRandomAvatar
	rowVariant
	rowCount
)

var rowLabels = [rowCount]string{
	rowTerm:         "Candidate term",
	rowEmoji:        "Default emoji",
	rowColor:        "Default color",
	rowRandomAvatar: "Random avatars",
	rowVariant:      "Spin style",
}

var variants = []string{"cycle", "wheel"}

type savedMsg struct {
	Config config.Config
	Err    error
}

// SettingsScreen edits the display settings and spin style and writes
// them back to the config file.
type SettingsScreen struct {
	path     string
	cfg      config.Config
	selected row
	dirty    bool
	editing  bool
	input    components.TextInput
	status   string
	failed   bool
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.InputCapturer = (*SettingsScreen)(nil)

// New creates a SettingsScreen for cfg. An empty path applies changes to
// the running app without writing them.
func New(cfg config.Config, path string) *SettingsScreen {
	return &SettingsScreen{path: path, cfg: cfg}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Change"},
		{Key: "e", Description: "Custom term"},
		{Key: "s", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

// CapturingInput reports whether the custom term field has focus.
func (s *SettingsScreen) CapturingInput() bool {
	return s.editing
}

// Config returns the settings as currently edited.
func (s *SettingsScreen) Config() config.Config {
	return s.cfg
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.status, s.failed = "Save failed: "+msg.Err.Error(), true
			return s, nil
		}
		s.dirty = false
		s.status, s.failed = "Saved", false
		cfg := msg.Config
		return s, func() tea.Msg { return screen.ConfigChangedMsg{Config: cfg} }

	case screen.ConfigChangedMsg:
		if !s.dirty {
			s.cfg = msg.Config
		}
		return s, nil

	case tea.KeyMsg:
		if s.editing {
			return s.updateEditing(msg)
		}
		return s.handleKey(msg)
	}

	if s.editing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SettingsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < rowCount-1 {
			s.selected++
		}
	case "left", "h":
		s.change(-1)
	case "right", "l", "enter", "space":
		if s.selected == rowTerm && msg.String() == "enter" {
			return s, s.startEditing()
		}
		s.change(1)
	case "e":
		if s.selected == rowTerm {
			return s, s.startEditing()
		}
	case "s", "ctrl+s":
		return s, s.save()
	}
	return s, nil
}

func (s *SettingsScreen) updateEditing(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editing = false
		return s, nil
	case "enter":
		term := s.input.Value()
		if term == "" || len([]rune(term)) > maxTermLength {
			s.input.Submit(false)
			return s, nil
		}
		s.input.Submit(true)
		s.editing = false
		s.setTerm(term)
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SettingsScreen) startEditing() tea.Cmd {
	s.editing = true
	s.input = components.NewTextInput("e.g. 勇士", s.cfg.Display.CandidateTerm, maxTermLength)
	return s.input.Init()
}

func (s *SettingsScreen) setTerm(term string) {
	if term == s.cfg.Display.CandidateTerm {
		return
	}
	s.cfg.Display.CandidateTerm = term
	s.markDirty()
}

// change steps the selected row's value by delta.
func (s *SettingsScreen) change(delta int) {
	d := &s.cfg.Display
	switch s.selected {
	case rowTerm:
		if len(d.QuickOptions) == 0 {
			return
		}
		s.setTerm(cycle(d.QuickOptions, d.CandidateTerm, delta))
		return
	case rowEmoji:
		d.DefaultEmoji = cycle(config.AvatarEmojis, d.DefaultEmoji, delta)
	case rowColor:
		d.DefaultColor = cycle(config.AvatarColors, d.DefaultColor, delta)
	case rowRandomAvatar:
		d.RandomAvatar = !d.RandomAvatar
	case rowVariant:
		s.cfg.Spin = s.cfg.Spin.WithVariant(cycle(variants, s.cfg.Spin.Variant, delta))
	}
	s.markDirty()
}

func (s *SettingsScreen) markDirty() {
	s.dirty = true
	s.status = ""
}

func (s *SettingsScreen) save() tea.Cmd {
	cfg, path := s.cfg, s.path
	return func() tea.Msg {
		if err := cfg.Validate(); err != nil {
			return savedMsg{Err: err}
		}
		if path != "" {
			if err := config.Save(path, cfg); err != nil {
				return savedMsg{Err: err}
			}
		}
		return savedMsg{Config: cfg}
	}
}

// cycle returns the option delta steps away from current, wrapping around.
// An unknown current value starts from the first option.
func cycle(options []string, current string, delta int) string {
	i := slices.Index(options, current)
	if i < 0 {
		return options[0]
	}
	n := len(options)
	return options[((i+delta)%n+n)%n]
}

func (s *SettingsScreen) value(r row) string {
	d := s.cfg.Display
	switch r {
	case rowTerm:
		return d.CandidateTerm
	case rowEmoji:
		return d.DefaultEmoji
	case rowColor:
		return lipgloss.NewStyle().Background(lipgloss.Color(d.DefaultColor)).Render("  ") + " " + d.DefaultColor
	case rowRandomAvatar:
		if d.RandomAvatar {
			return "on"
		}
		return "off"
	case rowVariant:
		return s.cfg.Spin.Variant
	}
	return ""
}

func (s *SettingsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var lines []string
	for r := range rowCount {
		label := fmt.Sprintf("%-16s", rowLabels[r])
		val := "‹ " + s.value(r) + " ›"
		if r == rowTerm && s.editing {
			val = s.input.View()
		}
		if r == s.selected {
			lines = append(lines, theme.Selected.Render("▸ "+label)+"  "+val)
		} else {
			lines = append(lines, theme.Unselected.Render("  "+label)+"  "+val)
		}
	}

	sections := []string{
		theme.Title.Width(cw).Render("SETTINGS"),
		components.Card(strings.Join(lines, "\n"), cw),
	}

	switch {
	case s.status != "" && s.failed:
		sections = append(sections, theme.Failure.Width(cw).Render(s.status))
	case s.status != "":
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Foreground(theme.Success).Render(s.status))
	case s.dirty:
		sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).Render("Unsaved changes"))
	}

	return components.Stage(strings.Join(sections, "\n\n"), width, height)
}
