package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/whotakesshowers/wts/internal/api"
	"github.com/whotakesshowers/wts/internal/screen"
	"github.com/whotakesshowers/wts/internal/store"
	"github.com/whotakesshowers/wts/internal/ui/layout"
	"github.com/whotakesshowers/wts/internal/ui/theme"
)

const pageSize = 50

// Remote lists the outcomes recorded by the backend.
type Remote interface {
	ListHistory(ctx context.Context, q api.HistoryQuery) ([]api.History, error)
}

// Source selects which log the screen shows.
type Source int

const (
	SourceRemote Source = iota
	SourceLocal
)

func (s Source) String() string {
	if s == SourceLocal {
		return "This device"
	}
	return "Server"
}

// entry is one row, normalized from either source.
type entry struct {
	When      time.Time
	Project   string
	Candidate string
	Failed    bool
	Note      string
}

type historyLoadedMsg struct {
	Source  Source
	Entries []entry
	Err     error
}

// HistoryScreen lists past outcomes, newest first.
type HistoryScreen struct {
	remote    Remote
	local     store.OutcomeRepo
	projectID string
	now       func() time.Time

	source   Source
	entries  []entry
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. Either source may be nil; projectID
// narrows both to one project when set.
func New(remote Remote, local store.OutcomeRepo, projectID string) *HistoryScreen {
	s := &HistoryScreen{
		remote:    remote,
		local:     local,
		projectID: projectID,
		now:       time.Now,
	}
	if remote == nil && local != nil {
		s.source = SourceLocal
	}
	return s
}

// WithClock replaces the clock used for relative timestamps.
func (s *HistoryScreen) WithClock(now func() time.Time) *HistoryScreen {
	s.now = now
	return s
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load(s.source)
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
	}
	if s.remote != nil && s.local != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Switch source"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *HistoryScreen) load(src Source) tea.Cmd {
	remote, local, projectID := s.remote, s.local, s.projectID
	return func() tea.Msg {
		ctx := context.Background()
		switch {
		case src == SourceRemote && remote != nil:
			hs, err := remote.ListHistory(ctx, api.HistoryQuery{ProjectID: projectID, Limit: pageSize})
			if err != nil {
				return historyLoadedMsg{Source: src, Err: err}
			}
			entries := make([]entry, 0, len(hs))
			for _, h := range hs {
				entries = append(entries, entry{When: h.SelectedAt, Project: h.ProjectName, Candidate: h.CandidateName})
			}
			return historyLoadedMsg{Source: src, Entries: entries}

		case src == SourceLocal && local != nil:
			recs, err := local.Recent(ctx, store.QueryOpts{ProjectID: projectID, Limit: pageSize})
			if err != nil {
				return historyLoadedMsg{Source: src, Err: err}
			}
			entries := make([]entry, 0, len(recs))
			for _, r := range recs {
				e := entry{When: r.ResolvedAt, Project: r.ProjectName, Candidate: r.CandidateName, Failed: !r.Success}
				if e.Failed {
					e.Note = r.ErrorKind
				}
				entries = append(entries, e)
			}
			return historyLoadedMsg{Source: src, Entries: entries}
		}
		return historyLoadedMsg{Source: src, Err: fmt.Errorf("%s history is not available", strings.ToLower(src.String()))}
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Source != s.source {
			return s, nil
		}
		s.loaded = true
		s.errMsg = ""
		s.entries = nil
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.selected = 0
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if s.remote == nil || s.local == nil {
				return s, nil
			}
			s.source = 1 - s.source
			s.loaded = false
			return s, s.load(s.source)
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	heading := lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(fmt.Sprintf("Source: %s", s.source)))

	if s.errMsg != "" {
		return heading + "\n" + lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return heading + "\n" + lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return heading + "\n" + lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No spins yet.")
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n\n")

	now := s.now()
	start, end := s.window(height - 3)
	for i := start; i < end; i++ {
		e := s.entries[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		who := e.Candidate
		if e.Failed {
			who = "failed (" + e.Note + ")"
		}
		line := fmt.Sprintf("%s%-14s  %-16s  %s", prefix, humanize.RelTime(e.When, now, "ago", "from now"), e.Project, who)

		style := theme.Body
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case e.Failed:
			style = style.Foreground(theme.TextDim)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

// window returns the [start, end) range of entries that fits in rows while
// keeping the selected entry on screen.
func (s *HistoryScreen) window(rows int) (int, int) {
	if rows <= 0 || len(s.entries) <= rows {
		return 0, len(s.entries)
	}
	start := max(s.selected-rows+1, 0)
	return start, start + rows
}
