package projects

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/whotakesshowers/wts/internal/api"
	"github.com/whotakesshowers/wts/internal/router"
	"github.com/whotakesshowers/wts/internal/screen"
	"github.com/whotakesshowers/wts/internal/ui/components"
	"github.com/whotakesshowers/wts/internal/ui/layout"
	"github.com/whotakesshowers/wts/internal/ui/theme"
)

// Catalog lists the projects a spin can run against.
type Catalog interface {
	ListProjects(ctx context.Context) ([]api.Project, error)
}

// Routes builds the screens reachable from the project list.
type Routes struct {
	Spin     func(p api.Project) screen.Screen
	History  func() screen.Screen
	Settings func() screen.Screen
}

type projectsLoadedMsg struct {
	Projects []api.Project
	Err      error
}

// ProjectsScreen is the home screen: pick a project to spin.
type ProjectsScreen struct {
	catalog  Catalog
	routes   Routes
	term     string
	projects []api.Project
	menu     components.Menu
	loaded   bool
	errMsg   string
	loading  spinner.Model
}

var (
	_ screen.Screen          = (*ProjectsScreen)(nil)
	_ screen.KeyHintProvider = (*ProjectsScreen)(nil)
)

// New creates a ProjectsScreen. term is the display word for candidates.
func New(catalog Catalog, routes Routes, term string) *ProjectsScreen {
	return &ProjectsScreen{
		catalog: catalog,
		routes:  routes,
		term:    term,
		loading: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *ProjectsScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), s.loading.Tick)
}

func (s *ProjectsScreen) Title() string {
	return "Projects"
}

func (s *ProjectsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "r", Description: "Reload"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ProjectsScreen) load() tea.Cmd {
	catalog := s.catalog
	return func() tea.Msg {
		ps, err := catalog.ListProjects(context.Background())
		return projectsLoadedMsg{Projects: ps, Err: err}
	}
}

func (s *ProjectsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		s.loaded = true
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.projects = msg.Projects
		s.menu = components.NewMenu(s.menuItems())
		return s, nil

	case screen.ConfigChangedMsg:
		s.term = msg.Config.Display.CandidateTerm
		if s.loaded {
			selected := s.menu.Selected
			s.menu = components.NewMenu(s.menuItems())
			s.menu.Selected = selected
		}
		return s, nil

	case spinner.TickMsg:
		if s.loaded {
			return s, nil
		}
		var cmd tea.Cmd
		s.loading, cmd = s.loading.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if msg.String() == "r" {
			s.loaded = false
			return s, tea.Batch(s.load(), s.loading.Tick)
		}
	}

	if !s.loaded {
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ProjectsScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(s.projects)+3)
	for _, p := range s.projects {
		label := p.Name
		if rp, err := p.Roster(); err == nil {
			label = fmt.Sprintf("%s  (%d %s)", p.Name, len(rp.CandidateIDs), s.term)
		}
		items = append(items, components.MenuItem{
			Label:    label,
			Disabled: s.routes.Spin == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: s.routes.Spin(p)} }
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "HISTORY",
			Disabled: s.routes.History == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: s.routes.History()} }
			},
		},
		components.MenuItem{
			Label:    "SETTINGS",
			Disabled: s.routes.Settings == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: s.routes.Settings()} }
			},
		},
		components.MenuItem{
			Label:  "QUIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	return items
}

func (s *ProjectsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("\n\n%s Loading projects...", s.loading.View()))
	}

	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, theme.Title.Width(cw).Render("WHO TAKES SHOWERS?"))

	switch {
	case s.errMsg != "":
		sections = append(sections, theme.Failure.Width(cw).Render("Error: "+s.errMsg))
	case len(s.projects) == 0:
		sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).
			Render("No projects yet. Create one on the web app."))
	}

	sections = append(sections, components.Card(strings.TrimRight(s.menu.View(), "\n"), cw))

	return components.Stage(strings.Join(sections, "\n\n"), width, height)
}
