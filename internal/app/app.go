package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/whotakesshowers/wts/internal/api"
	"github.com/whotakesshowers/wts/internal/config"
	"github.com/whotakesshowers/wts/internal/resolver"
	"github.com/whotakesshowers/wts/internal/roster"
	"github.com/whotakesshowers/wts/internal/router"
	"github.com/whotakesshowers/wts/internal/screen"
	"github.com/whotakesshowers/wts/internal/screens/history"
	"github.com/whotakesshowers/wts/internal/screens/projects"
	"github.com/whotakesshowers/wts/internal/screens/settings"
	"github.com/whotakesshowers/wts/internal/screens/spin"
	"github.com/whotakesshowers/wts/internal/store"
	"github.com/whotakesshowers/wts/internal/ui/layout"
)

// Backend is the part of the API client the TUI talks to.
type Backend interface {
	ListProjects(ctx context.Context) ([]api.Project, error)
	ListHistory(ctx context.Context, q api.HistoryQuery) ([]api.History, error)
	ProjectRoster(ctx context.Context, projectID string) (roster.Project, roster.Snapshot, error)
}

// Options holds the dependencies for the TUI.
type Options struct {
	Config     config.Config
	ConfigPath string
	Watcher    *config.Watcher
	Backend    Backend
	Resolver   resolver.Resolver
	Outcomes   store.OutcomeRepo
	Logger     *zap.Logger
	// ProjectID opens straight into the spin screen for that project.
	ProjectID string
}

// env is shared by the model and the screen factories so that screens
// opened after a reload see the current config.
type env struct {
	opts Options
	cfg  config.Config
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *env
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the projects screen, or the spin
// screen when a project was given.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	e := &env{opts: opts, cfg: opts.Config}

	var initial screen.Screen = e.projects()
	if opts.ProjectID != "" {
		initial = e.spin(opts.ProjectID)
	}
	return AppModel{
		env:    e,
		router: router.New(initial),
	}
}

func (e *env) projects() screen.Screen {
	return projects.New(e.opts.Backend, projects.Routes{
		Spin:     func(p api.Project) screen.Screen { return e.spin(p.ID) },
		History:  func() screen.Screen { return history.New(e.opts.Backend, e.opts.Outcomes, "") },
		Settings: func() screen.Screen { return e.settings() },
	}, e.cfg.Display.CandidateTerm)
}

func (e *env) settings() *settings.SettingsScreen {
	return settings.New(e.cfg, e.opts.ConfigPath)
}

func (e *env) spin(projectID string) screen.Screen {
	return spin.New(projectID, spin.Deps{
		Source:   e.opts.Backend,
		Resolver: e.opts.Resolver,
		Config:   e.cfg,
		Logger:   e.opts.Logger,
	})
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.ConfigChangedMsg:
		m.env.cfg = msg.Config
		m.env.opts.Logger.Info("config applied",
			zap.String("variant", msg.Config.Spin.Variant),
			zap.String("candidate_term", msg.Config.Display.CandidateTerm),
		)
		return m, m.router.Broadcast(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status is the header's right-hand text.
func (m AppModel) status() string {
	return fmt.Sprintf("%s · %s  ", m.env.cfg.Spin.Variant, m.env.cfg.Display.CandidateTerm)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program. Config reloads from the watcher are
// delivered to every open screen.
func Run(opts Options) error {
	m := newAppModel(opts)
	p := tea.NewProgram(m)

	if opts.Watcher != nil {
		unsubscribe := opts.Watcher.Subscribe(func(cfg config.Config) {
			p.Send(screen.ConfigChangedMsg{Config: cfg})
		})
		defer unsubscribe()
	}

	_, err := p.Run()
	m.router.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
