package spin

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/whotakesshowers/wts/internal/config"
	"github.com/whotakesshowers/wts/internal/resolver"
	"github.com/whotakesshowers/wts/internal/roster"
	"github.com/whotakesshowers/wts/internal/screen"
	sp "github.com/whotakesshowers/wts/internal/spin"
	"github.com/whotakesshowers/wts/internal/ui/components"
	"github.com/whotakesshowers/wts/internal/ui/layout"
)

// RosterSource loads a project and the snapshot of its candidates.
type RosterSource interface {
	ProjectRoster(ctx context.Context, projectID string) (roster.Project, roster.Snapshot, error)
}

// Deps are the collaborators of a SpinScreen.
type Deps struct {
	Source   RosterSource
	Resolver resolver.Resolver
	Config   config.Config
	Logger   *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// SpinScreen runs spins for one project.
type SpinScreen struct {
	projectID string
	source    RosterSource
	resolver  resolver.Resolver
	logger    *zap.Logger
	now       func() time.Time

	display     config.DisplayConfig
	spinCfg     config.SpinConfig
	pendingSpin *config.SpinConfig

	anim   *sp.Animator
	frame  sp.Frame
	cancel context.CancelFunc

	project  roster.Project
	snap     roster.Snapshot
	avatars  components.AvatarSet
	loaded   bool
	errMsg   string
	notice   string
	confetti string
	loading  spinner.Model
}

var (
	_ screen.Screen          = (*SpinScreen)(nil)
	_ screen.KeyHintProvider = (*SpinScreen)(nil)
	_ screen.Closer          = (*SpinScreen)(nil)
)

// New creates a SpinScreen for projectID.
func New(projectID string, deps Deps) *SpinScreen {
	s := &SpinScreen{
		projectID: projectID,
		source:    deps.Source,
		resolver:  deps.Resolver,
		logger:    deps.Logger,
		now:       deps.Now,
		display:   deps.Config.Display,
		spinCfg:   deps.Config.Spin,
		loading:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.anim = sp.New(sp.FromConfig(s.spinCfg))
	s.frame = s.anim.Frame()
	return s
}

func (s *SpinScreen) Init() tea.Cmd {
	return tea.Batch(s.loadRoster(), s.loading.Tick)
}

func (s *SpinScreen) Title() string {
	if s.project.Name != "" {
		return s.project.Name
	}
	return "Spin"
}

func (s *SpinScreen) KeyHints() []layout.KeyHint {
	if !s.loaded || s.snap.Empty() {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	switch s.frame.Phase {
	case sp.Running, sp.Settling:
		return []layout.KeyHint{
			{Key: "R", Description: "Cancel"},
			{Key: "Esc", Description: "Back"},
		}
	case sp.Landed, sp.Failed:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Spin again"},
			{Key: "R", Description: "Reset"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Spin"},
		{Key: "V", Description: "Cycle/Wheel"},
		{Key: "Esc", Description: "Back"},
	}
}

// Phase returns the animator phase.
func (s *SpinScreen) Phase() sp.Phase {
	return s.frame.Phase
}

// StartEnabled reports whether the spin button is live.
func (s *SpinScreen) StartEnabled() bool {
	return s.loaded && !s.snap.Empty() && s.anim.StartEnabled()
}

func (s *SpinScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case rosterLoadedMsg:
		return s.handleRoster(msg)

	case tickMsg:
		return s, s.handleTick(msg)

	case resolvedMsg:
		return s, s.handleResolved(msg)

	case screen.ConfigChangedMsg:
		return s, s.applyConfig(msg.Config)

	case spinner.TickMsg:
		if s.loaded {
			return s, nil
		}
		var cmd tea.Cmd
		s.loading, cmd = s.loading.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

// Close cancels any in-flight session. Results that arrive later are
// dropped by the session check.
func (s *SpinScreen) Close() {
	s.stop()
	s.anim.Reset()
	s.frame = s.anim.Frame()
}

func (s *SpinScreen) loadRoster() tea.Cmd {
	source, id := s.source, s.projectID
	return func() tea.Msg {
		p, snap, err := source.ProjectRoster(context.Background(), id)
		return rosterLoadedMsg{Project: p, Snapshot: snap, Err: err}
	}
}

func (s *SpinScreen) handleRoster(msg rosterLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loaded = true
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.project = msg.Project
	s.snap = msg.Snapshot
	s.avatars = components.NewAvatarSet(s.snap, s.display)
	return s, nil
}

func (s *SpinScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "space", " ":
		return s.start()
	case "r", "R":
		s.reset()
	case "v", "V":
		s.toggleVariant()
	}
	return nil
}

func (s *SpinScreen) start() tea.Cmd {
	if !s.loaded || s.errMsg != "" {
		return nil
	}
	s.notice = ""
	if s.pendingSpin != nil && s.anim.StartEnabled() {
		s.setSpinConfig(*s.pendingSpin)
	}

	id, err := s.anim.Start(s.snap, s.now())
	switch {
	case errors.Is(err, sp.ErrSpinInProgress):
		s.notice = "Spin in progress"
		return nil
	case errors.Is(err, sp.ErrNoCandidates):
		s.notice = fmt.Sprintf("This project has no %s yet", s.display.CandidateTerm)
		return nil
	case err != nil:
		s.notice = err.Error()
		return nil
	}

	s.stop()
	s.confetti = ""
	s.frame = s.anim.Frame()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	ctx = resolver.WithSession(ctx, id)
	ctx = resolver.WithProjectName(ctx, s.project.Name)
	ctx = resolver.WithRoster(ctx, s.snap)

	s.logger.Debug("spin started",
		zap.String("session", id),
		zap.String("project", s.projectID),
		zap.String("variant", string(s.anim.Config().Variant)))

	return tea.Batch(s.tick(id), s.resolve(ctx, id))
}

func (s *SpinScreen) tick(session string) tea.Cmd {
	interval := s.anim.Config().TickInterval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg{Session: session, At: t}
	})
}

func (s *SpinScreen) resolve(ctx context.Context, session string) tea.Cmd {
	res, id, now := s.resolver, s.projectID, s.now
	return func() tea.Msg {
		out, err := res.Resolve(ctx, id)
		return resolvedMsg{Session: session, Outcome: out, Err: err, At: now()}
	}
}

func (s *SpinScreen) handleTick(msg tickMsg) tea.Cmd {
	if msg.Session != s.anim.SessionID() || !s.anim.Phase().Busy() {
		return nil
	}
	s.frame = s.anim.Advance(msg.At)
	if s.frame.Phase.Busy() {
		return s.tick(msg.Session)
	}
	s.finish()
	return nil
}

func (s *SpinScreen) handleResolved(msg resolvedMsg) tea.Cmd {
	var err error
	if msg.Err != nil {
		err = s.anim.Fail(msg.Session, msg.Err)
	} else {
		err = s.anim.Resolve(msg.Session, msg.Outcome.CandidateID, msg.At)
	}
	if errors.Is(err, sp.ErrStaleSession) {
		s.logger.Debug("dropped stale result", zap.String("session", msg.Session))
		return nil
	}
	s.frame = s.anim.Frame()
	if s.frame.Phase.Terminal() {
		s.finish()
	}
	return nil
}

// finish runs once a session lands or fails.
func (s *SpinScreen) finish() {
	s.stop()
	switch s.frame.Phase {
	case sp.Landed:
		s.confetti = confetti(rand.New(rand.NewPCG(uint64(s.now().UnixNano()), 7)), 24)
	case sp.Failed:
		s.logger.Warn("spin failed", zap.String("project", s.projectID), zap.Error(s.frame.Err))
	}
}

func (s *SpinScreen) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *SpinScreen) reset() {
	s.stop()
	s.anim.Reset()
	s.frame = s.anim.Frame()
	s.confetti = ""
	s.notice = ""
	if s.pendingSpin != nil {
		s.setSpinConfig(*s.pendingSpin)
	}
}

func (s *SpinScreen) toggleVariant() {
	if !s.anim.StartEnabled() {
		return
	}
	next := "wheel"
	if s.spinCfg.Variant == "wheel" {
		next = "cycle"
	}
	s.setSpinConfig(s.spinCfg.WithVariant(next))
}

func (s *SpinScreen) setSpinConfig(sc config.SpinConfig) {
	s.spinCfg = sc
	s.pendingSpin = nil
	s.anim = sp.New(sp.FromConfig(sc))
	s.frame = s.anim.Frame()
	s.confetti = ""
}

// applyConfig takes display changes at once. Spin timing changes wait until
// the screen is idle so a shown result is not wiped.
func (s *SpinScreen) applyConfig(cfg config.Config) tea.Cmd {
	s.display = cfg.Display
	if s.loaded {
		s.avatars = components.NewAvatarSet(s.snap, s.display)
	}
	if cfg.Spin == s.spinCfg {
		return nil
	}
	if s.anim.Phase() != sp.Idle {
		sc := cfg.Spin
		s.pendingSpin = &sc
		return nil
	}
	s.setSpinConfig(cfg.Spin)
	return nil
}
