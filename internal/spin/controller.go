package spin

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/whotakesshowers/wts/internal/resolver"
	"github.com/whotakesshowers/wts/internal/roster"
)

// Request describes one spin driven by a Controller.
type Request struct {
	ProjectID   string
	ProjectName string
	Roster      roster.Snapshot

	// OnComplete receives the winner once Landed.
	OnComplete func(roster.Candidate)
	// OnError receives a *resolver.ResolutionError or *ConsistencyError.
	OnError func(error)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger for phase transitions.
func WithLogger(l *zap.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// WithFrameHook registers fn to receive every frame. It is called from the
// Controller's goroutine.
func WithFrameHook(fn func(Frame)) ControllerOption {
	return func(c *Controller) { c.onFrame = fn }
}

// WithAnimator passes options through to the underlying Animator.
func WithAnimator(opts ...Option) ControllerOption {
	return func(c *Controller) { c.animOpts = append(c.animOpts, opts...) }
}

// Controller runs an Animator against a Resolver. Each session owns a
// ticker and a cancel func; Reset and Close stop both, and results that
// arrive afterwards are dropped by the session check.
type Controller struct {
	resolver resolver.Resolver
	logger   *zap.Logger
	onFrame  func(Frame)
	animOpts []Option
	now      func() time.Time

	mu     sync.Mutex
	anim   *Animator
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewController creates an idle Controller.
func NewController(cfg Config, r resolver.Resolver, opts ...ControllerOption) *Controller {
	c := &Controller{
		resolver: r,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	c.anim = New(cfg, c.animOpts...)
	return c
}

const defaultTick = 50 * time.Millisecond

type result struct {
	outcome resolver.Outcome
	err     error
}

// Start begins a session and issues the resolver call concurrently. It
// returns ErrSpinInProgress while another session is running or settling.
func (c *Controller) Start(ctx context.Context, req Request) (string, error) {
	c.mu.Lock()
	id, err := c.anim.Start(req.Roster, c.now())
	if err != nil {
		c.mu.Unlock()
		return "", err
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	first := c.anim.Frame()
	tick := c.anim.Config().TickInterval
	c.mu.Unlock()
	if tick <= 0 {
		tick = defaultTick
	}

	c.logger.Debug("spin started",
		zap.String("session", id),
		zap.String("project", req.ProjectID),
		zap.Int("candidates", req.Roster.Len()))

	rctx := resolver.WithSession(ctx, id)
	rctx = resolver.WithProjectName(rctx, req.ProjectName)
	rctx = resolver.WithRoster(rctx, req.Roster)

	results := make(chan result, 1)
	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		out, err := c.resolver.Resolve(rctx, req.ProjectID)
		results <- result{outcome: out, err: err}
	}()
	go func() {
		defer c.wg.Done()
		defer cancel()
		c.run(ctx, id, tick, req, results, first)
	}()
	return id, nil
}

func (c *Controller) run(ctx context.Context, id string, tick time.Duration, req Request, results <-chan result, f Frame) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	last := f.Phase
	c.emit(f)

	for {
		select {
		case <-ctx.Done():
			c.abandon(id)
			return

		case r := <-results:
			results = nil
			if ctx.Err() != nil {
				c.abandon(id)
				return
			}
			c.mu.Lock()
			var err error
			if r.err != nil {
				err = c.anim.Fail(id, r.err)
			} else {
				err = c.anim.Resolve(id, r.outcome.CandidateID, c.now())
			}
			f = c.anim.Frame()
			c.mu.Unlock()
			if errors.Is(err, ErrStaleSession) {
				return
			}

		case <-ticker.C:
			c.mu.Lock()
			if c.anim.SessionID() != id {
				c.mu.Unlock()
				return
			}
			f = c.anim.Advance(c.now())
			c.mu.Unlock()
		}

		if f.Phase != last {
			c.logger.Debug("spin phase",
				zap.String("session", id),
				zap.Stringer("from", last),
				zap.Stringer("to", f.Phase),
				zap.Duration("elapsed", f.Elapsed))
			last = f.Phase
		}
		c.emit(f)

		switch f.Phase {
		case Landed:
			c.logger.Info("spin landed",
				zap.String("session", id),
				zap.String("candidate_id", f.Winner.ID),
				zap.Int("index", f.Index))
			if req.OnComplete != nil {
				req.OnComplete(*f.Winner)
			}
			return
		case Failed:
			c.logger.Warn("spin failed", zap.String("session", id), zap.Error(f.Err))
			if req.OnError != nil {
				req.OnError(f.Err)
			}
			return
		}
	}
}

// abandon resets the animator if session id is still in flight.
func (c *Controller) abandon(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.anim.SessionID() == id && c.anim.Phase().Busy() {
		c.anim.Reset()
	}
}

func (c *Controller) emit(f Frame) {
	if c.onFrame != nil {
		c.onFrame(f)
	}
}

// Frame returns the latest frame.
func (c *Controller) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anim.Frame()
}

// StartEnabled reports whether Start would be accepted.
func (c *Controller) StartEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anim.StartEnabled()
}

// Reset cancels any session and returns to Idle.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.anim.Reset()
}

// Wait blocks until the goroutines of every started session have exited.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close resets the Controller and waits for its goroutines.
func (c *Controller) Close() {
	c.Reset()
	c.Wait()
}
