package spin

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/whotakesshowers/wts/internal/roster"
)

// Frame is what a renderer needs to draw one instant of a spin.
type Frame struct {
	SessionID string
	Variant   Variant
	Phase     Phase
	// Index is the highlighted candidate, or -1 when idle.
	Index int
	// Rotation is the cumulative wheel angle in degrees.
	Rotation float64
	// Progress runs from 0 to 1 over Config.Total.
	Progress float64
	Elapsed  time.Duration
	// Winner is set once Landed.
	Winner *roster.Candidate
	// Err is set once Failed.
	Err error
}

// Option configures an Animator.
type Option func(*Animator)

// WithRand sets the source of the cosmetic extra-rotation count.
func WithRand(r *rand.Rand) Option {
	return func(a *Animator) { a.rng = r }
}

// WithSessionIDs overrides session ID generation.
func WithSessionIDs(fn func() string) Option {
	return func(a *Animator) { a.newID = fn }
}

// Animator is the spin state machine. It is not safe for concurrent use;
// the Controller serializes access to it.
type Animator struct {
	cfg   Config
	rng   *rand.Rand
	newID func() string

	phase   Phase
	session string
	snap    roster.Snapshot
	started time.Time
	elapsed time.Duration

	index        int
	rotation     float64
	baseRotation float64

	resolved  bool
	winnerIdx int

	settleStart   time.Time
	settleElapsed time.Duration
	settleFrom    float64
	settleTarget  float64
	settleIndex   int

	err error
}

// New creates an idle Animator.
func New(cfg Config, opts ...Option) *Animator {
	a := &Animator{
		cfg:   cfg,
		newID: uuid.NewString,
		index: -1,
	}
	for _, o := range opts {
		o(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return a
}

// Config returns the timing model.
func (a *Animator) Config() Config { return a.cfg }

// Phase returns the current phase.
func (a *Animator) Phase() Phase { return a.phase }

// SessionID returns the current session, or "" when idle.
func (a *Animator) SessionID() string { return a.session }

// Snapshot returns the roster the current session is animating.
func (a *Animator) Snapshot() roster.Snapshot { return a.snap }

// StartEnabled reports whether Start would be accepted.
func (a *Animator) StartEnabled() bool { return !a.phase.Busy() }

// Start begins a session over snap and returns its ID. A previous landed or
// failed session is discarded.
func (a *Animator) Start(snap roster.Snapshot, now time.Time) (string, error) {
	if a.phase.Busy() {
		return "", ErrSpinInProgress
	}
	if snap.Empty() {
		return "", ErrNoCandidates
	}

	a.clear()
	a.phase = Running
	a.session = a.newID()
	a.snap = snap
	a.started = now
	a.baseRotation = a.rotation
	a.index = a.runningIndex(0)
	return a.session, nil
}

// Resolve supplies the resolver's winner for a session. A winner outside
// the snapshot fails the session with a *ConsistencyError, which is also
// returned.
func (a *Animator) Resolve(sessionID, candidateID string, now time.Time) error {
	if !a.current(sessionID) {
		return ErrStaleSession
	}
	if a.resolved {
		return nil
	}

	idx, ok := a.snap.IndexOf(candidateID)
	if !ok {
		err := &ConsistencyError{SessionID: sessionID, CandidateID: candidateID}
		a.fail(err)
		return err
	}
	a.resolved = true
	a.winnerIdx = idx
	a.step(now)
	return nil
}

// Fail ends a session with a resolution failure. The highlighted index
// stays where it was.
func (a *Animator) Fail(sessionID string, err error) error {
	if !a.current(sessionID) {
		return ErrStaleSession
	}
	a.fail(err)
	return nil
}

// Reset returns to Idle from any phase and forgets the winner. Results for
// the old session become stale.
func (a *Animator) Reset() {
	rot := a.rotation
	a.clear()
	a.rotation = rot
}

// Advance moves the animation to now and returns the frame to draw.
func (a *Animator) Advance(now time.Time) Frame {
	a.step(now)
	return a.Frame()
}

// Frame returns the current frame without advancing.
func (a *Animator) Frame() Frame {
	f := Frame{
		SessionID: a.session,
		Variant:   a.cfg.Variant,
		Phase:     a.phase,
		Index:     a.index,
		Rotation:  a.rotation,
		Elapsed:   a.elapsed,
		Err:       a.err,
	}
	switch a.phase {
	case Idle:
	case Landed:
		f.Progress = 1
		w := a.snap.At(a.winnerIdx)
		f.Winner = &w
	default:
		f.Progress = a.progress()
	}
	return f
}

func (a *Animator) current(sessionID string) bool {
	return sessionID != "" && sessionID == a.session && a.phase.Busy()
}

func (a *Animator) clear() {
	*a = Animator{
		cfg:      a.cfg,
		rng:      a.rng,
		newID:    a.newID,
		index:    -1,
		rotation: a.rotation,
	}
}

func (a *Animator) fail(err error) {
	a.phase = Failed
	a.err = err
}

func (a *Animator) step(now time.Time) {
	if !a.phase.Busy() {
		return
	}
	if e := now.Sub(a.started); e > a.elapsed {
		a.elapsed = e
	}

	if a.phase == Running {
		// Past Duration the last self-driven position is held until the
		// winner is known.
		driven := min(a.elapsed, a.cfg.Duration)
		a.rotation = a.baseRotation + RunningRotation(a.cfg, driven, a.snap.Len())
		a.index = a.runningIndex(driven)

		if a.elapsed < a.cfg.Duration || !a.resolved {
			return
		}
		a.beginSettle(now)
	}

	a.settle(now)
}

func (a *Animator) runningIndex(elapsed time.Duration) int {
	n := a.snap.Len()
	if a.cfg.Variant == Wheel {
		return WinnerUnderPointer(a.baseRotation+RunningRotation(a.cfg, elapsed, n), n)
	}
	return CycleIndex(a.cfg, elapsed, n)
}

func (a *Animator) beginSettle(now time.Time) {
	a.phase = Settling
	a.settleStart = now
	a.settleFrom = a.rotation
	a.settleIndex = a.index

	lo, hi := a.cfg.extraSpinsRange()
	k := lo + a.rng.IntN(hi-lo)
	a.settleTarget = TargetRotation(a.rotation, a.winnerIdx, a.snap.Len(), k)
}

func (a *Animator) settle(now time.Time) {
	a.settleElapsed = max(a.settleElapsed, now.Sub(a.settleStart))
	t := fraction(a.settleElapsed, a.cfg.SettleDuration)
	if t >= 1 {
		a.phase = Landed
		a.index = a.winnerIdx
		if a.cfg.Variant == Wheel {
			a.rotation = a.settleTarget
		}
		return
	}
	if a.cfg.Variant == Wheel {
		a.rotation = a.settleFrom + (a.settleTarget-a.settleFrom)*Ease(t)
		a.index = WinnerUnderPointer(a.rotation, a.snap.Len())
		return
	}
	a.index = a.settleIndex
}

func (a *Animator) progress() float64 {
	shown := min(a.elapsed, a.cfg.Duration)
	if a.phase == Settling {
		shown = a.cfg.Duration + a.settleElapsed
	}
	return fraction(shown, a.cfg.Total())
}
