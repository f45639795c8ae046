// Package spin animates a spin that lands on an externally resolved winner.
//
// The Animator is a pure state machine: callers feed it wall-clock times
// and resolver results, and read back Frames. It never chooses a winner
// and its Running phase never looks at one. The Controller drives an
// Animator from a goroutine for non-interactive use; the TUI drives it
// from tea.Tick messages.
package spin

// Phase is the animator state.
type Phase int

const (
	Idle Phase = iota
	Running
	Settling
	Landed
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Settling:
		return "settling"
	case Landed:
		return "landed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Busy reports whether a session is in flight. Start is rejected while busy.
func (p Phase) Busy() bool {
	return p == Running || p == Settling
}

// Terminal reports whether the session has finished, successfully or not.
func (p Phase) Terminal() bool {
	return p == Landed || p == Failed
}
