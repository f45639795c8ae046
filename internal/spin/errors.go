package spin

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCandidates is returned by Start for an empty roster snapshot.
	ErrNoCandidates = errors.New("no candidates to spin")

	// ErrSpinInProgress is returned by Start while a session is running or
	// settling. The in-flight session is unaffected.
	ErrSpinInProgress = errors.New("spin already in progress")

	// ErrStaleSession is returned when a result arrives for a session that
	// is no longer current.
	ErrStaleSession = errors.New("stale spin session")
)

// ConsistencyError means the resolver named a candidate that is not in the
// session's roster snapshot. It is fatal for the session and is not retryable
// without refreshing the roster.
type ConsistencyError struct {
	SessionID   string
	CandidateID string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("resolved candidate %q is not in the roster of session %s", e.CandidateID, e.SessionID)
}
