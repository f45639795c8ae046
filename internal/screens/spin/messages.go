package spin

import (
	"time"

	"github.com/whotakesshowers/wts/internal/resolver"
	"github.com/whotakesshowers/wts/internal/roster"
)

// rosterLoadedMsg is sent when the project and its candidates are fetched.
type rosterLoadedMsg struct {
	Project  roster.Project
	Snapshot roster.Snapshot
	Err      error
}

// tickMsg drives one animation frame of a session.
type tickMsg struct {
	Session string
	At      time.Time
}

// resolvedMsg carries the resolver's answer for a session.
type resolvedMsg struct {
	Session string
	Outcome resolver.Outcome
	Err     error
	At      time.Time
}
