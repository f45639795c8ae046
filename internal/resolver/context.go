package resolver

import (
	"context"

	"github.com/whotakesshowers/wts/internal/roster"
)

type contextKey string

const (
	sessionKey contextKey = "spin_session"
	projectKey contextKey = "spin_project_name"
	rosterKey  contextKey = "spin_roster"
)

// WithSession attaches the spin session ID to the context for outcome logging.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// SessionFrom extracts the spin session ID from the context.
func SessionFrom(ctx context.Context) string {
	if v, ok := ctx.Value(sessionKey).(string); ok {
		return v
	}
	return ""
}

// WithProjectName attaches a display name for the project being resolved.
func WithProjectName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, projectKey, name)
}

// ProjectNameFrom extracts the project display name from the context.
func ProjectNameFrom(ctx context.Context) string {
	if v, ok := ctx.Value(projectKey).(string); ok {
		return v
	}
	return ""
}

// WithRoster attaches the roster snapshot the spin is animating, so logged
// outcomes can be checked against it.
func WithRoster(ctx context.Context, snap roster.Snapshot) context.Context {
	return context.WithValue(ctx, rosterKey, snap)
}

// RosterFrom extracts the roster snapshot from the context.
func RosterFrom(ctx context.Context) (roster.Snapshot, bool) {
	snap, ok := ctx.Value(rosterKey).(roster.Snapshot)
	return snap, ok
}
