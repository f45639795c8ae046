package store

import (
	"context"
	"time"
)

// QueryOpts configures outcome queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	ProjectID string    // only this project ("" = all)
	From      time.Time // resolved_at >= From
	Failed    *bool     // nil = both, true = failures only, false = successes only
}

// OutcomeRecord captures one resolution attempt observed by this client.
type OutcomeRecord struct {
	ID            int
	SessionID     string
	ProjectID     string
	ProjectName   string
	CandidateID   string
	CandidateName string
	Success       bool
	ErrorKind     string // "resolution", "consistency", "canceled"; empty on success
	ErrorMessage  string
	Latency       time.Duration
	ResolvedAt    time.Time
}

// OutcomeRepo provides append and query access to the local outcome log.
type OutcomeRepo interface {
	// Append records a resolution attempt.
	Append(ctx context.Context, rec OutcomeRecord) error

	// Recent returns records newest first.
	Recent(ctx context.Context, opts QueryOpts) ([]OutcomeRecord, error)

	// Clear deletes every record and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
}
