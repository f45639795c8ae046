package resolver

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/whotakesshowers/wts/internal/store"
)

// Error kinds recorded in the outcome log.
const (
	KindResolution  = "resolution"
	KindConsistency = "consistency"
	KindCanceled    = "canceled"
)

type loggingResolver struct {
	inner  Resolver
	repo   store.OutcomeRepo
	logger *zap.Logger
	now    func() time.Time
}

// WithLogging records every resolution attempt in repo and logs it. A nil
// repo only logs; a nil logger only records.
func WithLogging(inner Resolver, repo store.OutcomeRepo, logger *zap.Logger) Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &loggingResolver{inner: inner, repo: repo, logger: logger, now: time.Now}
}

func (l *loggingResolver) Resolve(ctx context.Context, projectID string) (Outcome, error) {
	start := l.now()
	out, err := l.inner.Resolve(ctx, projectID)
	latency := l.now().Sub(start)

	rec := store.OutcomeRecord{
		SessionID:     SessionFrom(ctx),
		ProjectID:     projectID,
		ProjectName:   ProjectNameFrom(ctx),
		CandidateID:   out.CandidateID,
		CandidateName: out.CandidateName,
		Success:       err == nil,
		Latency:       latency,
		ResolvedAt:    l.now(),
	}

	switch {
	case errors.Is(err, context.Canceled):
		rec.ErrorKind = KindCanceled
		rec.ErrorMessage = err.Error()
	case err != nil:
		rec.ErrorKind = KindResolution
		rec.ErrorMessage = err.Error()
	default:
		if snap, ok := RosterFrom(ctx); ok {
			if _, found := snap.IndexOf(out.CandidateID); !found {
				rec.Success = false
				rec.ErrorKind = KindConsistency
				rec.ErrorMessage = "candidate " + out.CandidateID + " is not in the roster snapshot"
			}
		}
	}

	fields := []zap.Field{
		zap.String("session", rec.SessionID),
		zap.String("project", projectID),
		zap.Duration("latency", latency),
	}
	if rec.Success {
		l.logger.Info("outcome resolved", append(fields,
			zap.String("candidate_id", rec.CandidateID),
			zap.String("candidate_name", rec.CandidateName))...)
	} else {
		l.logger.Warn("outcome failed", append(fields,
			zap.String("kind", rec.ErrorKind),
			zap.String("error", rec.ErrorMessage))...)
	}

	// A failed log write never fails the spin.
	if l.repo != nil && rec.SessionID != "" {
		if logErr := l.repo.Append(context.WithoutCancel(ctx), rec); logErr != nil {
			l.logger.Warn("append outcome record", zap.Error(logErr))
		}
	}

	return out, err
}
