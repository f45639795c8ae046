package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var outcomeColumns = []string{
	"id", "session_id", "project_id", "project_name", "candidate_id", "candidate_name",
	"success", "error_kind", "error_message", "latency_ms", "resolved_at",
}

type outcomeRepo struct {
	drv *entsql.Driver
}

func (r *outcomeRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *outcomeRepo) Append(ctx context.Context, rec OutcomeRecord) error {
	if rec.SessionID == "" {
		return fmt.Errorf("append outcome: session id is required")
	}
	if rec.ResolvedAt.IsZero() {
		rec.ResolvedAt = time.Now()
	}

	query, args := r.builder().Insert(spinOutcomesTable.Name).
		Columns(outcomeColumns[1:]...).
		Values(
			rec.SessionID, rec.ProjectID, rec.ProjectName, rec.CandidateID, rec.CandidateName,
			rec.Success, rec.ErrorKind, rec.ErrorMessage, rec.Latency.Milliseconds(), rec.ResolvedAt.UnixMilli(),
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save outcome: %w", err)
	}
	return nil
}

func (r *outcomeRepo) Recent(ctx context.Context, opts QueryOpts) ([]OutcomeRecord, error) {
	sel := r.builder().Select(outcomeColumns...).
		From(entsql.Table(spinOutcomesTable.Name)).
		OrderBy(entsql.Desc("resolved_at"), entsql.Desc("id"))

	if opts.ProjectID != "" {
		sel.Where(entsql.EQ("project_id", opts.ProjectID))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("resolved_at", opts.From.UnixMilli()))
	}
	if opts.Failed != nil {
		sel.Where(entsql.EQ("success", !*opts.Failed))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var out []OutcomeRecord
	for rows.Next() {
		var (
			rec        OutcomeRecord
			latencyMs  int64
			resolvedMs int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.ProjectID, &rec.ProjectName, &rec.CandidateID, &rec.CandidateName,
			&rec.Success, &rec.ErrorKind, &rec.ErrorMessage, &latencyMs, &resolvedMs,
		); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		rec.Latency = time.Duration(latencyMs) * time.Millisecond
		rec.ResolvedAt = time.UnixMilli(resolvedMs)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return out, nil
}

func (r *outcomeRepo) Clear(ctx context.Context) (int64, error) {
	query, args := r.builder().Delete(spinOutcomesTable.Name).Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("clear outcomes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear outcomes: %w", err)
	}
	return n, nil
}
