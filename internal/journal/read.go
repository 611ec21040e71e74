package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Runs returns the most recent runs, newest first. limit <= 0 returns all.
func (j *Journal) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, command, module, pattern, tool_version, status, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, id COLLATE BINARY DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			r        Run
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Command, &r.Module, &r.Pattern, &r.ToolVersion, &r.Status, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if finished.Valid {
			t, err := parseTime(finished.String)
			if err != nil {
				return nil, err
			}
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Events returns a run's file events in seq order.
// Returns an empty slice (not nil) if the run recorded nothing.
func (j *Journal) Events(ctx context.Context, runID string) ([]Event, error) {
	return j.queryEvents(ctx, `
		SELECT run_id, seq, kind, path, content_hash, recorded_at
		FROM file_events
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
}

// History returns every event that touched path across all runs, oldest
// run first.
func (j *Journal) History(ctx context.Context, path string) ([]Event, error) {
	return j.queryEvents(ctx, `
		SELECT e.run_id, e.seq, e.kind, e.path, e.content_hash, e.recorded_at
		FROM file_events e
		JOIN runs r ON e.run_id = r.id
		WHERE e.path = ?
		ORDER BY r.started_at ASC, r.id COLLATE BINARY ASC, e.seq ASC
	`, path)
}

func (j *Journal) queryEvents(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var (
			e        Event
			kind     string
			recorded string
		)
		if err := rows.Scan(&e.RunID, &e.Seq, &kind, &e.Path, &e.ContentHash, &recorded); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Kind = EventKind(kind)
		if e.RecordedAt, err = parseTime(recorded); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
