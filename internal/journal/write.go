package journal

import (
	"context"
	"fmt"

	"github.com/roach88/blockbind/internal/ir"
)

// timeLayout has fixed-width fractions so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// BeginRun inserts a run row and returns its ID.
func (j *Journal) BeginRun(ctx context.Context, info RunInfo) (string, error) {
	id := j.ids.Generate()
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs (id, command, module, pattern, tool_version, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		info.Command,
		info.Module,
		info.Pattern,
		ir.ToolVersion,
		StatusRunning,
		j.now(),
	)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return id, nil
}

// FinishRun stamps the run's final status.
func (j *Journal) FinishRun(ctx context.Context, runID, status string) error {
	res, err := j.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, finished_at = ? WHERE id = ?
	`, status, j.now(), runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run: unknown run %q", runID)
	}
	return nil
}

// RecordEvent appends a file event to the run. The seq is the next value of
// the run's logical clock. Returns the assigned seq.
//
// Note: The run referenced by runID must exist (foreign key constraint).
func (j *Journal) RecordEvent(ctx context.Context, runID string, kind EventKind, path, contentHash string) (int64, error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("record event: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM file_events WHERE run_id = ?
	`, runID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("record event: next seq: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO file_events (run_id, seq, kind, path, content_hash, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, seq, string(kind), path, contentHash, j.now()); err != nil {
		return 0, fmt.Errorf("record event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("record event: commit: %w", err)
	}
	return seq, nil
}

func (j *Journal) now() string {
	return j.clock.Now().UTC().Format(timeLayout)
}
