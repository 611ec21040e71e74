package journal

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/blockbind/internal/ir"
)

// RunTracker records the files touched during one run. It satisfies the
// orchestrator's bookkeeping sink.
type RunTracker struct {
	journal *Journal
	runID   string
}

// NewRunTracker returns a tracker that appends events to runID.
func NewRunTracker(j *Journal, runID string) *RunTracker {
	return &RunTracker{journal: j, runID: runID}
}

// RunID returns the run the tracker writes to.
func (t *RunTracker) RunID() string { return t.runID }

// AddFiles records newly created files.
func (t *RunTracker) AddFiles(ctx context.Context, paths ...string) error {
	return t.record(ctx, EventAdded, paths)
}

// MarkUpdated records files that were rewritten.
func (t *RunTracker) MarkUpdated(ctx context.Context, paths ...string) error {
	return t.record(ctx, EventUpdated, paths)
}

// RemoveFiles records deleted files.
func (t *RunTracker) RemoveFiles(ctx context.Context, paths ...string) error {
	return t.record(ctx, EventRemoved, paths)
}

func (t *RunTracker) record(ctx context.Context, kind EventKind, paths []string) error {
	for _, p := range paths {
		if _, err := t.journal.RecordEvent(ctx, t.runID, kind, p, contentHash(kind, p)); err != nil {
			return fmt.Errorf("track %s %s: %w", kind, p, err)
		}
	}
	return nil
}

// contentHash hashes the file as it is now. Removed or unreadable files get
// no hash.
func contentHash(kind EventKind, path string) string {
	if kind == EventRemoved {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return ir.ContentHash(data)
}
