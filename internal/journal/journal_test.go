package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockbind/internal/ir"
	"github.com/roach88/blockbind/internal/testutil"
)

// createTestJournal opens a journal in a temp dir with deterministic IDs and time.
func createTestJournal(t *testing.T, ids ...string) *Journal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path,
		WithIDGenerator(NewFixedGenerator(ids...)),
		WithClock(testutil.NewDeterministicClock()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	require.NoError(t, err)
	defer j.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	for i := 0; i < 3; i++ {
		j, err := Open(path)
		require.NoError(t, err, "iteration %d", i)
		require.NoError(t, j.Close())
	}
}

func TestOpen_Pragmas(t *testing.T) {
	j := createTestJournal(t)

	assert.NoError(t, j.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, j.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, j.verifyPragma("user_version", "1"))
}

func TestBeginAndFinishRun(t *testing.T) {
	ctx := context.Background()
	j := createTestJournal(t, "run-1")

	id, err := j.BeginRun(ctx, RunInfo{Command: "bind", Module: "howto", Pattern: "square"})
	require.NoError(t, err)
	assert.Equal(t, "run-1", id)

	require.NoError(t, j.FinishRun(ctx, id, StatusSucceeded))

	runs, err := j.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "bind", runs[0].Command)
	assert.Equal(t, "howto", runs[0].Module)
	assert.Equal(t, "square", runs[0].Pattern)
	assert.Equal(t, ir.ToolVersion, runs[0].ToolVersion)
	assert.Equal(t, StatusSucceeded, runs[0].Status)
	assert.Equal(t, testutil.Epoch, runs[0].StartedAt)
	require.NotNil(t, runs[0].FinishedAt)
	assert.True(t, runs[0].FinishedAt.After(runs[0].StartedAt))
}

func TestFinishRun_Unknown(t *testing.T) {
	j := createTestJournal(t)
	assert.Error(t, j.FinishRun(context.Background(), "missing", StatusFailed))
}

func TestRuns_NewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	j := createTestJournal(t, "run-a", "run-b", "run-c")

	for i := 0; i < 3; i++ {
		_, err := j.BeginRun(ctx, RunInfo{Command: "bind", Module: "howto"})
		require.NoError(t, err)
	}

	runs, err := j.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, "run-b", runs[1].ID)
}

func TestRecordEvent_SeqPerRun(t *testing.T) {
	ctx := context.Background()
	j := createTestJournal(t, "run-1", "run-2")

	r1, err := j.BeginRun(ctx, RunInfo{Command: "bind", Module: "howto"})
	require.NoError(t, err)
	r2, err := j.BeginRun(ctx, RunInfo{Command: "rm", Module: "howto"})
	require.NoError(t, err)

	seq, err := j.RecordEvent(ctx, r1, EventAdded, "grc/a.block.yml", "h1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)
	seq, err = j.RecordEvent(ctx, r1, EventUpdated, "grc/CMakeLists.txt", "h2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)
	seq, err = j.RecordEvent(ctx, r2, EventRemoved, "grc/a.block.yml", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	events, err := j.Events(ctx, r1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventAdded, events[0].Kind)
	assert.Equal(t, "grc/CMakeLists.txt", events[1].Path)

	history, err := j.History(ctx, "grc/a.block.yml")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, EventAdded, history[0].Kind)
	assert.Equal(t, EventRemoved, history[1].Kind)
}

func TestRecordEvent_UnknownRun(t *testing.T) {
	j := createTestJournal(t)
	_, err := j.RecordEvent(context.Background(), "missing", EventAdded, "a", "")
	assert.Error(t, err, "foreign key enforcement rejects unknown runs")
}

func TestEvents_EmptyNotNil(t *testing.T) {
	j := createTestJournal(t)
	events, err := j.Events(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestRunTracker(t *testing.T) {
	ctx := context.Background()
	j := createTestJournal(t, "run-1")
	root := testutil.WriteTree(t, map[string]string{"grc/a.block.yml": "id: a\n"})
	added := filepath.Join(root, "grc/a.block.yml")
	removed := filepath.Join(root, "lib/gone.cc")

	runID, err := j.BeginRun(ctx, RunInfo{Command: "bind", Module: "howto"})
	require.NoError(t, err)
	tracker := NewRunTracker(j, runID)
	assert.Equal(t, runID, tracker.RunID())

	require.NoError(t, tracker.AddFiles(ctx, added))
	require.NoError(t, tracker.MarkUpdated(ctx, added))
	require.NoError(t, tracker.RemoveFiles(ctx, removed))

	events, err := j.Events(ctx, runID)
	require.NoError(t, err)
	require.Len(t, events, 3, "one event per tracked path")
	assert.Equal(t, []EventKind{EventAdded, EventUpdated, EventRemoved},
		[]EventKind{events[0].Kind, events[1].Kind, events[2].Kind})
	assert.Equal(t, ir.ContentHash([]byte("id: a\n")), events[0].ContentHash)
	assert.Empty(t, events[2].ContentHash)
}

func TestFixedGenerator_PanicsWhenExhausted(t *testing.T) {
	g := NewFixedGenerator("only")
	assert.Equal(t, "only", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
