package journal

import "time"

// EventKind classifies a file event.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventUpdated EventKind = "updated"
	EventRemoved EventKind = "removed"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// RunInfo describes a run when it starts.
type RunInfo struct {
	Command string
	Module  string
	Pattern string
}

// Run is one stored invocation of the tool.
type Run struct {
	ID          string     `json:"id"`
	Command     string     `json:"command"`
	Module      string     `json:"module"`
	Pattern     string     `json:"pattern"`
	ToolVersion string     `json:"tool_version"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// Event is one file touched by a run.
type Event struct {
	RunID       string    `json:"run_id"`
	Seq         int64     `json:"seq"`
	Kind        EventKind `json:"kind"`
	Path        string    `json:"path"`
	ContentHash string    `json:"content_hash,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}
