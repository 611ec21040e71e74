package scaffold

import (
	"context"
	"sync"
)

// Tracker receives the paths a run creates, rewrites or deletes. It stands
// in for version-control bookkeeping.
type Tracker interface {
	AddFiles(ctx context.Context, paths ...string) error
	MarkUpdated(ctx context.Context, paths ...string) error
	RemoveFiles(ctx context.Context, paths ...string) error
}

// Nop discards every call.
type Nop struct{}

func (Nop) AddFiles(context.Context, ...string) error    { return nil }
func (Nop) MarkUpdated(context.Context, ...string) error { return nil }
func (Nop) RemoveFiles(context.Context, ...string) error { return nil }

// Recorder keeps the reported paths in memory.
//
// Thread-safety: safe for concurrent use via internal mutex.
type Recorder struct {
	mu      sync.Mutex
	Added   []string
	Updated []string
	Removed []string
}

func (r *Recorder) AddFiles(_ context.Context, paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Added = append(r.Added, paths...)
	return nil
}

func (r *Recorder) MarkUpdated(_ context.Context, paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Updated = append(r.Updated, paths...)
	return nil
}

func (r *Recorder) RemoveFiles(_ context.Context, paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Removed = append(r.Removed, paths...)
	return nil
}
