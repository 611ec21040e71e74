// Package journal provides a SQLite-backed record of scaffolding runs and the
// files each run added, updated or removed.
//
// It stands in for version-control bookkeeping: the orchestrator reports
// path lists through a RunTracker and the journal stores them, with the
// content hash of each file at the time of the event.
//
// # Ordering
//
// Events carry a per-run seq (a logical clock starting at 1). Queries order by
// seq, never by wall time, so listings are stable regardless of clock skew.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package journal
