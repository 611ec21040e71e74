// Package scaffold drives the per-block pipeline: it discovers block
// sources, runs the introspector and binding generator for each, and keeps
// the build manifests in step. It also hosts the disable and remove front
// ends, which edit the same manifests in the opposite direction.
//
// Each file moves through a small state machine (see State). Overwrites ask a
// Prompter first, and every file that is created, rewritten or deleted is
// reported to a Tracker.
package scaffold
