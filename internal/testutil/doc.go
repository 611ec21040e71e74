// Package testutil holds fixtures shared by package tests: temporary source
// trees, golden-file comparison, a deterministic clock, fixed run IDs and a
// scripted prompter.
package testutil
