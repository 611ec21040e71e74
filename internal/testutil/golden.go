package testutil

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is the fixture directory, relative to the package under test.
const GoldenDir = "testdata/golden"

// AssertGolden compares data against testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/... -update
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
