package manifest

import "fmt"

// Outcome classifies a substitution count.
type Outcome int

const (
	NoMatch Outcome = iota
	Applied
	Ambiguous
)

func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no-match"
	case Applied:
		return "applied"
	default:
		return "ambiguous"
	}
}

// Classify maps a match count to an Outcome.
func Classify(n int) Outcome {
	switch {
	case n <= 0:
		return NoMatch
	case n == 1:
		return Applied
	default:
		return Ambiguous
	}
}

// AmbiguousEditWarning reports an edit that did not match exactly once.
// It is advisory: the operator should check the manifest by hand.
type AmbiguousEditWarning struct {
	Op     string
	Path   string
	Target string
	Count  int
}

// Outcome returns NoMatch or Ambiguous.
func (w AmbiguousEditWarning) Outcome() Outcome { return Classify(w.Count) }

func (w AmbiguousEditWarning) Error() string {
	if w.Count == 0 {
		return fmt.Sprintf("%s: %s not found in %s, check it manually", w.Op, w.Target, w.Path)
	}
	return fmt.Sprintf("%s: %s matched %d times (instead of once) in %s, only the first was changed; check it manually",
		w.Op, w.Target, w.Count, w.Path)
}
