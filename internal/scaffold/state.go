package scaffold

import "fmt"

// State is where a file ended up in a run.
type State int

const (
	StateDiscovered State = iota
	StateParsed
	StateSkipped
	StateDeclined
	StateUnchanged
	StateGenerated
	StateRegistered
	StateFailed
	StateDisabled
	StateRemoved
)

var stateNames = map[State]string{
	StateDiscovered: "discovered",
	StateParsed:     "parsed",
	StateSkipped:    "skipped",
	StateDeclined:   "declined",
	StateUnchanged:  "unchanged",
	StateGenerated:  "generated",
	StateRegistered: "registered",
	StateFailed:     "failed",
	StateDisabled:   "disabled",
	StateRemoved:    "removed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText renders the state name in JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome for one file.
type Result struct {
	Source      string `json:"source"`
	Block       string `json:"block,omitempty"`
	Descriptor  string `json:"descriptor,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	State       State  `json:"state"`
	Reason      string `json:"reason,omitempty"`
	Err         error  `json:"-"`
}

// Report collects the results of a run in processing order.
type Report struct {
	Command string   `json:"command"`
	Results []Result `json:"results"`
}

func newReport(command string) *Report {
	return &Report{Command: command, Results: []Result{}}
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
}

// Count returns how many results ended in state s.
func (r *Report) Count(s State) int {
	n := 0
	for _, res := range r.Results {
		if res.State == s {
			n++
		}
	}
	return n
}

// Failures returns the failed results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.State == StateFailed {
			out = append(out, res)
		}
	}
	return out
}

// Summary returns non-zero state counts keyed by state name.
func (r *Report) Summary() map[string]int {
	out := make(map[string]int)
	for _, res := range r.Results {
		out[res.State.String()]++
	}
	return out
}
