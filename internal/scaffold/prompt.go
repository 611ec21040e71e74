package scaffold

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrQuit is returned by a Prompter when the operator asks to stop.
var ErrQuit = errors.New("quit requested")

// Prompter asks the operator a yes/no question.
type Prompter interface {
	Confirm(question string, def bool) (bool, error)
}

// AssumeYes answers yes without asking.
type AssumeYes struct{}

// Confirm always returns true.
func (AssumeYes) Confirm(string, bool) (bool, error) { return true, nil }

// LinePrompter asks on a terminal-like stream. Besides yes and no it accepts
// "a" (yes to this and every later question) and "q" (ErrQuit).
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
	all bool
}

// NewLinePrompter creates a prompter. Nil streams default to stdin/stdout.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Confirm prints question and reads answers until one is recognised. An
// empty answer or end of input selects def.
func (p *LinePrompter) Confirm(question string, def bool) (bool, error) {
	if p.all {
		return true, nil
	}
	choices := "[y/N/a/q]"
	if def {
		choices = "[Y/n/a/q]"
	}
	for {
		fmt.Fprintf(p.out, "%s %s: ", question, choices)
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read answer: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "a", "all":
			p.all = true
			return true, nil
		case "q", "quit":
			return false, ErrQuit
		}
		if errors.Is(err, io.EOF) {
			return def, nil
		}
		fmt.Fprintln(p.out, "Please answer y, n, a or q.")
	}
}
