package testutil

import (
	"fmt"
	"sync"
)

// ScriptedPrompter answers confirmation questions from a fixed script and
// records every question asked. When the script runs out it returns the
// question's default.
type ScriptedPrompter struct {
	mu        sync.Mutex
	answers   []bool
	questions []string
	err       error
}

// NewScriptedPrompter creates a prompter that replies with answers in order.
func NewScriptedPrompter(answers ...bool) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

// FailWith makes every later Confirm call return err.
func (p *ScriptedPrompter) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Confirm records question and returns the next scripted answer.
func (p *ScriptedPrompter) Confirm(question string, def bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.questions = append(p.questions, question)
	if p.err != nil {
		return false, fmt.Errorf("prompt %q: %w", question, p.err)
	}
	if len(p.answers) == 0 {
		return def, nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

// Questions returns the questions asked so far.
func (p *ScriptedPrompter) Questions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.questions...)
}
