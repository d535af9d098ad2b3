// Package validator checks transition tables for rules that can never
// fire and states that can never be reached.
package validator

import (
	"fmt"
	"strings"

	"github.com/mfeilner/unimach/pkg/domain"
)

// ValidateProgram checks the table for unreachable states, shadowed rules
// and dead rules, and reports all findings at once.
func ValidateProgram(program domain.Program) error {
	if program.Len() == 0 {
		return fmt.Errorf("program has no transitions")
	}

	halting := program.HaltingState()

	// 1. Crawler: collect the states reachable from the initial state.
	// Arrival at the halting state ends the run, so its outgoing rules do
	// not extend reachability (unless the machine starts there).
	edges := make(map[domain.State][]domain.State)
	for _, t := range program.Transitions {
		edges[t.From] = append(edges[t.From], t.To)
	}

	visited := make(map[domain.State]bool)
	queue := []domain.State{domain.InitialState}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		if current == halting && current != domain.InitialState {
			continue
		}
		for _, to := range edges[current] {
			if !visited[to] {
				queue = append(queue, to)
			}
		}
	}

	var problems []string

	if !visited[halting] {
		problems = append(problems, fmt.Sprintf("halting state %s is unreachable from %s", halting, domain.InitialState))
	}
	for _, state := range statesOf(program) {
		if state != halting && !visited[state] {
			problems = append(problems, fmt.Sprintf("state %s is unreachable from %s", state, domain.InitialState))
		}
	}

	// 2. Shadowed rules: lookup takes the last match, so an earlier rule
	// with the same (state, read) pair never fires.
	for i, t := range program.Transitions {
		if program.Match(t.From, t.Read) != i {
			problems = append(problems, fmt.Sprintf("rule %d %s is shadowed by a later rule", i+1, t))
		}
	}

	// 3. Dead rules out of the halting state.
	if halting != domain.InitialState {
		for i, t := range program.Transitions {
			if t.From == halting {
				problems = append(problems, fmt.Sprintf("rule %d %s departs from the halting state and never fires", i+1, t))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}

	return nil
}

// statesOf lists the states of the table in first-use order.
func statesOf(program domain.Program) []domain.State {
	seen := make(map[domain.State]bool)
	var states []domain.State
	add := func(s domain.State) {
		if !seen[s] {
			seen[s] = true
			states = append(states, s)
		}
	}
	for _, t := range program.Transitions {
		add(t.From)
		add(t.To)
	}
	return states
}
