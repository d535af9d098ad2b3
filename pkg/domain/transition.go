package domain

import "fmt"

// Transition defines a single rule of the machine: when the head reads
// Read in state From, write Write, switch to To and move the head.
type Transition struct {
	From  State     `json:"from" yaml:"from"`
	Read  Symbol    `json:"read" yaml:"read"`
	To    State     `json:"to" yaml:"to"`
	Write Symbol    `json:"write" yaml:"write"`
	Move  Direction `json:"move" yaml:"move"`
}

// Matches reports whether the rule applies to the given state and symbol.
func (t Transition) Matches(state State, read Symbol) bool {
	return t.From == state && t.Read == read
}

func (t Transition) String() string {
	return fmt.Sprintf("(%s, %s) -> (%s, %s, %s)", t.From, t.Read, t.To, t.Write, t.Move)
}

// Program is an ordered transition table. Order matters twice: lookup
// takes the LAST matching rule, and the halting state is defined by the
// last rule of the table.
type Program struct {
	Transitions []Transition `json:"transitions"`
}

// Len returns the number of rules in the table.
func (p Program) Len() int {
	return len(p.Transitions)
}

// HaltingState is the target state of the last rule. Reaching it after a
// move ends the run.
func (p Program) HaltingState() State {
	if len(p.Transitions) == 0 {
		return 0
	}
	return p.Transitions[len(p.Transitions)-1].To
}

// Match scans the whole table in order and returns the index of the last
// rule matching (state, read), or -1 when no rule applies.
func (p Program) Match(state State, read Symbol) int {
	found := -1
	for i, t := range p.Transitions {
		if t.Matches(state, read) {
			found = i
		}
	}
	return found
}
