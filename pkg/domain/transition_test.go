package domain

import "testing"

func TestProgramMatchLastWins(t *testing.T) {
	p := Program{Transitions: []Transition{
		{From: 1, Read: SymbolZero, To: 2, Write: SymbolOne, Move: Right},
		{From: 1, Read: SymbolOne, To: 3, Write: SymbolOne, Move: Left},
		{From: 1, Read: SymbolZero, To: 4, Write: SymbolMarker, Move: Left},
	}}

	// Two rules match (q1, 0); the later one wins.
	if got := p.Match(1, SymbolZero); got != 2 {
		t.Errorf("Match(q1, 0) = %d, want 2", got)
	}
	if got := p.Match(1, SymbolOne); got != 1 {
		t.Errorf("Match(q1, 1) = %d, want 1", got)
	}
	if got := p.Match(9, SymbolZero); got != -1 {
		t.Errorf("Match(q9, 0) = %d, want -1", got)
	}
}

func TestProgramHaltingState(t *testing.T) {
	p := Program{Transitions: []Transition{
		{From: 1, Read: SymbolZero, To: 2, Write: SymbolZero, Move: Right},
		{From: 2, Read: SymbolOne, To: 7, Write: SymbolOne, Move: Left},
	}}
	if got := p.HaltingState(); got != 7 {
		t.Errorf("HaltingState() = %s, want q7", got)
	}

	var empty Program
	if got := empty.HaltingState(); got != 0 {
		t.Errorf("HaltingState() on empty program = %s, want q0", got)
	}
}

func TestTransitionString(t *testing.T) {
	tr := Transition{From: 1, Read: SymbolBlank, To: 2, Write: SymbolMarker, Move: Left}
	want := "(q1, _) -> (q2, X, L)"
	if got := tr.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStateString(t *testing.T) {
	if got := State(12).String(); got != "q12" {
		t.Errorf("State(12).String() = %q, want %q", got, "q12")
	}
}
