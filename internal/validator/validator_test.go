package validator

import (
	"strings"
	"testing"

	"github.com/mfeilner/unimach/pkg/domain"
	"github.com/mfeilner/unimach/pkg/encoding"
	"github.com/mfeilner/unimach/pkg/machines"
)

func TestValidateProgram(t *testing.T) {
	// Scenario A: the built-in machines are well-formed.
	for _, m := range machines.Catalog() {
		program, err := encoding.DecodeProgram(m.Code)
		if err != nil {
			t.Fatalf("failed to decode %s: %v", m.Name, err)
		}
		if err := ValidateProgram(program); err != nil {
			t.Errorf("Scenario A (%s) failed: %v", m.Name, err)
		}
	}

	// Scenario B: q3 exists but no rule ever leads there.
	unreachable := domain.Program{Transitions: []domain.Transition{
		{From: 1, Read: domain.SymbolZero, To: 2, Write: domain.SymbolZero, Move: domain.Right},
		{From: 3, Read: domain.SymbolOne, To: 3, Write: domain.SymbolOne, Move: domain.Left},
		{From: 1, Read: domain.SymbolOne, To: 2, Write: domain.SymbolOne, Move: domain.Right},
	}}
	err := ValidateProgram(unreachable)
	if err == nil {
		t.Error("Scenario B (unreachable) should have failed, but got nil")
	} else if !strings.Contains(err.Error(), "q3 is unreachable") {
		t.Errorf("Expected 'q3 is unreachable' error, got: %v", err)
	}

	// Scenario C: the first rule is shadowed by the third.
	shadowed := domain.Program{Transitions: []domain.Transition{
		{From: 1, Read: domain.SymbolZero, To: 1, Write: domain.SymbolZero, Move: domain.Right},
		{From: 1, Read: domain.SymbolOne, To: 2, Write: domain.SymbolOne, Move: domain.Right},
		{From: 1, Read: domain.SymbolZero, To: 2, Write: domain.SymbolBlank, Move: domain.Left},
	}}
	err = ValidateProgram(shadowed)
	if err == nil {
		t.Error("Scenario C (shadowed) should have failed, but got nil")
	} else if !strings.Contains(err.Error(), "rule 1 (q1, 0) -> (q1, 0, R) is shadowed") {
		t.Errorf("Expected shadowed rule error, got: %v", err)
	}

	// Scenario D: a rule departing from the halting state never fires.
	dead := domain.Program{Transitions: []domain.Transition{
		{From: 1, Read: domain.SymbolZero, To: 2, Write: domain.SymbolZero, Move: domain.Right},
		{From: 2, Read: domain.SymbolZero, To: 1, Write: domain.SymbolZero, Move: domain.Left},
		{From: 1, Read: domain.SymbolOne, To: 2, Write: domain.SymbolOne, Move: domain.Right},
	}}
	err = ValidateProgram(dead)
	if err == nil {
		t.Error("Scenario D (dead rule) should have failed, but got nil")
	} else if !strings.Contains(err.Error(), "departs from the halting state") {
		t.Errorf("Expected dead rule error, got: %v", err)
	}

	// Scenario E: empty table.
	if err := ValidateProgram(domain.Program{}); err == nil {
		t.Error("Scenario E (empty) should have failed, but got nil")
	}
}
