package dsl

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/mfeilner/unimach"
	"github.com/mfeilner/unimach/pkg/domain"
	"github.com/mfeilner/unimach/pkg/encoding"
)

func TestBuilder_EraserFlow(t *testing.T) {
	// 1. Build the table using the DSL
	b := New()

	b.From(1, domain.SymbolZero).Right(1, domain.SymbolBlank)
	b.From(1, domain.SymbolBlank).Right(2, domain.SymbolBlank)

	// 2. Compile to a program
	program, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if program.Len() != 2 {
		t.Fatalf("Expected 2 rules, got %d", program.Len())
	}
	if program.HaltingState() != 2 {
		t.Errorf("Expected halting state q2, got %s", program.HaltingState())
	}

	first := program.Transitions[0]
	if first.From != 1 || first.Read != domain.SymbolZero {
		t.Errorf("Expected rule 1 to fire on (q1, 0), got (%s, %s)", first.From, first.Read)
	}
	if first.To != 1 || first.Write != domain.SymbolBlank || first.Move != domain.Right {
		t.Errorf("Expected rule 1 to produce (q1, _, R), got (%s, %s, %s)", first.To, first.Write, first.Move)
	}

	// 3. Run the machine end to end
	machine, err := b.Machine(unimach.WithWord("000"), unimach.WithTapeSize(16))
	if err != nil {
		t.Fatalf("Machine() failed: %v", err)
	}

	result, err := machine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if result.Steps != 4 {
		t.Errorf("Expected 4 steps, got %d", result.Steps)
	}
	if result.FinalState != 2 {
		t.Errorf("Expected final state q2, got %s", result.FinalState)
	}
	if result.Value != 0 {
		t.Errorf("Expected 0 zeros left on the band, got %d", result.Value)
	}
}

func TestBuilder_CodeRoundTrip(t *testing.T) {
	b := New()

	b.From(1, domain.SymbolZero).Right(1, domain.SymbolZero)
	b.From(1, domain.SymbolOne).Left(2, domain.SymbolMarker)
	b.From(2, domain.SymbolMarker).To(3, domain.SymbolBlank, domain.Right)

	code, err := b.Code()
	if err != nil {
		t.Fatalf("Code() failed: %v", err)
	}

	decoded, err := encoding.DecodeProgram(code)
	if err != nil {
		t.Fatalf("DecodeProgram() failed: %v", err)
	}

	program, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if !reflect.DeepEqual(program.Transitions, decoded.Transitions) {
		t.Errorf("Decoded table differs from built table:\n built: %v\ndecoded: %v",
			program.Transitions, decoded.Transitions)
	}
}

func TestBuilder_Validation(t *testing.T) {
	// Empty table
	if _, err := New().Build(); err == nil {
		t.Error("Expected Build() to fail on an empty table")
	}

	// State q0 is not encodable
	b := New()
	b.From(0, domain.SymbolZero).Right(1, domain.SymbolZero)
	if _, err := b.Build(); err == nil || !strings.Contains(err.Error(), "q0") {
		t.Errorf("Expected a q0 error, got %v", err)
	}

	// Unknown symbol
	b = New()
	b.From(1, domain.Symbol("z")).Right(1, domain.SymbolZero)
	_, err := b.Build()
	if err == nil || !strings.Contains(err.Error(), "unknown symbol") {
		t.Errorf("Expected an unknown symbol error, got %v", err)
	}
	if !strings.Contains(err.Error(), "rule 1") {
		t.Errorf("Expected the error to name the offending rule, got %v", err)
	}

	// Unknown direction
	b = New()
	b.From(1, domain.SymbolZero).To(1, domain.SymbolZero, domain.Direction("U"))
	if _, err := b.Build(); err == nil || !strings.Contains(err.Error(), "unknown move") {
		t.Errorf("Expected an unknown move error, got %v", err)
	}
}
