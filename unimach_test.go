package unimach_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mfeilner/unimach"
	"github.com/mfeilner/unimach/pkg/domain"
	"github.com/mfeilner/unimach/pkg/machines"
)

func TestFacade_Addition(t *testing.T) {
	m, err := unimach.New(machines.Addition, unimach.WithOperands(2, 4))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if m.Word() != "00100001" {
		t.Errorf("Expected word '00100001', got %q", m.Word())
	}

	result, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Value != 6 {
		t.Errorf("Expected 2+4=6, got %d", result.Value)
	}
	if result.Steps != 115 {
		t.Errorf("Expected 115 steps, got %d", result.Steps)
	}
	if result.FinalState != domain.State(7) {
		t.Errorf("Expected final state q7, got %s", result.FinalState)
	}
	if result.Head != 101 {
		t.Errorf("Expected final head 101, got %d", result.Head)
	}
}

func TestFacade_Multiplication(t *testing.T) {
	cases := []struct {
		a, b uint
		want int
	}{
		{3, 5, 15},
		{10, 8, 80},
	}
	for _, tc := range cases {
		m, err := unimach.New(machines.Multiplication, unimach.WithOperands(tc.a, tc.b))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		result, err := m.Run(context.Background())
		if err != nil {
			t.Fatalf("Run(%d, %d) failed: %v", tc.a, tc.b, err)
		}
		if result.Value != tc.want {
			t.Errorf("Expected %d*%d=%d, got %d", tc.a, tc.b, tc.want, result.Value)
		}
	}
}

func TestFacade_CompositeCode(t *testing.T) {
	m, err := unimach.New(machines.Addition + "111" + "000010001")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if m.Code() != machines.Addition {
		t.Error("Code should return the machine part without the embedded word")
	}
	if m.Word() != "000010001" {
		t.Errorf("Expected embedded word '000010001', got %q", m.Word())
	}

	result, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Value != 7 {
		t.Errorf("Expected 4+3=7, got %d", result.Value)
	}
}

func TestFacade_Reusable(t *testing.T) {
	m, err := unimach.New(machines.Addition, unimach.WithOperands(2, 4))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if first.Value != second.Value || first.Steps != second.Steps {
		t.Errorf("Runs diverged: (%d, %d steps) vs (%d, %d steps)",
			first.Value, first.Steps, second.Value, second.Steps)
	}

	// The run must not disturb the initial tape the machine hands out.
	tape := m.InitialTape()
	if tape.Head() != 92 {
		t.Errorf("Expected initial head 92, got %d", tape.Head())
	}
	if tape.Read() != domain.SymbolZero {
		t.Errorf("Expected '0' under the initial head, got %q", tape.Read())
	}
}

func TestFacade_TraceMatchesRun(t *testing.T) {
	m, err := unimach.New(machines.Addition, unimach.WithOperands(2, 4))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var last domain.StepRecord
	count := 0
	for record, err := range m.Trace(context.Background()) {
		if err != nil {
			t.Fatalf("Trace failed at step %d: %v", count, err)
		}
		count++
		last = record
	}
	if count != result.Steps {
		t.Errorf("Expected %d trace records, got %d", result.Steps, count)
	}
	if last.State != result.FinalState {
		t.Errorf("Expected final state %s, got %s", result.FinalState, last.State)
	}
	if last.Head != result.Head {
		t.Errorf("Expected final head %d, got %d", result.Head, last.Head)
	}

	// The iterator restarts from the initial tape on every range.
	for record, err := range m.Trace(context.Background()) {
		if err != nil {
			t.Fatalf("Second trace failed: %v", err)
		}
		if record.Step != 1 {
			t.Errorf("Expected restarted trace to begin at step 1, got %d", record.Step)
		}
		break
	}
}

func TestFacade_InputConflicts(t *testing.T) {
	cases := []struct {
		name string
		code string
		opts []unimach.Option
	}{
		{"word and operands", machines.Addition, []unimach.Option{
			unimach.WithWord("001"), unimach.WithOperands(1, 1),
		}},
		{"composite and word", machines.Addition + "111" + "001", []unimach.Option{
			unimach.WithWord("001"),
		}},
		{"symbols and operands", machines.Addition, []unimach.Option{
			unimach.WithSymbols([]domain.Symbol{domain.SymbolZero}), unimach.WithOperands(1, 1),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := unimach.New(tc.code, tc.opts...)
			var cfgErr *domain.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
		})
	}
}

func TestFacade_InvalidInputs(t *testing.T) {
	if _, err := unimach.New(""); err == nil {
		t.Error("Expected error for empty code")
	}
	if _, err := unimach.New("   "); err == nil {
		t.Error("Expected error for blank code")
	}

	var decodeErr *domain.DecodeError
	if _, err := unimach.New("01"); !errors.As(err, &decodeErr) {
		t.Errorf("Expected DecodeError for truncated code, got %v", err)
	}
	if _, err := unimach.New(machines.Addition, unimach.WithWord("02")); !errors.As(err, &decodeErr) {
		t.Errorf("Expected DecodeError for bad word, got %v", err)
	}

	var cfgErr *domain.ConfigError
	_, err := unimach.New(machines.Addition,
		unimach.WithSymbols([]domain.Symbol{domain.Symbol("y")}))
	if !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError for invalid symbol, got %v", err)
	}

	// Word longer than half the tape does not fit.
	_, err = unimach.New(machines.Addition,
		unimach.WithWord("001001"), unimach.WithTapeSize(10))
	if !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError for oversized word, got %v", err)
	}
}

func TestFacade_Defaults(t *testing.T) {
	m, err := unimach.New(machines.Addition)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if m.TapeSize() != machines.DefaultTapeSize {
		t.Errorf("Expected default tape size %d, got %d", machines.DefaultTapeSize, m.TapeSize())
	}
	if m.TraceMode() != domain.TraceNone {
		t.Errorf("Expected default trace mode %q, got %q", domain.TraceNone, m.TraceMode())
	}
	if m.Word() != "" {
		t.Errorf("Expected empty word, got %q", m.Word())
	}
	if got := m.Program().Len(); got != 14 {
		t.Errorf("Expected 14 decoded transitions, got %d", got)
	}
}

func TestFacade_WithSymbols(t *testing.T) {
	m, err := unimach.New(machines.Addition,
		unimach.WithSymbols([]domain.Symbol{domain.SymbolZero, domain.SymbolZero, domain.SymbolOne}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if m.Word() != "001" {
		t.Errorf("Expected word '001', got %q", m.Word())
	}
}

func TestFacade_StepLimit(t *testing.T) {
	m, err := unimach.New(machines.Addition,
		unimach.WithOperands(2, 4), unimach.WithStepLimit(10))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = m.Run(context.Background())
	var limitErr *domain.StepLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("Expected StepLimitError, got %v", err)
	}

	// The machine halts exactly at the limit, which still counts as success.
	m, err = unimach.New(machines.Addition,
		unimach.WithOperands(2, 4), unimach.WithStepLimit(115))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := m.Run(context.Background()); err != nil {
		t.Errorf("Expected run to finish within the limit, got %v", err)
	}
}

func TestFacade_StrictMatching(t *testing.T) {
	// The addition table has no rule for (q1, blank), which is what an
	// empty word presents first.
	m, err := unimach.New(machines.Addition, unimach.WithStrictMatching())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = m.Run(context.Background())
	var undefErr *domain.UndefinedTransitionError
	if !errors.As(err, &undefErr) {
		t.Fatalf("Expected UndefinedTransitionError, got %v", err)
	}
	if undefErr.Step != 1 {
		t.Errorf("Expected failure at step 1, got %d", undefErr.Step)
	}

	// Default mode falls back to the first rule instead, which keeps the
	// head walking right until it leaves the tape.
	m, err = unimach.New(machines.Addition)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = m.Run(context.Background())
	var boundsErr *domain.TapeBoundsError
	if !errors.As(err, &boundsErr) {
		t.Fatalf("Expected TapeBoundsError, got %v", err)
	}
}

func TestFacade_Name(t *testing.T) {
	m, err := unimach.New(machines.Addition, unimach.WithName("adder"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if m.Name != "adder" {
		t.Errorf("Expected name 'adder', got %q", m.Name)
	}
}
