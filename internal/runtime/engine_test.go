package runtime_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mfeilner/unimach/internal/runtime"
	"github.com/mfeilner/unimach/pkg/domain"
	"github.com/mfeilner/unimach/pkg/encoding"
	"github.com/mfeilner/unimach/pkg/machines"
)

func mustProgram(t *testing.T, code string) domain.Program {
	t.Helper()
	p, err := encoding.DecodeProgram(code)
	if err != nil {
		t.Fatalf("DecodeProgram failed: %v", err)
	}
	return p
}

func mustTape(t *testing.T, word string, size int) *domain.Tape {
	t.Helper()
	symbols, err := encoding.ParseWord(word)
	if err != nil {
		t.Fatalf("ParseWord failed: %v", err)
	}
	tape, err := domain.NewTape(symbols, size)
	if err != nil {
		t.Fatalf("NewTape failed: %v", err)
	}
	return tape
}

func TestEngineRunsAddition(t *testing.T) {
	engine, err := runtime.NewEngine(mustProgram(t, machines.Addition))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	tape := mustTape(t, encoding.OperandWord(2, 4), machines.DefaultTapeSize)
	result, err := engine.Run(context.Background(), tape)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Value != 6 {
		t.Errorf("Value = %d, want 6", result.Value)
	}
	if result.Steps != 115 {
		t.Errorf("Steps = %d, want 115", result.Steps)
	}
	if result.FinalState != 7 {
		t.Errorf("FinalState = %s, want q7", result.FinalState)
	}
	if result.Head != 101 {
		t.Errorf("Head = %d, want 101", result.Head)
	}

	// The answer sits as one block of zeros right of the midpoint.
	for i := 100; i <= 105; i++ {
		if result.Tape[i] != domain.SymbolZero {
			t.Errorf("cell %d = %s, want 0", i, result.Tape[i])
		}
	}
}

func TestEngineRunsMultiplication(t *testing.T) {
	engine, err := runtime.NewEngine(mustProgram(t, machines.Multiplication))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	tape := mustTape(t, encoding.OperandWord(10, 8), machines.DefaultTapeSize)
	result, err := engine.Run(context.Background(), tape)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Value != 80 {
		t.Errorf("Value = %d, want 80", result.Value)
	}
	if result.FinalState != 8 {
		t.Errorf("FinalState = %s, want q8", result.FinalState)
	}
	if result.Steps <= 0 {
		t.Errorf("Steps = %d, want > 0", result.Steps)
	}
}

func TestEngineIsDeterministic(t *testing.T) {
	engine, _ := runtime.NewEngine(mustProgram(t, machines.Addition))

	first, err := engine.Run(context.Background(), mustTape(t, "00100001", 200))
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	second, err := engine.Run(context.Background(), mustTape(t, "00100001", 200))
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	if first.Steps != second.Steps || first.Value != second.Value || first.Head != second.Head {
		t.Errorf("runs diverged: %+v vs %+v", first, second)
	}
	for i := range first.Tape {
		if first.Tape[i] != second.Tape[i] {
			t.Fatalf("tapes diverge at cell %d", i)
		}
	}
}

// A machine whose first rule leads straight into the halting state still
// performs that one step: the halt check happens after the move.
func TestEngineAlwaysStepsOnce(t *testing.T) {
	// Single rule (q1, 0) -> (q1, 0, R); halting state is q1 itself.
	engine, err := runtime.NewEngine(mustProgram(t, "0101010100"))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	result, err := engine.Run(context.Background(), mustTape(t, "0", 10))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Steps != 1 {
		t.Errorf("Steps = %d, want 1", result.Steps)
	}
	if result.FinalState != 1 {
		t.Errorf("FinalState = %s, want q1", result.FinalState)
	}
}

func TestEngineFallbackBehavior(t *testing.T) {
	// Single rule (q2, 1) -> (q3, 1, R). Reading 0 in q1 matches nothing.
	code := "001001000100100"

	t.Run("Default Falls Back To First Rule", func(t *testing.T) {
		var fallbacks []*domain.FallbackEvent
		engine, err := runtime.NewEngine(mustProgram(t, code),
			runtime.WithLifecycleHooks(domain.LifecycleHooks{
				OnFallback: func(_ context.Context, e *domain.FallbackEvent) {
					fallbacks = append(fallbacks, e)
				},
			}))
		if err != nil {
			t.Fatalf("NewEngine failed: %v", err)
		}

		result, err := engine.Run(context.Background(), mustTape(t, "0", 10))
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if result.Steps != 1 {
			t.Errorf("Steps = %d, want 1", result.Steps)
		}
		if len(fallbacks) != 1 {
			t.Fatalf("fallback events = %d, want 1", len(fallbacks))
		}
		if fallbacks[0].State != 1 || fallbacks[0].Symbol != domain.SymbolZero || fallbacks[0].Step != 1 {
			t.Errorf("fallback event = %+v", fallbacks[0])
		}
	})

	t.Run("Strict Mode Fails", func(t *testing.T) {
		engine, err := runtime.NewEngine(mustProgram(t, code), runtime.WithStrictMatching())
		if err != nil {
			t.Fatalf("NewEngine failed: %v", err)
		}

		_, err = engine.Run(context.Background(), mustTape(t, "0", 10))
		var undefErr *domain.UndefinedTransitionError
		if !errors.As(err, &undefErr) {
			t.Fatalf("Run error = %v, want *UndefinedTransitionError", err)
		}
		if undefErr.State != 1 || undefErr.Symbol != domain.SymbolZero || undefErr.Step != 1 {
			t.Errorf("UndefinedTransitionError = %+v", undefErr)
		}
	})
}

func TestEngineReportsTapeBounds(t *testing.T) {
	// (q1, _) -> (q1, _, L) runs the head off the left edge; the second
	// rule only provides an unreachable halting state.
	code := "0100010100010" + "11" + "001010010100"
	engine, err := runtime.NewEngine(mustProgram(t, code))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	_, err = engine.Run(context.Background(), mustTape(t, "", 4))
	var boundsErr *domain.TapeBoundsError
	if !errors.As(err, &boundsErr) {
		t.Fatalf("Run error = %v, want *TapeBoundsError", err)
	}
	if boundsErr.Direction != domain.Left || boundsErr.Index != -1 {
		t.Errorf("TapeBoundsError = %+v", boundsErr)
	}
	// The wrapping records which step went out of bounds.
	if !strings.Contains(err.Error(), "step 3:") {
		t.Errorf("error = %q, want step 3 prefix", err)
	}
}

func TestEngineStepLimit(t *testing.T) {
	program := mustProgram(t, machines.Addition)

	t.Run("Limit Exceeded", func(t *testing.T) {
		engine, _ := runtime.NewEngine(program, runtime.WithStepLimit(10))
		_, err := engine.Run(context.Background(), mustTape(t, "00100001", 200))
		var limitErr *domain.StepLimitError
		if !errors.As(err, &limitErr) {
			t.Fatalf("Run error = %v, want *StepLimitError", err)
		}
		if limitErr.Limit != 10 {
			t.Errorf("Limit = %d, want 10", limitErr.Limit)
		}
	})

	t.Run("Halting Exactly At Limit Succeeds", func(t *testing.T) {
		engine, _ := runtime.NewEngine(program, runtime.WithStepLimit(115))
		result, err := engine.Run(context.Background(), mustTape(t, "00100001", 200))
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if result.Steps != 115 {
			t.Errorf("Steps = %d, want 115", result.Steps)
		}
	})
}

func TestEngineHonorsContext(t *testing.T) {
	engine, _ := runtime.NewEngine(mustProgram(t, machines.Addition))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx, mustTape(t, "00100001", 200))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestEngineLifecycleHooks(t *testing.T) {
	var steps []*domain.StepEvent
	var halts []*domain.HaltEvent

	engine, err := runtime.NewEngine(mustProgram(t, machines.Addition),
		runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnStep: func(_ context.Context, e *domain.StepEvent) {
				steps = append(steps, e)
			},
			OnHalt: func(_ context.Context, e *domain.HaltEvent) {
				halts = append(halts, e)
			},
		}))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	if _, err := engine.Run(context.Background(), mustTape(t, "00100001", 200)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(steps) != 115 {
		t.Fatalf("step events = %d, want 115", len(steps))
	}
	first := steps[0]
	if first.Step != 1 || first.State != 1 || first.Head != 93 {
		t.Errorf("first step event = %+v, want step 1 in q1 at head 93", first)
	}
	if first.Read != domain.SymbolZero || first.Wrote != domain.SymbolZero || first.Moved != domain.Right {
		t.Errorf("first step event rw = %+v", first)
	}

	if len(halts) != 1 {
		t.Fatalf("halt events = %d, want 1", len(halts))
	}
	if halts[0].Steps != 115 || halts[0].State != 7 || halts[0].Result != 6 {
		t.Errorf("halt event = %+v", halts[0])
	}
}

func TestNewEngineRejectsEmptyProgram(t *testing.T) {
	_, err := runtime.NewEngine(domain.Program{})
	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("NewEngine error = %v, want *ConfigError", err)
	}
}
