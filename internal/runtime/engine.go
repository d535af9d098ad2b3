// Package runtime drives decoded programs against a tape.
package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mfeilner/unimach/internal/logging"
	"github.com/mfeilner/unimach/pkg/domain"
)

// Status reports whether a machine is still running.
type Status string

const (
	StatusRunning Status = "running"
	StatusHalted  Status = "halted"
)

// Engine executes one program. It keeps no state between runs: every Run
// or Trace call starts fresh from the tape it is given.
type Engine struct {
	program   domain.Program
	halting   domain.State
	strict    bool
	stepLimit int
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
}

// Option configures the Engine.
type Option func(*Engine)

// WithStrictMatching makes an unmatched (state, symbol) pair fail the run.
// By default the engine falls back to the first rule of the table instead.
func WithStrictMatching() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// WithStepLimit caps the number of steps of one run. Zero means no cap.
func WithStepLimit(n int) Option {
	return func(e *Engine) {
		e.stepLimit = n
	}
}

// WithLogger configures a logger for step-level debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine for the given program. The program needs at
// least one rule: the halting state is defined by the last one.
func NewEngine(program domain.Program, opts ...Option) (*Engine, error) {
	if program.Len() == 0 {
		return nil, &domain.ConfigError{Reason: "program has no transitions"}
	}
	e := &Engine{
		program: program,
		halting: program.HaltingState(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run drives the machine until it halts and extracts the result. The
// given tape is consumed and carries the final band afterwards.
func (e *Engine) Run(ctx context.Context, tape *domain.Tape) (*domain.Result, error) {
	ex := newExecution(tape)
	for ex.status == StatusRunning {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.stepLimit > 0 && ex.steps >= e.stepLimit {
			return nil, &domain.StepLimitError{Limit: e.stepLimit}
		}
		if err := e.advance(ctx, ex); err != nil {
			return nil, err
		}
	}

	result := &domain.Result{
		Value:      domain.ReadResult(tape.Cells()),
		Steps:      ex.steps,
		FinalState: ex.state,
		Head:       tape.Head(),
		Tape:       tape.Cells(),
	}
	if e.hooks.OnHalt != nil {
		e.hooks.OnHalt(ctx, &domain.HaltEvent{Steps: ex.steps, State: ex.state, Result: result.Value})
	}
	e.logger.Debug("machine halted", "steps", ex.steps, "state", ex.state.String(), "result", result.Value)
	return result, nil
}

// execution is the mutable state of one run.
type execution struct {
	tape   *domain.Tape
	state  domain.State
	steps  int
	status Status
}

func newExecution(tape *domain.Tape) *execution {
	return &execution{
		tape:   tape,
		state:  domain.InitialState,
		status: StatusRunning,
	}
}

// advance applies exactly one transition: read, match, write, switch
// state, move. The halt check happens AFTER the move, so a machine always
// performs at least one step. Matching scans the whole table and takes
// the last hit.
func (e *Engine) advance(ctx context.Context, ex *execution) error {
	ex.steps++
	read := ex.tape.Read()

	idx := e.program.Match(ex.state, read)
	if idx < 0 {
		if e.strict {
			return &domain.UndefinedTransitionError{State: ex.state, Symbol: read, Step: ex.steps}
		}
		// Lenient mode: an unmatched pair applies the first rule.
		e.logger.Debug("no transition matched, falling back",
			"state", ex.state.String(), "symbol", read, "step", ex.steps)
		if e.hooks.OnFallback != nil {
			e.hooks.OnFallback(ctx, &domain.FallbackEvent{Step: ex.steps, State: ex.state, Symbol: read})
		}
		idx = 0
	}

	t := e.program.Transitions[idx]
	ex.tape.Write(t.Write)
	ex.state = t.To
	if err := ex.tape.Move(t.Move); err != nil {
		return fmt.Errorf("step %d: %w", ex.steps, err)
	}

	if e.hooks.OnStep != nil {
		e.hooks.OnStep(ctx, &domain.StepEvent{
			Step:  ex.steps,
			State: ex.state,
			Read:  read,
			Wrote: t.Write,
			Moved: t.Move,
			Head:  ex.tape.Head(),
		})
	}

	if ex.state == e.halting {
		ex.status = StatusHalted
	}
	return nil
}
