package runtime

import (
	"context"
	"iter"

	"github.com/mfeilner/unimach/pkg/domain"
)

// Trace returns the run as a lazy sequence of step records. The tape is
// cloned up front, so ranging over the sequence twice replays the machine
// from the same starting band. Iteration ends with the halting step; an
// error surfaces as the final pair. The engine itself never prints.
func (e *Engine) Trace(ctx context.Context, tape *domain.Tape) iter.Seq2[domain.StepRecord, error] {
	initial := tape.Clone()
	return func(yield func(domain.StepRecord, error) bool) {
		ex := newExecution(initial.Clone())
		for ex.status == StatusRunning {
			if err := ctx.Err(); err != nil {
				yield(domain.StepRecord{}, err)
				return
			}
			if e.stepLimit > 0 && ex.steps >= e.stepLimit {
				yield(domain.StepRecord{}, &domain.StepLimitError{Limit: e.stepLimit})
				return
			}
			if err := e.advance(ctx, ex); err != nil {
				yield(domain.StepRecord{}, err)
				return
			}
			record := domain.StepRecord{
				Step:  ex.steps,
				State: ex.state,
				Head:  ex.tape.Head(),
				Tape:  ex.tape.Cells(),
			}
			if !yield(record, nil) {
				return
			}
		}
	}
}
