package observability

import (
	"context"
	"sync"

	"github.com/mfeilner/unimach/pkg/domain"
)

// Trail records engine events for later inspection. The step window is
// bounded; the visited-state trajectory is kept in full. Safe for
// concurrent use.
type Trail struct {
	mu        sync.Mutex
	limit     int
	steps     []domain.StepEvent
	visited   []domain.State
	seen      map[domain.State]bool
	fallbacks int
	halt      *domain.HaltEvent
}

// NewTrail creates a trail keeping at most limit step events. A limit of
// zero or less keeps every step.
func NewTrail(limit int) *Trail {
	return &Trail{
		limit: limit,
		seen:  make(map[domain.State]bool),
	}
}

// Hooks returns lifecycle hooks that feed the trail.
func (t *Trail) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.limit > 0 && len(t.steps) == t.limit {
				t.steps = append(t.steps[1:], *e)
			} else {
				t.steps = append(t.steps, *e)
			}
			// Step events carry the state a step entered, so the initial
			// state shows up only here.
			if len(t.visited) == 0 {
				t.seen[domain.InitialState] = true
				t.visited = append(t.visited, domain.InitialState)
			}
			if !t.seen[e.State] {
				t.seen[e.State] = true
				t.visited = append(t.visited, e.State)
			}
		},
		OnFallback: func(ctx context.Context, e *domain.FallbackEvent) {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.fallbacks++
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			t.mu.Lock()
			defer t.mu.Unlock()
			halt := *e
			t.halt = &halt
		},
	}
}

// Steps returns a copy of the recorded step window.
func (t *Trail) Steps() []domain.StepEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	steps := make([]domain.StepEvent, len(t.steps))
	copy(steps, t.steps)
	return steps
}

// VisitedStates returns the initial state plus every state a step
// entered, in first-visit order. On a halted run the last entry is the
// halting state.
func (t *Trail) VisitedStates() []domain.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	visited := make([]domain.State, len(t.visited))
	copy(visited, t.visited)
	return visited
}

// Fallbacks returns how many steps fell back to the first rule.
func (t *Trail) Fallbacks() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fallbacks
}

// Halt returns the halt event of the run, if it halted.
func (t *Trail) Halt() (domain.HaltEvent, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.halt == nil {
		return domain.HaltEvent{}, false
	}
	return *t.halt, true
}
