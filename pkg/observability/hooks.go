package observability

import (
	"context"
	"log/slog"

	"github.com/mfeilner/unimach/pkg/domain"
)

// Combine merges multiple hook sets into one. Every event fans out to all
// sets in registration order; nil callbacks are skipped.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			for _, h := range hooks {
				if h.OnStep != nil {
					h.OnStep(ctx, e)
				}
			}
		},
		OnFallback: func(ctx context.Context, e *domain.FallbackEvent) {
			for _, h := range hooks {
				if h.OnFallback != nil {
					h.OnFallback(ctx, e)
				}
			}
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			for _, h := range hooks {
				if h.OnHalt != nil {
					h.OnHalt(ctx, e)
				}
			}
		},
	}
}

// LogHooks logs every engine event on the given logger at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Step", "step", e.Step, "state", e.State.String(),
				"read", e.Read, "wrote", e.Wrote, "moved", e.Moved, "head", e.Head)
		},
		OnFallback: func(ctx context.Context, e *domain.FallbackEvent) {
			logger.Debug("Fallback", "step", e.Step, "state", e.State.String(), "symbol", e.Symbol)
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			logger.Debug("Halt", "steps", e.Steps, "state", e.State.String(), "result", e.Result)
		},
	}
}
