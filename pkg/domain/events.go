package domain

import "context"

// StepEvent describes one applied transition.
type StepEvent struct {
	Step  int       `json:"step"`
	State State     `json:"state"` // state after the transition
	Read  Symbol    `json:"read"`
	Wrote Symbol    `json:"wrote"`
	Moved Direction `json:"moved"`
	Head  int       `json:"head"` // head after the move
}

// FallbackEvent fires when no rule matched and the engine fell back to
// the first rule of the table.
type FallbackEvent struct {
	Step   int    `json:"step"`
	State  State  `json:"state"`
	Symbol Symbol `json:"symbol"`
}

// HaltEvent fires once, when the machine reaches its halting state.
type HaltEvent struct {
	Steps  int   `json:"steps"`
	State  State `json:"state"`
	Result int   `json:"result"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStep     func(context.Context, *StepEvent)
	OnFallback func(context.Context, *FallbackEvent)
	OnHalt     func(context.Context, *HaltEvent)
}
