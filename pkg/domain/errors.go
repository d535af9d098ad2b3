package domain

import (
	"errors"
	"fmt"
)

// ErrRunNotFound is returned when a run ID does not exist in the store.
var ErrRunNotFound = errors.New("run not found")

// DecodeError reports malformed machine code or input words. Record and
// Field are 1-based when set; zero means the error is not scoped to one.
type DecodeError struct {
	Reason    string
	Record    int
	Field     int
	RunLength int
}

func (e *DecodeError) Error() string {
	msg := "decode: " + e.Reason
	if e.Record > 0 {
		msg += fmt.Sprintf(" (record %d", e.Record)
		if e.Field > 0 {
			msg += fmt.Sprintf(", field %d", e.Field)
		}
		msg += ")"
	}
	return msg
}

// TapeBoundsError reports a head movement past either edge of the tape.
type TapeBoundsError struct {
	Direction Direction
	Index     int
	Size      int
}

func (e *TapeBoundsError) Error() string {
	return fmt.Sprintf("tape: head moved %s out of bounds to index %d (size %d)", e.Direction, e.Index, e.Size)
}

// ConfigError reports an invalid machine or tape configuration.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Reason
}

// UndefinedTransitionError reports a (state, symbol) pair with no rule in
// the table. It is only raised in strict matching mode; the default mode
// falls back to the first rule instead.
type UndefinedTransitionError struct {
	State  State
	Symbol Symbol
	Step   int
}

func (e *UndefinedTransitionError) Error() string {
	return fmt.Sprintf("no transition defined for (%s, %s) at step %d", e.State, e.Symbol, e.Step)
}

// StepLimitError reports that a run exceeded its configured step ceiling.
type StepLimitError struct {
	Limit int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step limit of %d exceeded", e.Limit)
}
