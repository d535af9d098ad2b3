package dsl

import (
	"fmt"

	"github.com/mfeilner/unimach"
	"github.com/mfeilner/unimach/pkg/domain"
	"github.com/mfeilner/unimach/pkg/encoding"
)

// Builder assembles a transition table rule by rule.
type Builder struct {
	transitions []domain.Transition
}

// New creates an empty table builder.
func New() *Builder {
	return &Builder{}
}

// From starts a new rule that fires when the head reads the given symbol
// in the given state. Rules keep their insertion order: lookup takes the
// last matching rule, and the last rule of the table defines the halting
// state.
func (b *Builder) From(state domain.State, read domain.Symbol) *RuleBuilder {
	return &RuleBuilder{
		builder: b,
		from:    state,
		read:    read,
	}
}

// Build compiles the table into a program.
func (b *Builder) Build() (domain.Program, error) {
	if len(b.transitions) == 0 {
		return domain.Program{}, &domain.ConfigError{Reason: "transition table is empty"}
	}
	for i, t := range b.transitions {
		if err := checkRule(t); err != nil {
			return domain.Program{}, fmt.Errorf("rule %d: %w", i+1, err)
		}
	}

	transitions := make([]domain.Transition, len(b.transitions))
	copy(transitions, b.transitions)
	return domain.Program{Transitions: transitions}, nil
}

// Code compiles the table and returns its binary encoding.
func (b *Builder) Code() (string, error) {
	program, err := b.Build()
	if err != nil {
		return "", err
	}
	return encoding.EncodeProgram(program)
}

// Machine compiles the table into an executable machine.
func (b *Builder) Machine(opts ...unimach.Option) (*unimach.Machine, error) {
	code, err := b.Code()
	if err != nil {
		return nil, err
	}
	return unimach.New(code, opts...)
}

func checkRule(t domain.Transition) error {
	if t.From < 1 || t.To < 1 {
		return &domain.ConfigError{Reason: "cannot use state q0"}
	}
	if !t.Read.Valid() {
		return &domain.ConfigError{Reason: fmt.Sprintf("unknown symbol %q", string(t.Read))}
	}
	if !t.Write.Valid() {
		return &domain.ConfigError{Reason: fmt.Sprintf("unknown symbol %q", string(t.Write))}
	}
	if !t.Move.Valid() {
		return &domain.ConfigError{Reason: fmt.Sprintf("unknown move %q", string(t.Move))}
	}
	return nil
}
