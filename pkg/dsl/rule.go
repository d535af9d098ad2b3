package dsl

import "github.com/mfeilner/unimach/pkg/domain"

// RuleBuilder completes a single rule started with Builder.From.
type RuleBuilder struct {
	builder *Builder
	from    domain.State
	read    domain.Symbol
}

// To finishes the rule: switch to the target state, write the symbol and
// move the head in the given direction.
func (r *RuleBuilder) To(state domain.State, write domain.Symbol, move domain.Direction) *Builder {
	r.builder.transitions = append(r.builder.transitions, domain.Transition{
		From:  r.from,
		Read:  r.read,
		To:    state,
		Write: write,
		Move:  move,
	})
	return r.builder
}

// Left finishes the rule moving the head left.
func (r *RuleBuilder) Left(state domain.State, write domain.Symbol) *Builder {
	return r.To(state, write, domain.Left)
}

// Right finishes the rule moving the head right.
func (r *RuleBuilder) Right(state domain.State, write domain.Symbol) *Builder {
	return r.To(state, write, domain.Right)
}
