// Package graph exports transition tables as Mermaid diagrams.
package graph

import (
	"fmt"
	"strings"

	"github.com/mfeilner/unimach/pkg/domain"
)

// RunOverlay contains dynamic run data to visualize on the graph.
type RunOverlay struct {
	VisitedStates []domain.State
	CurrentState  domain.State
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a
// transition table. It applies semantic styling:
// - Initial state: ((Circle))
// - Halting state: [[Subroutine]]
// - Default: [Rectangle]
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(program domain.Program, overlay *RunOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	halting := program.HaltingState()

	for _, state := range statesOf(program) {
		// Node shape based on the state's role
		opener, closer := "[", "]"
		switch state {
		case domain.InitialState:
			opener, closer = "((", "))" // Circle
		case halting:
			opener, closer = "[[", "]]" // Subroutine
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", state, opener, state, closer))
	}

	// Transitions, labeled "read / write, move"
	for _, t := range program.Transitions {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s / %s, %s\" --> %s\n",
			t.From, t.Read, t.Write, t.Move, t.To))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		// Deduplicate visited states
		visitedSet := make(map[domain.State]bool)
		for _, state := range overlay.VisitedStates {
			if !visitedSet[state] {
				visitedSet[state] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", state))
			}
		}

		if overlay.CurrentState != 0 {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", overlay.CurrentState))
		}
	}

	return sb.String()
}

// statesOf lists the states of the table in first-use order.
func statesOf(program domain.Program) []domain.State {
	seen := make(map[domain.State]bool)
	var states []domain.State
	add := func(s domain.State) {
		if !seen[s] {
			seen[s] = true
			states = append(states, s)
		}
	}
	for _, t := range program.Transitions {
		add(t.From)
		add(t.To)
	}
	return states
}
