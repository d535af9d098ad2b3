// Package term renders machine runs for the terminal.
package term

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/mfeilner/unimach/pkg/domain"
)

// Renderer formats tapes, step records and results. Styling degrades to
// plain text when the profile does not support color.
type Renderer struct {
	profile termenv.Profile
}

// NewRenderer detects the color capabilities of the terminal. Pass
// noColor to force plain output.
func NewRenderer(noColor bool) *Renderer {
	profile := termenv.ColorProfile()
	if noColor {
		profile = termenv.Ascii
	}
	return &Renderer{profile: profile}
}

// Tape renders the band as one line of symbols. The head cell is wrapped
// in brackets so it stays visible without color.
func (r *Renderer) Tape(cells []domain.Symbol, head int) string {
	var sb strings.Builder
	for i, cell := range cells {
		if i == head {
			sb.WriteString(r.head("[" + string(cell) + "]"))
			continue
		}
		sb.WriteString(string(cell))
	}
	return sb.String()
}

// StepRecord renders one trace line: step number, state, head position
// and the full band.
func (r *Renderer) StepRecord(record domain.StepRecord) string {
	return fmt.Sprintf("%s %4d  %s  head %3d  %s",
		r.faint("step"), record.Step, r.accent(record.State.String()), record.Head,
		r.Tape(record.Tape, record.Head))
}

// Result renders the summary of a finished run.
func (r *Renderer) Result(result *domain.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d\n", r.faint("result"), result.Value)
	fmt.Fprintf(&sb, "%s %d\n", r.faint("steps "), result.Steps)
	fmt.Fprintf(&sb, "%s %s\n", r.faint("state "), r.accent(result.FinalState.String()))
	fmt.Fprintf(&sb, "%s %d\n", r.faint("head  "), result.Head)
	fmt.Fprintf(&sb, "%s %s\n", r.faint("tape  "), r.Tape(result.Tape, result.Head))
	return sb.String()
}

// TransitionTable renders the decoded program as numbered rules.
func (r *Renderer) TransitionTable(program domain.Program) string {
	var sb strings.Builder
	for i, t := range program.Transitions {
		fmt.Fprintf(&sb, "%s %s\n", r.faint(fmt.Sprintf("%3d.", i+1)), t)
	}
	fmt.Fprintf(&sb, "%s %s\n", r.faint("halts in"), r.accent(program.HaltingState().String()))
	return sb.String()
}

func (r *Renderer) head(s string) string {
	return r.profile.String(s).Foreground(r.profile.Color("#fbbf24")).Bold().String()
}

func (r *Renderer) accent(s string) string {
	return r.profile.String(s).Foreground(r.profile.Color("#818cf8")).String()
}

func (r *Renderer) faint(s string) string {
	return r.profile.String(s).Faint().String()
}
