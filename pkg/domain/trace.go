package domain

// TraceMode selects how much of a run is reported.
type TraceMode string

const (
	TraceNone    TraceMode = "none"     // No step reporting
	TraceStep    TraceMode = "step"     // Every step
	TraceEndStep TraceMode = "end-step" // Only the halting step
)

// ParseTraceMode converts a user-supplied string into a TraceMode.
func ParseTraceMode(s string) (TraceMode, error) {
	switch TraceMode(s) {
	case TraceNone, TraceStep, TraceEndStep:
		return TraceMode(s), nil
	case "":
		return TraceNone, nil
	}
	return "", &ConfigError{Reason: "unknown trace mode " + s + " (want none, step or end-step)"}
}

// StepRecord is a snapshot of the machine right after one step: the
// transition has been applied and the head has moved.
type StepRecord struct {
	// Step is the 1-based index of the step.
	Step int `json:"step"`

	// State is the machine state after the transition.
	State State `json:"state"`

	// Head is the head position after the move.
	Head int `json:"head"`

	// Tape is a full snapshot of the band.
	Tape []Symbol `json:"tape"`
}
