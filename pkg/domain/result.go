package domain

// ReadResult extracts the unary result of a run: the number of Zero
// cells on the whole band. Programs are expected to erase their scratch
// work so that only the answer remains.
func ReadResult(cells []Symbol) int {
	count := 0
	for _, c := range cells {
		if c == SymbolZero {
			count++
		}
	}
	return count
}

// Result is the outcome of a completed run.
type Result struct {
	// Value is the unary reading of the final tape (count of Zero cells).
	Value int `json:"value"`

	// Steps is the number of transitions applied, including the halting one.
	Steps int `json:"steps"`

	// FinalState is the state the machine halted in.
	FinalState State `json:"final_state"`

	// Head is the head position after the last move.
	Head int `json:"head"`

	// Tape is a snapshot of the final band.
	Tape []Symbol `json:"tape"`
}
