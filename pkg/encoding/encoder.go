package encoding

import (
	"strings"

	"github.com/mfeilner/unimach/pkg/domain"
)

// EncodeTransition renders one rule in the unary code format. States must
// be at least 1: a state 0 would produce an empty field and change the
// meaning of the surrounding separators.
func EncodeTransition(t domain.Transition) (string, error) {
	if t.From < 1 || t.To < 1 {
		return "", &domain.ConfigError{Reason: "cannot encode state q0"}
	}
	readRun := SymbolRun(t.Read)
	if readRun == 0 {
		return "", &domain.ConfigError{Reason: "cannot encode symbol " + string(t.Read)}
	}
	writeRun := SymbolRun(t.Write)
	if writeRun == 0 {
		return "", &domain.ConfigError{Reason: "cannot encode symbol " + string(t.Write)}
	}
	moveRun := DirectionRun(t.Move)
	if moveRun == 0 {
		return "", &domain.ConfigError{Reason: "cannot encode direction " + string(t.Move)}
	}

	fields := []string{
		strings.Repeat("0", int(t.From)),
		strings.Repeat("0", readRun),
		strings.Repeat("0", int(t.To)),
		strings.Repeat("0", writeRun),
		strings.Repeat("0", moveRun),
	}
	return strings.Join(fields, fieldSep), nil
}

// EncodeProgram renders a whole transition table. It is the inverse of
// DecodeProgram for tables with states >= 1 and valid symbols.
func EncodeProgram(p domain.Program) (string, error) {
	if p.Len() == 0 {
		return "", &domain.ConfigError{Reason: "program has no transitions"}
	}
	records := make([]string, 0, p.Len())
	for _, t := range p.Transitions {
		record, err := EncodeTransition(t)
		if err != nil {
			return "", err
		}
		records = append(records, record)
	}
	return strings.Join(records, recordSep), nil
}

// EncodeComposite joins a machine code and an input word into the
// composite "machine 111 word" form.
func EncodeComposite(machine, word string) string {
	return machine + machineSep + word
}
