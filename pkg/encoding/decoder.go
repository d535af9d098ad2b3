package encoding

import (
	"fmt"
	"strings"

	"github.com/mfeilner/unimach/pkg/domain"
)

const (
	fieldSep   = "1"
	recordSep  = "11"
	machineSep = "111"
)

// fieldsPerRecord is fixed by the format: from, read, to, write, move.
const fieldsPerRecord = 5

// DecodeProgram parses a machine code string into its transition table.
// Rules keep their input order; the halting state is the target of the
// last rule.
func DecodeProgram(code string) (domain.Program, error) {
	if code == "" {
		return domain.Program{}, &domain.DecodeError{Reason: "machine code is empty"}
	}
	records := strings.Split(code, recordSep)
	transitions := make([]domain.Transition, 0, len(records))
	for i, record := range records {
		t, err := decodeRecord(i+1, record)
		if err != nil {
			return domain.Program{}, err
		}
		transitions = append(transitions, t)
	}
	return domain.Program{Transitions: transitions}, nil
}

func decodeRecord(nr int, record string) (domain.Transition, error) {
	fields := strings.Split(record, fieldSep)
	if len(fields) != fieldsPerRecord {
		return domain.Transition{}, &domain.DecodeError{
			Reason: fmt.Sprintf("record has %d fields, want %d", len(fields), fieldsPerRecord),
			Record: nr,
		}
	}

	read, err := SymbolOf(len(fields[1]))
	if err != nil {
		return domain.Transition{}, scope(err, nr, 2)
	}
	write, err := SymbolOf(len(fields[3]))
	if err != nil {
		return domain.Transition{}, scope(err, nr, 4)
	}
	move, err := DirectionOf(len(fields[4]))
	if err != nil {
		return domain.Transition{}, scope(err, nr, 5)
	}

	return domain.Transition{
		From:  domain.State(len(fields[0])),
		Read:  read,
		To:    domain.State(len(fields[2])),
		Write: write,
		Move:  move,
	}, nil
}

// scope attaches record and field positions to a codec error.
func scope(err error, record, field int) error {
	if decErr, ok := err.(*domain.DecodeError); ok {
		decErr.Record = record
		decErr.Field = field
	}
	return err
}

// SplitComposite cuts a composite code of the form "machine 111 word" at
// the FIRST occurrence of the machine separator. ok is false when the
// code carries no input word.
func SplitComposite(code string) (machine, word string, ok bool) {
	return strings.Cut(code, machineSep)
}
