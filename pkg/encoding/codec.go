package encoding

import (
	"fmt"

	"github.com/mfeilner/unimach/pkg/domain"
)

// SymbolOf maps a field run length to its tape symbol: 1 is Zero, 2 is
// One, 3 is Blank, 4 is Marker.
func SymbolOf(runLength int) (domain.Symbol, error) {
	if runLength < 1 || runLength > len(domain.Symbols) {
		return "", &domain.DecodeError{
			Reason:    fmt.Sprintf("symbol run length %d has no symbol", runLength),
			RunLength: runLength,
		}
	}
	return domain.Symbols[runLength-1], nil
}

// DirectionOf maps a field run length to a head movement: 1 is Left,
// 2 is Right.
func DirectionOf(runLength int) (domain.Direction, error) {
	switch runLength {
	case 1:
		return domain.Left, nil
	case 2:
		return domain.Right, nil
	}
	return "", &domain.DecodeError{
		Reason:    fmt.Sprintf("direction run length %d has no direction", runLength),
		RunLength: runLength,
	}
}

// SymbolRun is the inverse of SymbolOf. It returns 0 for symbols outside
// the alphabet.
func SymbolRun(s domain.Symbol) int {
	for i, known := range domain.Symbols {
		if known == s {
			return i + 1
		}
	}
	return 0
}

// DirectionRun is the inverse of DirectionOf. It returns 0 for unknown
// directions.
func DirectionRun(d domain.Direction) int {
	switch d {
	case domain.Left:
		return 1
	case domain.Right:
		return 2
	}
	return 0
}
