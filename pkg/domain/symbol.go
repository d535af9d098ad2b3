package domain

import "fmt"

// Symbol is a single tape cell value.
type Symbol string

const (
	SymbolZero   Symbol = "0" // Unary digit
	SymbolOne    Symbol = "1" // Separator between operands
	SymbolBlank  Symbol = "_" // Empty cell
	SymbolMarker Symbol = "X" // Scratch marker used by programs
)

// Symbols lists every valid tape symbol in encoding order.
// The position (1-based) is the run length that encodes the symbol.
var Symbols = []Symbol{SymbolZero, SymbolOne, SymbolBlank, SymbolMarker}

// Valid reports whether s is one of the four tape symbols.
func (s Symbol) Valid() bool {
	switch s {
	case SymbolZero, SymbolOne, SymbolBlank, SymbolMarker:
		return true
	}
	return false
}

// Direction is a head movement.
type Direction string

const (
	Left  Direction = "L"
	Right Direction = "R"
)

// Valid reports whether d is Left or Right.
func (d Direction) Valid() bool {
	return d == Left || d == Right
}

// State identifies a machine state. States are plain numbers; the
// interpreter attaches no meaning to them beyond equality.
type State uint

// InitialState is where every machine starts.
const InitialState State = 1

func (s State) String() string {
	return fmt.Sprintf("q%d", uint(s))
}
