package domain

import "strings"

// Tape is a fixed-size band of cells with a single read/write head.
// It never grows: a move past either edge is an error.
type Tape struct {
	cells []Symbol
	head  int
}

// NewTape creates a tape of the given capacity, blank everywhere except
// for the initial content. The content is centered so that its last
// symbol sits just left of the midpoint (index capacity/2 - 1) and the
// head starts on the content's first symbol. The content may use at most
// half the capacity, leaving working room on both sides.
func NewTape(content []Symbol, capacity int) (*Tape, error) {
	if capacity <= 0 {
		return nil, &ConfigError{Reason: "tape capacity must be positive"}
	}
	if len(content) > capacity/2 {
		return nil, &ConfigError{Reason: "initial content exceeds half the tape capacity"}
	}
	cells := make([]Symbol, capacity)
	for i := range cells {
		cells[i] = SymbolBlank
	}
	start := capacity/2 - len(content)
	copy(cells[start:], content)
	return &Tape{cells: cells, head: start}, nil
}

// Read returns the symbol under the head.
func (t *Tape) Read() Symbol {
	return t.cells[t.head]
}

// Write replaces the symbol under the head.
func (t *Tape) Write(s Symbol) {
	t.cells[t.head] = s
}

// Move shifts the head one cell. Moving past either edge fails with a
// *TapeBoundsError and leaves the head where it was.
func (t *Tape) Move(d Direction) error {
	next := t.head
	switch d {
	case Left:
		next--
	case Right:
		next++
	default:
		return &ConfigError{Reason: "unknown direction " + string(d)}
	}
	if next < 0 || next >= len(t.cells) {
		return &TapeBoundsError{Direction: d, Index: next, Size: len(t.cells)}
	}
	t.head = next
	return nil
}

// Head returns the current head position.
func (t *Tape) Head() int {
	return t.head
}

// Size returns the tape capacity.
func (t *Tape) Size() int {
	return len(t.cells)
}

// Cells returns a copy of the whole band.
func (t *Tape) Cells() []Symbol {
	out := make([]Symbol, len(t.cells))
	copy(out, t.cells)
	return out
}

// Clone returns an independent copy of the tape, head included.
func (t *Tape) Clone() *Tape {
	return &Tape{cells: t.Cells(), head: t.head}
}

// String renders the band as "[0, 1, _, ...]".
func (t *Tape) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range t.cells {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(c))
	}
	b.WriteByte(']')
	return b.String()
}
