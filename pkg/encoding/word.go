package encoding

import (
	"fmt"
	"strings"

	"github.com/mfeilner/unimach/pkg/domain"
)

// ParseWord converts an input word string into tape symbols. Every rune
// must be one of 0, 1, _ or X.
func ParseWord(word string) ([]domain.Symbol, error) {
	symbols := make([]domain.Symbol, 0, len(word))
	for i, r := range word {
		s := domain.Symbol(r)
		if !s.Valid() {
			return nil, &domain.DecodeError{
				Reason: fmt.Sprintf("invalid word symbol %q at position %d", r, i),
			}
		}
		symbols = append(symbols, s)
	}
	return symbols, nil
}

// EncodeWord renders tape symbols back into a word string.
func EncodeWord(symbols []domain.Symbol) string {
	var b strings.Builder
	b.Grow(len(symbols))
	for _, s := range symbols {
		b.WriteString(string(s))
	}
	return b.String()
}

// OperandWord builds the unary input word for natural-number operands:
// each operand n becomes n zeros followed by a one. OperandWord(2, 4)
// is "001" + "00001".
func OperandWord(operands ...uint) string {
	var b strings.Builder
	for _, n := range operands {
		b.WriteString(strings.Repeat("0", int(n)))
		b.WriteByte('1')
	}
	return b.String()
}
