// Package machines ships the reference transition tables the interpreter
// is demonstrated with. Both operate on unary numbers separated by ones
// and leave only the result as zeros on the tape.
package machines

// DefaultTapeSize is the band size the reference machines were written
// for. Both finish well within it for small operands.
const DefaultTapeSize = 200

// Addition adds two unary numbers: "nnn1mm1" runs to n+m zeros.
const Addition = "010101010011" +
	"01001001001011" +
	"0010100010010011" +
	"0001010001010011" +
	"000100100010010011" +
	"0001000100001010011" +
	"00001010000101011" +
	"000010001000010001011" +
	"00001001000001001011" +
	"0000010100010010011" +
	"000001001000001001011" +
	"0000010001000000100010011" +
	"0000001001000000100010011" +
	"000000101000000010100"

// Multiplication multiplies two unary numbers using X markers as
// scratch. "nnn1mm1" runs to n*m zeros.
const Multiplication = "010100100010011" +
	"010010000000100010011" +
	"00101001010011" +
	"00100100010010011" +
	"00010100001000010011" +
	"00010010000001001011" +
	"000010100001010011" +
	"00001001000010010011" +
	"00001000100000101011" +
	"0000010100000101011" +
	"000001001000001001011" +
	"000001000010001000010011" +
	"000000101000000101011" +
	"00000010010000001001011" +
	"000000100001000000101011" +
	"000000100010100010011" +
	"00000001010000000100010011" +
	"00000001001000000001000100"

// Machine is a named catalog entry.
type Machine struct {
	Name        string
	Code        string
	Description string
}

// Catalog lists the built-in machines in a stable order.
func Catalog() []Machine {
	return []Machine{
		{
			Name:        "add",
			Code:        Addition,
			Description: "adds two unary numbers",
		},
		{
			Name:        "mul",
			Code:        Multiplication,
			Description: "multiplies two unary numbers",
		},
	}
}

// Lookup finds a built-in machine by name.
func Lookup(name string) (Machine, bool) {
	for _, m := range Catalog() {
		if m.Name == name {
			return m, true
		}
	}
	return Machine{}, false
}
