package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mfeilner/unimach/pkg/encoding"
	"github.com/mfeilner/unimach/pkg/machinefile"
	"github.com/mfeilner/unimach/pkg/machines"
)

// Seed operands keep the generated files runnable out of the box.
var seedOperands = map[string][]uint{
	"add": {2, 4},
	"mul": {3, 5},
}

func main() {
	targetDir := "machines"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating machine files in: %s\n", targetDir)

	for _, m := range machines.Catalog() {
		program, err := encoding.DecodeProgram(m.Code)
		check(err)

		// Write the structured form so the files stay editable; the raw
		// code is reproducible from it with `unimach encode`.
		file := &machinefile.File{
			Name:        m.Name,
			Transitions: program.Transitions,
			Operands:    seedOperands[m.Name],
		}
		data, err := file.Marshal()
		check(err)

		path := filepath.Join(targetDir, m.Name+".yaml")
		check(os.WriteFile(path, data, 0644))
		fmt.Printf("  %s (%d rules)\n", path, program.Len())
	}

	fmt.Println("Done. Run one with: unimach run", filepath.Join(targetDir, "add.yaml"))
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
