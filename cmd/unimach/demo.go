package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mfeilner/unimach/internal/cli"
	"github.com/mfeilner/unimach/pkg/machines"
)

// demoOperands are the inputs used when none are given.
var demoOperands = map[string][]uint{
	"add": {2, 4},
	"mul": {10, 8},
}

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo [machine] [a b]",
	Short: "Run one of the built-in machines",
	Long: `Runs a built-in machine on a pair of unary operands. Without arguments
it lists the available machines.`,
	Args: cobra.RangeArgs(0, 3),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("Available machines:")
			for _, m := range machines.Catalog() {
				fmt.Printf("  %-4s %s\n", m.Name, m.Description)
			}
			fmt.Println("\nRun one with: unimach demo add 2 4")
			return
		}

		if err := runDemo(cmd, args); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runDemo(cmd *cobra.Command, args []string) error {
	machine, ok := machines.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown machine %q (try 'unimach demo')", args[0])
	}

	operands := demoOperands[machine.Name]
	if len(args) > 1 {
		if len(args) != 3 {
			return fmt.Errorf("operands must be given as a pair, e.g. 'demo %s 2 4'", machine.Name)
		}
		operands = nil
		for _, arg := range args[1:] {
			n, err := strconv.ParseUint(arg, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid operand %q: %w", arg, err)
			}
			operands = append(operands, uint(n))
		}
	}

	trace, _ := cmd.Flags().GetString("trace")
	debug, _ := cmd.Flags().GetBool("debug")
	noColor, _ := cmd.Flags().GetBool("no-color")

	return cli.RunSession(cli.RunOptions{
		Code:     machine.Code,
		Operands: operands,
		Trace:    trace,
		Debug:    debug,
		NoColor:  noColor,
	})
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringP("trace", "t", "", "Trace mode: none, step or end-step")
}
