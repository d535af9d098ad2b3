package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfeilner/unimach/internal/validator"
	"github.com/mfeilner/unimach/pkg/encoding"
	"github.com/mfeilner/unimach/pkg/machinefile"
)

var validateCmd = &cobra.Command{
	Use:   "validate [machine.yaml]",
	Short: "Check a transition table for consistency",
	Long:  `Decodes the machine and reports shadowed rules and states that can never be reached.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Machine is valid! ✅")
	},
}

func runValidate(cmd *cobra.Command, args []string) error {
	codeFlag, _ := cmd.Flags().GetString("code")

	var code string
	switch {
	case codeFlag != "":
		code = codeFlag
	case len(args) > 0:
		def, err := machinefile.Load(args[0])
		if err != nil {
			return err
		}
		encoded, err := def.Encode()
		if err != nil {
			return err
		}
		code = encoded
	default:
		return fmt.Errorf("no machine given (pass a machine file or --code)")
	}

	machineCode, _, _ := encoding.SplitComposite(code)
	program, err := encoding.DecodeProgram(machineCode)
	if err != nil {
		return fmt.Errorf("failed to decode machine: %w", err)
	}

	return validator.ValidateProgram(program)
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("code", "c", "", "Binary machine encoding to validate")
}
