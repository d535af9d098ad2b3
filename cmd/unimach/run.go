package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfeilner/unimach/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [machine.yaml]",
	Short: "Run a Turing machine",
	Long: `Runs a machine from a YAML file, an inline encoding or a piped input word,
prints the unary result and optionally appends the run to the local history.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := collectRunOptions(cmd, args)
		watchMode, _ := cmd.Flags().GetBool("watch")

		var err error
		if watchMode {
			err = cli.RunWatch(opts)
		} else {
			err = cli.RunSession(opts)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func collectRunOptions(cmd *cobra.Command, args []string) cli.RunOptions {
	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	code, _ := cmd.Flags().GetString("code")
	word, _ := cmd.Flags().GetString("word")
	operands, _ := cmd.Flags().GetUintSlice("operands")
	tapeSize, _ := cmd.Flags().GetInt("tape-size")
	trace, _ := cmd.Flags().GetString("trace")
	strict, _ := cmd.Flags().GetBool("strict")
	stepLimit, _ := cmd.Flags().GetInt("step-limit")
	saveDir, _ := cmd.Flags().GetString("save-dir")
	debug, _ := cmd.Flags().GetBool("debug")
	noColor, _ := cmd.Flags().GetBool("no-color")

	return cli.RunOptions{
		FilePath:  filePath,
		Code:      code,
		Word:      word,
		Operands:  operands,
		TapeSize:  tapeSize,
		Trace:     trace,
		Strict:    strict,
		StepLimit: stepLimit,
		SaveDir:   saveDir,
		Debug:     debug,
		NoColor:   noColor,
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("code", "c", "", "Machine encoding over {0,1}, optionally with the word after '111'")
	runCmd.Flags().StringP("word", "i", "", "Input word written onto the tape")
	runCmd.Flags().UintSlice("operands", nil, "Operand pair encoded as the input word, e.g. 2,4")
	runCmd.Flags().Int("tape-size", 0, "Tape size in cells (default 200)")
	runCmd.Flags().StringP("trace", "t", "", "Trace mode: none, step or end-step")
	runCmd.Flags().Bool("strict", false, "Fail on undefined transitions instead of falling back to the first rule")
	runCmd.Flags().Int("step-limit", 0, "Abort after this many steps (0 means unlimited)")
	runCmd.Flags().String("save-dir", "", "Append the run to the history in this directory")
	runCmd.Flags().BoolP("watch", "w", false, "Rerun whenever the machine file changes")
}
