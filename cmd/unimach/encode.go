package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfeilner/unimach/pkg/machinefile"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <machine.yaml>",
	Short: "Print the binary encoding of a machine file",
	Long: `Encodes a YAML machine file into the single-string binary form the
interpreter consumes. The input word, when present, is appended after '111'.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		def, err := machinefile.Load(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		code, err := def.Encode()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(code)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}
