package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfeilner/unimach/internal/presentation/graph"
	"github.com/mfeilner/unimach/internal/presentation/term"
	"github.com/mfeilner/unimach/pkg/encoding"
	"github.com/mfeilner/unimach/pkg/machinefile"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode [code]",
	Short: "Print the transition table of a machine encoding",
	Long: `Decodes a binary machine encoding into a readable transition table.
The code can be given inline or taken from a YAML machine file.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDecode(cmd, args); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runDecode(cmd *cobra.Command, args []string) error {
	filePath, _ := cmd.Flags().GetString("file")
	pretty, _ := cmd.Flags().GetBool("pretty")
	mermaid, _ := cmd.Flags().GetBool("mermaid")
	noColor, _ := cmd.Flags().GetBool("no-color")

	name := "machine"
	var code string
	switch {
	case filePath != "":
		def, err := machinefile.Load(filePath)
		if err != nil {
			return err
		}
		encoded, err := def.Encode()
		if err != nil {
			return err
		}
		code = encoded
		if def.Name != "" {
			name = def.Name
		}
	case len(args) > 0:
		code = args[0]
	default:
		return fmt.Errorf("no machine given (pass a code or --file)")
	}

	machineCode, word, _ := encoding.SplitComposite(code)
	program, err := encoding.DecodeProgram(machineCode)
	if err != nil {
		return err
	}

	switch {
	case mermaid:
		fmt.Print(graph.GenerateMermaid(program, nil))
	case pretty:
		render := term.MarkdownRenderer()
		out, err := render(term.TransitionMarkdown(name, program))
		if err != nil {
			return err
		}
		fmt.Print(out)
	default:
		renderer := term.NewRenderer(noColor)
		fmt.Print(renderer.TransitionTable(program))
	}

	if word != "" {
		fmt.Printf("\nInput word: %s\n", word)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringP("file", "f", "", "YAML machine file to decode")
	decodeCmd.Flags().Bool("pretty", false, "Render the table as markdown")
	decodeCmd.Flags().Bool("mermaid", false, "Export the state graph as a Mermaid diagram")
}
