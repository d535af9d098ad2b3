package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	filestore "github.com/mfeilner/unimach/internal/adapters/file"
	"github.com/mfeilner/unimach/internal/presentation/graph"
	"github.com/mfeilner/unimach/internal/presentation/term"
	"github.com/mfeilner/unimach/pkg/domain"
	"github.com/mfeilner/unimach/pkg/encoding"
)

// runsCmd groups the history inspection commands.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the local run history",
	Long:  `Lists, shows and removes runs saved with 'unimach run --save-dir'.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs",
	Run: func(cmd *cobra.Command, args []string) {
		store := historyStore(cmd)
		records, err := store.List(context.Background())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if len(records) == 0 {
			fmt.Println("No runs saved yet.")
			return
		}

		fmt.Printf("%-36s  %-12s  %-9s  %7s  %6s  %s\n", "ID", "NAME", "STATUS", "RESULT", "STEPS", "STARTED")
		for _, r := range records {
			result, steps := "-", "-"
			if r.Status == domain.RunCompleted {
				result = fmt.Sprintf("%d", r.Result)
				steps = fmt.Sprintf("%d", r.Steps)
			}
			name := r.Name
			if name == "" {
				name = "-"
			}
			fmt.Printf("%-36s  %-12s  %-9s  %7s  %6s  %s\n",
				r.ID, name, r.Status, result, steps, r.StartedAt.Format(time.RFC3339))
		}
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := historyStore(cmd)
		record, err := store.Load(context.Background(), args[0])
		if err != nil {
			if errors.Is(err, domain.ErrRunNotFound) {
				fmt.Printf("Error: run %q not found\n", args[0])
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			os.Exit(1)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			out, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}

		mermaid, _ := cmd.Flags().GetBool("mermaid")
		if mermaid {
			if err := printRecordGraph(record); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		printRecord(cmd, record)
	},
}

// printRecordGraph renders the machine's state graph, marking the halting
// state for completed runs.
func printRecordGraph(record *domain.RunRecord) error {
	program, err := encoding.DecodeProgram(record.Code)
	if err != nil {
		return err
	}
	var overlay *graph.RunOverlay
	if record.Status == domain.RunCompleted {
		overlay = &graph.RunOverlay{CurrentState: record.FinalState}
	}
	fmt.Print(graph.GenerateMermaid(program, overlay))
	return nil
}

var runsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove one saved run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := historyStore(cmd)
		if err := store.Delete(context.Background(), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %s\n", args[0])
	},
}

func historyStore(cmd *cobra.Command) *filestore.Store {
	dir, _ := cmd.Flags().GetString("dir")
	return filestore.New(dir)
}

func printRecord(cmd *cobra.Command, record *domain.RunRecord) {
	fmt.Printf("%-9s %s\n", "id", record.ID)
	if record.Name != "" {
		fmt.Printf("%-9s %s\n", "name", record.Name)
	}
	fmt.Printf("%-9s %s\n", "status", record.Status)
	fmt.Printf("%-9s %s\n", "word", record.Word)
	fmt.Printf("%-9s %d cells\n", "tape", record.TapeSize)
	fmt.Printf("%-9s %s\n", "started", record.StartedAt.Format(time.RFC3339))
	fmt.Printf("%-9s %s\n", "duration", record.Duration)

	switch record.Status {
	case domain.RunCompleted:
		fmt.Printf("%-9s %d\n", "result", record.Result)
		fmt.Printf("%-9s %d\n", "steps", record.Steps)
		fmt.Printf("%-9s %s\n", "state", record.FinalState)
		if len(record.FinalTape) > 0 {
			noColor, _ := cmd.Flags().GetBool("no-color")
			renderer := term.NewRenderer(noColor)
			fmt.Printf("%-9s %s\n", "band", renderer.Tape(record.FinalTape, -1))
		}
	case domain.RunFailed:
		fmt.Printf("%-9s %s\n", "error", record.Error)
	}
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsRmCmd)

	runsCmd.PersistentFlags().String("dir", "", "History directory (default .unimach/runs)")
	runsShowCmd.Flags().Bool("json", false, "Print the raw record as JSON")
	runsShowCmd.Flags().Bool("mermaid", false, "Export the machine's state graph as a Mermaid diagram")
}
