package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfeilner/unimach"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of unimach",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("unimach version %s\n", strings.TrimSpace(unimach.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
