package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasklink/internal/advisor"
	"tasklink/internal/types"
)

// suggestCmd shows the status transition the advisor would propose
var suggestCmd = &cobra.Command{
	Use:   "suggest [status] [change]",
	Short: "Show the proposed status transition for a change",
	Long: `Prints the status the advisor proposes for a task in the given status
after the given file change. Pure lookup, no network.

Examples:
  tasklink suggest todo modify      # -> in_progress
  tasklink suggest done modify      # -> done (never reopened)
  tasklink suggest in_progress delete`,
	Args: cobra.ExactArgs(2),
	RunE: runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	status, err := types.ParseStatus(args[0])
	if err != nil {
		return err
	}
	change, err := types.ParseChangeType(args[1])
	if err != nil {
		return err
	}

	next := advisor.Suggest(status, change)
	if next == status {
		fmt.Printf("%s (unchanged)\n", next)
	} else {
		fmt.Printf("%s -> %s\n", status, next)
	}
	return nil
}
