package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tasklink/internal/report"
)

var (
	reportRaw    bool
	reportCached bool
	reportTitle  string
)

// reportCmd renders a markdown report of the project's tasks
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a markdown report of the project's tasks",
	Long: `Builds a markdown report (summary counts plus one section per status)
from the project's tasks and pretty-prints it for the terminal.

Use --raw to emit plain markdown for piping into files or other tools.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "Emit plain markdown without terminal styling")
	reportCmd.Flags().BoolVar(&reportCached, "cached", false, "Use the cached snapshot, no network")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "Report title")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tasks, err := fetchTasks(ctx, cfg, reportCached)
	if err != nil {
		return err
	}

	md := report.Markdown(tasks, report.Options{
		Title:     reportTitle,
		ProjectID: cfg.ProjectID,
	})

	if reportRaw {
		fmt.Print(md)
		return nil
	}
	fmt.Print(report.Render(md))
	return nil
}
