package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tasklink/internal/types"
)

var (
	tasksCached bool
	tasksStatus string
)

// tasksCmd lists the project's tasks
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the project's tasks",
	RunE:  runTasks,
}

func init() {
	tasksCmd.Flags().BoolVar(&tasksCached, "cached", false, "Use the cached snapshot, no network")
	tasksCmd.Flags().StringVar(&tasksStatus, "status", "", "Filter by status (todo, in_progress, done)")
}

func runTasks(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var filter types.Status
	if tasksStatus != "" {
		filter, err = types.ParseStatus(tasksStatus)
		if err != nil {
			return err
		}
	}

	tasks, err := fetchTasks(ctx, cfg, tasksCached)
	if err != nil {
		return err
	}

	shown := 0
	for _, t := range tasks {
		if filter != "" && t.Status != filter {
			continue
		}
		shown++
		fmt.Printf("%s %s %s", dimStyle.Render(t.ID), renderStatus(t.Status), titleStyle.Render(t.Title))
		if t.Priority == types.PriorityHigh {
			fmt.Print(" !")
		}
		fmt.Println()
		if len(t.Tags) > 0 {
			fmt.Printf("  %s\n", dimStyle.Render(strings.Join(t.Tags, ", ")))
		}
	}

	if shown == 0 {
		fmt.Println(dimStyle.Render("No tasks."))
	}
	return nil
}
