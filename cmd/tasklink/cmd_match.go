package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasklink/internal/keyword"
	"tasklink/internal/match"
)

var (
	matchLimit  int
	matchCached bool
	matchNoRead bool
)

// matchCmd ranks the project's tasks against a file
var matchCmd = &cobra.Command{
	Use:   "match [path]",
	Short: "Find tasks related to a file",
	Long: `Extracts keywords from a file's path (and content, when the file is
readable) and ranks the project's tasks against them.

Examples:
  tasklink match src/controllers/PaymentController.js
  tasklink match --cached --limit 3 stripe_webhook_handler.js`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().IntVar(&matchLimit, "limit", 10, "Maximum matches to show")
	matchCmd.Flags().BoolVar(&matchCached, "cached", false, "Match against the cached snapshot, no network")
	matchCmd.Flags().BoolVar(&matchNoRead, "no-content", false, "Extract from the path only, skip file content")
}

func runMatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	weights, err := loadWeights()
	if err != nil {
		return err
	}

	keywords := keyword.ExtractFromPath(path)
	if !matchNoRead {
		if data, err := os.ReadFile(path); err == nil {
			keywords = keyword.Merge(keywords, keyword.ExtractFromContent(string(data), path))
		}
	}
	if len(keywords) == 0 {
		fmt.Println(dimStyle.Render("No keywords extracted; nothing to match."))
		return nil
	}
	logger.Debug("extracted keywords", zap.Strings("keywords", keywords))

	tasks, err := fetchTasks(ctx, cfg, matchCached)
	if err != nil {
		return err
	}

	results := match.RankWith(weights, tasks, keywords)
	if len(results) == 0 {
		fmt.Println(dimStyle.Render("No matching tasks."))
		return nil
	}
	if matchLimit > 0 && len(results) > matchLimit {
		results = results[:matchLimit]
	}

	fmt.Println(headingStyle.Render(fmt.Sprintf("Tasks matching %s", path)))
	fmt.Println(dimStyle.Render("keywords: " + keywordStyle.Render(strings.Join(keywords, ", "))))
	fmt.Println()
	for i, r := range results {
		fmt.Printf("%2d. %s %s %s\n", i+1,
			scoreStyle.Render(fmt.Sprintf("[%3d]", r.Score)),
			renderStatus(r.Task.Status),
			titleStyle.Render(r.Task.Title))
		if len(r.Task.Tags) > 0 {
			fmt.Printf("    %s\n", dimStyle.Render(strings.Join(r.Task.Tags, ", ")))
		}
	}

	return nil
}
