package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasklink/internal/hook"
	"tasklink/internal/types"
)

var (
	hookApply bool
	hookJSON  bool
)

// hookCmd is the pipeline entry point for editor and shell hooks
var hookCmd = &cobra.Command{
	Use:   "hook [change] [path]",
	Short: "Process a file-change event (for editor/shell hooks)",
	Long: `Runs the full pipeline for one file change: extract keywords, rank the
project's tasks, and propose a status transition for the top match.

File content is read from stdin when piped, otherwise from the file itself.
With --apply (or auto_apply in config) the suggested transition is pushed to
the tracker.

Examples:
  tasklink hook modify src/billing/invoice.py
  cat invoice.py | tasklink hook modify src/billing/invoice.py --json
  tasklink hook delete old/LegacyImporter.php`,
	Args: cobra.ExactArgs(2),
	RunE: runHook,
}

func init() {
	hookCmd.Flags().BoolVar(&hookApply, "apply", false, "Apply the suggested status to the tracker")
	hookCmd.Flags().BoolVar(&hookJSON, "json", false, "Emit the result as JSON (for scripting)")
}

func runHook(cmd *cobra.Command, args []string) error {
	change, err := types.ParseChangeType(args[0])
	if err != nil {
		return err
	}
	path := args[1]

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

	content := readHookContent(path, change)

	cache := openCache()
	if cache != nil {
		defer cache.Close()
	}

	opts := []hook.Option{
		hook.WithWeights(weights),
		hook.WithAutoApply(hookApply || cfg.AutoApply),
	}
	if cache != nil {
		opts = append(opts, hook.WithCache(cache))
	}
	runner := hook.NewRunner(newTrackerClient(cfg), cfg.ProjectID, opts...)

	res, err := runner.Run(ctx, hook.Event{Change: change, Path: path, Content: content})
	if err != nil {
		return err
	}
	logger.Debug("hook pipeline finished",
		zap.String("run_id", res.RunID),
		zap.Int("keywords", len(res.Keywords)),
		zap.Int("matches", len(res.Matches)))

	if hookJSON {
		return json.NewEncoder(os.Stdout).Encode(hookOutput(res))
	}

	printHookResult(res)
	return nil
}

// readHookContent returns the file content for extraction: stdin when
// piped, the file on disk otherwise. Delete events and unreadable files
// yield empty content; the pipeline falls back to path-only extraction.
func readHookContent(path string, change types.ChangeType) string {
	if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		if data, err := io.ReadAll(os.Stdin); err == nil {
			return string(data)
		}
	}
	if change == types.ChangeDelete {
		return ""
	}
	if data, err := os.ReadFile(path); err == nil {
		return string(data)
	}
	return ""
}

// hookResultJSON is the stable scripting surface of a pipeline run.
type hookResultJSON struct {
	RunID     string           `json:"run_id"`
	Keywords  []string         `json:"keywords"`
	Matches   []hookMatchJSON  `json:"matches"`
	Suggested *hookSuggestJSON `json:"suggested,omitempty"`
	Applied   bool             `json:"applied"`
	FromCache bool             `json:"from_cache"`
}

type hookMatchJSON struct {
	TaskID string       `json:"task_id"`
	Title  string       `json:"title"`
	Status types.Status `json:"status"`
	Score  int          `json:"score"`
}

type hookSuggestJSON struct {
	TaskID string       `json:"task_id"`
	From   types.Status `json:"from"`
	To     types.Status `json:"to"`
}

func hookOutput(res hook.Result) hookResultJSON {
	out := hookResultJSON{
		RunID:     res.RunID,
		Keywords:  res.Keywords,
		Applied:   res.Applied,
		FromCache: res.FromCache,
		Matches:   make([]hookMatchJSON, len(res.Matches)),
	}
	for i, m := range res.Matches {
		out.Matches[i] = hookMatchJSON{
			TaskID: m.Task.ID,
			Title:  m.Task.Title,
			Status: m.Task.Status,
			Score:  m.Score,
		}
	}
	if res.Suggested != nil {
		out.Suggested = &hookSuggestJSON{
			TaskID: res.Suggested.TaskID,
			From:   res.Suggested.From,
			To:     res.Suggested.To,
		}
	}
	return out
}

func printHookResult(res hook.Result) {
	if len(res.Matches) == 0 {
		fmt.Println(dimStyle.Render("No matching tasks."))
		return
	}

	top := res.Matches[0]
	fmt.Printf("%s %s %s\n",
		scoreStyle.Render(fmt.Sprintf("[%3d]", top.Score)),
		renderStatus(top.Task.Status),
		titleStyle.Render(top.Task.Title))

	if res.Suggested != nil && res.Suggested.From != res.Suggested.To {
		verb := "suggest"
		if res.Applied {
			verb = "applied"
		}
		fmt.Printf("%s %s -> %s\n", verb, res.Suggested.From, res.Suggested.To)
	}
	if res.FromCache {
		fmt.Println(dimStyle.Render("(matched against cached snapshot)"))
	}
}
