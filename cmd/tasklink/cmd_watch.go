package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasklink/internal/hook"
	"tasklink/internal/watch"
)

var watchApply bool

// watchCmd monitors the workspace and runs the pipeline on settled changes
var watchCmd = &cobra.Command{
	Use:   "watch [roots...]",
	Short: "Watch the workspace and surface tasks on file changes",
	Long: `Monitors directories for file changes and runs the hook pipeline for
each settled change. Roots default to the config's watch.roots (or the
workspace itself). Runs until interrupted.

Example:
  tasklink watch src internal --apply`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchApply, "apply", false, "Apply suggested status transitions to the tracker")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	weights, err := loadWeights()
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = cfg.Watch.Roots
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for i, r := range roots {
		if !filepath.IsAbs(r) {
			roots[i] = filepath.Join(workspace, r)
		}
	}

	cache := openCache()
	if cache != nil {
		defer cache.Close()
	}

	opts := []hook.Option{
		hook.WithWeights(weights),
		hook.WithAutoApply(watchApply || cfg.AutoApply),
	}
	if cache != nil {
		opts = append(opts, hook.WithCache(cache))
	}
	runner := hook.NewRunner(newTrackerClient(cfg), cfg.ProjectID, opts...)

	debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	watcher, err := watch.New(runner, roots, cfg.Watch.Ignores, debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	fmt.Println(headingStyle.Render("tasklink watching"))
	for _, r := range roots {
		fmt.Printf("  %s\n", dimStyle.Render(r))
	}
	fmt.Println(dimStyle.Render("Ctrl-C to stop"))

	<-ctx.Done()
	watcher.Stop()

	stats := watcher.GetStats()
	logger.Info("watcher stopped",
		zap.Int("created", stats.FilesCreated),
		zap.Int("modified", stats.FilesModified),
		zap.Int("deleted", stats.FilesDeleted),
		zap.Int("runs", stats.RunsTriggered),
		zap.Int("errors", stats.Errors))
	fmt.Printf("\n%d events, %d pipeline runs, %d errors\n",
		stats.FilesCreated+stats.FilesModified+stats.FilesDeleted,
		stats.RunsTriggered, stats.Errors)

	return nil
}
