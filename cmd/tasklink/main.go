package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tasklink/internal/config"
	"tasklink/internal/logging"
	"tasklink/internal/match"
	"tasklink/internal/tracker"
	"tasklink/internal/types"
)

var (
	// Global flags
	verbose   bool
	workspace string
	project   string
	apiKey    string
	timeout   time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tasklink",
	Short: "tasklink - link file edits to tracker tasks",
	Long: `tasklink connects file-system activity to your project tracker.

Editing a file surfaces the tasks most likely related to it: keywords are
extracted from the file's path and content, the project's tasks are ranked
against them, and the top match gets a status suggestion (todo -> in_progress
on activity; done is never reopened).

Wire "tasklink hook" into your editor's post-save hook, or run
"tasklink watch" to monitor a workspace continuously.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace()
		if err != nil {
			return err
		}
		workspace = ws

		if err := logging.Initialize(workspace); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file logging unavailable: %v\n", err)
		}

		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVarP(&project, "project", "p", "", "Project ID (overrides config)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Tracker API key (or set TASKLINK_API_KEY)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Tracker request timeout")

	// Add commands to root
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveWorkspace returns the absolute workspace path, defaulting to the
// current directory.
func resolveWorkspace() (string, error) {
	ws := workspace
	if ws == "" {
		var err error
		ws, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
	}
	abs, err := filepath.Abs(ws)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace path: %w", err)
	}
	return abs, nil
}

// loadConfig reads the workspace config and applies CLI flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(workspace)
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if project != "" {
		cfg.ProjectID = project
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("no project configured (run `tasklink init` or pass --project)")
	}
	return cfg, nil
}

// loadWeights reads the workspace scoring overrides.
func loadWeights() (match.Weights, error) {
	return config.LoadWeights(workspace)
}

// newTrackerClient builds an API client from config.
func newTrackerClient(cfg *config.Config) *tracker.Client {
	return tracker.NewClientWithConfig(tracker.ClientConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: timeout,
	})
}

// openCache opens the workspace snapshot cache. Failure is reported but not
// fatal; callers get a nil cache.
func openCache() *tracker.SnapshotCache {
	cache, err := tracker.OpenSnapshotCache(filepath.Join(workspace, ".tasklink", "cache.db"))
	if err != nil {
		logger.Warn("snapshot cache unavailable", zap.Error(err))
		return nil
	}
	return cache
}

// fetchTasks gets the project task snapshot: from the cache when cachedOnly
// is set, otherwise from the tracker (refreshing the cache best-effort).
func fetchTasks(ctx context.Context, cfg *config.Config, cachedOnly bool) ([]types.Task, error) {
	cache := openCache()
	if cache != nil {
		defer cache.Close()
	}

	if cachedOnly {
		if cache == nil {
			return nil, fmt.Errorf("snapshot cache unavailable")
		}
		tasks, age, err := cache.Get(cfg.ProjectID)
		if err != nil {
			return nil, err
		}
		if len(tasks) == 0 {
			return nil, fmt.Errorf("no cached snapshot for project %s", cfg.ProjectID)
		}
		logger.Debug("using cached snapshot", zap.Duration("age", age))
		return tasks, nil
	}

	client := newTrackerClient(cfg)
	tasks, err := client.ListTasks(ctx, cfg.ProjectID)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		if cerr := cache.Put(cfg.ProjectID, tasks); cerr != nil {
			logger.Debug("cache refresh failed", zap.Error(cerr))
		}
	}
	return tasks, nil
}
