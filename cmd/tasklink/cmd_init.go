package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasklink/internal/config"
)

var (
	initAPIKey  string
	initProject string
	initBaseURL string
	initForce   bool
)

// initCmd writes a default config into the workspace
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize tasklink in the current workspace",
	Long: `Creates .tasklink/config.json with the tracker credentials and project
selection. All values can also come from flags on other commands or from the
TASKLINK_API_KEY / TASKLINK_BASE_URL / TASKLINK_PROJECT environment
variables.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initAPIKey, "api-key", "", "Tracker API key")
	initCmd.Flags().StringVar(&initProject, "project", "", "Project ID to link this workspace to")
	initCmd.Flags().StringVar(&initBaseURL, "base-url", "", "Tracker API base URL")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.Path(workspace)

	existing, err := config.Load(workspace)
	if err != nil {
		return err
	}
	if !initForce && existing.APIKey != "" {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.Default()
	cfg.APIKey = initAPIKey
	cfg.ProjectID = initProject
	if initBaseURL != "" {
		cfg.BaseURL = initBaseURL
	}

	if err := config.Save(workspace, cfg); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	if cfg.APIKey == "" {
		fmt.Println(dimStyle.Render("No API key set; add one to the config or export TASKLINK_API_KEY."))
	}
	if cfg.ProjectID == "" {
		fmt.Println(dimStyle.Render("No project set; add project_id to the config or export TASKLINK_PROJECT."))
	}
	return nil
}
