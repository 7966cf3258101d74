package main

import (
	"fmt"
	"os"

	"github.com/markdownlm/mdlm/internal/config"
	"github.com/markdownlm/mdlm/internal/mdsdk"
	"github.com/markdownlm/mdlm/internal/sync"
	"github.com/markdownlm/mdlm/internal/workspace"
	"github.com/spf13/cobra"
)

// readValidConfig loads and validates credentials for commands that talk to
// the API. Local-only commands (status, configure) skip this.
func readValidConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSDK(cmd *cobra.Command) (*mdsdk.SDK, *config.Config, error) {
	cfg, err := readValidConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	sdk, err := mdsdk.New(cfg.APIURL, cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}

	return sdk, cfg, nil
}

func resolveWorkspace(cmd *cobra.Command) (*workspace.Workspace, error) {
	dir, _ := cmd.Flags().GetString("dir")
	return workspace.NewWorkspace(dir)
}

func newEngine(cmd *cobra.Command) (*sync.Engine, *mdsdk.SDK, *config.Config, error) {
	sdk, cfg, err := newSDK(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	ws, err := resolveWorkspace(cmd)
	if err != nil {
		sdk.Close()
		return nil, nil, nil, err
	}

	return sync.NewEngine(ws, sync.NewKnowledgeService(sdk.Knowledge)), sdk, cfg, nil
}

// checkCategory exits with the valid vocabulary when the flag value is not a
// known category. Empty means "not filtered" and passes.
func checkCategory(category string) {
	if category == "" || workspace.IsValidCategory(category) {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: unknown category '%s'\nValid categories: %s\n",
		red.Render("ERROR"), category, workspace.CategoryList())
	os.Exit(1)
}

func exitErr(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", red.Render("ERROR"), err)
	os.Exit(1)
}
