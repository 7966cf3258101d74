package main

import (
	"os"

	"github.com/markdownlm/mdlm/internal/config"
	"github.com/spf13/cobra"
)

// resolveConfigPath determines which config file path to use, honoring (in order):
// 1) An explicitly set --config flag
// 2) MDLM_CONFIG_PATH environment variable
// 3) The default path
func resolveConfigPath(cmd *cobra.Command) string {
	if cfgFlag := cmd.Flag("config"); cfgFlag != nil && cfgFlag.Changed {
		return cfgFlag.Value.String()
	}

	if envPath := os.Getenv("MDLM_CONFIG_PATH"); envPath != "" {
		return envPath
	}

	return config.DefaultConfigPath
}
