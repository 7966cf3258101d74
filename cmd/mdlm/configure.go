package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/markdownlm/mdlm/internal/config"
	"github.com/markdownlm/mdlm/internal/utils"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newConfigureCmd())
}

func newConfigureCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Save your API key securely",
		Long: `Save your markdownlm API key to the config file (mode 0600).
Find the key on the markdownlm dashboard under Settings.`,
		Run: func(cmd *cobra.Command, args []string) {
			configPath, err := utils.ResolvePath(resolveConfigPath(cmd))
			if err != nil {
				exitErr(err)
			}

			// Without a terminal the key is read from stdin, so the command
			// stays scriptable: echo "$KEY" | mdlm configure
			var key string
			if isatty.IsTerminal(os.Stdin.Fd()) {
				key, err = RunConfigureTUI(ConfigureTUIOpts{
					APIURL:       apiURL,
					ConfigPath:   configPath,
					KeyValidator: isValidKey,
				})
				if err != nil {
					exitErr(err)
				}
			} else {
				key = readKeyFromStdin()
			}

			key = strings.TrimSpace(key)
			if key == "" {
				fmt.Fprintf(os.Stderr, "%s: no key entered\n", red.Render("ERROR"))
				os.Exit(1)
			}

			// Keep a previously configured URL unless the flag overrides it.
			if !cmd.Flags().Changed("api-url") {
				if existing, err := config.Load(configPath); err == nil && existing.APIURL != "" {
					apiURL = existing.APIURL
				}
			}

			cfg := &config.Config{
				APIKey: key,
				APIURL: apiURL,
			}
			if err := cfg.Validate(); err != nil {
				exitErr(err)
			}
			if err := cfg.Save(configPath); err != nil {
				exitErr(err)
			}

			fmt.Printf("API key saved to %s (permissions: 0600).\n", green.Render(cfg.Path))
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&apiURL, "api-url", "u", config.DefaultAPIURL, "markdownlm API URL")

	return cmd
}

func isValidKey(key string) bool {
	return strings.HasPrefix(key, config.APIKeyPrefix) && len(key) > len(config.APIKeyPrefix)
}

func readKeyFromStdin() string {
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}
