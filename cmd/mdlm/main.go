package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/markdownlm/mdlm/internal/config"
	"github.com/markdownlm/mdlm/internal/utils"
	"github.com/markdownlm/mdlm/internal/version"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "mdlm",
	Short:   "markdownlm knowledge base CLI",
	Long: `mdlm mirrors your hosted markdownlm knowledge base into ./knowledge/,
tracks local edits against a manifest, and pushes them back with conflict
detection. Run 'mdlm configure' once, then 'mdlm clone' to get started.`,
	Version: version.Detailed(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(verbose)
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.PersistentFlags().String("config", config.DefaultConfigPath, "mdlm config file")
	rootCmd.PersistentFlags().StringP("dir", "d", ".", "workspace directory holding knowledge/ and .mdlm/")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	// A local .env can supply MDLM_API_KEY / MDLM_API_URL for development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))
}

// loadConfig merges the config file with MDLM_* environment variables. The
// environment wins, matching the documented key precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath := resolveConfigPath(cmd)

	viper.SetConfigFile(configPath)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !enoent && !notFound {
			return nil, fmt.Errorf("config read '%s': %w", configPath, err)
		}
	}

	viper.SetEnvPrefix("MDLM")
	viper.AutomaticEnv()

	// The permission check only matters when the key actually comes from
	// the file.
	if os.Getenv("MDLM_API_KEY") == "" {
		config.WarnLoosePermissions(configPath)
	}

	cfg := &config.Config{
		Path:   configPath,
		APIKey: strings.TrimSpace(viper.GetString("api_key")),
		APIURL: strings.TrimSuffix(viper.GetString("api_url"), "/"),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = config.DefaultAPIURL
	}

	slog.Debug("config", "path", cfg.Path, "apiUrl", cfg.APIURL, "apiKey", utils.MaskSecret(cfg.APIKey))

	return cfg, nil
}
