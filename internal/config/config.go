package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-json"

	"github.com/markdownlm/mdlm/internal/utils"
)

const APIKeyPrefix = "mdlm_"

var (
	home, _           = os.UserHomeDir()
	DefaultConfigPath = filepath.Join(home, ".config", "mdlm", "config.json")
	DefaultAPIURL     = "https://markdownlm.com"
)

var (
	ErrMissingAPIKey     = errors.New("no API key found. run `mdlm configure` or set MDLM_API_KEY")
	ErrInvalidAPIKey     = errors.New("API key must start with \"" + APIKeyPrefix + "\"")
	ErrInsecureTransport = errors.New("API URL must use https")
)

type Config struct {
	APIKey string `json:"api_key"`
	APIURL string `json:"api_url"`
	Path   string `json:"-"`
}

func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// Credentials file. Owner-only, written atomically so a crash never
	// leaves a half-written key on disk.
	if err := utils.WriteFileAtomic(path, data, 0o600); err != nil {
		return err
	}

	c.Path = path
	return nil
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if !strings.HasPrefix(c.APIKey, APIKeyPrefix) {
		return ErrInvalidAPIKey
	}

	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.APIURL, err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("%w. got %q", ErrInsecureTransport, c.APIURL)
	}

	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config parse '%s': %w", path, err)
	}

	cfg.Path = path
	cfg.APIURL = strings.TrimSuffix(cfg.APIURL, "/")
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	WarnLoosePermissions(path)

	return &cfg, nil
}

// WarnLoosePermissions logs when the credentials file is readable by other
// users. Permission bits are synthetic on windows, so skip the check there.
func WarnLoosePermissions(path string) {
	if runtime.GOOS == "windows" {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.Mode().Perm()&0o044 != 0 {
		slog.Warn("config file is readable by others, run `chmod 600` on it to fix this", "path", path)
	}
}
