// Package config loads settings from defaults, an optional YAML file, the
// environment (including a .env file) and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	AppName   = "github-repos"
	EnvPrefix = "GITHUB_REPOS"

	defaultBaseURL = "https://api.github.com/"
	defaultFormat  = "table"
)

// Config holds all configuration for the application.
type Config struct {
	BaseURL  string `mapstructure:"base_url"`
	StateDir string `mapstructure:"state_dir"`
	Format   string `mapstructure:"format"`
	Summary  bool   `mapstructure:"summary"`
	QR       bool   `mapstructure:"qr"`
}

// Options says where to look for settings besides the defaults.
type Options struct {
	// ConfigFile is an explicit YAML file that must exist. When empty,
	// config.yaml in DefaultDir is used if present.
	ConfigFile string
	// EnvFile is a dotenv file; a missing one is ignored. Defaults to .env.
	EnvFile string
	// Flags are bound by key: base-url, state-dir, format, summary, qr.
	Flags *pflag.FlagSet
}

var flagKeys = map[string]string{
	"base_url":  "base-url",
	"state_dir": "state-dir",
	"format":    "format",
	"summary":   "summary",
	"qr":        "qr",
}

// DefaultDir is the per-user directory for the config file and state.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("can't resolve user config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// Default generates default config.
func Default() (Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		BaseURL:  defaultBaseURL,
		StateDir: dir,
		Format:   defaultFormat,
	}, nil
}

// Load resolves the configuration.
func Load(opts Options) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("can't load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("state_dir", cfg.StateDir)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("summary", cfg.Summary)
	v.SetDefault("qr", cfg.QR)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(cfg.StateDir)
	}
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("can't read config: %w", err)
		}
	}

	if opts.Flags != nil {
		for key, name := range flagKeys {
			if flag := opts.Flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Config{}, fmt.Errorf("can't bind flag %s: %w", name, err)
				}
			}
		}
	}

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return Config{}, fmt.Errorf("can't decode config: %w", err)
	}
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

// Validate checks values that can't be caught by decoding.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.StateDir) == "" {
		return errors.New("state_dir must not be empty")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", cfg.BaseURL)
	}
	return nil
}
