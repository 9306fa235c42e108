package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chris-regnier/moodlog/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends accepted by the "storage" key.
var Backends = []string{"blob", "markdown", "sqlite", "postgres"}

// ShellConfig holds shell integration configuration.
type ShellConfig struct {
	CacheTTL    string `mapstructure:"cache_ttl"`
	TodayIcon   string `mapstructure:"today_icon"`
	NoTodayIcon string `mapstructure:"no_today_icon"`
	StreakIcon  string `mapstructure:"streak_icon"`
	ShowMood    bool   `mapstructure:"show_mood"`
}

// ThemeConfig selects a color preset and optional per-color overrides.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// Config holds the application configuration.
type Config struct {
	Storage     string         `mapstructure:"storage"`
	DataDir     string         `mapstructure:"data_dir"`
	PostgresDSN string         `mapstructure:"postgres_dsn"`
	Editor      string         `mapstructure:"editor"`
	MaxWidth    int            `mapstructure:"max_width"`
	Log         logging.Config `mapstructure:"log"`
	Theme       ThemeConfig    `mapstructure:"theme"`
	Shell       ShellConfig    `mapstructure:"shell"`
}

// DefaultDataDir returns the default data directory (~/.moodlog/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".moodlog")
	}
	return filepath.Join(home, ".moodlog")
}

// Load reads configuration from file, environment variables, and defaults.
//
// A .env file in the data directory is loaded into the process environment
// first; variables already set win over it.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", "blob")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("editor", "")
	v.SetDefault("max_width", 100)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.primary", "")
	v.SetDefault("theme.secondary", "")
	v.SetDefault("theme.accent", "")
	v.SetDefault("theme.muted", "")
	v.SetDefault("theme.danger", "")
	v.SetDefault("theme.background", "")
	v.SetDefault("theme.markdown_style", "")
	v.SetDefault("shell.cache_ttl", "5m")
	v.SetDefault("shell.today_icon", "✓")
	v.SetDefault("shell.no_today_icon", "✗")
	v.SetDefault("shell.streak_icon", "🔥")
	v.SetDefault("shell.show_mood", true)

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "moodlog"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: MOODLOG_STORAGE, MOODLOG_DATA_DIR, MOODLOG_LOG_LEVEL, etc.
	v.SetEnvPrefix("MOODLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && configPath != "" {
			return nil, err
		}
	}

	if err := loadDotEnv(v.GetString("data_dir")); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv loads dataDir/.env if it exists. AutomaticEnv reads the process
// environment lazily, so values loaded here are seen by Unmarshal.
func loadDotEnv(dataDir string) error {
	path := filepath.Join(dataDir, ".env")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Validate rejects unknown backends and a postgres backend without a DSN.
func (c *Config) Validate() error {
	known := false
	for _, b := range Backends {
		if c.Storage == b {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown storage backend %q (%s)", c.Storage, strings.Join(Backends, "|"))
	}
	if c.Storage == "postgres" && c.PostgresDSN == "" {
		return errors.New("storage \"postgres\" requires postgres_dsn")
	}
	return nil
}
