package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultBlinksKey      = "blinks"
	DefaultCleanupKey     = "last_cleanup_timestamp"
	DefaultLogLevel       = "warn"
)

type StorageConfig struct {
	Backend   string `toml:"backend"`    // "notion" | "sqlite" | "json", empty picks notion when configured
	DataDir   string `toml:"data_dir"`   // empty means the config directory
	BlinksKey string `toml:"blinks_key"` // base name of the local Blinks file
}

type NotionConfig struct {
	Token      string `toml:"token"`
	DatabaseID string `toml:"database_id"`
	Version    string `toml:"version"`
}

type AIConfig struct {
	Provider        string `toml:"provider"` // "anthropic" | "gemini" | "none", empty picks the first with a key
	AnthropicAPIKey string `toml:"anthropic_api_key"`
	AnthropicModel  string `toml:"anthropic_model"`
	GoogleAPIKey    string `toml:"google_api_key"`
	GeminiModel     string `toml:"gemini_model"`
}

type CleanupConfig struct {
	Key      string `toml:"key"`
	Interval string `toml:"interval"`
}

type CheckConfig struct {
	ExcludeDomains []string `toml:"exclude_domains"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Notion  NotionConfig  `toml:"notion"`
	AI      AIConfig      `toml:"ai"`
	Cleanup CleanupConfig `toml:"cleanup"`
	Check   CheckConfig   `toml:"check"`
	Log     LogConfig     `toml:"log"`

	dir string
}

// DefaultPath returns ~/.config/blink/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "blink", DefaultConfigFileName), nil
}

// Load reads the config at path, creating it with defaults when missing,
// and applies environment overrides.
func Load(path string) (Config, error) {
	cfg, err := LoadOrCreate(path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// LoadOrCreate reads the config file, writing the defaults first if it
// doesn't exist.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	cfg.dir = filepath.Dir(path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	defaults := defaultConfig()
	if cfg.Storage.BlinksKey == "" {
		cfg.Storage.BlinksKey = defaults.Storage.BlinksKey
	}
	if cfg.Cleanup.Key == "" {
		cfg.Cleanup.Key = defaults.Cleanup.Key
	}
	if cfg.Cleanup.Interval == "" {
		cfg.Cleanup.Interval = defaults.Cleanup.Interval
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Check.ExcludeDomains == nil {
		cfg.Check.ExcludeDomains = defaults.Check.ExcludeDomains
	}
	return cfg, nil
}

// ApplyEnv overrides file values with non-empty environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"NOTION_API_TOKEN", &c.Notion.Token},
		{"NOTION_DATABASE_ID", &c.Notion.DatabaseID},
		{"ANTHROPIC_API_KEY", &c.AI.AnthropicAPIKey},
		{"GOOGLE_API_KEY", &c.AI.GoogleAPIKey},
		{"BLINK_BACKEND", &c.Storage.Backend},
		{"BLINK_LOG_LEVEL", &c.Log.Level},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(getenv(o.key)); v != "" {
			*o.dst = v
		}
	}
}

// Backend returns the storage backend to use.
func (c Config) Backend() string {
	if c.Storage.Backend != "" {
		return strings.ToLower(c.Storage.Backend)
	}
	if c.Notion.Token != "" && c.Notion.DatabaseID != "" {
		return "notion"
	}
	return "json"
}

// DataDir returns the directory for local data, expanding a leading ~.
func (c Config) DataDir() string {
	dir := c.Storage.DataDir
	if dir == "" {
		return c.dir
	}
	if strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[2:])
		}
	}
	return dir
}

// CleanupInterval parses the cleanup interval, defaulting to one hour.
func (c Config) CleanupInterval() time.Duration {
	d, err := time.ParseDuration(c.Cleanup.Interval)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	// may hold API tokens
	return os.WriteFile(path, data, 0o600)
}

func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			BlinksKey: DefaultBlinksKey,
		},
		Cleanup: CleanupConfig{
			Key:      DefaultCleanupKey,
			Interval: "1h",
		},
		Check: CheckConfig{
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Pretty: true,
		},
	}
}
