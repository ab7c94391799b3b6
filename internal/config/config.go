package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked up when no path is given.
const DefaultPath = "tagdeck.yaml"

// Modes accepted by UI.StartMode.
const (
	ModeRandom = "random"
	ModeSearch = "search"
)

// Config holds all tagdeck configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	UI      UIConfig      `yaml:"ui"`
	Random  ModeConfig    `yaml:"random"`
	Search  ModeConfig    `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig says where the tag dataset comes from.
type DataConfig struct {
	Source       string `yaml:"source"` // file path or http(s) URL
	FetchTimeout string `yaml:"fetch_timeout"`
}

// UIConfig tunes the terminal UI.
type UIConfig struct {
	StartMode      string `yaml:"start_mode"`
	ResultLimit    int    `yaml:"result_limit"`
	RevealInterval string `yaml:"reveal_interval"`
	ScoreAnimation string `yaml:"score_animation"`
}

// ModeConfig holds per-mode group defaults.
type ModeConfig struct {
	ExcludedGroups []string `yaml:"excluded_groups"`
}

// LoggingConfig configures the zap logger. An empty File disables logging.
type LoggingConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Source:       "data/danbooru_tag_data_rated.csv",
			FetchTimeout: "30s",
		},
		UI: UIConfig{
			StartMode:      ModeRandom,
			ResultLimit:    100,
			RevealInterval: "150ms",
			ScoreAnimation: "600ms",
		},
		Random: ModeConfig{
			ExcludedGroups: []string{"キャラクター", "版権"},
		},
		Search: ModeConfig{},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path on top of the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the program cannot run with.
func (c *Config) Validate() error {
	if c.Data.Source == "" {
		return fmt.Errorf("data.source is required")
	}
	if c.UI.StartMode != ModeRandom && c.UI.StartMode != ModeSearch {
		return fmt.Errorf("ui.start_mode must be %q or %q, got %q", ModeRandom, ModeSearch, c.UI.StartMode)
	}
	if c.UI.ResultLimit <= 0 {
		return fmt.Errorf("ui.result_limit must be positive")
	}
	for name, value := range map[string]string{
		"data.fetch_timeout": c.Data.FetchTimeout,
		"ui.reveal_interval": c.UI.RevealInterval,
		"ui.score_animation": c.UI.ScoreAnimation,
	} {
		if value == "" {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// GetFetchTimeout returns the dataset fetch timeout.
func (c *Config) GetFetchTimeout() time.Duration {
	return parseDuration(c.Data.FetchTimeout, 30*time.Second)
}

// GetRevealInterval returns the delay between successive card reveals.
func (c *Config) GetRevealInterval() time.Duration {
	return parseDuration(c.UI.RevealInterval, 150*time.Millisecond)
}

// GetScoreAnimation returns how long the score takes to count to a new value.
func (c *Config) GetScoreAnimation() time.Duration {
	return parseDuration(c.UI.ScoreAnimation, 600*time.Millisecond)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
