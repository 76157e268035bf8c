package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "bankview.yaml"

// Environment overrides.
const (
	EnvDataDir  = "BANKVIEW_DATA_DIR"
	EnvLogLevel = "BANKVIEW_LOG_LEVEL"
	EnvAPIKey   = "EXCHANGE_API_KEY"
)

// Config represents the top-level bankview.yaml configuration.
type Config struct {
	Data       DataConfig    `yaml:"data"`
	Display    DisplayConfig `yaml:"display"`
	Categories []string      `yaml:"categories,omitempty"`
	Rates      RatesConfig   `yaml:"rates"`
	Log        LogConfig     `yaml:"log"`
}

// DataConfig locates the transaction files.
type DataConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // json, csv or xlsx
}

// DisplayConfig controls console output.
type DisplayConfig struct {
	Limit int `yaml:"limit"` // 0 = no limit
}

// RatesConfig configures the currency conversion API.
type RatesConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"-"` // from EXCHANGE_API_KEY only
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a bankview.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads path if it exists, otherwise returns Default. Values
// from a .env file and the environment are applied on top.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.Rates.APIKey = v
	}
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:    "data",
			Format: "json",
		},
		Display: DisplayConfig{
			Limit: 10,
		},
		Rates: RatesConfig{
			BaseURL: "https://api.apilayer.com/exchangerates_data",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
