package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines client configuration.
type Config struct {
	Remote   RemoteConfig   `yaml:"remote"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
	Tracking TrackingConfig `yaml:"tracking"`
}

type RemoteConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// TrackingConfig seeds the persisted settings on first run.
type TrackingConfig struct {
	RoundTimes      bool `yaml:"round_times"`
	CalculateBreaks bool `yaml:"calculate_breaks"`
}

// Load reads configuration from an optional YAML file and environment
// variables.
func Load() (Config, error) {
	cfg := Config{
		Remote: RemoteConfig{
			BaseURL: "https://zeity.dev",
		},
		Storage: StorageConfig{
			Path: defaultStoragePath(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("ZEITY_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if baseURL := os.Getenv("ZEITY_REMOTE_URL"); baseURL != "" {
		cfg.Remote.BaseURL = baseURL
	}
	if token := os.Getenv("ZEITY_TOKEN"); token != "" {
		cfg.Remote.Token = token
	}
	if path := os.Getenv("ZEITY_STORAGE_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if level := os.Getenv("ZEITY_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if roundTimes := os.Getenv("ZEITY_ROUND_TIMES"); roundTimes != "" {
		value, err := strconv.ParseBool(roundTimes)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ZEITY_ROUND_TIMES: %w", err)
		}
		cfg.Tracking.RoundTimes = value
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "zeity.db"
	}
	return filepath.Join(dir, "zeity", "zeity.db")
}
