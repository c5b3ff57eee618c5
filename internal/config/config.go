package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings of the recipe browser.
type Config struct {
	APIBaseURL        string
	Category          string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	ImageCacheEntries int
	LogFile           string
}

const (
	defaultConfigPath        = "~/.config/recipes/config.toml"
	defaultAPIBaseURL        = "https://www.themealdb.com/api/json/v1/1/"
	defaultCategory          = "Dessert"
	defaultRequestTimeout    = 10 * time.Second
	defaultRequestsPerSecond = 4
	defaultImageCacheEntries = 256
	defaultLogFile           = "~/.local/state/recipes/recipes.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBaseURL:        defaultAPIBaseURL,
		Category:          defaultCategory,
		RequestTimeout:    defaultRequestTimeout,
		RequestsPerSecond: defaultRequestsPerSecond,
		ImageCacheEntries: defaultImageCacheEntries,
		LogFile:           mustExpand(defaultLogFile),
	}
}

type fileConfig struct {
	APIBaseURL            string `toml:"api_base_url"`
	Category              string `toml:"category"`
	RequestTimeoutSeconds *int   `toml:"request_timeout_seconds"`
	RequestsPerSecond     *int   `toml:"requests_per_second"`
	ImageCacheEntries     *int   `toml:"image_cache_entries"`
	LogFile               string `toml:"log_file"`
}

// Load reads the config at path, or the default location when path is empty.
// A missing file yields Default.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(raw.Category); v != "" {
		cfg.Category = v
	}
	if raw.RequestTimeoutSeconds != nil {
		if *raw.RequestTimeoutSeconds <= 0 {
			return Config{}, fmt.Errorf("request_timeout_seconds must be positive, got %d", *raw.RequestTimeoutSeconds)
		}
		cfg.RequestTimeout = time.Duration(*raw.RequestTimeoutSeconds) * time.Second
	}
	if raw.RequestsPerSecond != nil {
		if *raw.RequestsPerSecond < 0 {
			return Config{}, fmt.Errorf("requests_per_second must not be negative, got %d", *raw.RequestsPerSecond)
		}
		cfg.RequestsPerSecond = float64(*raw.RequestsPerSecond)
	}
	if raw.ImageCacheEntries != nil {
		if *raw.ImageCacheEntries <= 0 {
			return Config{}, fmt.Errorf("image_cache_entries must be positive, got %d", *raw.ImageCacheEntries)
		}
		cfg.ImageCacheEntries = *raw.ImageCacheEntries
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}
