package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "propdesk.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PROPDESK_PORT")
	setString(&cfg.Server.CORSOrigin, "PROPDESK_CORS_ORIGIN")
	setString(&cfg.Backend.URL, "PROPDESK_BACKEND_URL")
	setString(&cfg.Backend.Token, "PROPDESK_BACKEND_TOKEN")
	setDuration(&cfg.Backend.Timeout, "PROPDESK_BACKEND_TIMEOUT")
	setDuration(&cfg.Cache.TTL, "PROPDESK_CACHE_TTL")
	setInt64(&cfg.Cache.L1MaxSizeMB, "PROPDESK_CACHE_L1_SIZE_MB")
	setString(&cfg.Cache.L2Bucket, "PROPDESK_CACHE_L2_BUCKET")
	setDuration(&cfg.Cache.L2TTL, "PROPDESK_CACHE_L2_TTL")
	setString(&cfg.NATS.URL, "NATS_URL")
	setInt(&cfg.Breaker.MaxFailures, "PROPDESK_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Cooldown, "PROPDESK_BREAKER_COOLDOWN")
	setString(&cfg.Logging.Level, "PROPDESK_LOG_LEVEL")
	setString(&cfg.Logging.Service, "PROPDESK_LOG_SERVICE")
	setDuration(&cfg.UI.DebounceDelay, "PROPDESK_UI_DEBOUNCE")
	setInt(&cfg.UI.PageSize, "PROPDESK_UI_PAGE_SIZE")
	setString(&cfg.UI.ExportDir, "PROPDESK_EXPORT_DIR")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Backend.URL == "" {
		return errors.New("backend.url is required")
	}
	if cfg.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be positive")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	if cfg.UI.PageSize < 1 {
		return errors.New("ui.page_size must be >= 1")
	}
	if cfg.Cache.L2Bucket != "" && cfg.NATS.URL == "" {
		return errors.New("nats.url is required when cache.l2_bucket is set")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
