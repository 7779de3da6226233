// Package config provides hierarchical configuration loading for propdesk.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the propdesk service.
type Config struct {
	Server  Server  `yaml:"server"`
	Backend Backend `yaml:"backend"`
	Cache   Cache   `yaml:"cache"`
	NATS    NATS    `yaml:"nats"`
	Breaker Breaker `yaml:"breaker"`
	Logging Logging `yaml:"logging"`
	UI      UI      `yaml:"ui"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// Backend holds the external property-management API configuration.
type Backend struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// Cache holds query-cache configuration. The L2 tier is only active when a
// bucket name is set and NATS is reachable.
type Cache struct {
	TTL         time.Duration `yaml:"ttl"`
	L1MaxSizeMB int64         `yaml:"l1_max_size_mb"`
	L2Bucket    string        `yaml:"l2_bucket"`
	L2TTL       time.Duration `yaml:"l2_ttl"`
}

// NATS holds NATS JetStream configuration for the shared cache tier.
type NATS struct {
	URL string `yaml:"url"`
}

// Breaker holds circuit breaker configuration for outbound backend calls.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Cooldown    time.Duration `yaml:"cooldown"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// UI holds desk behavior configuration.
type UI struct {
	DebounceDelay time.Duration `yaml:"debounce_delay"`
	PageSize      int           `yaml:"page_size"`
	ExportDir     string        `yaml:"export_dir"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8080",
			CORSOrigin: "http://localhost:3000",
		},
		Backend: Backend{
			URL:     "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
		Cache: Cache{
			TTL:         5 * time.Minute,
			L1MaxSizeMB: 64,
			L2TTL:       5 * time.Minute,
		},
		NATS: NATS{
			URL: "nats://localhost:4222",
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Cooldown:    30 * time.Second,
		},
		Logging: Logging{
			Level:   "info",
			Service: "propdesk",
		},
		UI: UI{
			DebounceDelay: 300 * time.Millisecond,
			PageSize:      20,
			ExportDir:     ".",
		},
	}
}
