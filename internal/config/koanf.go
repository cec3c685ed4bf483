// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, first match wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/supermovie/config.yaml",
	"/etc/supermovie/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        3000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Upstream: UpstreamConfig{
			Movie: EndpointConfig{
				BaseURL: "https://www.omdbapi.com/",
				APIKey:  "2a212831",
				Timeout: 30 * time.Second,
			},
			Dictionary: EndpointConfig{
				BaseURL: "https://api.dictionaryapi.dev/api/v2/entries/en",
				Timeout: 30 * time.Second,
			},
			Trivia: EndpointConfig{
				BaseURL: "http://numbersapi.com",
				Timeout: 30 * time.Second,
			},
			UserAgent: "supermovie/1.0",
		},
		Breaker: BreakerConfig{
			Enabled:      true,
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      2 * time.Minute,
			MinRequests:  10,
			FailureRatio: 0.6,
		},
		Security: SecurityConfig{
			CORSOrigins:      []string{"*"},
			RateLimitEnabled: false,
			RateLimitReqs:    100,
			RateLimitWindow:  time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Client: ClientConfig{
			ServerURL:     "http://localhost:3000",
			FavoritesPath: defaultFavoritesPath(),
			// Past the server's 30s request budget, so its 500 body arrives first.
			Timeout: 45 * time.Second,
		},
	}
}

func defaultFavoritesPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/supermovie/favorites"
	}
	return ".supermovie/favorites"
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	return loadFrom(findConfigFile())
}

// LoadFile is LoadWithKoanf with an explicit config file path. An empty path
// falls back to the default search.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		path = findConfigFile()
	}
	return loadFrom(path)
}

func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Upstreams
	"omdb_url":                 "upstream.movie.base_url",
	"omdb_api_key":             "upstream.movie.api_key",
	"omdb_timeout":             "upstream.movie.timeout",
	"omdb_rate_limit":          "upstream.movie.requests_per_second",
	"omdb_rate_burst":          "upstream.movie.burst",
	"dictionary_url":           "upstream.dictionary.base_url",
	"dictionary_timeout":       "upstream.dictionary.timeout",
	"dictionary_rate_limit":    "upstream.dictionary.requests_per_second",
	"dictionary_rate_burst":    "upstream.dictionary.burst",
	"trivia_url":               "upstream.trivia.base_url",
	"trivia_timeout":           "upstream.trivia.timeout",
	"trivia_rate_limit":        "upstream.trivia.requests_per_second",
	"trivia_rate_burst":        "upstream.trivia.burst",
	"upstream_user_agent":      "upstream.user_agent",
	"circuit_breaker_enabled":  "breaker.enabled",
	"circuit_breaker_probes":   "breaker.max_requests",
	"circuit_breaker_interval": "breaker.interval",
	"circuit_breaker_timeout":  "breaker.timeout",
	"circuit_breaker_min_reqs": "breaker.min_requests",
	"circuit_breaker_ratio":    "breaker.failure_ratio",

	// Security
	"cors_origins":        "security.cors_origins",
	"enable_rate_limit":   "security.rate_limit_enabled",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// CLI client
	"supermovie_server_url": "client.server_url",
	"favorites_path":        "client.favorites_path",
	"client_timeout":        "client.timeout",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" and are ignored.
//
//	OMDB_API_KEY -> upstream.movie.api_key
//	HTTP_PORT    -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
