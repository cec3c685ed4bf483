// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

// Package config loads Super Movie configuration from defaults, an optional
// YAML file, and environment variables (highest priority).
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Upstream UpstreamConfig `koanf:"upstream"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	Client   ClientConfig   `koanf:"client"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development" or "production"
}

// UpstreamConfig groups the three third-party APIs behind the aggregation endpoint
type UpstreamConfig struct {
	Movie      EndpointConfig `koanf:"movie"`
	Dictionary EndpointConfig `koanf:"dictionary"`
	Trivia     EndpointConfig `koanf:"trivia"`
	UserAgent  string         `koanf:"user_agent"`
}

// EndpointConfig describes one upstream API.
//
// RequestsPerSecond of 0 disables client-side pacing.
type EndpointConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// BreakerConfig controls the per-upstream circuit breakers
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"` // probes allowed while half-open
	Interval     time.Duration `koanf:"interval"`     // closed-state count reset period
	Timeout      time.Duration `koanf:"timeout"`      // open -> half-open delay
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SecurityConfig holds CORS and inbound rate limiting settings.
// Rate limiting is off unless explicitly enabled.
type SecurityConfig struct {
	CORSOrigins      []string      `koanf:"cors_origins"`
	RateLimitEnabled bool          `koanf:"rate_limit_enabled"`
	RateLimitReqs    int           `koanf:"rate_limit_reqs"`
	RateLimitWindow  time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ClientConfig is read by the supermovie CLI
type ClientConfig struct {
	ServerURL     string        `koanf:"server_url" json:"SUPERMOVIE_SERVER_URL" validate:"required,url"`
	FavoritesPath string        `koanf:"favorites_path" json:"FAVORITES_PATH" validate:"required"`
	Timeout       time.Duration `koanf:"timeout" json:"CLIENT_TIMEOUT" validate:"gt=0"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
