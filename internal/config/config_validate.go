// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package config

import (
	"fmt"
	"net/url"

	"github.com/tomtom215/supermovie/internal/validation"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateUpstreams,
		c.validateBreaker,
		c.validateSecurity,
		c.validateLogging,
		c.validateClient,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateUpstreams() error {
	endpoints := []struct {
		name string
		cfg  EndpointConfig
	}{
		{"OMDB", c.Upstream.Movie},
		{"DICTIONARY", c.Upstream.Dictionary},
		{"TRIVIA", c.Upstream.Trivia},
	}

	for _, ep := range endpoints {
		if ep.cfg.BaseURL == "" {
			return fmt.Errorf("%s_URL is required", ep.name)
		}
		if err := validateHTTPURL(ep.cfg.BaseURL, ep.name+"_URL"); err != nil {
			return fmt.Errorf("%s_URL is invalid: %w", ep.name, err)
		}
		if ep.cfg.Timeout <= 0 {
			return fmt.Errorf("%s_TIMEOUT must be positive", ep.name)
		}
		if ep.cfg.RequestsPerSecond < 0 {
			return fmt.Errorf("%s_RATE_LIMIT must not be negative", ep.name)
		}
		if ep.cfg.RequestsPerSecond > 0 && ep.cfg.Burst < 1 {
			return fmt.Errorf("%s_RATE_BURST must be at least 1 when %s_RATE_LIMIT is set", ep.name, ep.name)
		}
	}

	if c.Upstream.Movie.APIKey == "" {
		return fmt.Errorf("OMDB_API_KEY is required")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("CIRCUIT_BREAKER_RATIO must be in (0, 1], got %v", c.Breaker.FailureRatio)
	}
	if c.Breaker.MaxRequests == 0 {
		return fmt.Errorf("CIRCUIT_BREAKER_PROBES must be at least 1")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("CIRCUIT_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must not be empty")
	}
	if c.Server.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS wildcard (*) is not allowed when ENVIRONMENT=production")
			}
		}
	}

	if !c.Security.RateLimitEnabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateClient checks the CLI section through its struct tags, which name
// fields by their environment variable.
func (c *Config) validateClient() error {
	if err := validation.ValidateStruct(&c.Client); err != nil {
		return fmt.Errorf("client config: %w", err)
	}
	return nil
}

// validateHTTPURL accepts absolute http(s) URLs without query or fragment.
// Paths are allowed since some upstreams are addressed below a versioned prefix.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
