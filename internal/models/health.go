// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package models

import "time"

// HealthStatus is the body of the health endpoints.
//
// Status is "healthy" when every upstream circuit is closed or half-open and
// "degraded" when at least one is open.
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    float64           `json:"uptime_seconds"`
	Breakers  map[string]string `json:"circuit_breakers,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
