// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

// Package api provides the HTTP handlers and Chi routing for Super Movie.
package api

import (
	"context"
	"time"

	"github.com/tomtom215/supermovie/internal/models"
)

// Aggregator builds the combined movie response. Satisfied by
// *aggregator.Service.
type Aggregator interface {
	Aggregate(ctx context.Context, title string) (*models.AggregatedResponse, error)
}

// BreakerReporter exposes upstream circuit breaker state for health checks.
// Satisfied by *upstream.Sources.
type BreakerReporter interface {
	BreakerStates() map[string]string
	AnyBreakerOpen() bool
}

// Handler contains dependencies for API handlers
type Handler struct {
	aggregator Aggregator
	breakers   BreakerReporter
	version    string
	startTime  time.Time

	// requestTimeout bounds one aggregation, 0 means no bound.
	requestTimeout time.Duration
}

// NewHandler creates a new API handler. breakers may be nil, in which case
// the service always reports healthy.
func NewHandler(agg Aggregator, breakers BreakerReporter, version string) *Handler {
	return &Handler{
		aggregator: agg,
		breakers:   breakers,
		version:    version,
		startTime:  time.Now(),
	}
}

// SetRequestTimeout bounds each aggregation so a slow upstream still ends in
// a 500 body before the server's write deadline.
func (h *Handler) SetRequestTimeout(d time.Duration) {
	h.requestTimeout = d
}
