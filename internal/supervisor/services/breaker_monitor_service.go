// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package services

import (
	"context"
	"time"

	"github.com/tomtom215/supermovie/internal/logging"
)

// BreakerStateReader reads every upstream breaker's state. Reading a breaker
// lets an expired open state move to half-open, which fires the state change
// hook and refreshes the circuit_breaker_state gauge.
//
// Satisfied by *upstream.Sources.
type BreakerStateReader interface {
	BreakerStates() map[string]string
}

// BreakerMonitorService polls breaker state on a fixed interval so the
// metrics reflect an open circuit recovering even when no traffic arrives.
type BreakerMonitorService struct {
	reader   BreakerStateReader
	interval time.Duration
	name     string
}

// NewBreakerMonitorService creates the monitor. A non-positive interval means 15s.
func NewBreakerMonitorService(reader BreakerStateReader, interval time.Duration) *BreakerMonitorService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &BreakerMonitorService{
		reader:   reader,
		interval: interval,
		name:     "breaker-monitor",
	}
}

// Serve implements suture.Service.
func (s *BreakerMonitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	last := s.reader.BreakerStates()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			current := s.reader.BreakerStates()
			for name, state := range current {
				if state != "closed" && state != last[name] {
					logging.Warn().Str("breaker", name).Str("state", state).Msg("Upstream circuit not closed")
				}
			}
			last = current
		}
	}
}

// String implements fmt.Stringer.
func (s *BreakerMonitorService) String() string {
	return s.name
}
