// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package upstream

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tomtom215/supermovie/internal/config"
)

// TriviaClient fetches one random trivia fact per call.
type TriviaClient struct {
	http *httpClient
}

// NewTriviaClient creates a trivia client from endpoint configuration.
func NewTriviaClient(cfg config.EndpointConfig, userAgent string) *TriviaClient {
	return &TriviaClient{http: newHTTPClient(NameTrivia, cfg, userAgent)}
}

// RandomFact returns the plain-text trivia sentence exactly as served.
func (c *TriviaClient) RandomFact(ctx context.Context) (fact string, err error) {
	start := time.Now()
	defer func() { c.http.observe(start, err) }()

	reqURL := strings.TrimRight(c.http.baseURL, "/") + "/random/trivia"

	body, err := c.http.get(ctx, reqURL, "text/plain")
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxFactBodySize))
	if err != nil {
		return "", fmt.Errorf("%s failed to read response: %w", NameTrivia, err)
	}
	return string(data), nil
}
