// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

/*
Package upstream contains the HTTP clients for the three third-party APIs
behind the aggregation endpoint:

  - OMDb: movie metadata lookup by exact title (static API key)
  - dictionaryapi.dev: word definitions
  - numbersapi: random trivia facts (plain text)

Every client honours the request context, a per-endpoint HTTP timeout, and an
optional outbound pacing limiter (golang.org/x/time/rate, disabled unless
requests_per_second is set). Clients never retry. Each one can be wrapped in a
sony/gobreaker circuit breaker via NewSources.
*/
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/supermovie/internal/config"
	"github.com/tomtom215/supermovie/internal/metrics"
)

// Upstream names used in errors, metrics, and breaker names.
const (
	NameOMDb       = "omdb"
	NameDictionary = "dictionary"
	NameTrivia     = "trivia"
)

// maxErrorBodySize limits how much of an error response is kept for diagnostics
const maxErrorBodySize = 64 * 1024

// maxFactBodySize bounds the plain-text trivia payload
const maxFactBodySize = 64 * 1024

// ErrMovieNotFound is returned when the metadata API reports no match for a title.
var ErrMovieNotFound = errors.New("movie not found")

// StatusError is returned for any non-200 upstream response.
type StatusError struct {
	Upstream   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Upstream, e.StatusCode, e.Body)
}

// readBodyForError reads at most maxErrorBodySize bytes for error reporting
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// httpClient is the transport shared by the three upstream clients.
type httpClient struct {
	name      string
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

func newHTTPClient(name string, cfg config.EndpointConfig, userAgent string) *httpClient {
	c := &httpClient{
		name:      name,
		baseURL:   cfg.BaseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}
	return c
}

// get issues a GET and returns the body of a 200 response. The caller closes it.
func (c *httpClient) get(ctx context.Context, reqURL, accept string) (io.ReadCloser, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s rate limiter: %w", c.name, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%s create request failed: %w", c.name, err)
	}
	req.Header.Set("Accept", accept)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.name, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, &StatusError{
			Upstream:   c.name,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	return resp.Body, nil
}

// observe records the outcome of one upstream call.
func (c *httpClient) observe(start time.Time, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, ErrMovieNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	metrics.RecordUpstreamRequest(c.name, outcome, time.Since(start))
}
