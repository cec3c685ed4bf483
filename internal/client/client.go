// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

// Package client calls the Super Movie aggregation endpoint the way the
// browser page does: an empty title is replaced by a random example title,
// a 429 becomes ErrRateLimited, and any other failure carries the server's
// error message or a generic fallback.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/supermovie/internal/models"
)

// RandomTitles are looked up when the caller gives no title.
var RandomTitles = []string{
	"Inception",
	"The Matrix",
	"Pulp Fiction",
	"The Shawshank Redemption",
	"Interstellar",
	"Forrest Gump",
	"The Dark Knight",
}

// GenericErrorMessage is shown when the server gave no error message.
const GenericErrorMessage = "Error fetching data"

// DefaultTimeout leaves room for the server's own request budget.
const DefaultTimeout = 45 * time.Second

// EndpointPath is the aggregation endpoint relative to the server URL.
const EndpointPath = "/api/super-movie"

// ErrRateLimited is returned for an HTTP 429 from any layer.
var ErrRateLimited = errors.New("Too many requests! Please wait a moment and try again.") //nolint:staticcheck // shown to users verbatim

// APIError is any failed lookup other than a rate limit.
type APIError struct {
	StatusCode int // 0 when no response arrived
	Message    string
	Details    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRand sets the source used to pick a random title.
func WithRand(r *rand.Rand) Option {
	return func(c *Client) { c.rng = r }
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a client for the server at baseURL (e.g. http://localhost:3000).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := uint64(time.Now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed>>1|1)) //nolint:gosec // title choice is not security sensitive
	}
	return c
}

// PickTitle returns title trimmed, or a random example title when that is empty.
func (c *Client) PickTitle(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return RandomTitles[c.rng.IntN(len(RandomTitles))]
}

// Lookup fetches the aggregated result for title.
func (c *Client) Lookup(ctx context.Context, title string) (*models.AggregatedResponse, error) {
	title = c.PickTitle(title)
	reqURL := c.baseURL + EndpointPath + "?title=" + url.QueryEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, &APIError{Message: GenericErrorMessage, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Message: GenericErrorMessage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var out models.AggregatedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: GenericErrorMessage, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &out, nil
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: GenericErrorMessage}

	var body models.ErrorResponse
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil || json.Unmarshal(data, &body) != nil {
		return apiErr
	}
	if body.Error != "" {
		apiErr.Message = body.Error
	}
	apiErr.Details = body.Details
	return apiErr
}
