// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package upstream

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/supermovie/internal/config"
	"github.com/tomtom215/supermovie/internal/models"
)

// OMDbClient looks movies up by exact title.
type OMDbClient struct {
	http   *httpClient
	apiKey string
}

// NewOMDbClient creates an OMDb client from endpoint configuration.
func NewOMDbClient(cfg config.EndpointConfig, userAgent string) *OMDbClient {
	return &OMDbClient{
		http:   newHTTPClient(NameOMDb, cfg, userAgent),
		apiKey: cfg.APIKey,
	}
}

// LookupMovie fetches the movie whose title matches exactly.
// Returns ErrMovieNotFound when OMDb answers Response "False".
func (c *OMDbClient) LookupMovie(ctx context.Context, title string) (record *models.MovieRecord, err error) {
	start := time.Now()
	defer func() { c.http.observe(start, err) }()

	reqURL, err := c.buildURL(title)
	if err != nil {
		return nil, err
	}

	body, err := c.http.get(ctx, reqURL, "application/json")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var resp models.OMDbResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%s failed to decode response: %w", NameOMDb, err)
	}

	if !resp.Found() {
		if resp.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrMovieNotFound, resp.Error)
		}
		return nil, ErrMovieNotFound
	}

	movie := resp.ToMovieRecord()
	return &movie, nil
}

func (c *OMDbClient) buildURL(title string) (string, error) {
	u, err := url.Parse(c.http.baseURL)
	if err != nil {
		return "", fmt.Errorf("%s invalid base URL: %w", NameOMDb, err)
	}
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	u.RawQuery = params.Encode()
	return u.String(), nil
}
