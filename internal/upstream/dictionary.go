// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/supermovie/internal/config"
	"github.com/tomtom215/supermovie/internal/models"
)

// ErrNoDictionaryEntry is returned when the dictionary answers with an empty array.
var ErrNoDictionaryEntry = errors.New("dictionary returned no entries")

// DictionaryClient fetches word definitions.
type DictionaryClient struct {
	http *httpClient
}

// NewDictionaryClient creates a dictionary client from endpoint configuration.
func NewDictionaryClient(cfg config.EndpointConfig, userAgent string) *DictionaryClient {
	return &DictionaryClient{http: newHTTPClient(NameDictionary, cfg, userAgent)}
}

// Define returns the first dictionary entry for word.
func (c *DictionaryClient) Define(ctx context.Context, word string) (entry *models.DictionaryEntry, err error) {
	start := time.Now()
	defer func() { c.http.observe(start, err) }()

	reqURL := strings.TrimRight(c.http.baseURL, "/") + "/" + url.PathEscape(word)

	body, err := c.http.get(ctx, reqURL, "application/json")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var entries []models.DictionaryEntry
	if err := json.NewDecoder(body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%s failed to decode response: %w", NameDictionary, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s %q: %w", NameDictionary, word, ErrNoDictionaryEntry)
	}

	return &entries[0], nil
}
