// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package api

// Error messages returned in the "error" field. Clients match on these
// strings, so they must not change.
const (
	MsgTitleRequired   = "Movie title is required"
	MsgMovieNotFound   = "Movie not found"
	MsgFetchFailed     = "Failed to fetch movie info"
	MsgTooManyRequests = "Too many requests"
)
