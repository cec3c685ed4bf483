// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package aggregator

import "errors"

var (
	// ErrMissingParameter is returned for an empty title. No upstream is called.
	ErrMissingParameter = errors.New("movie title is required")

	// ErrNotFound is returned when the metadata API has no record for the title.
	ErrNotFound = errors.New("movie not found")
)

// DependencyError reports any failure of the movie, dictionary, or trivia
// lookups other than a clean not-found. Callers see one kind of error no
// matter which upstream failed; Unwrap exposes the cause for logging.
type DependencyError struct {
	Err error
}

func (e *DependencyError) Error() string {
	return e.Err.Error()
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
