// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

// Package favorites stores the CLI's local list of favorite movies.
//
// The list is ordered by insertion and keyed by title. It lives under a
// single BadgerDB key so every change is one read-modify-write transaction.
// Badger's optimistic concurrency detects a concurrent writer at commit;
// the change is then retried a bounded number of times before failing with
// ErrConcurrentUpdate. Each committed list carries a version one higher than
// the list it replaced.
package favorites

import (
	"context"
	"errors"

	"github.com/tomtom215/supermovie/internal/models"
)

var (
	// ErrConcurrentUpdate is returned when a write kept conflicting with
	// other writers after every retry.
	ErrConcurrentUpdate = errors.New("favorites: concurrent update, try again")

	// ErrInvalidMovie is returned for a movie without a title.
	ErrInvalidMovie = errors.New("favorites: movie title is required")
)

// Store is an ordered set of movies keyed by title.
type Store interface {
	// Toggle adds movie if no favorite has its title and removes it
	// otherwise. It reports whether the movie is a favorite afterwards.
	Toggle(ctx context.Context, movie models.MovieRecord) (bool, error)

	// Remove deletes the favorite with title and reports whether it existed.
	Remove(ctx context.Context, title string) (bool, error)

	// IsFavorite reports whether a favorite has title.
	IsFavorite(ctx context.Context, title string) (bool, error)

	// List returns the favorites in insertion order.
	List(ctx context.Context) ([]models.MovieRecord, error)

	// Version returns the version stamp of the stored list, 0 if none.
	Version(ctx context.Context) (uint64, error)

	Close() error
}

// list is the stored value.
type list struct {
	Version uint64               `json:"version"`
	Items   []models.MovieRecord `json:"items"`
}

func (l *list) index(title string) int {
	for i := range l.Items {
		if l.Items[i].Title == title {
			return i
		}
	}
	return -1
}

func (l *list) remove(i int) {
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
}
