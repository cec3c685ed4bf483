// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/supermovie/internal/logging"
	"github.com/tomtom215/supermovie/internal/metrics"
	"github.com/tomtom215/supermovie/internal/models"
	"github.com/tomtom215/supermovie/internal/validation"
)

// favoritesKey holds the whole list.
var favoritesKey = []byte("favorites")

// DefaultMaxRetries bounds how often a conflicting write is retried.
const DefaultMaxRetries = 5

var _ Store = (*BadgerStore)(nil)

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db         *badger.DB
	maxRetries int
}

// Open opens (creating if needed) the store in dir.
func Open(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open favorites db: %w", err)
	}
	return NewBadgerStore(db), nil
}

// OpenInMemory opens a store that is discarded on Close.
func OpenInMemory() (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open in-memory favorites db: %w", err)
	}
	return NewBadgerStore(db), nil
}

// NewBadgerStore wraps an open database. The store owns db and closes it.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, maxRetries: DefaultMaxRetries}
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) Toggle(ctx context.Context, movie models.MovieRecord) (added bool, err error) {
	defer func() { metrics.RecordFavoritesOperation("toggle", err) }()

	if verr := validation.ValidateStruct(&movie); verr != nil {
		return false, ErrInvalidMovie
	}

	err = s.update(ctx, func(l *list) bool {
		if i := l.index(movie.Title); i >= 0 {
			l.remove(i)
			added = false
			return true
		}
		l.Items = append(l.Items, movie)
		added = true
		return true
	})
	return added, err
}

func (s *BadgerStore) Remove(ctx context.Context, title string) (removed bool, err error) {
	defer func() { metrics.RecordFavoritesOperation("remove", err) }()

	err = s.update(ctx, func(l *list) bool {
		i := l.index(title)
		removed = i >= 0
		if removed {
			l.remove(i)
		}
		return removed
	})
	return removed, err
}

func (s *BadgerStore) IsFavorite(ctx context.Context, title string) (bool, error) {
	l, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return l.index(title) >= 0, nil
}

func (s *BadgerStore) List(ctx context.Context) (items []models.MovieRecord, err error) {
	defer func() { metrics.RecordFavoritesOperation("list", err) }()

	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if l.Items == nil {
		return []models.MovieRecord{}, nil
	}
	return l.Items, nil
}

func (s *BadgerStore) Version(ctx context.Context) (uint64, error) {
	l, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return l.Version, nil
}

func (s *BadgerStore) load(ctx context.Context) (*list, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var l *list
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		l, err = readList(txn)
		return err
	})
	return l, err
}

// update applies mutate to the stored list inside a read-write transaction.
// mutate returns false when it changed nothing, which skips the write and
// leaves the version alone.
func (s *BadgerStore) update(ctx context.Context, mutate func(*list) bool) error {
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.db.Update(func(txn *badger.Txn) error {
			l, err := readList(txn)
			if err != nil {
				return err
			}
			if !mutate(l) {
				return nil
			}
			l.Version++

			data, err := json.Marshal(l)
			if err != nil {
				return fmt.Errorf("marshal favorites: %w", err)
			}
			return txn.Set(favoritesKey, data)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}

		logging.Debug().Int("attempt", attempt+1).Msg("Favorites write conflict, retrying")
	}
	return ErrConcurrentUpdate
}

func readList(txn *badger.Txn) (*list, error) {
	l := &list{}
	item, err := txn.Get(favoritesKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, l)
	})
	if err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	return l, nil
}
