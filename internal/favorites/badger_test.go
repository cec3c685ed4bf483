// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package favorites

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/supermovie/internal/models"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()

	store, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func movie(title string) models.MovieRecord {
	return models.MovieRecord{Title: title, Year: "1999", Actors: []string{"Keanu Reeves"}}
}

func titles(items []models.MovieRecord) []string {
	out := make([]string, len(items))
	for i, m := range items {
		out[i] = m.Title
	}
	return out
}

func TestBadgerStore_ToggleAddsAndRemoves(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	added, err := store.Toggle(ctx, movie("The Matrix"))
	if err != nil || !added {
		t.Fatalf("Toggle() = %v, %v; want added", added, err)
	}
	if ok, _ := store.IsFavorite(ctx, "The Matrix"); !ok {
		t.Error("IsFavorite() = false after add")
	}

	added, err = store.Toggle(ctx, movie("The Matrix"))
	if err != nil || added {
		t.Fatalf("second Toggle() = %v, %v; want removed", added, err)
	}
	if ok, _ := store.IsFavorite(ctx, "The Matrix"); ok {
		t.Error("IsFavorite() = true after removal")
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("List() = %v, want empty non-nil slice", items)
	}
}

func TestBadgerStore_ListKeepsInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"Inception", "Heat", "Alien", "Heat", "Up"} {
		if _, err := store.Toggle(ctx, movie(title)); err != nil {
			t.Fatalf("Toggle(%q) error = %v", title, err)
		}
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	got := fmt.Sprint(titles(items))
	if got != "[Inception Alien Up]" {
		t.Errorf("List() titles = %s, want [Inception Alien Up]", got)
	}
	if items[0].Year != "1999" || len(items[0].Actors) != 1 {
		t.Errorf("stored record lost fields: %+v", items[0])
	}
}

func TestBadgerStore_Remove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, _ = store.Toggle(ctx, movie("Heat"))
	v1, _ := store.Version(ctx)

	removed, err := store.Remove(ctx, "Alien")
	if err != nil || removed {
		t.Errorf("Remove(missing) = %v, %v", removed, err)
	}
	if v, _ := store.Version(ctx); v != v1 {
		t.Errorf("version changed on no-op remove: %d -> %d", v1, v)
	}

	removed, err = store.Remove(ctx, "Heat")
	if err != nil || !removed {
		t.Errorf("Remove(Heat) = %v, %v", removed, err)
	}
}

func TestBadgerStore_VersionIncrements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if v, err := store.Version(ctx); err != nil || v != 0 {
		t.Fatalf("Version() on empty store = %d, %v", v, err)
	}
	for i, title := range []string{"A", "B", "A"} {
		if _, err := store.Toggle(ctx, movie(title)); err != nil {
			t.Fatal(err)
		}
		if v, _ := store.Version(ctx); v != uint64(i+1) {
			t.Errorf("Version() after %d writes = %d", i+1, v)
		}
	}
}

func TestBadgerStore_InvalidMovie(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Toggle(context.Background(), models.MovieRecord{}); !errors.Is(err, ErrInvalidMovie) {
		t.Errorf("Toggle(empty) error = %v, want ErrInvalidMovie", err)
	}
}

func TestBadgerStore_CanceledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Toggle(ctx, movie("Heat")); !errors.Is(err, context.Canceled) {
		t.Errorf("Toggle() error = %v, want context.Canceled", err)
	}
	if _, err := store.List(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("List() error = %v, want context.Canceled", err)
	}
}

func TestBadgerStore_ConcurrentToggles(t *testing.T) {
	store := newTestStore(t)
	store.maxRetries = 100
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Toggle(ctx, movie(fmt.Sprintf("Movie %02d", i))); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Toggle() error = %v", err)
	}

	items, _ := store.List(ctx)
	if len(items) != n {
		t.Errorf("List() has %d items, want %d", len(items), n)
	}
	if v, _ := store.Version(ctx); v != n {
		t.Errorf("Version() = %d, want %d (one per committed toggle)", v, n)
	}
}

func TestBadgerStore_ConflictExhaustsRetries(t *testing.T) {
	store := newTestStore(t)
	store.maxRetries = 2
	ctx := context.Background()

	attempts := 0
	err := store.update(ctx, func(l *list) bool {
		attempts++
		// A write committed after this transaction started makes its commit conflict.
		if err := store.db.Update(func(txn *badger.Txn) error {
			return txn.Set(favoritesKey, []byte(`{"version":99,"items":[]}`))
		}); err != nil {
			t.Fatalf("interfering write failed: %v", err)
		}
		l.Items = append(l.Items, movie("Heat"))
		return true
	})

	if !errors.Is(err, ErrConcurrentUpdate) {
		t.Fatalf("update() error = %v, want ErrConcurrentUpdate", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 (1 + 2 retries)", attempts)
	}
}

func TestOpen_Persists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := store.Toggle(ctx, movie("Interstellar")); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	if ok, _ := reopened.IsFavorite(ctx, "Interstellar"); !ok {
		t.Error("favorite lost across reopen")
	}
}
