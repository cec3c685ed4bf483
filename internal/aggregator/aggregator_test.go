// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package aggregator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tomtom215/supermovie/internal/models"
	"github.com/tomtom215/supermovie/internal/upstream"
)

type fakeMovies struct {
	calls atomic.Int32
	err   error
}

func (f *fakeMovies) LookupMovie(_ context.Context, title string) (*models.MovieRecord, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &models.MovieRecord{
		Title:    title,
		Year:     "2010",
		Director: "Christopher Nolan",
		Actors:   models.SplitActors("Leonardo DiCaprio, Joseph Gordon-Levitt, Elliot Page"),
		Plot:     "A thief who steals corporate secrets.",
		Poster:   "https://example.com/poster.jpg",
		Rating:   "8.8",
	}, nil
}

type fakeDictionary struct {
	calls atomic.Int32
	err   error
	entry *models.DictionaryEntry

	mu    sync.Mutex
	words []string
}

func (f *fakeDictionary) Define(_ context.Context, word string) (*models.DictionaryEntry, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.words = append(f.words, word)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.entry != nil {
		return f.entry, nil
	}
	return &models.DictionaryEntry{
		Word: word,
		Meanings: []models.DictionaryMeaning{{
			PartOfSpeech: "adjective",
			Definitions:  []models.DictionaryDefinition{{Definition: "definition of " + word}},
		}},
	}, nil
}

type fakeTrivia struct {
	calls atomic.Int32
	err   error
}

func (f *fakeTrivia) RandomFact(context.Context) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return "7 is the number of wonders of the ancient world.", nil
}

type fakes struct {
	movies *fakeMovies
	dict   *fakeDictionary
	trivia *fakeTrivia
}

func newTestService(opts ...Option) (*Service, *fakes) {
	f := &fakes{movies: &fakeMovies{}, dict: &fakeDictionary{}, trivia: &fakeTrivia{}}
	svc := New(&upstream.Sources{Movie: f.movies, Dictionary: f.dict, Trivia: f.trivia}, opts...)
	return svc, f
}

func TestAggregate_Success(t *testing.T) {
	t.Parallel()

	svc, f := newTestService(WithRand(rand.New(rand.NewPCG(1, 2))))

	resp, err := svc.Aggregate(context.Background(), "Inception")
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if resp.Title != "Inception" || resp.Rating != "8.8" || resp.Director != "Christopher Nolan" {
		t.Errorf("unexpected movie fields %+v", resp.MovieRecord)
	}
	if len(resp.Actors) != 3 || resp.Actors[2] != "Elliot Page" {
		t.Errorf("Actors = %q", resp.Actors)
	}
	if resp.FunFact != "7 is the number of wonders of the ancient world." {
		t.Errorf("FunFact = %q", resp.FunFact)
	}
	if resp.RandomMovieImage != "https://picsum.photos/seed/Inception/600/400" {
		t.Errorf("RandomMovieImage = %q", resp.RandomMovieImage)
	}

	wod := resp.WordOfTheDay
	if wod.Meaning != "definition of "+wod.Word {
		t.Errorf("Meaning = %q for word %q", wod.Meaning, wod.Word)
	}
	if wod.Example != models.NoExampleFallback {
		t.Errorf("Example = %q, want fallback", wod.Example)
	}
	if f.movies.calls.Load() != 1 || f.dict.calls.Load() != 1 || f.trivia.calls.Load() != 1 {
		t.Errorf("calls movie=%d dict=%d trivia=%d, want 1 each",
			f.movies.calls.Load(), f.dict.calls.Load(), f.trivia.calls.Load())
	}
}

func TestAggregate_MissingTitle(t *testing.T) {
	t.Parallel()

	svc, f := newTestService()

	_, err := svc.Aggregate(context.Background(), "")
	if !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("error = %v, want ErrMissingParameter", err)
	}
	if n := f.movies.calls.Load() + f.dict.calls.Load() + f.trivia.calls.Load(); n != 0 {
		t.Errorf("upstream calls = %d, want 0", n)
	}
}

func TestAggregate_NotFoundSkipsWordAndFact(t *testing.T) {
	t.Parallel()

	svc, f := newTestService()
	f.movies.err = fmt.Errorf("%w: Movie not found!", upstream.ErrMovieNotFound)

	_, err := svc.Aggregate(context.Background(), "asdkjhasd")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	var depErr *DependencyError
	if errors.As(err, &depErr) {
		t.Error("not-found must not be reported as a dependency error")
	}
	if f.dict.calls.Load() != 0 || f.trivia.calls.Load() != 0 {
		t.Errorf("dict=%d trivia=%d, want no word or fact lookups", f.dict.calls.Load(), f.trivia.calls.Load())
	}
}

func TestAggregate_DependencyFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")

	tests := []struct {
		name  string
		setup func(*fakes)
		cause error
	}{
		{"movie lookup", func(f *fakes) { f.movies.err = boom }, boom},
		{"dictionary", func(f *fakes) { f.dict.err = boom }, boom},
		{"trivia", func(f *fakes) { f.trivia.err = boom }, boom},
		{"dictionary empty", func(f *fakes) { f.dict.err = upstream.ErrNoDictionaryEntry }, upstream.ErrNoDictionaryEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, f := newTestService()
			tt.setup(f)

			resp, err := svc.Aggregate(context.Background(), "The Matrix")
			if resp != nil {
				t.Errorf("resp = %+v, want nil", resp)
			}
			var depErr *DependencyError
			if !errors.As(err, &depErr) {
				t.Fatalf("error = %v (%T), want *DependencyError", err, err)
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("error %v does not wrap %v", err, tt.cause)
			}
			if !strings.Contains(depErr.Error(), tt.cause.Error()) {
				t.Errorf("Error() = %q, want it to contain %q", depErr.Error(), tt.cause.Error())
			}
		})
	}
}

func TestAggregate_WordOfDayExample(t *testing.T) {
	t.Parallel()

	svc, f := newTestService()
	f.dict.entry = &models.DictionaryEntry{
		Word: "noir",
		Meanings: []models.DictionaryMeaning{{
			Definitions: []models.DictionaryDefinition{{
				Definition: "A genre of crime film.",
				Example:    "a classic noir",
			}},
		}},
	}

	resp, err := svc.Aggregate(context.Background(), "Chinatown")
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	want := models.WordOfDay{Word: "noir", Meaning: "A genre of crime film.", Example: "a classic noir"}
	if resp.WordOfTheDay != want {
		t.Errorf("WordOfTheDay = %+v, want %+v", resp.WordOfTheDay, want)
	}
}

func TestAggregate_WordStaysInVocabulary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		echo string
	}{
		{"empty echo", ""},
		{"unknown echo", "lucidity"},
		{"different case", "Noir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, f := newTestService(WithRand(rand.New(rand.NewPCG(3, 9))))
			f.dict.entry = &models.DictionaryEntry{Word: tt.echo}

			resp, err := svc.Aggregate(context.Background(), "Heat")
			if err != nil {
				t.Fatalf("Aggregate() error = %v", err)
			}
			f.dict.mu.Lock()
			picked := f.dict.words[0]
			f.dict.mu.Unlock()

			if resp.WordOfTheDay.Word != picked {
				t.Errorf("word = %q, want the picked word %q", resp.WordOfTheDay.Word, picked)
			}
			if !slices.Contains(Words, resp.WordOfTheDay.Word) {
				t.Errorf("word %q is not in the vocabulary", resp.WordOfTheDay.Word)
			}
		})
	}
}

func TestAggregate_EntryWithoutMeanings(t *testing.T) {
	t.Parallel()

	svc, f := newTestService()
	f.dict.entry = &models.DictionaryEntry{}

	resp, err := svc.Aggregate(context.Background(), "Heat")
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	wod := resp.WordOfTheDay
	if wod.Meaning != "" || wod.Example != models.NoExampleFallback {
		t.Errorf("WordOfTheDay = %+v, want empty meaning and fallback example", wod)
	}
	if wod.Word != f.dict.words[0] {
		t.Errorf("Word = %q, want picked word %q", wod.Word, f.dict.words[0])
	}
}

func TestPickWord_Deterministic(t *testing.T) {
	t.Parallel()

	ref := rand.New(rand.NewPCG(42, 7))
	svc, _ := newTestService(WithRand(rand.New(rand.NewPCG(42, 7))))

	for i := 0; i < 20; i++ {
		want := Words[ref.IntN(len(Words))]
		if got := svc.PickWord(); got != want {
			t.Fatalf("pick %d = %q, want %q", i, got, want)
		}
	}
}

func TestPickWord_Coverage(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	var mu sync.Mutex
	for i := 0; i < 500; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := svc.PickWord()
			mu.Lock()
			seen[w] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, w := range Words {
		if !seen[w] {
			t.Errorf("word %q never picked in 500 draws", w)
		}
	}
	if len(seen) != len(Words) {
		t.Errorf("picked %d distinct words, want %d", len(seen), len(Words))
	}
}

func TestImageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Inception", "https://picsum.photos/seed/Inception/600/400"},
		{"The Dark Knight", "https://picsum.photos/seed/The Dark Knight/600/400"},
		{"Amélie", "https://picsum.photos/seed/Amélie/600/400"},
	}
	for _, tt := range tests {
		if got := ImageURL(tt.title); got != tt.want {
			t.Errorf("ImageURL(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
