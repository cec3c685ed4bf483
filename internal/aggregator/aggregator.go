// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

// Package aggregator combines a movie lookup, a word of the day, and a
// random trivia fact into a single response.
//
// The movie lookup always runs first. The dictionary and trivia lookups are
// only started once the movie is known to exist, and then run concurrently.
// Any failure other than a clean not-found is reported as *DependencyError.
package aggregator

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/supermovie/internal/logging"
	"github.com/tomtom215/supermovie/internal/metrics"
	"github.com/tomtom215/supermovie/internal/models"
	"github.com/tomtom215/supermovie/internal/upstream"
)

// Words is the fixed word-of-the-day vocabulary.
var Words = []string{"lucid", "ephemeral", "catharsis", "noir", "serendipity"}

// ImageURLPrefix is joined with the raw, unescaped title to form the
// placeholder image URL.
const ImageURLPrefix = "https://picsum.photos/seed/"

const imageURLSuffix = "/600/400"

// Aggregation result labels.
const (
	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
	resultError    = "error"
)

// Service answers aggregation requests. It is safe for concurrent use.
type Service struct {
	movie      upstream.MovieSource
	dictionary upstream.DictionarySource
	trivia     upstream.TriviaSource

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithRand sets the random source used to pick the word of the day.
// Tests pass a seeded source for deterministic picks.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) {
		s.rng = r
	}
}

// New creates a Service over the given upstream sources.
func New(sources *upstream.Sources, opts ...Option) *Service {
	s := &Service{
		movie:      sources.Movie,
		dictionary: sources.Dictionary,
		trivia:     sources.Trivia,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		now := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(now, now>>1|1))
	}
	return s
}

// PickWord returns a uniformly random word from Words.
func (s *Service) PickWord() string {
	s.mu.Lock()
	i := s.rng.IntN(len(Words))
	s.mu.Unlock()
	return Words[i]
}

// Aggregate builds the combined response for title.
//
// Returns ErrMissingParameter for an empty title without calling any
// upstream, ErrNotFound when the movie does not exist (word and fact are not
// fetched), and *DependencyError for every other failure.
func (s *Service) Aggregate(ctx context.Context, title string) (resp *models.AggregatedResponse, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordAggregation(resultLabel(err), time.Since(start))
	}()

	if title == "" {
		return nil, ErrMissingParameter
	}

	log := logging.Ctx(ctx).With().Str("title", title).Logger()

	movie, err := s.movie.LookupMovie(ctx, title)
	if err != nil {
		if errors.Is(err, upstream.ErrMovieNotFound) {
			log.Debug().Err(err).Msg("movie not found")
			return nil, ErrNotFound
		}
		log.Error().Err(err).Msg("movie lookup failed")
		return nil, &DependencyError{Err: err}
	}

	word := s.PickWord()
	metrics.RecordWordPick(word)

	var (
		entry *models.DictionaryEntry
		fact  string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var defErr error
		entry, defErr = s.dictionary.Define(gctx, word)
		return defErr
	})
	g.Go(func() error {
		var factErr error
		fact, factErr = s.trivia.RandomFact(gctx)
		return factErr
	})
	if err = g.Wait(); err != nil {
		log.Error().Err(err).Str("word", word).Msg("word or fact lookup failed")
		return nil, &DependencyError{Err: err}
	}

	return &models.AggregatedResponse{
		MovieRecord:      *movie,
		FunFact:          fact,
		RandomMovieImage: ImageURL(title),
		WordOfTheDay:     wordOfDay(word, entry),
	}, nil
}

// ImageURL returns the placeholder image URL for title. The title is not
// escaped.
func ImageURL(title string) string {
	return ImageURLPrefix + title + imageURLSuffix
}

func wordOfDay(picked string, entry *models.DictionaryEntry) models.WordOfDay {
	wod := models.WordOfDay{Word: entry.Word, Example: models.NoExampleFallback}
	// The dictionary echoes the word it matched; anything outside the
	// vocabulary is replaced by the word that was asked for.
	if !slices.Contains(Words, wod.Word) {
		wod.Word = picked
	}
	if def, ok := entry.FirstDefinition(); ok {
		wod.Meaning = def.Definition
		if def.Example != "" {
			wod.Example = def.Example
		}
	}
	return wod
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, ErrMissingParameter):
		return resultInvalid
	case errors.Is(err, ErrNotFound):
		return resultNotFound
	default:
		return resultError
	}
}
