// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package upstream

import (
	"context"

	"github.com/tomtom215/supermovie/internal/config"
	"github.com/tomtom215/supermovie/internal/models"
)

// MovieSource looks a movie up by exact title.
type MovieSource interface {
	LookupMovie(ctx context.Context, title string) (*models.MovieRecord, error)
}

// DictionarySource returns the first dictionary entry for a word.
type DictionarySource interface {
	Define(ctx context.Context, word string) (*models.DictionaryEntry, error)
}

// TriviaSource returns one random trivia fact.
type TriviaSource interface {
	RandomFact(ctx context.Context) (string, error)
}

// Sources bundles the three upstreams as consumed by the aggregator.
type Sources struct {
	Movie      MovieSource
	Dictionary DictionarySource
	Trivia     TriviaSource

	breakers []*breaker
}

// NewSources builds the three HTTP clients from configuration and, when
// enabled, wraps each in its own circuit breaker.
func NewSources(cfg *config.Config) *Sources {
	ua := cfg.Upstream.UserAgent
	s := &Sources{
		Movie:      NewOMDbClient(cfg.Upstream.Movie, ua),
		Dictionary: NewDictionaryClient(cfg.Upstream.Dictionary, ua),
		Trivia:     NewTriviaClient(cfg.Upstream.Trivia, ua),
	}

	if !cfg.Breaker.Enabled {
		return s
	}

	movieBreaker := newBreaker(NameOMDb+"-api", cfg.Breaker)
	dictBreaker := newBreaker(NameDictionary+"-api", cfg.Breaker)
	triviaBreaker := newBreaker(NameTrivia+"-api", cfg.Breaker)

	s.Movie = &breakerMovieSource{next: s.Movie, b: movieBreaker}
	s.Dictionary = &breakerDictionarySource{next: s.Dictionary, b: dictBreaker}
	s.Trivia = &breakerTriviaSource{next: s.Trivia, b: triviaBreaker}
	s.breakers = []*breaker{movieBreaker, dictBreaker, triviaBreaker}

	return s
}

// BreakerStates reports each breaker's state by name. Empty when breakers
// are disabled.
func (s *Sources) BreakerStates() map[string]string {
	states := make(map[string]string, len(s.breakers))
	for _, b := range s.breakers {
		states[b.name] = stateToString(b.cb.State())
	}
	return states
}

// AnyBreakerOpen reports whether at least one upstream is currently shedding requests.
func (s *Sources) AnyBreakerOpen() bool {
	for _, state := range s.BreakerStates() {
		if state == "open" {
			return true
		}
	}
	return false
}
