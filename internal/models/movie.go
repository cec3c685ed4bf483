// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

// Package models defines the JSON shapes exchanged with API clients and the
// wire formats of the third-party services Super Movie aggregates.
package models

import "strings"

// ActorSeparator is the literal separator used by the movie metadata API
// between actor names.
const ActorSeparator = ", "

// NoExampleFallback replaces a missing word-of-the-day usage example.
const NoExampleFallback = "No example available."

// MovieQuery is the single input of the aggregation endpoint.
type MovieQuery struct {
	Title string `json:"title" validate:"required"`
}

// MovieRecord holds the movie metadata copied verbatim from the upstream
// lookup. Actors is the upstream comma-separated string split on ", ".
type MovieRecord struct {
	Title    string   `json:"title" validate:"required"`
	Year     string   `json:"year"`
	Director string   `json:"director"`
	Actors   []string `json:"actors"`
	Plot     string   `json:"plot"`
	Poster   string   `json:"poster"`
	Rating   string   `json:"rating"`
}

// WordOfDay is one word from the fixed vocabulary with its first definition.
//
// Meaning is omitted from JSON when the dictionary entry carries no
// definition; Example is never empty.
type WordOfDay struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning,omitempty"`
	Example string `json:"example"`
}

// AggregatedResponse is the 200 body of the aggregation endpoint.
//
// Example:
//
//	{
//	  "title": "Inception",
//	  "year": "2010",
//	  "director": "Christopher Nolan",
//	  "actors": ["Leonardo DiCaprio", "Joseph Gordon-Levitt", "Elliot Page"],
//	  "plot": "A thief who steals corporate secrets...",
//	  "poster": "https://m.media-amazon.com/images/M/....jpg",
//	  "rating": "8.8",
//	  "funFact": "42 is the number of ...",
//	  "randomMovieImage": "https://picsum.photos/seed/Inception/600/400",
//	  "wordOfTheDay": {"word": "noir", "meaning": "...", "example": "No example available."}
//	}
//
// Built once per request and never stored server-side.
type AggregatedResponse struct {
	MovieRecord
	FunFact          string    `json:"funFact"`
	RandomMovieImage string    `json:"randomMovieImage"`
	WordOfTheDay     WordOfDay `json:"wordOfTheDay"`
}

// ErrorResponse is the body of every non-200 aggregation response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SplitActors splits the upstream actor list on the literal ", " separator.
// An empty input yields a single empty element, matching a plain string split.
func SplitActors(actors string) []string {
	return strings.Split(actors, ActorSeparator)
}
