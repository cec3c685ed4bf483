// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package models

// OMDbResponse is the OMDb title lookup payload. Response is the string
// "True" or "False"; on "False" only Error is populated.
type OMDbResponse struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	Genre      string `json:"Genre"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
}

// Found reports whether the lookup matched a title.
func (r *OMDbResponse) Found() bool {
	return r.Response != "False"
}

// ToMovieRecord maps the upstream field names onto MovieRecord.
func (r *OMDbResponse) ToMovieRecord() MovieRecord {
	return MovieRecord{
		Title:    r.Title,
		Year:     r.Year,
		Director: r.Director,
		Actors:   SplitActors(r.Actors),
		Plot:     r.Plot,
		Poster:   r.Poster,
		Rating:   r.ImdbRating,
	}
}

// DictionaryEntry is one element of the dictionaryapi.dev response array.
type DictionaryEntry struct {
	Word     string              `json:"word"`
	Phonetic string              `json:"phonetic,omitempty"`
	Meanings []DictionaryMeaning `json:"meanings"`
}

// DictionaryMeaning groups definitions by part of speech.
type DictionaryMeaning struct {
	PartOfSpeech string                 `json:"partOfSpeech"`
	Definitions  []DictionaryDefinition `json:"definitions"`
}

// DictionaryDefinition is a single sense of a word.
type DictionaryDefinition struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// FirstDefinition returns the first definition of the first meaning, if any.
func (e *DictionaryEntry) FirstDefinition() (DictionaryDefinition, bool) {
	if len(e.Meanings) == 0 || len(e.Meanings[0].Definitions) == 0 {
		return DictionaryDefinition{}, false
	}
	return e.Meanings[0].Definitions[0], true
}
