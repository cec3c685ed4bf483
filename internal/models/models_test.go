// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestSplitActors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []string
	}{
		{"Leonardo DiCaprio, Joseph Gordon-Levitt", []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt"}},
		{"Keanu Reeves", []string{"Keanu Reeves"}},
		{"N/A", []string{"N/A"}},
		{"", []string{""}},
		// only the exact ", " separator splits
		{"A,B, C", []string{"A,B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := SplitActors(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitActors(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOMDbResponse_ToMovieRecord(t *testing.T) {
	t.Parallel()

	raw := `{"Title":"Inception","Year":"2010","Director":"Christopher Nolan",
		"Actors":"Leonardo DiCaprio, Joseph Gordon-Levitt, Elliot Page","Plot":"Dreams.",
		"Poster":"https://img.example/p.jpg","imdbRating":"8.8","Response":"True"}`

	var resp OMDbResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Found() {
		t.Fatal("Found() = false for Response=True")
	}

	got := resp.ToMovieRecord()
	want := MovieRecord{
		Title:    "Inception",
		Year:     "2010",
		Director: "Christopher Nolan",
		Actors:   []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt", "Elliot Page"},
		Plot:     "Dreams.",
		Poster:   "https://img.example/p.jpg",
		Rating:   "8.8",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToMovieRecord() = %+v, want %+v", got, want)
	}
}

func TestOMDbResponse_NotFound(t *testing.T) {
	t.Parallel()

	var resp OMDbResponse
	if err := json.Unmarshal([]byte(`{"Response":"False","Error":"Movie not found!"}`), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Found() {
		t.Error("Found() = true for Response=False")
	}
}

func TestDictionaryEntry_FirstDefinition(t *testing.T) {
	t.Parallel()

	entry := DictionaryEntry{
		Word: "lucid",
		Meanings: []DictionaryMeaning{
			{PartOfSpeech: "adjective", Definitions: []DictionaryDefinition{
				{Definition: "Clear; easily understood.", Example: "a lucid explanation"},
				{Definition: "Bright, luminous."},
			}},
			{PartOfSpeech: "noun", Definitions: []DictionaryDefinition{{Definition: "ignored"}}},
		},
	}

	def, ok := entry.FirstDefinition()
	if !ok || def.Definition != "Clear; easily understood." || def.Example != "a lucid explanation" {
		t.Errorf("FirstDefinition() = %+v, %v", def, ok)
	}

	empty := DictionaryEntry{Word: "noir", Meanings: []DictionaryMeaning{{PartOfSpeech: "noun"}}}
	if _, ok := empty.FirstDefinition(); ok {
		t.Error("expected no definition for meaning without definitions")
	}
}

func TestAggregatedResponse_JSONShape(t *testing.T) {
	t.Parallel()

	resp := AggregatedResponse{
		MovieRecord:      MovieRecord{Title: "Dune", Actors: []string{"Timothée Chalamet"}},
		FunFact:          "7 is a prime.",
		RandomMovieImage: "https://picsum.photos/seed/Dune/600/400",
		WordOfTheDay:     WordOfDay{Word: "noir", Example: NoExampleFallback},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)

	for _, key := range []string{`"title":"Dune"`, `"year":`, `"director":`, `"actors":["Timothée Chalamet"]`,
		`"plot":`, `"poster":`, `"rating":`, `"funFact":"7 is a prime."`,
		`"randomMovieImage":"https://picsum.photos/seed/Dune/600/400"`, `"wordOfTheDay":{`} {
		if !strings.Contains(body, key) {
			t.Errorf("expected %s in %s", key, body)
		}
	}
	if strings.Contains(body, `"meaning"`) {
		t.Errorf("empty meaning should be omitted: %s", body)
	}
	if strings.Contains(body, "MovieRecord") {
		t.Errorf("embedded struct should be flattened: %s", body)
	}
}
