// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package web

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler_ServesClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path        string
		wantStatus  int
		wantType    string
		wantContain string
	}{
		{"/", http.StatusOK, "text/html", "Super Movie App"},
		{"/app.js", http.StatusOK, "javascript", "Too many requests! Please wait a moment and try again."},
		{"/style.css", http.StatusOK, "text/css", "body.dark"},
		{"/missing.txt", http.StatusNotFound, "", ""},
	}

	h := Handler()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantType != "" && !strings.Contains(rec.Header().Get("Content-Type"), tt.wantType) {
				t.Errorf("Content-Type = %q, want %q", rec.Header().Get("Content-Type"), tt.wantType)
			}
			if !strings.Contains(rec.Body.String(), tt.wantContain) {
				t.Errorf("body missing %q", tt.wantContain)
			}
		})
	}
}

func TestClientScript_Behaviour(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(FS(), "app.js")
	if err != nil {
		t.Fatalf("ReadFile(app.js) error = %v", err)
	}
	script := string(data)

	for _, want := range []string{
		"'favorites'",
		"'Error fetching data'",
		"/api/super-movie?title=",
		"'Inception'", "'The Matrix'", "'Pulp Fiction'", "'The Shawshank Redemption'",
		"'Interstellar'", "'Forrest Gump'", "'The Dark Knight'",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("app.js missing %s", want)
		}
	}
}
