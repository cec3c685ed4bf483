// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/supermovie/internal/aggregator"
	"github.com/tomtom215/supermovie/internal/logging"
	"github.com/tomtom215/supermovie/internal/models"
	"github.com/tomtom215/supermovie/internal/validation"
)

// SuperMovie handles the aggregation endpoint
//
// @Summary Get aggregated movie info
// @Description Looks the title up, then adds a random word of the day with its definition, a random trivia fact, and a placeholder image URL
// @Tags Movies
// @Produce json
// @Param title query string true "Exact movie title"
// @Success 200 {object} models.AggregatedResponse "Aggregated movie info"
// @Failure 400 {object} models.ErrorResponse "Movie title is required"
// @Failure 404 {object} models.ErrorResponse "Movie not found"
// @Failure 429 {object} models.ErrorResponse "Too many requests"
// @Failure 500 {object} models.ErrorResponse "Failed to fetch movie info"
// @Router /super-movie [get]
func (h *Handler) SuperMovie(w http.ResponseWriter, r *http.Request) {
	query := models.MovieQuery{Title: r.URL.Query().Get("title")}
	if verr := validation.ValidateStruct(&query); verr != nil {
		respondError(w, http.StatusBadRequest, MsgTitleRequired, "")
		return
	}

	ctx := r.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	resp, err := h.aggregator.Aggregate(ctx, query.Title)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, resp)
	case errors.Is(err, aggregator.ErrMissingParameter):
		respondError(w, http.StatusBadRequest, MsgTitleRequired, "")
	case errors.Is(err, aggregator.ErrNotFound):
		respondError(w, http.StatusNotFound, MsgMovieNotFound, "")
	default:
		logging.Ctx(r.Context()).Error().
			Str("title", sanitizeLogValue(query.Title)).
			Err(err).
			Msg("Aggregation failed")
		respondError(w, http.StatusInternalServerError, MsgFetchFailed, err.Error())
	}
}
