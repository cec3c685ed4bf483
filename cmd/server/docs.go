// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

// Package main provides the Super Movie HTTP server
//
// @title Super Movie API
// @version 1.0
// @description Aggregates movie metadata, a word of the day, and a random trivia fact into a single response.
// @description
// @description ## Error Responses
// @description
// @description Every failed lookup answers with a JSON object carrying an `error` message.
// @description Dependency failures add a `details` field with the underlying cause.
// @description ```json
// @description {"error": "Failed to fetch movie info", "details": "trivia request failed with status 503: ..."}
// @description ```
// @description
// @description ## Rate Limiting
// @description
// @description Disabled by default. When enabled, excess requests get HTTP 429.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/supermovie/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3000
// @BasePath /api
// @schemes http https
package main
