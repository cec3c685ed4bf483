// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

/*
Package main is the entry point for the Super Movie server.

Super Movie answers GET /api/super-movie?title=... with the movie's OMDb
metadata combined with a random word of the day (and its dictionary
definition), a random trivia fact, and a placeholder image URL. It also serves
the embedded browser client at /.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("supermovie")
	├── Breaker monitor (circuit breaker state polling)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Upstream clients: OMDb, dictionaryapi.dev, numbersapi behind gobreaker
 4. Aggregator: ordered movie lookup, then concurrent word and fact lookups
 5. Supervisor Tree: Suture v4 process supervision
 6. HTTP Server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=3000
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Upstreams
	OMDB_API_KEY=<key>
	OMDB_URL=https://www.omdbapi.com/
	DICTIONARY_URL=https://api.dictionaryapi.dev/api/v2/entries/en
	TRIVIA_URL=http://numbersapi.com

	# Inbound rate limiting (off by default)
	ENABLE_RATE_LIMIT=false
	RATE_LIMIT_REQUESTS=100
	RATE_LIMIT_WINDOW=1m

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and waits up to 10s for in-flight requests.
*/
package main
