// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the GridTanks API server.

GridTanks is a browser tank game. The server hands out level maps,
validates in-game progress events sent by an untrusted client, and
persists final scores to a leaderboard.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 8000 -d "postgres://..." -t postgres

A .env file in the working directory is loaded first; real environment
variables take precedence over it.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string (Postgres URL, or a
    file path when DATABASE_TYPE is sqlite)

Optional settings:

  - PORT (-p): server port (default: 8000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - MAPS_DIR (-maps): directory of level_<N>.txt map files (default: maps)
  - MAX_RUNS (-max-runs): live-run count that triggers stale-run
    eviction (default: 100)
  - RUN_MAX_AGE_SECONDS (-run-max-age): age after which an abandoned
    run may be evicted (default: 3600)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - catalog: immutable level metadata parsed from map files at startup
  - session: concurrency-safe store of active run state
  - game: progression engine validating elimination events
  - handlers: HTTP request handlers (game flow, scores, level files)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response types
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
