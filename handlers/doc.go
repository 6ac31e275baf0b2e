// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the GridTanks API.

# Handler Types

Each handler is a struct carrying its dependencies:

  - GameHandler: run lifecycle (start, events, current level, final stats)
  - ScoreHandler: score submission and leaderboard pages
  - LevelHandler: static level file serving

Handlers are created via constructor functions:

	gameHandler := handlers.NewGameHandler(runs, engine, levels)

# Run Flow

	POST /start-game      → StartGame (returns run_id)
	POST /game-event      → GameEvent (elimination events)
	POST /level           → GetCurrentLevel (level body or game-complete)
	POST /get-final-stats → GetFinalStats (freezes the clock)
	POST /submit-score    → SubmitScore (persists and consumes the run)

Elimination events are validated against the level catalog; a stale or
forged event gets a 400 and changes nothing. An unknown run_id gets a
404 everywhere.

# Read-only Surface

	GET /level/{n}    → GetLevelFile (plain text map body)
	GET /leaderboard  → GetLeaderboard (?page&limit, ranked pages)
*/
package handlers
