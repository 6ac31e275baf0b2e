// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

All JSON fields are snake_case. The wire types are deliberately
decoupled from the internal session.State representation: handlers
translate at the boundary, and nothing internal leaks to the client.

# Request Types

  - GameEventRequest: run_id, tank_type
  - RunRequest: run_id
  - SubmitScoreRequest: run_id, username, email (optional)

# Response Types

  - HealthResponse: status
  - StartGameResponse: run_id, message, level
  - GameEventResponse: message plus level_reset / level_complete /
    next_level / game_complete flags as applicable
  - GameCompleteResponse: game_complete, final_level
  - FinalStatsResponse: final_level, time (M:SS)
  - SubmitScoreResponse: message, final_level, time, username
  - LeaderboardEntry / LeaderboardResponse: ranked score pages
  - ErrorResponse: error, message

# Constants

	MaxUsernameLen = 20
	MaxEmailLen    = 255
*/
package models
