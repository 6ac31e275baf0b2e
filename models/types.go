// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Validation limits for score submission
const (
	MaxUsernameLen = 20
	MaxEmailLen    = 255
)

// Request types

type GameEventRequest struct {
	RunID    string `json:"run_id"`
	TankType int    `json:"tank_type"`
}

// RunRequest is the body of endpoints that only need a run ID
// (POST /level, POST /get-final-stats).
type RunRequest struct {
	RunID string `json:"run_id"`
}

type SubmitScoreRequest struct {
	RunID    string `json:"run_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Response types

type HealthResponse struct {
	Status string `json:"status"`
}

type StartGameResponse struct {
	RunID   string `json:"run_id"`
	Message string `json:"message"`
	Level   int    `json:"level"`
}

type GameEventResponse struct {
	Message       string `json:"message"`
	LevelReset    bool   `json:"level_reset,omitempty"`
	LevelComplete bool   `json:"level_complete,omitempty"`
	NextLevel     int    `json:"next_level,omitempty"`
	GameComplete  bool   `json:"game_complete,omitempty"`
}

// GameCompleteResponse replaces the level body once a run is finished.
type GameCompleteResponse struct {
	GameComplete bool `json:"game_complete"`
	FinalLevel   int  `json:"final_level"`
}

type FinalStatsResponse struct {
	FinalLevel int    `json:"final_level"`
	Time       string `json:"time"` // M:SS
}

type SubmitScoreResponse struct {
	Message    string `json:"message"`
	FinalLevel int    `json:"final_level"`
	Time       string `json:"time"`
	Username   string `json:"username"`
}

type LeaderboardEntry struct {
	Username      string `json:"username"`
	StageReached  int    `json:"stage_reached"`
	Time          string `json:"time"`           // M:SS
	DateSubmitted string `json:"date_submitted"` // MM/DD/YYYY
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
