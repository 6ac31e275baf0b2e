// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/grid-tanks/game"
	"github.com/danielhkuo/grid-tanks/middleware"
	"github.com/danielhkuo/grid-tanks/models"
	"github.com/danielhkuo/grid-tanks/session"
)

// Leaderboard paging bounds
const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type ScoreHandler struct {
	db     *sql.DB
	runs   *session.Store
	engine *game.Engine
}

func NewScoreHandler(db *sql.DB, runs *session.Store, engine *game.Engine) *ScoreHandler {
	return &ScoreHandler{db: db, runs: runs, engine: engine}
}

// SubmitScore handles POST /submit-score
// Freezes the run's time (if final stats were already requested, the
// identical frozen time is charged), persists the leaderboard entry and
// optional contact info, and consumes the run. A persistence failure
// leaves the run in the store so the client can retry.
func (h *ScoreHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.RunID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "run_id is required")
		return
	}

	// Field validation
	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if len(req.Username) > models.MaxUsernameLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be at most 20 characters")
		return
	}
	if len(req.Email) > models.MaxEmailLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email must be at most 255 characters")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	stats, err := h.engine.FinalStats(req.RunID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	timeSeconds := int(stats.Elapsed / time.Second)
	formatted := game.FormatElapsed(stats.Elapsed)
	now := time.Now()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save score")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO leaderboard (id, username, stage_reached, time_seconds, formatted_time, date_submitted)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), req.Username, stats.FinalLevel, timeSeconds, formatted, now)
	if err != nil {
		slog.Error("failed to insert leaderboard entry", "error", err, "run_id", req.RunID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save score")
		return
	}

	if email != "" {
		// The (username, email) pair is unique; resubmissions are a no-op.
		_, err = tx.Exec(`
			INSERT INTO contact_info (id, username, email, submission_date)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (username, email) DO NOTHING
		`, uuid.NewString(), req.Username, email, now)
		if err != nil {
			slog.Error("failed to insert contact info", "error", err, "run_id", req.RunID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save score")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit score", "error", err, "run_id", req.RunID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save score")
		return
	}

	// The run is consumed exactly once; a second submission for this
	// ID will see NotFound.
	h.runs.Remove(req.RunID)

	slog.Info("score submitted",
		"run_id", req.RunID,
		"username", req.Username,
		"final_level", stats.FinalLevel,
		"time_seconds", timeSeconds,
	)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitScoreResponse{
		Message:    "Score submitted",
		FinalLevel: stats.FinalLevel,
		Time:       formatted,
		Username:   req.Username,
	})
}

// GetLeaderboard handles GET /leaderboard
// Ranked by stage reached (desc), then time (asc). Invalid paging
// parameters fall back to defaults.
func (h *ScoreHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			page = n
		}
	}
	limit := defaultPageLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	rows, err := h.db.Query(`
		SELECT username, stage_reached, formatted_time, date_submitted
		FROM leaderboard
		ORDER BY stage_reached DESC, time_seconds ASC
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	if err != nil {
		slog.Error("failed to query leaderboard", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var username, formatted string
		var stage int
		var submitted time.Time
		if err := rows.Scan(&username, &stage, &formatted, &submitted); err != nil {
			slog.Error("failed to scan leaderboard entry", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		entries = append(entries, models.LeaderboardEntry{
			Username:      username,
			StageReached:  stage,
			Time:          formatted,
			DateSubmitted: submitted.Format("01/02/2006"),
		})
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read leaderboard rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LeaderboardResponse{
		Entries: entries,
		Page:    page,
		Limit:   limit,
	})
}
