// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/grid-tanks/catalog"
	"github.com/danielhkuo/grid-tanks/game"
	"github.com/danielhkuo/grid-tanks/middleware"
	"github.com/danielhkuo/grid-tanks/models"
	"github.com/danielhkuo/grid-tanks/session"
)

type GameHandler struct {
	runs   *session.Store
	engine *game.Engine
	levels *catalog.Catalog
}

func NewGameHandler(runs *session.Store, engine *game.Engine, levels *catalog.Catalog) *GameHandler {
	return &GameHandler{runs: runs, engine: engine, levels: levels}
}

// StartGame handles POST /start-game
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	runID := h.runs.Create()

	slog.Info("run started", "run_id", runID)

	middleware.JSONResponse(w, http.StatusOK, models.StartGameResponse{
		RunID:   runID,
		Message: "Game started",
		Level:   1,
	})
}

// GameEvent handles POST /game-event
func (h *GameHandler) GameEvent(w http.ResponseWriter, r *http.Request) {
	var req models.GameEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.RunID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "run_id is required")
		return
	}

	res, err := h.engine.RecordEvent(req.RunID, req.TankType)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	resp := models.GameEventResponse{Message: "Event recorded"}
	switch {
	case res.LevelReset:
		resp.Message = "Level reset"
		resp.LevelReset = true
	case res.GameComplete:
		resp.Message = "Game complete"
		resp.LevelComplete = true
		resp.GameComplete = true
	case res.LevelComplete:
		resp.Message = "Level complete"
		resp.LevelComplete = true
		resp.NextLevel = res.NextLevel
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetCurrentLevel handles POST /level
// Returns the run's current level file as plain text, or a game-complete
// marker once the run is finished.
func (h *GameHandler) GetCurrentLevel(w http.ResponseWriter, r *http.Request) {
	var req models.RunRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.RunID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "run_id is required")
		return
	}

	status, err := h.engine.LevelStatus(req.RunID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if status.Finished {
		middleware.JSONResponse(w, http.StatusOK, models.GameCompleteResponse{
			GameComplete: true,
			FinalLevel:   status.FinalLevel,
		})
		return
	}

	info, ok := h.levels.Level(status.Level)
	if !ok {
		// The engine keeps runs on catalog levels; a miss here means the
		// catalog and store disagree.
		slog.Error("run on unknown level", "run_id", req.RunID, "level", status.Level)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Level data unavailable")
		return
	}

	middleware.TextResponse(w, http.StatusOK, info.Content)
}

// GetFinalStats handles POST /get-final-stats
// The first call freezes the run's clock; repeated calls report the
// identical time.
func (h *GameHandler) GetFinalStats(w http.ResponseWriter, r *http.Request) {
	var req models.RunRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.RunID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "run_id is required")
		return
	}

	stats, err := h.engine.FinalStats(req.RunID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FinalStatsResponse{
		FinalLevel: stats.FinalLevel,
		Time:       game.FormatElapsed(stats.Elapsed),
	})
}

// writeEngineError maps engine and store errors onto client responses.
// Validation failures signal a stale client or a forged event; the run
// state is unchanged in every case.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Run not found")
	case errors.Is(err, game.ErrInvalidLevel):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Current level has no map data")
	case errors.Is(err, game.ErrInvalidTankType):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Tank type is not part of this level")
	case errors.Is(err, game.ErrOverElimination):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Elimination already fully recorded for this tank type")
	case errors.Is(err, game.ErrGameComplete):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Game is already complete")
	default:
		slog.Error("game event failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
