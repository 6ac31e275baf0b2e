// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/grid-tanks/catalog"
	"github.com/danielhkuo/grid-tanks/game"
	"github.com/danielhkuo/grid-tanks/handlers"
	"github.com/danielhkuo/grid-tanks/middleware"
	"github.com/danielhkuo/grid-tanks/models"
	"github.com/danielhkuo/grid-tanks/session"
)

func NewRouter(db *sql.DB, levels *catalog.Catalog, runs *session.Store) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize engine and handlers
	engine := game.New(levels, runs)
	gameHandler := handlers.NewGameHandler(runs, engine, levels)
	scoreHandler := handlers.NewScoreHandler(db, runs, engine)
	levelHandler := handlers.NewLevelHandler(levels)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{Status: "ok"})
	})

	// Run lifecycle
	mux.HandleFunc("POST /start-game", middleware.WithLogging(gameHandler.StartGame))
	mux.HandleFunc("POST /game-event", middleware.WithLogging(gameHandler.GameEvent))
	mux.HandleFunc("POST /level", middleware.WithLogging(gameHandler.GetCurrentLevel))
	mux.HandleFunc("POST /get-final-stats", middleware.WithLogging(gameHandler.GetFinalStats))

	// Scores
	mux.HandleFunc("POST /submit-score", middleware.WithLogging(scoreHandler.SubmitScore))
	mux.HandleFunc("GET /leaderboard", middleware.WithLogging(scoreHandler.GetLeaderboard))

	// Static level files
	mux.HandleFunc("GET /level/{n}", middleware.WithLogging(levelHandler.GetLevelFile))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("grid-tanks API v1"))
	})

	return mux
}
