package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/grid-tanks/catalog"
	"github.com/danielhkuo/grid-tanks/cliparse"
	"github.com/danielhkuo/grid-tanks/db"
	"github.com/danielhkuo/grid-tanks/middleware"
	"github.com/danielhkuo/grid-tanks/router"
	"github.com/danielhkuo/grid-tanks/session"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "postgres"
	if cfg.DatabaseType == cliparse.DatabaseSQLite {
		driver = "sqlite"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Load the level catalog. A server without maps must not start serving.
	levels, err := catalog.Load(cfg.MapsDir)
	if err != nil {
		slog.Error("level catalog load failed", "error", err, "dir", cfg.MapsDir)
		os.Exit(1)
	}
	if !levels.Has(1) {
		slog.Error("level catalog is missing level 1", "dir", cfg.MapsDir)
		os.Exit(1)
	}
	slog.Info("Level catalog ready", "levels", levels.Len())

	// In-memory run session store
	runs := session.NewStore(cfg.MaxRuns, cfg.RunMaxAge)

	// Create router
	mux := router.NewRouter(dbConn, levels, runs)

	// Create server. CORS wraps the whole mux for the browser client.
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
