package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Database type values accepted by -t / DATABASE_TYPE.
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	MapsDir      string
	MaxRuns      int
	RunMaxAge    time.Duration
}

// ParseFlags validates flags and fills in defaults
func ParseFlags(args []string) (Config, error) {
	// A .env file is optional; variables already set in the real
	// environment are never overridden by it.
	_ = godotenv.Load()

	var cfg Config
	var runMaxAgeSecs int

	fs := flag.NewFlagSet("grid-tanks", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.MapsDir, "maps", "", "Directory containing level_<N>.txt map files")

	// Run store tuning
	fs.IntVar(&cfg.MaxRuns, "max-runs", 0, "Live-run count that triggers stale-run eviction")
	fs.IntVar(&runMaxAgeSecs, "run-max-age", 0, "Seconds before an abandoned run may be evicted")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8000 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.MapsDir == "" {
		cfg.MapsDir = os.Getenv("MAPS_DIR")
		if cfg.MapsDir == "" {
			cfg.MapsDir = "maps"
		}
	}

	if cfg.MaxRuns == 0 {
		if v := os.Getenv("MAX_RUNS"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.New("invalid MAX_RUNS env variable")
			}
			cfg.MaxRuns = n
		} else {
			cfg.MaxRuns = 100
		}
	}
	if cfg.MaxRuns < 1 {
		return Config{}, errors.New("max-runs must be at least 1")
	}

	if runMaxAgeSecs == 0 {
		if v := os.Getenv("RUN_MAX_AGE_SECONDS"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.New("invalid RUN_MAX_AGE_SECONDS env variable")
			}
			runMaxAgeSecs = n
		} else {
			runMaxAgeSecs = 3600
		}
	}
	if runMaxAgeSecs < 1 {
		return Config{}, errors.New("run-max-age must be at least 1 second")
	}
	cfg.RunMaxAge = time.Duration(runMaxAgeSecs) * time.Second

	return cfg, nil
}
