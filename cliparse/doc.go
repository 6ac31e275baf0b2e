// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

Configuration is layered: CLI flags override environment variables,
which override values from an optional .env file, which override
built-in defaults.

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Settings

  - Port (-p / PORT): server port, default 8000
  - DatabaseURL (-d / DATABASE_URL): required connection string
  - DatabaseType (-t / DATABASE_TYPE): sqlite or postgres, default sqlite
  - MapsDir (-maps / MAPS_DIR): level file directory, default "maps"
  - MaxRuns (-max-runs / MAX_RUNS): eviction trigger threshold, default 100
  - RunMaxAge (-run-max-age / RUN_MAX_AGE_SECONDS): stale-run age,
    default 3600 seconds

MaxRuns and RunMaxAge tune the in-memory run store: once more than
MaxRuns runs are live, runs older than RunMaxAge are evicted
opportunistically at run creation time.
*/
package cliparse
