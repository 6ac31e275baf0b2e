// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL is kept
// portable between Postgres and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Finalized scores, one row per submitted run
CREATE TABLE IF NOT EXISTS leaderboard (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    stage_reached INTEGER NOT NULL,
    time_seconds INTEGER NOT NULL,
    formatted_time TEXT NOT NULL,
    date_submitted TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Composite index backing the ranking query
CREATE INDEX IF NOT EXISTS idx_leaderboard_ranking ON leaderboard(stage_reached, time_seconds);
CREATE INDEX IF NOT EXISTS idx_leaderboard_username ON leaderboard(username);
CREATE INDEX IF NOT EXISTS idx_leaderboard_date ON leaderboard(date_submitted);

-- Optional contact details collected at submission
CREATE TABLE IF NOT EXISTS contact_info (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    email TEXT NOT NULL,
    submission_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (username, email)
);

CREATE INDEX IF NOT EXISTS idx_contact_info_username ON contact_info(username);
`
