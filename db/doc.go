// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

Two tables are persisted:

  - leaderboard: finalized scores, indexed on (stage_reached,
    time_seconds) for the ranking query
  - contact_info: optional contact rows with a UNIQUE (username, email)
    constraint so duplicate submissions never create a second row

The DDL avoids engine-specific syntax because the server runs against
either Postgres (production) or SQLite (development and tests).
*/
package db
