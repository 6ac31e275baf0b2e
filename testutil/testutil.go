// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/grid-tanks/catalog"
	"github.com/danielhkuo/grid-tanks/db"
	"github.com/danielhkuo/grid-tanks/session"
)

// Level1Map is a two-by-two enemy layout: two type-4 tanks, one type-5,
// total 3. Includes a trailing section the parser must ignore.
const Level1Map = `0 0 0 0 0
0 4 0 4 0
0 0 5 0 0
1 2 3 2 1

# decorations
grass water grass
`

// Level2Map has a single type-4 tank, so one elimination finishes the game.
const Level2Map = `0 4 0
0 3 0
`

// SetupTestDB opens a throwaway SQLite database in a temp directory and
// creates the full schema. The connection is closed automatically when
// the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gridtanks_test.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// WriteLevelFile writes a level_<N>.txt map file into dir.
func WriteLevelFile(t *testing.T, dir string, number int, content string) {
	t.Helper()

	name := filepath.Join(dir, fmt.Sprintf("level_%d.txt", number))
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write level file: %v", err)
	}
}

// LoadTestCatalog builds a two-level catalog (Level1Map, Level2Map)
// from files in a temp directory.
func LoadTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	dir := t.TempDir()
	WriteLevelFile(t, dir, 1, Level1Map)
	WriteLevelFile(t, dir, 2, Level2Map)

	levels, err := catalog.Load(dir)
	if err != nil {
		t.Fatalf("Failed to load test catalog: %v", err)
	}
	return levels
}

// NewTestStore returns a run store with production-like tunables.
func NewTestStore() *session.Store {
	return session.NewStore(100, time.Hour)
}

// InsertTestScore inserts a leaderboard row directly.
func InsertTestScore(t *testing.T, conn *sql.DB, username string, stage, seconds int) {
	t.Helper()

	formatted := fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	_, err := conn.Exec(`
		INSERT INTO leaderboard (id, username, stage_reached, time_seconds, formatted_time, date_submitted)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), username, stage, seconds, formatted, time.Now())
	if err != nil {
		t.Fatalf("Failed to insert test score: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
