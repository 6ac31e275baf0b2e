// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/grid-tanks/catalog"
	"github.com/danielhkuo/grid-tanks/game"
	"github.com/danielhkuo/grid-tanks/models"
	"github.com/danielhkuo/grid-tanks/testutil"
)

// TestConcurrentGameEvents hammers one run with duplicate elimination
// reports. The recorded count must never exceed the level composition,
// and completion must be reported exactly once.
func TestConcurrentGameEvents(t *testing.T) {
	// Single level, 50 type-4 tanks, no next level.
	levels := catalog.New(catalog.LevelInfo{
		Number:          1,
		TotalEnemyTanks: 50,
		EnemyTankCounts: map[int]int{4: 50},
	})
	runs := testutil.NewTestStore()
	engine := game.New(levels, runs)
	h := NewGameHandler(runs, engine, levels)

	runID := runs.Create()

	const attempts = 100
	var accepted, rejected, completions atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/game-event", models.GameEventRequest{RunID: runID, TankType: 4}, nil)
			w := httptest.NewRecorder()
			h.GameEvent(w, req)

			switch w.Code {
			case http.StatusOK:
				accepted.Add(1)
				var resp models.GameEventResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.GameComplete {
					completions.Add(1)
				}
			case http.StatusBadRequest:
				rejected.Add(1)
			default:
				t.Errorf("Unexpected status %d", w.Code)
			}
		}()
	}
	wg.Wait()

	if accepted.Load() != 50 {
		t.Errorf("Expected exactly 50 accepted events, got %d", accepted.Load())
	}
	if rejected.Load() != 50 {
		t.Errorf("Expected 50 rejected events, got %d", rejected.Load())
	}
	if completions.Load() != 1 {
		t.Errorf("Completion must trigger exactly once, got %d", completions.Load())
	}

	st, err := runs.Get(runID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if st.Eliminations[1][4] != 50 {
		t.Errorf("Final count must equal the composition: got %d", st.Eliminations[1][4])
	}
	if !st.Finished {
		t.Error("Run should be finished")
	}
}

// TestConcurrentFreeze verifies that racing final-stats requests all
// observe the same frozen time.
func TestConcurrentFreeze(t *testing.T) {
	h, runs := newGameHandler(t)
	runID := runs.Create()

	const callers = 20
	times := make([]string, callers)
	var wg sync.WaitGroup

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/get-final-stats", models.RunRequest{RunID: runID}, nil)
			w := httptest.NewRecorder()
			h.GetFinalStats(w, req)
			if w.Code != http.StatusOK {
				t.Errorf("Unexpected status %d", w.Code)
				return
			}
			var resp models.FinalStatsResponse
			testutil.AssertJSON(t, w, &resp)
			times[idx] = resp.Time
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if times[i] != times[0] {
			t.Fatalf("Caller %d saw %q, caller 0 saw %q", i, times[i], times[0])
		}
	}
}

// TestConcurrentRunsIsolated runs several independent games in
// parallel; each must complete cleanly without seeing the others'
// state.
func TestConcurrentRunsIsolated(t *testing.T) {
	h, runs := newGameHandler(t)

	const players = 10
	var wg sync.WaitGroup
	var finished atomic.Int32

	for i := 0; i < players; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			runID := runs.Create()
			for _, tank := range []int{4, 4, 5, 4} {
				req := testutil.MakeRequest("POST", "/game-event", models.GameEventRequest{RunID: runID, TankType: tank}, nil)
				w := httptest.NewRecorder()
				h.GameEvent(w, req)
				if w.Code != http.StatusOK {
					t.Errorf("Event failed with %d: %s", w.Code, w.Body.String())
					return
				}
			}

			st, err := runs.Get(runID)
			if err != nil {
				t.Errorf("Get() failed: %v", err)
				return
			}
			if st.Finished {
				finished.Add(1)
			}
		}()
	}
	wg.Wait()

	if finished.Load() != players {
		t.Errorf("Expected %d finished runs, got %d", players, finished.Load())
	}
}
