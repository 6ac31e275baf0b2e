// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/grid-tanks/catalog"
	"github.com/danielhkuo/grid-tanks/session"
)

var (
	// ErrInvalidLevel means the run's current level has no catalog entry.
	ErrInvalidLevel = errors.New("no such level")
	// ErrInvalidTankType means the reported type is not part of the
	// current level's enemy composition.
	ErrInvalidTankType = errors.New("invalid tank type for level")
	// ErrOverElimination means the client reported more kills of a type
	// than the level contains. The event is rejected and nothing is
	// recorded.
	ErrOverElimination = errors.New("elimination count exceeds level composition")
	// ErrGameComplete means the run is already finished.
	ErrGameComplete = errors.New("game already complete")
)

// Result describes the outcome of one elimination event.
type Result struct {
	LevelReset    bool
	LevelComplete bool
	NextLevel     int // set when LevelComplete and another level exists
	GameComplete  bool
}

// LevelStatus describes where a run currently stands.
type LevelStatus struct {
	Finished   bool
	Level      int // current level while in progress
	FinalLevel int // last completed level once finished
}

// Stats is the frozen outcome of a run.
type Stats struct {
	FinalLevel int
	Elapsed    time.Duration
}

// Engine applies progression rules to run state. Elimination events
// are validated against the server-authoritative level catalog rather
// than trusted blindly, because the client is adversarial.
type Engine struct {
	levels *catalog.Catalog
	runs   *session.Store
}

func New(levels *catalog.Catalog, runs *session.Store) *Engine {
	return &Engine{levels: levels, runs: runs}
}

// RecordEvent processes one elimination event for a run.
//
// A player-tank event clears the elimination counts of the current
// level: a player death re-attempts the level, not the run. An enemy
// event increments that type's count and, when the level's full
// composition is accounted for, either advances to the next level or
// finishes the run.
//
// Validation failures leave the run state exactly as it was.
func (e *Engine) RecordEvent(runID string, tankType int) (Result, error) {
	var res Result
	err := e.runs.Mutate(runID, func(st *session.State) error {
		if st.Finished {
			return ErrGameComplete
		}

		if tankType == catalog.PlayerCode {
			delete(st.Eliminations, st.CurrentLevel)
			res = Result{LevelReset: true}
			return nil
		}

		info, ok := e.levels.Level(st.CurrentLevel)
		if !ok {
			return fmt.Errorf("level %d: %w", st.CurrentLevel, ErrInvalidLevel)
		}
		limit, ok := info.EnemyTankCounts[tankType]
		if !ok {
			return fmt.Errorf("tank type %d: %w", tankType, ErrInvalidTankType)
		}

		counts := st.Eliminations[st.CurrentLevel]
		if counts == nil {
			counts = make(map[int]int)
			st.Eliminations[st.CurrentLevel] = counts
		}
		// Check before incrementing so a duplicate or forged event is
		// rejected without committing anything.
		if counts[tankType] >= limit {
			return fmt.Errorf("tank type %d: %w", tankType, ErrOverElimination)
		}
		counts[tankType]++

		total := 0
		for _, n := range counts {
			total += n
		}
		if total != info.TotalEnemyTanks {
			return nil
		}

		// Level complete.
		st.CompletedLevels = append(st.CompletedLevels, st.CurrentLevel)
		if e.levels.Has(st.CurrentLevel + 1) {
			st.CurrentLevel++
			res = Result{LevelComplete: true, NextLevel: st.CurrentLevel}
		} else {
			// No more levels. The run stays in the store until the
			// score is submitted.
			st.Finished = true
			res = Result{LevelComplete: true, GameComplete: true}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// LevelStatus reports the run's current level, or the final level once
// the run is finished.
func (e *Engine) LevelStatus(runID string) (LevelStatus, error) {
	st, err := e.runs.Get(runID)
	if err != nil {
		return LevelStatus{}, err
	}
	if st.Finished {
		return LevelStatus{Finished: true, FinalLevel: st.CurrentLevel}, nil
	}
	return LevelStatus{Level: st.CurrentLevel}, nil
}

// FinalStats freezes the run's end time (first call wins) and returns
// the level reached plus elapsed time. Idempotent: repeated calls see
// the same frozen elapsed time.
func (e *Engine) FinalStats(runID string) (Stats, error) {
	st, err := e.runs.Freeze(runID)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		FinalLevel: st.CurrentLevel,
		Elapsed:    st.EndTime.Sub(st.StartTime),
	}, nil
}

// FormatElapsed renders a duration as minutes:seconds with the seconds
// zero-padded, truncating (not rounding) both components toward zero.
func FormatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
