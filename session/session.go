// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for run IDs that do not exist or were removed.
var ErrNotFound = errors.New("run not found")

// State is the mutable state of one active run. Callers only ever see
// copies; the live value is owned by the Store and reached through
// Mutate.
type State struct {
	ID              string
	CurrentLevel    int
	Eliminations    map[int]map[int]int // level -> tank type -> count
	CompletedLevels []int
	StartTime       time.Time
	EndTime         *time.Time
	Finished        bool
}

// clone deep-copies the state so callers cannot alias the maps owned
// by the store.
func (st State) clone() State {
	out := st
	out.Eliminations = make(map[int]map[int]int, len(st.Eliminations))
	for level, counts := range st.Eliminations {
		c := make(map[int]int, len(counts))
		for tankType, n := range counts {
			c[tankType] = n
		}
		out.Eliminations[level] = c
	}
	out.CompletedLevels = append([]int(nil), st.CompletedLevels...)
	if st.EndTime != nil {
		t := *st.EndTime
		out.EndTime = &t
	}
	return out
}

// Store maps run IDs to run state. The index map is guarded by an
// RWMutex; each run carries its own mutex, so mutations to different
// runs proceed independently while mutations to the same run are
// totally ordered.
type Store struct {
	maxRuns int
	maxAge  time.Duration
	now     func() time.Time

	mu   sync.RWMutex
	runs map[string]*entry
}

type entry struct {
	mu      sync.Mutex
	removed bool
	state   State
}

// NewStore creates an empty store. maxRuns is the live-run count that
// triggers opportunistic eviction on Create; maxAge is how old a run's
// StartTime must be before eviction may claim it.
func NewStore(maxRuns int, maxAge time.Duration) *Store {
	return &Store{
		maxRuns: maxRuns,
		maxAge:  maxAge,
		now:     time.Now,
		runs:    make(map[string]*entry),
	}
}

// Create allocates a fresh run at level 1 and returns its ID. Run IDs
// are v4 UUIDs: globally unique, unguessable, and never reused. When
// the store already holds maxRuns live runs, stale runs are evicted
// first to bound memory growth from abandoned sessions.
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.runs) >= s.maxRuns {
		s.evictLocked(s.now())
	}

	id := uuid.NewString()
	s.runs[id] = &entry{state: State{
		ID:           id,
		CurrentLevel: 1,
		Eliminations: make(map[int]map[int]int),
		StartTime:    s.now(),
	}}
	return id
}

// Get returns a snapshot copy of a run's state.
func (s *Store) Get(id string) (State, error) {
	s.mu.RLock()
	e, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		return State{}, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return State{}, ErrNotFound
	}
	return e.state.clone(), nil
}

// Mutate applies fn to the run's state under that run's lock. If fn
// returns an error it must leave the state untouched; the error is
// returned to the caller unchanged.
func (s *Store) Mutate(id string, fn func(*State) error) error {
	s.mu.RLock()
	e, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return ErrNotFound
	}
	return fn(&e.state)
}

// Freeze sets the run's end time if it is not set yet and returns a
// snapshot. The first caller wins; every later call observes the same
// EndTime.
func (s *Store) Freeze(id string) (State, error) {
	var snap State
	err := s.Mutate(id, func(st *State) error {
		if st.EndTime == nil {
			t := s.now()
			st.EndTime = &t
		}
		snap = st.clone()
		return nil
	})
	if err != nil {
		return State{}, err
	}
	return snap, nil
}

// Remove deletes a run. Removing an already-removed run is a no-op;
// later Get/Mutate calls for the ID report ErrNotFound.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	e, ok := s.runs[id]
	delete(s.runs, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	// Mark the entry so a mutation already waiting on its lock fails
	// instead of writing to a deleted run.
	e.mu.Lock()
	e.removed = true
	e.mu.Unlock()
}

// EvictStale removes every run whose StartTime is older than the
// store's max age relative to now. Returns the number evicted.
func (s *Store) EvictStale(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(now)
}

func (s *Store) evictLocked(now time.Time) int {
	evicted := 0
	for id, e := range s.runs {
		e.mu.Lock()
		stale := now.Sub(e.state.StartTime) > s.maxAge
		if stale {
			e.removed = true
		}
		e.mu.Unlock()
		if stale {
			delete(s.runs, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of live runs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
