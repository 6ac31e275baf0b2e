// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sync"
	"testing"
	"time"
)

func TestCreateAndGet(t *testing.T) {
	s := NewStore(100, time.Hour)

	id := s.Create()
	if id == "" {
		t.Fatal("Expected a run ID")
	}

	st, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if st.ID != id {
		t.Errorf("Expected ID %s, got %s", id, st.ID)
	}
	if st.CurrentLevel != 1 {
		t.Errorf("New run should start at level 1, got %d", st.CurrentLevel)
	}
	if st.Finished {
		t.Error("New run should not be finished")
	}
	if st.EndTime != nil {
		t.Error("New run should have no end time")
	}
	if time.Since(st.StartTime) > time.Minute {
		t.Error("Start time should be recent")
	}
}

func TestCreateUniqueIDs(t *testing.T) {
	s := NewStore(100, time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := s.Create()
		if seen[id] {
			t.Fatalf("Duplicate run ID %s", id)
		}
		seen[id] = true
	}
}

func TestGetUnknownRun(t *testing.T) {
	s := NewStore(100, time.Hour)

	if _, err := s.Get("nope"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMutate(t *testing.T) {
	s := NewStore(100, time.Hour)
	id := s.Create()

	err := s.Mutate(id, func(st *State) error {
		st.Eliminations[1] = map[int]int{4: 2}
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate() failed: %v", err)
	}

	st, _ := s.Get(id)
	if st.Eliminations[1][4] != 2 {
		t.Errorf("Mutation not applied: %v", st.Eliminations)
	}
}

func TestMutateAfterRemove(t *testing.T) {
	s := NewStore(100, time.Hour)
	id := s.Create()

	s.Remove(id)
	// Removing again is a no-op.
	s.Remove(id)

	if err := s.Mutate(id, func(st *State) error { return nil }); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound after removal, got %v", err)
	}
	if _, err := s.Get(id); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound after removal, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty store, got %d runs", s.Len())
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore(100, time.Hour)
	id := s.Create()

	s.Mutate(id, func(st *State) error {
		st.Eliminations[1] = map[int]int{4: 1}
		st.CompletedLevels = []int{1}
		return nil
	})

	st, _ := s.Get(id)
	st.Eliminations[1][4] = 99
	st.CompletedLevels[0] = 99

	again, _ := s.Get(id)
	if again.Eliminations[1][4] != 1 {
		t.Error("Get() must not expose the store's maps")
	}
	if again.CompletedLevels[0] != 1 {
		t.Error("Get() must not expose the store's slices")
	}
}

func TestFreezeIdempotent(t *testing.T) {
	s := NewStore(100, time.Hour)
	id := s.Create()

	first, err := s.Freeze(id)
	if err != nil {
		t.Fatalf("Freeze() failed: %v", err)
	}
	if first.EndTime == nil {
		t.Fatal("Freeze() should set the end time")
	}

	time.Sleep(10 * time.Millisecond)

	second, err := s.Freeze(id)
	if err != nil {
		t.Fatalf("Second Freeze() failed: %v", err)
	}
	if !first.EndTime.Equal(*second.EndTime) {
		t.Errorf("End time changed: %v vs %v", first.EndTime, second.EndTime)
	}
}

func TestEvictStale(t *testing.T) {
	s := NewStore(100, time.Hour)
	id := s.Create()

	// Nothing is stale yet.
	if n := s.EvictStale(time.Now()); n != 0 {
		t.Errorf("Expected 0 evicted, got %d", n)
	}

	n := s.EvictStale(time.Now().Add(2 * time.Hour))
	if n != 1 {
		t.Errorf("Expected 1 evicted, got %d", n)
	}
	if _, err := s.Get(id); err != ErrNotFound {
		t.Errorf("Evicted run should be gone, got %v", err)
	}
}

func TestCreateEvictsWhenFull(t *testing.T) {
	// Max age of a nanosecond makes every existing run stale by the
	// time the threshold trips.
	s := NewStore(2, time.Nanosecond)

	a := s.Create()
	b := s.Create()
	time.Sleep(5 * time.Millisecond)

	c := s.Create()

	if _, err := s.Get(a); err != ErrNotFound {
		t.Errorf("Run a should have been evicted, got %v", err)
	}
	if _, err := s.Get(b); err != ErrNotFound {
		t.Errorf("Run b should have been evicted, got %v", err)
	}
	if _, err := s.Get(c); err != nil {
		t.Errorf("Run c should survive its own creation: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 live run, got %d", s.Len())
	}
}

func TestConcurrentMutationsSerialized(t *testing.T) {
	s := NewStore(100, time.Hour)
	a := s.Create()
	b := s.Create()

	const perRun = 200
	var wg sync.WaitGroup
	for _, id := range []string{a, b} {
		for i := 0; i < perRun; i++ {
			wg.Add(1)
			go func(runID string) {
				defer wg.Done()
				s.Mutate(runID, func(st *State) error {
					counts := st.Eliminations[1]
					if counts == nil {
						counts = make(map[int]int)
						st.Eliminations[1] = counts
					}
					counts[4]++
					return nil
				})
			}(id)
		}
	}
	wg.Wait()

	for _, id := range []string{a, b} {
		st, err := s.Get(id)
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if st.Eliminations[1][4] != perRun {
			t.Errorf("Run %s: expected %d, got %d — lost updates", id, perRun, st.Eliminations[1][4])
		}
	}
}

func TestConcurrentRemoveAndMutate(t *testing.T) {
	s := NewStore(100, time.Hour)
	id := s.Create()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Remove(id)
	}()
	go func() {
		defer wg.Done()
		// Either order is fine; the mutation must never land on a
		// removed run without an error, and must never panic.
		s.Mutate(id, func(st *State) error {
			st.CurrentLevel = 2
			return nil
		})
	}()
	wg.Wait()

	if _, err := s.Get(id); err != ErrNotFound {
		t.Errorf("Run should be gone after Remove, got %v", err)
	}
}
