// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session owns the mutable state of active game runs.

The Store is the only shared mutable resource in the server. All
writers go through its Create/Mutate/Remove contract; no caller holds
a live *State across requests — Get and Freeze hand out deep copies.

# Concurrency

Two locks are involved. The store's RWMutex guards only the ID index;
each run has its own mutex serializing mutations to that run. Two
elimination events for the same run are therefore totally ordered,
while events for different runs never contend beyond the index lookup.

# Lifecycle

	id := runs.Create()                 // run at level 1, clock started
	runs.Mutate(id, fn)                 // exclusive, all-or-nothing
	snap, err := runs.Freeze(id)        // one-time end-time capture
	runs.Remove(id)                     // consumed at score submission

Abandoned runs are evicted opportunistically: when Create finds the
store above its configured live-run threshold, it removes every run
older than the configured max age. There is no background timer.
*/
package session
