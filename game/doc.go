// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package game implements the run progression engine.

Each run is a small state machine: InProgress(level) or Finished. The
engine validates client-reported elimination events against the level
catalog, detects level completion, and advances or finishes the run.

# Transitions

RecordEvent(runID, tankType):

  - tank type 3 (the player): clears the current level's elimination
    counts and reports a level reset; completed levels and the current
    level are untouched
  - unknown level or tank type, or a count already at the catalog
    limit: the event is rejected and the run state is unchanged
  - otherwise the count is incremented; when the recorded total first
    equals the level's tank total, the level completes and the run
    advances — or finishes if no next level file exists

FinalStats freezes the run's end time exactly once; every call after
the first reports the identical elapsed time. Formatting is M:SS with
both components truncated toward zero.
*/
package game
