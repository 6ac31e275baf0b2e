// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// PlayerCode is the grid cell code marking the player spawn point. The
// same code identifies the player tank in elimination events.
const PlayerCode = 3

var levelFileRE = regexp.MustCompile(`^level_(\d+)\.txt$`)

// Point is a grid position (column, row).
type Point struct {
	X int
	Y int
}

// LevelInfo holds the server-authoritative composition of one level.
// Values are built once at load time and never mutated; the maps are
// shared and must be treated as read-only.
type LevelInfo struct {
	Number          int
	TotalEnemyTanks int
	EnemyTankCounts map[int]int
	PlayerSpawn     *Point
	Content         string
}

// Catalog is an immutable table of levels, safe for concurrent reads.
type Catalog struct {
	levels map[int]LevelInfo
}

// Load scans dir for level_<N>.txt files and parses each into a
// LevelInfo. It fails if the directory cannot be read or yields no
// level files at all.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read maps directory %s: %w", dir, err)
	}

	levels := make(map[int]LevelInfo)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := levelFileRE.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil || number < 1 {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		levels[number] = parseLevel(number, string(raw))
	}

	if len(levels) == 0 {
		return nil, fmt.Errorf("no level files found in %s", dir)
	}

	return &Catalog{levels: levels}, nil
}

// New builds a catalog directly from level metadata, bypassing the
// filesystem. Intended for tests.
func New(levels ...LevelInfo) *Catalog {
	m := make(map[int]LevelInfo, len(levels))
	for _, lvl := range levels {
		m[lvl.Number] = lvl
	}
	return &Catalog{levels: m}
}

// parseLevel reads the grid section of a level file body: rows of
// whitespace-separated cell codes up to the first blank line. Anything
// after the blank line belongs to the client (decorations, metadata)
// and is ignored here, but the full body is kept for serving.
func parseLevel(number int, content string) LevelInfo {
	info := LevelInfo{
		Number:          number,
		EnemyTankCounts: make(map[int]int),
		Content:         content,
	}

	grid, _, _ := strings.Cut(content, "\n\n")
	for y, line := range strings.Split(grid, "\n") {
		for x, token := range strings.Fields(line) {
			code, err := strconv.Atoi(token)
			if err != nil {
				// Non-numeric tokens are terrain.
				continue
			}
			switch {
			case code == PlayerCode:
				// First spawn cell wins; extra spawn cells are ignored.
				if info.PlayerSpawn == nil {
					info.PlayerSpawn = &Point{X: x, Y: y}
				}
			case code > PlayerCode:
				info.EnemyTankCounts[code]++
				info.TotalEnemyTanks++
			}
		}
	}

	return info
}

// Level returns the info for a level number, if present.
func (c *Catalog) Level(number int) (LevelInfo, bool) {
	info, ok := c.levels[number]
	return info, ok
}

// Has reports whether a level number exists in the catalog.
func (c *Catalog) Has(number int) bool {
	_, ok := c.levels[number]
	return ok
}

// Len returns the number of loaded levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}
