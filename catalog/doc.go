// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog parses static level map files into immutable per-level
metadata.

A level file is named level_<N>.txt and starts with a grid section:
rows of whitespace-separated integer cell codes. A blank line ends the
grid; any remaining content is client-side data the server does not
interpret.

Cell code semantics:

	<= 2        terrain, ignored (as are non-numeric tokens)
	3           player spawn; the first occurrence wins
	> 3         an enemy tank type; each cell adds one tank of that type

The catalog is built once at startup with Load and injected into the
handlers. It is never mutated afterward, so concurrent reads need no
synchronization. The raw file body is retained in LevelInfo.Content so
level serving never touches the filesystem per request.

	levels, err := catalog.Load("maps")
	info, ok := levels.Level(1)
*/
package catalog
