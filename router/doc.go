// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires HTTP routes to handlers.

Routes use Go 1.22+ method patterns on the standard ServeMux. The
router receives its dependencies (database, level catalog, run store)
from main and injects them into the handlers; nothing is global.

	mux := router.NewRouter(db, levels, runs)

CORS is not applied here — main wraps the returned mux with
middleware.CORS so preflight requests short-circuit before routing.
*/
package router
