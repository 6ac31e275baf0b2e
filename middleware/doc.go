// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers.

  - WithLogging: wraps a handler, logging method, path, status, client
    IP, and duration via slog
  - CORS: permissive cross-origin handling for the browser game client,
    including OPTIONS preflight
  - JSONResponse / ErrorResponse / TextResponse: response writers
  - ParseJSONBody: request body decoding
  - GetClientIP: X-Forwarded-For / X-Real-IP / RemoteAddr resolution
*/
package middleware
