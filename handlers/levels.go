// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/grid-tanks/catalog"
	"github.com/danielhkuo/grid-tanks/middleware"
)

type LevelHandler struct {
	levels *catalog.Catalog
}

func NewLevelHandler(levels *catalog.Catalog) *LevelHandler {
	return &LevelHandler{levels: levels}
}

// GetLevelFile handles GET /level/{n}
// Serves the raw level file body. The content is cached in the catalog
// at startup, so no disk read happens here.
func (h *LevelHandler) GetLevelFile(w http.ResponseWriter, r *http.Request) {
	n := r.PathValue("n")
	number, err := strconv.Atoi(n)
	if err != nil || number < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid level number")
		return
	}

	info, ok := h.levels.Level(number)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Level "+n+" not found")
		return
	}

	middleware.TextResponse(w, http.StatusOK, info.Content)
}
