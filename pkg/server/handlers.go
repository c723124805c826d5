package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"hearthside/cookbook/pkg/index"
)

// healthHandler reports readiness: 200 once a build has completed,
// 503 before that.
type healthHandler struct {
	ready *atomic.Bool
}

// ServeHTTP implements http.Handler for readiness checks.
func (h *healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := "ready"
	statusCode := http.StatusOK
	if !h.ready.Load() {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// searchHandler serves /api/search against the live recipe index.
//
// Query parameters:
//   - q: space-separated search terms, matched against titles and tags
//   - tag: exact tag filter
//   - group: exact group label filter
//   - limit: maximum number of results
type searchHandler struct {
	store  index.Store
	logger *slog.Logger
}

// ServeHTTP implements http.Handler for recipe search.
func (h *searchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params := r.URL.Query()

	query := index.Query{
		Tag:   params.Get("tag"),
		Group: params.Get("group"),
	}
	if q := strings.TrimSpace(params.Get("q")); q != "" {
		query.Terms = strings.Fields(q)
	}
	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		query.Limit = limit
	}

	entries, err := h.store.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("search failed", "error", err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"count":   len(entries),
		"results": entries,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
