// internal/server/handlers/health.go

package handlers

import (
	"net/http"

	"trendwatch/internal/domain/trend"
)

// HealthHandler reports process liveness and cache state
type HealthHandler struct {
	cache TrendCache
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cache TrendCache) *HealthHandler {
	return &HealthHandler{
		cache: cache,
	}
}

type healthResponse struct {
	Status          string           `json:"status"`
	CacheState      trend.CacheState `json:"cache_state"`
	EntryAgeSeconds *float64         `json:"entry_age_seconds"`
}

// Health returns liveness plus the cache lifecycle state and the age of
// the current entry, when one exists.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	state, age := h.cache.State()

	resp := healthResponse{
		Status:     "ok",
		CacheState: state,
	}
	if state != trend.StateEmpty {
		seconds := age.Seconds()
		resp.EntryAgeSeconds = &seconds
	}

	respondWithJSON(w, http.StatusOK, resp)
}
