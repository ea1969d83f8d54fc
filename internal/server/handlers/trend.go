// internal/server/handlers/trend.go

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"trendwatch/internal/domain/trend"
	"trendwatch/internal/service/trendcache"
)

// TrendCache is the cache surface the handlers translate onto.
type TrendCache interface {
	Get(ctx context.Context) (trendcache.Result, error)
	ForceRefresh(ctx context.Context) (trend.Snapshot, error)
	State() (trend.CacheState, time.Duration)
}

// TrendHandler handles trend-related HTTP requests
type TrendHandler struct {
	cache        TrendCache
	defaultLimit int
	logger       *logrus.Logger
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(cache TrendCache, defaultLimit int, logger *logrus.Logger) *TrendHandler {
	return &TrendHandler{
		cache:        cache,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

type trendsResponse struct {
	Success   bool                `json:"success"`
	Count     int                 `json:"count"`
	Trends    []trend.RankedTrend `json:"trends"`
	FetchedAt time.Time           `json:"fetched_at"`
	Cached    bool                `json:"cached"`
	Stale     bool                `json:"stale"`
}

// GetTrends returns the ranked trend list, refreshing the cache when
// its entry is missing or stale.
func (h *TrendHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	limit := h.parseLimit(r)

	res, err := h.cache.Get(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get trends")
		respondWithError(w, http.StatusBadGateway, "fetch_failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, buildTrendsResponse(res, limit))
}

// Refresh forces a fetch-and-rank cycle regardless of the cache TTL.
func (h *TrendHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.cache.ForceRefresh(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Forced refresh failed")
		respondWithError(w, http.StatusBadGateway, "fetch_failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, buildTrendsResponse(trendcache.Result{Snapshot: snap}, h.defaultLimit))
}

// parseLimit reads the limit query parameter. Anything that is not a
// positive integer falls back to the default rather than erroring.
func (h *TrendHandler) parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return h.defaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return h.defaultLimit
	}
	return limit
}

func buildTrendsResponse(res trendcache.Result, limit int) trendsResponse {
	trends := res.Snapshot.Trends
	if trends == nil {
		trends = []trend.RankedTrend{}
	}
	if len(trends) > limit {
		trends = trends[:limit]
	}

	return trendsResponse{
		Success:   true,
		Count:     len(trends),
		Trends:    trends,
		FetchedAt: res.Snapshot.FetchedAt,
		Cached:    res.Cached,
		Stale:     res.Stale,
	}
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, errCode string, err error) {
	response := map[string]interface{}{
		"success": false,
		"error":   errCode,
	}
	if err != nil {
		response["detail"] = err.Error()
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
