package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"wallboard/app/cache"
	"wallboard/app/metrics"
	"wallboard/app/models"
)

// LibraryService serves static seed content through the cache. It exists to
// exercise the cache's library key space; the data itself is fixed.
type LibraryService struct {
	cache   cache.Cache
	metrics *metrics.Metrics
	ttl     time.Duration
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(c cache.Cache, m *metrics.Metrics, ttl time.Duration) *LibraryService {
	return &LibraryService{cache: c, metrics: m, ttl: ttl}
}

// Recipes returns the recipe library.
func (s *LibraryService) Recipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	s.cached(ctx, cache.LibraryPrefix+"recipes", &recipes, func() interface{} {
		return []models.Recipe{
			{ID: "old-fashioned", Title: "Old Fashioned", Tags: []string{"classic", "whiskey"}},
			{ID: "negroni", Title: "Negroni", Tags: []string{"classic", "gin"}},
			{ID: "daiquiri", Title: "Daiquiri", Tags: []string{"rum", "sour"}},
		}
	})
	return recipes, nil
}

// Places returns the places library.
func (s *LibraryService) Places(ctx context.Context) ([]models.Place, error) {
	var places []models.Place
	s.cached(ctx, cache.LibraryPrefix+"places", &places, func() interface{} {
		return []models.Place{
			{ID: "favorite-local", Name: "Your Favorite Local", City: "(add city)"},
			{ID: "hotel-bar", Name: "A Great Hotel Bar", City: "(add city)"},
		}
	})
	return places, nil
}

// History returns the history library.
func (s *LibraryService) History(ctx context.Context) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	s.cached(ctx, cache.LibraryPrefix+"history", &entries, func() interface{} {
		return []models.HistoryEntry{
			{ID: "ice", Title: "Why ice quality matters"},
			{ID: "bitters", Title: "Bitters: the bartender's spice rack"},
		}
	})
	return entries, nil
}

// cached fills out from the cache when possible, otherwise from seed and
// stores the result. Cache failures are counted and absorbed.
func (s *LibraryService) cached(ctx context.Context, key string, out interface{}, seed func() interface{}) {
	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		s.metrics.CacheErrors.WithLabelValues("library").Inc()
		slog.Warn("library cache get failed", "key", key, "error", err)
	} else if ok {
		if err := json.Unmarshal(data, out); err == nil {
			s.metrics.CacheHits.WithLabelValues("library").Inc()
			return
		}
	} else {
		s.metrics.CacheMisses.WithLabelValues("library").Inc()
	}

	value := seed()
	data, _ := json.Marshal(value)
	// Fill the caller's slice from the canonical JSON form.
	_ = json.Unmarshal(data, out)

	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.metrics.CacheErrors.WithLabelValues("library").Inc()
		slog.Warn("library cache set failed", "key", key, "error", err)
	}
}
