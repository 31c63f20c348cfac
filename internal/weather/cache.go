package weather

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/msituguard/msituguard/internal/metrics"
	"github.com/msituguard/msituguard/internal/models"
)

const DefaultTTL = time.Hour

type Fetcher interface {
	FetchCurrent(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error)
}

type cacheEntry struct {
	snapshot models.WeatherSnapshot
	expires  time.Time
}

// Service answers weather lookups from a per-coordinate TTL cache, fetching
// on miss. Concurrent fetches for the same key are allowed; the last writer
// wins, which is harmless since both hold fresh data.
type Service struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewService(fetcher Fetcher, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Current returns the cached or freshly fetched snapshot for the coordinate.
// ok is false when the upstream is unavailable and no fresh entry exists;
// callers degrade to playbook-only behavior in that case.
func (s *Service) Current(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, bool) {
	key := cacheKey(lat, lon)

	s.mu.RLock()
	entry, found := s.entries[key]
	s.mu.RUnlock()

	if found && s.now().Before(entry.expires) {
		metrics.WeatherCacheHitsTotal.Inc()
		return entry.snapshot, true
	}

	if s.fetcher == nil {
		return models.WeatherSnapshot{}, false
	}

	snap, err := s.fetcher.FetchCurrent(ctx, lat, lon)
	if err != nil {
		metrics.WeatherFetchesTotal.WithLabelValues("error").Inc()
		log.Printf("weather: fetch %s: %v", key, err)
		return models.WeatherSnapshot{}, false
	}
	metrics.WeatherFetchesTotal.WithLabelValues("success").Inc()

	s.mu.Lock()
	s.entries[key] = cacheEntry{snapshot: *snap, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return *snap, true
}

// Coordinates are rounded so nearby requests share an entry.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}
