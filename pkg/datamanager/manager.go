// Package datamanager caches the content every page render needs (the active
// header and the active hero) so repeated renders within the TTL share one
// CMS round trip.
//
// Failures are never returned to the caller. A failed lookup is logged,
// cached as null for the TTL and surfaces as a nil value: treat nil as
// "content unavailable", not "content absent".
package datamanager

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Sternrassler/strapi-client/pkg/cache"
	"github.com/Sternrassler/strapi-client/pkg/content"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultTTL is how long cached values stay live.
const DefaultTTL = 5 * time.Minute

var (
	sharedDataKey   = cache.Key{Name: "shared-data"}
	activeHeaderKey = cache.Key{Name: "active-header"}
	activeHeroKey   = cache.Key{Name: "active-hero"}

	nullJSON = []byte("null")
)

var sharedDataFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "cms_shared_data_fetch_seconds",
	Help:    "Duration of shared data fetches on cache miss",
	Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
})

// SharedFetcher performs the two lookups behind SharedData.
// *strapi.Client satisfies it.
type SharedFetcher interface {
	ActiveHeader(ctx context.Context) (*content.Entity[content.Header], error)
	ActiveHero(ctx context.Context) (*content.Entity[content.Hero], error)
}

// SharedData is the content shared by every page.
type SharedData struct {
	Header     *content.Entity[content.Header] `json:"header"`
	ActiveHero *content.Entity[content.Hero]   `json:"activeHero"`
}

// Config holds manager configuration.
type Config struct {
	// TTL applies to every entry. Zero selects DefaultTTL.
	TTL time.Duration

	// Clock replaces time.Now. It must agree with the store's clock
	// (cache.WithClock or cache.WithRedisClock).
	Clock func() time.Time
}

// Manager is a TTL cache in front of a SharedFetcher.
type Manager struct {
	fetcher SharedFetcher
	store   cache.Store
	ttl     time.Duration
	now     func() time.Time
	logger  zerolog.Logger

	mu    sync.Mutex
	stats Stats
}

// New creates a manager. A nil store selects a fresh cache.MemoryStore on
// the same clock.
func New(fetcher SharedFetcher, store cache.Store, cfg Config) *Manager {
	if fetcher == nil {
		panic("datamanager: fetcher cannot be nil")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if store == nil {
		store = cache.NewMemoryStore(cache.WithClock(cfg.Clock))
	}

	return &Manager{
		fetcher: fetcher,
		store:   store,
		ttl:     cfg.TTL,
		now:     cfg.Clock,
		logger:  log.With().Str("component", "datamanager").Logger(),
	}
}

// TTL returns the configured entry lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// GetSharedData returns the active header and hero. On a miss both lookups
// run concurrently, each through its own cached entry, and the combined
// result is cached.
func (m *Manager) GetSharedData(ctx context.Context) SharedData {
	if shared, _, found := fromCache[SharedData](ctx, m, sharedDataKey); found {
		m.recordHit()
		m.logger.Debug().Str("key", sharedDataKey.String()).Msg("Cache hit")
		return shared
	}
	m.recordMiss()

	start := m.now()

	var shared SharedData
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		shared.Header, _ = cached(ctx, m, activeHeaderKey, m.fetcher.ActiveHeader)
	}()
	go func() {
		defer wg.Done()
		shared.ActiveHero, _ = cached(ctx, m, activeHeroKey, m.fetcher.ActiveHero)
	}()
	wg.Wait()

	elapsed := m.now().Sub(start)
	sharedDataFetchDuration.Observe(elapsed.Seconds())

	// an aborted request must not pin empty content for the TTL
	if ctx.Err() != nil {
		return shared
	}

	m.save(ctx, sharedDataKey, mustMarshal(m.logger, shared))

	m.mu.Lock()
	m.stats.TotalCalls++
	m.stats.TotalTime += elapsed
	m.mu.Unlock()

	m.logger.Debug().
		Bool("header", shared.Header != nil).
		Bool("active_hero", shared.ActiveHero != nil).
		Dur("duration", elapsed).
		Msg("Shared data fetched")

	return shared
}

// GetHeader returns the active header from the shared data.
func (m *Manager) GetHeader(ctx context.Context) *content.Entity[content.Header] {
	return m.GetSharedData(ctx).Header
}

// GetHero returns the active hero from the shared data.
func (m *Manager) GetHero(ctx context.Context) *content.Entity[content.Hero] {
	return m.GetSharedData(ctx).ActiveHero
}

// GetPageData caches the result of fetch under the page id. It reports false
// when the page data is unavailable, either freshly or from a cached failure.
func GetPageData[T any](ctx context.Context, m *Manager, pageID string, fetch func(context.Context) (T, error)) (T, bool) {
	key := cache.Key{Name: "page", Params: map[string]string{"id": pageID}}

	if value, ok, found := fromCache[T](ctx, m, key); found {
		m.recordHit()
		return value, ok
	}
	m.recordMiss()

	return fetchAndStore(ctx, m, key, fetch)
}

// ClearCache drops every entry and resets the counters.
func (m *Manager) ClearCache(ctx context.Context) error {
	m.mu.Lock()
	m.stats = Stats{}
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	m.logger.Info().Msg("Cache cleared")
	return nil
}

// Stats returns a snapshot of the counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// cached returns the value under key, fetching and storing it on a miss.
// It does not touch the hit/miss counters.
func cached[T any](ctx context.Context, m *Manager, key cache.Key, fetch func(context.Context) (T, error)) (T, bool) {
	if value, ok, found := fromCache[T](ctx, m, key); found {
		return value, ok
	}
	return fetchAndStore(ctx, m, key, fetch)
}

// fromCache decodes the live entry under key. found is false on a miss; ok is
// false when the entry is a cached null.
func fromCache[T any](ctx context.Context, m *Manager, key cache.Key) (value T, ok, found bool) {
	entry, hit := m.load(ctx, key)
	if !hit {
		return value, false, false
	}
	if bytes.Equal(entry.Data, nullJSON) {
		return value, false, true
	}
	if err := json.Unmarshal(entry.Data, &value); err != nil {
		m.logger.Warn().Err(err).Str("key", key.String()).Msg("Discarding undecodable cache entry")
		var zero T
		return zero, false, false
	}
	return value, true, true
}

// fetchAndStore runs fetch and caches its JSON encoding. Failures are stored
// as null, except for context cancellation, which is not stored at all.
func fetchAndStore[T any](ctx context.Context, m *Manager, key cache.Key, fetch func(context.Context) (T, error)) (T, bool) {
	value, err := fetch(ctx)
	if err != nil {
		var zero T
		if ctx.Err() != nil {
			return zero, false
		}
		m.logger.Warn().
			Err(err).
			Str("key", key.String()).
			Dur("negative_ttl", m.ttl).
			Msg("Fetch failed - caching null")
		m.save(ctx, key, nullJSON)
		return zero, false
	}

	data := mustMarshal(m.logger, value)
	m.save(ctx, key, data)
	return value, !bytes.Equal(data, nullJSON)
}

func (m *Manager) load(ctx context.Context, key cache.Key) (*cache.Entry, bool) {
	entry, err := m.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			m.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache read failed")
		}
		return nil, false
	}
	return entry, true
}

func (m *Manager) save(ctx context.Context, key cache.Key, data []byte) {
	if err := m.store.Set(ctx, key, cache.NewEntry(data, m.now(), m.ttl)); err != nil {
		m.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache write failed")
	}
}

func (m *Manager) recordHit() {
	m.mu.Lock()
	m.stats.Hits++
	m.mu.Unlock()
}

func (m *Manager) recordMiss() {
	m.mu.Lock()
	m.stats.Misses++
	m.mu.Unlock()
}

func mustMarshal(logger zerolog.Logger, v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn().Err(err).Msg("Encode failed - caching null")
		return nullJSON
	}
	return data
}
