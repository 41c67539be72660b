// Package cache provides TTL caching of CMS payloads.
//
// Entries hold the JSON encoding of a value together with the time it was
// cached and the time it expires. Expiry is lazy: an entry is live while
// now <= Expires and is dropped by the read that finds it stale. Nothing
// sweeps the store in the background.
//
// Two stores implement the Store interface:
//
//   - MemoryStore keeps entries in a mutex-guarded map inside the process.
//   - RedisStore shares entries between processes through Redis, under a
//     key prefix ("cms:" by default).
//
// # Basic Usage
//
//	store := cache.NewMemoryStore()
//
//	key := cache.Key{Name: "page", Params: map[string]string{"id": "home"}}
//
//	entry, err := store.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fetch from the CMS, then
//		_ = store.Set(ctx, key, cache.NewEntry(body, time.Now(), 5*time.Minute))
//	}
//
// # Metrics
//
//   - cms_cache_hits_total{layer} - Cache hits ("memory" or "redis")
//   - cms_cache_misses_total{layer} - Cache misses, including expired entries
//   - cms_cache_errors_total{layer,operation} - Backend errors
package cache
