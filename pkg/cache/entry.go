package cache

import (
	"time"
)

// Entry represents a cached payload.
type Entry struct {
	// Data is the JSON encoding of the cached value
	Data []byte `json:"data"`

	// CachedAt is when the entry was stored
	CachedAt time.Time `json:"cached_at"`

	// Expires is the last instant at which the entry is still live
	Expires time.Time `json:"expires"`
}

// NewEntry creates an entry cached at now and live for ttl.
func NewEntry(data []byte, now time.Time, ttl time.Duration) *Entry {
	return &Entry{
		Data:     data,
		CachedAt: now,
		Expires:  now.Add(ttl),
	}
}

// IsExpired returns true if the entry has expired.
func (e *Entry) IsExpired() bool {
	return e.ExpiredAt(time.Now())
}

// ExpiredAt reports whether the entry is stale at now.
// An entry read exactly at Expires is still live.
func (e *Entry) ExpiredAt(now time.Time) bool {
	return now.After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	return e.TTLAt(time.Now())
}

// TTLAt returns the time left at now, or 0.
func (e *Entry) TTLAt(now time.Time) time.Duration {
	ttl := e.Expires.Sub(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// Age returns how long ago the entry was cached.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.CachedAt)
}
