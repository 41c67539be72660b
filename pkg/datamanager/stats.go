package datamanager

import (
	"encoding/json"
	"fmt"
	"time"
)

// Stats counts cache activity since the last ClearCache.
//
// Hits and Misses count GetSharedData and GetPageData lookups. TotalCalls and
// TotalTime cover shared data fetches that reached the CMS.
type Stats struct {
	Hits       int64
	Misses     int64
	TotalCalls int64
	TotalTime  time.Duration
}

// HitRate returns hits as a percentage of lookups, or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// AvgTime returns the mean shared data fetch duration.
func (s Stats) AvgTime() time.Duration {
	if s.TotalCalls == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.TotalCalls)
}

// MarshalJSON renders the counters with a formatted hit rate ("66.7%") and
// millisecond timings ("12.50ms").
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Hits       int64   `json:"hits"`
		Misses     int64   `json:"misses"`
		TotalCalls int64   `json:"totalCalls"`
		TotalTime  float64 `json:"totalTime"`
		HitRate    string  `json:"hitRate"`
		AvgTime    string  `json:"avgTime"`
	}{
		Hits:       s.Hits,
		Misses:     s.Misses,
		TotalCalls: s.TotalCalls,
		TotalTime:  millis(s.TotalTime),
		HitRate:    fmt.Sprintf("%.1f%%", s.HitRate()),
		AvgTime:    fmt.Sprintf("%.2fms", millis(s.AvgTime())),
	})
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
