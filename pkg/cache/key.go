package cache

import (
	"fmt"
	"sort"
	"strings"
)

// Key represents a unique identifier for a cached payload.
type Key struct {
	// Name is the logical entry (e.g. "shared-data", "active-header", "page")
	Name string

	// Params distinguish entries of the same name (e.g. {"id": "home"})
	Params map[string]string
}

// String generates a deterministic cache key string.
// Format: name:param1=val1:param2=val2
//
// Example:
//
//	page:id=home
func (k Key) String() string {
	parts := []string{strings.Trim(k.Name, ":")}

	if len(k.Params) > 0 {
		keys := make([]string, 0, len(k.Params))
		for key := range k.Params {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.Params[key]))
		}
	}

	return strings.Join(parts, ":")
}
