// Package testutil provides testing utilities for the CMS client.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock CMS endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockStrapi is a configurable mock CMS server for testing.
type MockStrapi struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	requestCount      int
	pathCounts        map[string]int
	lastRequestHeader http.Header
	lastRawQuery      map[string]string
}

// NewMockStrapi creates a new mock CMS server. Unknown paths answer with an
// empty v5 collection.
func NewMockStrapi() *MockStrapi {
	mock := &MockStrapi{
		handlers:     make(map[string]func(w http.ResponseWriter, r *http.Request)),
		pathCounts:   make(map[string]int),
		lastRawQuery: make(map[string]string),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCount++
		mock.pathCounts[r.URL.Path]++
		mock.lastRequestHeader = r.Header.Clone()
		mock.lastRawQuery[r.URL.Path] = r.URL.RawQuery
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(V5List()))
	}))

	return mock
}

// URL returns the mock server URL (the CMS root, without /api).
func (m *MockStrapi) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockStrapi) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockStrapi) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.pathCounts = make(map[string]int)
	m.lastRequestHeader = nil
	m.lastRawQuery = make(map[string]string)
}

// SetHandler sets a custom handler for a specific path (e.g. "/api/headers").
func (m *MockStrapi) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockStrapi) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			_, _ = w.Write([]byte(resp.Body))
		}
	})
}

// SetJSON answers path with 200 and body.
func (m *MockStrapi) SetJSON(path, body string) {
	m.SetResponse(path, NewOKResponse(body))
}

// RequestCount returns the number of requests made to the server.
func (m *MockStrapi) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// PathCount returns the number of requests made to path.
func (m *MockStrapi) PathCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pathCounts[path]
}

// LastHeader returns the headers of the most recent request.
func (m *MockStrapi) LastHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRequestHeader
}

// LastRawQuery returns the raw query of the most recent request to path.
func (m *MockStrapi) LastRawQuery(path string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRawQuery[path]
}

// NewOKResponse creates a 200 OK JSON response.
func NewOKResponse(body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}

// NewNotFoundResponse creates a CMS-style 404.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"data":null,"error":{"status":404,"name":"NotFoundError","message":"Not Found"}}`,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"data":null,"error":{"status":500,"name":"InternalServerError","message":"Internal Server Error"}}`,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}
}

// Item is a flat entity fixture: id, documentId and attributes in one map.
type Item map[string]any

// V5List renders items as a v5 collection body with single-page meta.
func V5List(items ...Item) string {
	return V5Page(1, 1, items...)
}

// V5Page renders items as page `page` of `pageCount`.
func V5Page(page, pageCount int, items ...Item) string {
	data := make([]any, 0, len(items))
	for _, it := range items {
		data = append(data, map[string]any(it))
	}
	return mustJSON(map[string]any{
		"data": data,
		"meta": map[string]any{
			"pagination": map[string]any{
				"page":      page,
				"pageSize":  25,
				"pageCount": pageCount,
				"total":     len(items) * pageCount,
			},
		},
	})
}

// V5Single renders item as a v5 single-type body.
func V5Single(item Item) string {
	return mustJSON(map[string]any{"data": map[string]any(item), "meta": map[string]any{}})
}

// V4List renders items as a v4 collection body, moving every key except id
// under attributes.
func V4List(items ...Item) string {
	data := make([]any, 0, len(items))
	for _, it := range items {
		data = append(data, v4Entity(it))
	}
	return mustJSON(map[string]any{
		"data": data,
		"meta": map[string]any{
			"pagination": map[string]any{"page": 1, "pageSize": 25, "pageCount": 1, "total": len(items)},
		},
	})
}

func v4Entity(it Item) map[string]any {
	attrs := map[string]any{}
	for k, v := range it {
		if k != "id" {
			attrs[k] = v
		}
	}
	return map[string]any{"id": it["id"], "attributes": attrs}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
