package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sternrassler/strapi-client/internal/testutil"
	"github.com/Sternrassler/strapi-client/pkg/cache"
	"github.com/Sternrassler/strapi-client/pkg/datamanager"
	"github.com/Sternrassler/strapi-client/pkg/logging"
	"github.com/Sternrassler/strapi-client/pkg/pagination"
	"github.com/Sternrassler/strapi-client/pkg/strapi"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestServer(t *testing.T, mock *testutil.MockStrapi) *server {
	t.Helper()

	client, err := strapi.New(strapi.Config{BaseURL: mock.URL()})
	require.NoError(t, err)

	return &server{
		client: client,
		data:   datamanager.New(client, cache.NewMemoryStore(), datamanager.Config{}),
		pages:  pagination.Config{MaxConcurrency: 2},
		logger: logging.NewLogger("cms-proxy-test"),
	}
}

func serve(t *testing.T, r http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedShared(mock *testutil.MockStrapi) {
	mock.SetJSON("/api/headers", testutil.V5List(
		testutil.Item{"id": 1, "documentId": "h1", "companyName": "Acme", "buttonText": "Call", "isActive": true},
	))
	mock.SetJSON("/api/heroes", testutil.V5List(
		testutil.Item{"id": 2, "documentId": "r2", "title": "Welcome", "isActive": true},
	))
}

func TestHealthEndpoint(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	r := newTestServer(t, mock).router()

	w := serve(t, r, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequestIDPropagated(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	r := newTestServer(t, mock).router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestReadyEndpoint(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	srv := newTestServer(t, mock)

	t.Run("memory_backend", func(t *testing.T) {
		srv.ready = nil
		w := serve(t, srv.router(), http.MethodGet, "/ready")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("redis_up", func(t *testing.T) {
		srv.ready = stubPinger{}
		w := serve(t, srv.router(), http.MethodGet, "/ready")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("redis_down", func(t *testing.T) {
		srv.ready = stubPinger{err: errors.New("connection refused")}
		w := serve(t, srv.router(), http.MethodGet, "/ready")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	r := newTestServer(t, mock).router()

	// one CMS round trip so the request counters have samples
	serve(t, r, http.MethodGet, "/api/shared")

	w := serve(t, r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "# HELP")
	assert.Contains(t, body, "strapi_requests_total")
	assert.Contains(t, body, "cms_shared_data_fetch_seconds")
}

func TestSharedEndpoint_FetchesOnce(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	seedShared(mock)
	r := newTestServer(t, mock).router()

	first := serve(t, r, http.MethodGet, "/api/shared")
	second := serve(t, r, http.MethodGet, "/api/shared")

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	var shared struct {
		Header struct {
			CompanyName string `json:"companyName"`
		} `json:"header"`
		ActiveHero struct {
			Title string `json:"title"`
		} `json:"activeHero"`
	}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &shared))
	assert.Equal(t, "Acme", shared.Header.CompanyName)
	assert.Equal(t, "Welcome", shared.ActiveHero.Title)

	assert.Equal(t, 1, mock.PathCount("/api/headers"))
	assert.Equal(t, 1, mock.PathCount("/api/heroes"))

	w := serve(t, r, http.MethodGet, "/api/header")
	assert.Contains(t, w.Body.String(), `"companyName":"Acme"`)
	assert.Equal(t, 1, mock.PathCount("/api/headers"))
}

func TestSharedEndpoint_CMSDown(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	mock.SetResponse("/api/headers", testutil.NewServerErrorResponse())
	mock.SetResponse("/api/heroes", testutil.NewServerErrorResponse())
	r := newTestServer(t, mock).router()

	w := serve(t, r, http.MethodGet, "/api/shared")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"header":null,"activeHero":null}`, w.Body.String())
}

func TestCacheEndpoints(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	seedShared(mock)
	r := newTestServer(t, mock).router()

	serve(t, r, http.MethodGet, "/api/shared")
	serve(t, r, http.MethodGet, "/api/shared")

	w := serve(t, r, http.MethodGet, "/api/cache/stats")
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, float64(1), stats["hits"])
	assert.Equal(t, float64(1), stats["misses"])
	assert.Equal(t, "50.0%", stats["hitRate"])

	w = serve(t, r, http.MethodPost, "/api/cache/clear")
	assert.Equal(t, http.StatusOK, w.Code)

	serve(t, r, http.MethodGet, "/api/shared")
	assert.Equal(t, 2, mock.PathCount("/api/headers"))
}

func TestHomePage(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	mock.SetJSON("/api/services", testutil.V5List(testutil.Item{"id": 1, "title": "Roofing", "isActive": true}))
	mock.SetJSON("/api/steps/active", testutil.V5List(testutil.Item{"id": 5, "title": "Call us", "order": 1}))
	r := newTestServer(t, mock).router()

	w := serve(t, r, http.MethodGet, "/api/pages/home")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Services     []map[string]any `json:"services"`
			SectionInfo  map[string]any   `json:"sectionInfo"`
			Testimonials []map[string]any `json:"testimonials"`
			Steps        []map[string]any `json:"steps"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Services, 1)
	assert.Equal(t, "Roofing", resp.Data.Services[0]["title"])
	assert.Nil(t, resp.Data.SectionInfo)
	assert.Len(t, resp.Data.Steps, 1)

	serve(t, r, http.MethodGet, "/api/pages/home")
	assert.Equal(t, 1, mock.PathCount("/api/services"))
	assert.Equal(t, 1, mock.PathCount("/api/steps/active"))
	assert.Contains(t, mock.LastRawQuery("/api/services"), "pagination[pageSize]=6")
}

func TestHomePage_FailureCachedAsNull(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	mock.SetResponse("/api/testimonials", testutil.NewServerErrorResponse())
	r := newTestServer(t, mock).router()

	w := serve(t, r, http.MethodGet, "/api/pages/home")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":null}`, w.Body.String())

	serve(t, r, http.MethodGet, "/api/pages/home")
	assert.Equal(t, 1, mock.PathCount("/api/testimonials"))
}

func TestArticles(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	mock.SetHandler("/api/articles", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filters[slug][$eq]") == "missing" {
			_, _ = io.WriteString(w, testutil.V5List())
			return
		}
		_, _ = io.WriteString(w, testutil.V5List(testutil.Item{"id": 1, "title": "Hello", "slug": "hello"}))
	})
	r := newTestServer(t, mock).router()

	t.Run("list", func(t *testing.T) {
		w := serve(t, r, http.MethodGet, "/api/articles?page=2&pageSize=10")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"Hello"`)
		assert.Equal(t, "sort[0]=createdAt%3Adesc&pagination[page]=2&pagination[pageSize]=10",
			mock.LastRawQuery("/api/articles"))
	})

	t.Run("all pages", func(t *testing.T) {
		w := serve(t, r, http.MethodGet, "/api/articles?all=true")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"slug":"hello"`)
	})

	t.Run("bad page", func(t *testing.T) {
		w := serve(t, r, http.MethodGet, "/api/articles?page=zero")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("by slug", func(t *testing.T) {
		w := serve(t, r, http.MethodGet, "/api/articles/hello")
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), `{"data":{`))
	})

	t.Run("slug not found", func(t *testing.T) {
		w := serve(t, r, http.MethodGet, "/api/articles/missing")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCMSErrorsMapped(t *testing.T) {
	mock := testutil.NewMockStrapi()
	defer mock.Close()
	mock.SetResponse("/api/projects", testutil.NewServerErrorResponse())
	mock.SetResponse("/api/services", testutil.NewNotFoundResponse())
	r := newTestServer(t, mock).router()

	w := serve(t, r, http.MethodGet, "/api/projects")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "strapi request failed: Internal Server Error")

	w = serve(t, r, http.MethodGet, "/api/services?active=true")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(t, r, http.MethodGet, "/api/projects/featured")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
