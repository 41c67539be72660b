// Package strapi provides the CMS REST client: query construction, bearer
// authentication, schema normalization and typed collection lookups.
package strapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/strapi-client/pkg/content"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// Prometheus metrics for CMS requests.
var (
	strapiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strapi_requests_total",
		Help: "Total Strapi requests by endpoint and status",
	}, []string{"endpoint", "status"})

	strapiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "strapi_request_duration_seconds",
		Help:    "Strapi request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"endpoint"})

	strapiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strapi_errors_total",
		Help: "Total Strapi errors by class",
	}, []string{"class"})
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:1337"

// Config holds the client configuration.
type Config struct {
	// BaseURL is the CMS root, without the /api suffix.
	BaseURL string

	// Token is sent as "Authorization: Bearer <token>" when non-empty.
	Token string

	// Schema selects the response adapter (v4, v5 or auto).
	Schema content.Schema

	// HTTPClient overrides the default client (30s timeout).
	HTTPClient *http.Client

	// UserAgent is optional.
	UserAgent string
}

// DefaultConfig returns a configuration for a local v5 CMS.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Schema:  content.SchemaV5,
	}
}

// Client issues GET requests against the CMS collections.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	adapter    content.Adapter
	logger     zerolog.Logger
}

// New creates a new CMS client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http(s) (got %q)", base)
	}

	adapter, err := content.AdapterFor(cfg.Schema)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
		adapter:    adapter,
		logger:     log.With().Str("component", "strapi-client").Logger(),
	}, nil
}

// BaseURL returns the normalized CMS root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL builds the request URL for an endpoint and options.
func (c *Client) URL(endpoint string, opts Options) string {
	u := c.baseURL + "/api/" + strings.TrimLeft(endpoint, "/")
	if q := opts.Encode(); q != "" {
		u += "?" + q
	}
	return u
}

// Raw performs the request and returns the body normalized to the v5 shape.
// Any non-2xx status yields *Error.
func (c *Client) Raw(ctx context.Context, endpoint string, opts Options) ([]byte, error) {
	startTime := time.Now()
	defer func() {
		strapiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	body, err := c.do(ctx, endpoint, opts)
	if err != nil {
		class := classifyError(err)
		strapiErrorsTotal.WithLabelValues(string(class)).Inc()
		c.logger.Warn().
			Err(err).
			Str("endpoint", endpoint).
			Str("error_class", string(class)).
			Msg("Strapi request failed")
		return nil, err
	}

	normalized, err := c.adapter.Normalize(body)
	if err != nil {
		err = &decodeError{endpoint: endpoint, err: err}
		strapiErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return nil, err
	}
	return normalized, nil
}

func (c *Client) do(ctx context.Context, endpoint string, opts Options) ([]byte, error) {
	reqURL := c.URL(endpoint, opts)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Str("url", reqURL).
		Msg("Executing Strapi request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		strapiRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, fmt.Errorf("get %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	strapiRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		status := http.StatusText(resp.StatusCode)
		if status == "" {
			status = resp.Status
		}
		return nil, &Error{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     status,
			Body:       string(body),
		}
	}

	return body, nil
}

// FetchPage fetches one page of a collection and reports the page count
// from meta.pagination. It satisfies pagination.PageFetcher.
func (c *Client) FetchPage(ctx context.Context, endpoint string, pageNum int) ([]byte, int, error) {
	return c.fetchPage(ctx, endpoint, Options{}, pageNum)
}

func (c *Client) fetchPage(ctx context.Context, endpoint string, opts Options, pageNum int) ([]byte, int, error) {
	page := PageRequest{Page: pageNum}
	if opts.Pagination != nil {
		page.PageSize = opts.Pagination.PageSize
	}
	opts.Pagination = &page

	body, err := c.Raw(ctx, endpoint, opts)
	if err != nil {
		return nil, 0, err
	}

	pageCount := int(gjson.GetBytes(body, "meta.pagination.pageCount").Int())
	if pageCount < 1 {
		pageCount = 1
	}
	return body, pageCount, nil
}

func decode[T any](endpoint string, body []byte) (*content.Response[T], error) {
	var resp content.Response[T]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &decodeError{endpoint: endpoint, err: err}
	}
	return &resp, nil
}
