// Package client provides the core Freshworks CRM HTTP client with
// token authentication, error classification, and observability.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for CRM client operations.
var (
	crmRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_requests_total",
		Help: "Total CRM API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	crmRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crm_request_duration_seconds",
		Help:    "CRM API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	crmErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_errors_total",
		Help: "Total CRM API errors by class",
	}, []string{"class"})
)

// ErrorClass represents a classification of HTTP errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// Client is the Freshworks CRM API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// Domain is the Freshworks account subdomain (the "acme" in
	// acme.myfreshworks.com). Required unless BaseURL is set.
	Domain string

	// APIKey authenticates every request via the Token scheme (REQUIRED).
	APIKey string

	// BaseURL overrides the URL derived from Domain. Mainly for tests.
	BaseURL string

	// UserAgent header sent with every request.
	UserAgent string

	// Timeout for a single HTTP request.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(domain, apiKey string) Config {
	return Config{
		Domain:    domain,
		APIKey:    apiKey,
		UserAgent: "freshworks-crm-client/0.1.0",
		Timeout:   30 * time.Second,
	}
}

// New creates a new Freshworks CRM client.
func New(cfg Config) (*Client, error) {
	if cfg.Domain == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("domain is required")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.myfreshworks.com/crm/sales/api", cfg.Domain)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	// Initialize logger
	logger := log.With().Str("component", "crm-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: baseURL,
		config:  cfg,
		logger:  logger,
	}, nil
}

// Do performs an HTTP request with authentication, metrics, and error
// classification. Non-2xx responses are returned as *APIError with the
// response body closed.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	endpoint := req.URL.Path

	// Start request timing
	startTime := time.Now()
	defer func() {
		crmRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	req.Header.Set("Authorization", "Token token="+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", req.Method).
		Msg("Executing CRM request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errClass := classifyError(nil, err)
		crmErrorsTotal.WithLabelValues(string(errClass)).Inc()
		crmRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return nil, &APIError{
			ErrorClass: errClass,
			Message:    "request failed",
			Err:        err,
		}
	}

	crmRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		errClass := classifyError(resp, nil)
		crmErrorsTotal.WithLabelValues(string(errClass)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("CRM request error")

		resp.Body.Close()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Message:    resp.Status,
		}
	}

	return resp, nil
}

// classifyError categorizes an error for observability.
func classifyError(resp *http.Response, err error) ErrorClass {
	if err != nil {
		return ErrorClassNetwork
	}

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return ErrorClassClient
	case resp.StatusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// Get performs a GET request to an API endpoint relative to the base URL.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.Do(req)
}

// GetJSON performs a GET request and decodes the JSON response body into v.
// Numbers are decoded as json.Number so large Freshworks ids survive
// round-trips intact.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params url.Values, v any) error {
	resp, err := c.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
