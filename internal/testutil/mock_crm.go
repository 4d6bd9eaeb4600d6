// Package testutil provides testing utilities for the Freshworks CRM client.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock CRM endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockCRM is a configurable mock Freshworks CRM server for testing.
type MockCRM struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	PageRequests      []int
	LastRequestHeader http.Header
	LastQuery         url.Values
}

// NewMockCRM creates a new mock CRM server.
func NewMockCRM() *MockCRM {
	mock := &MockCRM{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.LastQuery = r.URL.Query()
		if pageNum, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
			mock.PageRequests = append(mock.PageRequests, pageNum)
		}
		mock.mu.Unlock()

		// Check for custom handler
		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		// Default empty-object response
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockCRM) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockCRM) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockCRM) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.PageRequests = nil
	m.LastRequestHeader = nil
	m.LastQuery = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockCRM) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockCRM) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetPagedResource configures a listing endpoint that serves items in fixed
// pages driven by the ?page query parameter. key is the response field
// holding the items ("contacts" or "deals"); users, when non-nil, is
// attached to every page. Requests past the last page get an empty item
// list.
func (m *MockCRM) SetPagedResource(path, key string, pages [][]map[string]any, users []map[string]any) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		pageNum := 1
		if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
			pageNum = n
		}

		items := []map[string]any{}
		if pageNum >= 1 && pageNum <= len(pages) {
			items = pages[pageNum-1]
		}

		body := map[string]any{
			key: items,
			"meta": map[string]any{
				"total":       countItems(pages),
				"total_pages": len(pages),
			},
		}
		if users != nil {
			body["users"] = users
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(body)
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockCRM) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetPageRequests returns the ?page values seen, in request order.
func (m *MockCRM) GetPageRequests() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.PageRequests...)
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewNotFoundResponse creates a 404 Not Found response.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"error": "record not found"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

func countItems(pages [][]map[string]any) int {
	total := 0
	for _, page := range pages {
		total += len(page)
	}
	return total
}
