package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			config:      DefaultConfig("acme", "secret"),
			expectError: false,
		},
		{
			name: "missing domain and base url",
			config: Config{
				APIKey: "secret",
			},
			expectError: true,
			errorMsg:    "domain is required",
		},
		{
			name: "missing api key",
			config: Config{
				Domain: "acme",
			},
			expectError: true,
			errorMsg:    "api key is required",
		},
		{
			name: "base url without domain is valid",
			config: Config{
				BaseURL: "http://localhost:9999/crm/sales/api",
				APIKey:  "secret",
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.config)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got nil")
					return
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Errorf("Error message = %q, want %q", err.Error(), tt.errorMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if c == nil {
				t.Error("Expected client, got nil")
			}
		})
	}
}

func TestNew_BaseURL(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			name:   "derived from domain",
			config: Config{Domain: "acme", APIKey: "k"},
			want:   "https://acme.myfreshworks.com/crm/sales/api",
		},
		{
			name:   "explicit override",
			config: Config{BaseURL: "http://localhost:8080/api", APIKey: "k"},
			want:   "http://localhost:8080/api",
		},
		{
			name:   "trailing slash trimmed",
			config: Config{BaseURL: "http://localhost:8080/api/", APIKey: "k"},
			want:   "http://localhost:8080/api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.config)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if c.BaseURL() != tt.want {
				t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), tt.want)
			}
		})
	}
}

func TestClient_Get_SendsAuthHeaders(t *testing.T) {
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL, APIKey: "test-key", UserAgent: "test/1.0"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resp, err := c.Get(context.Background(), "contacts/view/1", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()

	if got := gotHeader.Get("Authorization"); got != "Token token=test-key" {
		t.Errorf("Authorization = %q, want %q", got, "Token token=test-key")
	}
	if got := gotHeader.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if got := gotHeader.Get("User-Agent"); got != "test/1.0" {
		t.Errorf("User-Agent = %q, want test/1.0", got)
	}
}

func TestClient_Get_QueryParams(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	params := url.Values{}
	params.Set("page", "2")
	params.Set("per_page", "25")

	resp, err := c.Get(context.Background(), "deals/view/1", params)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()

	if gotQuery.Get("page") != "2" || gotQuery.Get("per_page") != "25" {
		t.Errorf("Query = %v, want page=2 per_page=25", gotQuery)
	}
}

func TestClient_Get_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantClass  ErrorClass
	}{
		{"unauthorized", http.StatusUnauthorized, ErrorClassClient},
		{"not found", http.StatusNotFound, ErrorClassClient},
		{"too many requests", http.StatusTooManyRequests, ErrorClassClient},
		{"server error", http.StatusInternalServerError, ErrorClassServer},
		{"bad gateway", http.StatusBadGateway, ErrorClassServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			c, err := New(Config{BaseURL: server.URL, APIKey: "k"})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			_, err = c.Get(context.Background(), "contacts/view/1", nil)
			if err == nil {
				t.Fatal("Expected error for non-2xx status")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %T", err)
			}
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.statusCode)
			}
			if apiErr.ErrorClass != tt.wantClass {
				t.Errorf("ErrorClass = %q, want %q", apiErr.ErrorClass, tt.wantClass)
			}
		})
	}
}

func TestClient_Get_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c, err := New(Config{BaseURL: server.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = c.Get(context.Background(), "contacts/view/1", nil)
	if err == nil {
		t.Fatal("Expected network error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T", err)
	}
	if apiErr.ErrorClass != ErrorClassNetwork {
		t.Errorf("ErrorClass = %q, want %q", apiErr.ErrorClass, ErrorClassNetwork)
	}
	if apiErr.Unwrap() == nil {
		t.Error("Expected wrapped transport error")
	}
}

func TestClient_GetJSON_PreservesLargeIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"deals": [{"id": 402001815652}]}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var result map[string]any
	if err := c.GetJSON(context.Background(), "deals/view/1", nil, &result); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}

	deals := result["deals"].([]any)
	deal := deals[0].(map[string]any)
	id, ok := deal["id"].(json.Number)
	if !ok {
		t.Fatalf("Expected json.Number id, got %T", deal["id"])
	}
	if id.String() != "402001815652" {
		t.Errorf("id = %s, want 402001815652", id)
	}
}

func TestClient_GetJSON_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var result map[string]any
	err = c.GetJSON(context.Background(), "contacts/view/1", nil, &result)
	if err == nil {
		t.Fatal("Expected decode error")
	}
	if !strings.Contains(err.Error(), "decode response") {
		t.Errorf("Error = %q, want decode response prefix", err.Error())
	}
}
