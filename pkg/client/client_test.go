package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/apiki-hq/apiki/pkg/openapi"
)

const healthSpec = `{"paths": {"/v3/health": {"get": {"summary": "Health check"}}}}`

// newTestClient spins up one server that plays both roles: it serves the spec
// at /openapi.json and everything else through handler.
func newTestClient(t *testing.T, spec string, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/openapi.json" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(spec))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), Config{
		OpenAPIURL: srv.URL + "/openapi.json",
		APIBaseURL: srv.URL,
		Timeout:    2 * time.Second,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestGetHealthSuccess(t *testing.T) {
	c, _ := newTestClient(t, healthSpec, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/health" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	result := c.Get(context.Background(), "/v3/health", nil)

	if result.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", result.StatusCode)
	}
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Error != "" {
		t.Fatalf("expected empty error on success, got %q", result.Error)
	}
	data, ok := result.Data.(map[string]any)
	if !ok || data["status"] != "ok" {
		t.Fatalf("unexpected data: %#v", result.Data)
	}
	if result.Request.Method != http.MethodGet {
		t.Fatalf("request info method = %q", result.Request.Method)
	}
	if result.Headers["Content-Type"] == "" {
		t.Fatalf("expected response headers to be captured, got %v", result.Headers)
	}
}

func TestGetHealthUnavailable(t *testing.T) {
	c, _ := newTestClient(t, healthSpec, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":"unavailable"}`))
	})

	result := c.Get(context.Background(), "/v3/health", nil)

	if result.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", result.StatusCode)
	}
	if result.Success {
		t.Fatalf("expected failure")
	}
	if result.Error == "" || !strings.Contains(result.Error, "unavailable") {
		t.Fatalf("expected error containing %q, got %q", "unavailable", result.Error)
	}
	// The decoded body stays available for callers needing structure.
	data, ok := result.Data.(map[string]any)
	if !ok || data["detail"] != "unavailable" {
		t.Fatalf("unexpected data: %#v", result.Data)
	}
}

func TestNeverThrowsOnConnectionRefused(t *testing.T) {
	c, srv := newTestClient(t, healthSpec, func(w http.ResponseWriter, _ *http.Request) {})
	srv.Close()

	for name, call := range map[string]func() Result{
		"get":    func() Result { return c.Get(context.Background(), "/v3/health", nil) },
		"post":   func() Result { return c.Post(context.Background(), "/v3/health", nil, nil) },
		"put":    func() Result { return c.Put(context.Background(), "/v3/health", nil, nil) },
		"delete": func() Result { return c.Delete(context.Background(), "/v3/health", nil) },
		"patch":  func() Result { return c.Patch(context.Background(), "/v3/health", nil, nil) },
	} {
		result := call()
		if result.Success {
			t.Fatalf("%s: expected failure against closed server", name)
		}
		if result.StatusCode != http.StatusInternalServerError {
			t.Fatalf("%s: status = %d, want 500", name, result.StatusCode)
		}
		if result.Error == "" {
			t.Fatalf("%s: expected populated error", name)
		}
		if result.Data != nil {
			t.Fatalf("%s: expected absent data, got %#v", name, result.Data)
		}
	}
}

func TestNeverThrowsOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/openapi.json" {
			w.Write([]byte(healthSpec))
			return
		}
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := New(context.Background(), Config{
		OpenAPIURL: srv.URL + "/openapi.json",
		APIBaseURL: srv.URL,
		Timeout:    50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result := c.Get(context.Background(), "/v3/health", nil)
	if result.Success || result.StatusCode != http.StatusInternalServerError || result.Error == "" {
		t.Fatalf("expected normalized timeout failure, got %+v", result)
	}
}

func TestPostRoundTrip(t *testing.T) {
	payload := map[string]any{"name": "widget", "count": float64(3)}

	c, _ := newTestClient(t, healthSpec, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("content type = %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		var body []byte
		body, _ = json.Marshal(map[string]any{"echo": payload})
		w.Write(body)
	})

	result := c.Post(context.Background(), "/v3/items", payload, nil)
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	raw, _ := json.Marshal(map[string]any{"echo": payload})
	var want any
	json.Unmarshal(raw, &want)
	if !reflect.DeepEqual(result.Data, want) {
		t.Fatalf("round-trip mismatch:\n got %#v\nwant %#v", result.Data, want)
	}
}

func TestHeadersAndQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/openapi.json" {
			w.Write([]byte(healthSpec))
			return
		}
		if got := r.Header.Get("X-Api-Key"); got != "secret" {
			t.Fatalf("missing extra header, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "text/plain" {
			t.Fatalf("configured header should override default Content-Type, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Fatalf("query param limit = %q", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(context.Background(), Config{
		OpenAPIURL: srv.URL + "/openapi.json",
		APIBaseURL: srv.URL,
		Headers: map[string]string{
			"X-Api-Key":    "secret",
			"Content-Type": "text/plain",
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result := c.Get(context.Background(), "v3/health", map[string]any{"limit": 5})
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	// The path normalizer added the missing leading slash.
	if result.Request.URL != srv.URL+"/v3/health" {
		t.Fatalf("request URL = %q", result.Request.URL)
	}
}

func TestServersEntryOverridesConfiguredBase(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer api.Close()

	spec := `{"servers": [{"url": "` + api.URL + `"}], "paths": {"/v3/health": {"get": {}}}}`
	specSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(spec))
	}))
	defer specSrv.Close()

	c, err := New(context.Background(), Config{
		OpenAPIURL: specSrv.URL,
		APIBaseURL: "http://localhost:1", // unreachable; must not be used
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result := c.Get(context.Background(), "/v3/health", nil)
	if !result.Success {
		t.Fatalf("expected the spec-declared server to be used, got %+v", result)
	}
}

func TestNonJSONBodyFallsBackToText(t *testing.T) {
	c, _ := newTestClient(t, healthSpec, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	result := c.Get(context.Background(), "/v3/health", nil)
	if result.Success {
		t.Fatalf("expected failure")
	}
	if result.Data != "upstream exploded" {
		t.Fatalf("expected raw text data, got %#v", result.Data)
	}
	if result.Error != "upstream exploded" {
		t.Fatalf("expected raw text error, got %q", result.Error)
	}
}

func TestEndpointDetails(t *testing.T) {
	c, _ := newTestClient(t, healthSpec, func(w http.ResponseWriter, _ *http.Request) {})

	op, err := c.EndpointDetails("/v3/health", "get")
	if err != nil {
		t.Fatalf("EndpointDetails: %v", err)
	}
	if op.Summary != "Health check" {
		t.Fatalf("summary = %q", op.Summary)
	}

	if _, err := c.EndpointDetails("/unknown", "GET"); !errors.Is(err, openapi.ErrPathNotFound) {
		t.Fatalf("expected path-not-found cause, got %v", err)
	}
	if _, err := c.EndpointDetails("/v3/health", "TRACE"); !errors.Is(err, openapi.ErrMethodNotFound) {
		t.Fatalf("expected method-not-found cause, got %v", err)
	}
}

func TestListEndpointsReturnsSnapshot(t *testing.T) {
	c, _ := newTestClient(t, healthSpec, func(w http.ResponseWriter, _ *http.Request) {})

	snapshot := c.ListEndpoints()
	delete(snapshot, "/v3/health")

	if _, err := c.EndpointDetails("/v3/health", "GET"); err != nil {
		t.Fatalf("mutating the snapshot must not affect the client: %v", err)
	}
	if len(c.ListEndpoints()) != 1 {
		t.Fatalf("expected a fresh snapshot per call")
	}
}

func TestNewFailsOnUnfetchableSpec(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(context.Background(), Config{OpenAPIURL: srv.URL, Timeout: time.Second})
	var fe *openapi.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *openapi.FetchError, got %v", err)
	}
}
