package openapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchDecodesJSONSpec(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"paths": {"/v3/health": {"get": {"summary": "Health check"}}}}`))
	}))
	defer srv.Close()

	doc, err := Fetch(context.Background(), srv.URL, FetchOptions{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	index := BuildIndex(doc)
	if index["/v3/health"]["GET"].Summary != "Health check" {
		t.Fatalf("unexpected index: %v", index)
	}
}

func TestFetchDecodesYAMLSpec(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write([]byte("paths:\n  /v3/health:\n    get:\n      summary: Health check\n"))
	}))
	defer srv.Close()

	doc, err := Fetch(context.Background(), srv.URL, FetchOptions{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if BuildIndex(doc)["/v3/health"]["GET"].Summary != "Health check" {
		t.Fatalf("unexpected document: %v", doc)
	}
}

func TestFetchFailsOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL, FetchOptions{})
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.URL != srv.URL {
		t.Fatalf("FetchError.URL = %q, want %q", fe.URL, srv.URL)
	}
}

func TestFetchFailsOnUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>not a spec</html>"))
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL, FetchOptions{})
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
}

func TestFetchFailsOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	_, err := Fetch(context.Background(), srv.URL, FetchOptions{Timeout: time.Second})
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError for refused connection, got %v", err)
	}
}
