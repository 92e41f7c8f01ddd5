package openapi

import (
	"errors"
	"fmt"
)

// Sentinel causes for NotFoundError, matched with errors.Is.
var (
	ErrPathNotFound   = errors.New("path not found in API specification")
	ErrMethodNotFound = errors.New("method not found for path in API specification")
)

// FetchError wraps any failure to retrieve or decode the OpenAPI document.
// It is fatal to client construction; no client is usable without a spec.
type FetchError struct {
	URL   string
	cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch OpenAPI spec from %s: %v", e.URL, e.cause)
}

func (e *FetchError) Unwrap() error { return e.cause }

// NotFoundError reports a missed endpoint lookup. Its cause distinguishes an
// unknown path from an unknown method for a known path.
type NotFoundError struct {
	Path   string
	Method string
	cause  error
}

func (e *NotFoundError) Error() string {
	if errors.Is(e.cause, ErrMethodNotFound) {
		return fmt.Sprintf("method %q not found for path %q in API specification", e.Method, e.Path)
	}
	return fmt.Sprintf("path %q not found in API specification", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.cause }
