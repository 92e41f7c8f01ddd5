package openapi

// Package openapi turns a remote OpenAPI document into a queryable endpoint index.

import "strings"

// Document is the raw decoded OpenAPI specification. It is owned by the
// catalog that fetched it and must be treated as immutable.
type Document map[string]any

// Operation holds the descriptive metadata kept for one (path, method) pair.
type Operation struct {
	Summary     string         `json:"summary"`
	Description string         `json:"description"`
	Parameters  []any          `json:"parameters"`
	RequestBody map[string]any `json:"requestBody"`
	Responses   map[string]any `json:"responses"`
}

// Index maps a path to its operations keyed by upper-case HTTP method.
type Index map[string]map[string]Operation

// supportedMethods are the only verbs kept when indexing; everything else in
// the source document (OPTIONS, HEAD, ...) is dropped.
var supportedMethods = map[string]bool{
	"get":    true,
	"post":   true,
	"put":    true,
	"delete": true,
	"patch":  true,
}

// BuildIndex derives an Index from a decoded document. Pure transformation,
// no I/O. A path whose operations are all unsupported still appears with an
// empty inner map.
func BuildIndex(doc Document) Index {
	index := Index{}

	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		return index
	}

	for path, raw := range paths {
		index[path] = map[string]Operation{}
		methods, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		for method, details := range methods {
			if !supportedMethods[strings.ToLower(method)] {
				continue
			}
			index[path][strings.ToUpper(method)] = buildOperation(details)
		}
	}

	return index
}

func buildOperation(raw any) Operation {
	op := Operation{
		Parameters:  []any{},
		RequestBody: map[string]any{},
		Responses:   map[string]any{},
	}

	details, ok := raw.(map[string]any)
	if !ok {
		return op
	}

	if s, ok := details["summary"].(string); ok {
		op.Summary = s
	}
	if s, ok := details["description"].(string); ok {
		op.Description = s
	}
	if p, ok := details["parameters"].([]any); ok {
		op.Parameters = p
	}
	if b, ok := details["requestBody"].(map[string]any); ok {
		op.RequestBody = b
	}
	if r, ok := details["responses"].(map[string]any); ok {
		op.Responses = r
	}

	return op
}

// Operation looks up the metadata for a path and method. The method is
// compared upper-cased. An unknown path and an unknown method for a known
// path fail with distinguishable causes (ErrPathNotFound, ErrMethodNotFound).
func (ix Index) Operation(path, method string) (Operation, error) {
	methods, ok := ix[path]
	if !ok {
		return Operation{}, &NotFoundError{Path: path, Method: strings.ToUpper(method), cause: ErrPathNotFound}
	}

	op, ok := methods[strings.ToUpper(method)]
	if !ok {
		return Operation{}, &NotFoundError{Path: path, Method: strings.ToUpper(method), cause: ErrMethodNotFound}
	}

	return op, nil
}

// ResolveBaseURL picks the request base URL: servers[0].url from the document
// when present, otherwise the configured fallback. The result is normalized:
// trailing slash stripped, https:// prepended when no scheme is given.
func ResolveBaseURL(doc Document, fallback string) string {
	base := fallback

	if servers, ok := doc["servers"].([]any); ok && len(servers) > 0 {
		if first, ok := servers[0].(map[string]any); ok {
			if url, ok := first["url"].(string); ok {
				base = url
			}
		}
	}

	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	return base
}
