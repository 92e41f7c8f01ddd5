package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/apiki-hq/apiki/pkg/openapi"
)

// RequestInfo records what was sent, for diagnostics. It travels with the
// Result and is never persisted by the client.
type RequestInfo struct {
	Method string         `json:"method"`
	URL    string         `json:"url"`
	Params map[string]any `json:"params,omitempty"`
	Data   any            `json:"data,omitempty"`
}

// Result is the normalized outcome of one request. It is the sole return
// shape for every verb; transport failures are folded into it rather than
// returned as errors.
type Result struct {
	StatusCode int               `json:"status_code"`
	Success    bool              `json:"success"`
	Data       any               `json:"data,omitempty"`
	Error      string            `json:"error,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	Request    RequestInfo       `json:"request_info"`
}

// Get issues a GET request to path with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, params map[string]any) Result {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post issues a POST request with a JSON-encoded body and optional query
// parameters.
func (c *Client) Post(ctx context.Context, path string, data any, params map[string]any) Result {
	return c.do(ctx, http.MethodPost, path, params, data)
}

// Put issues a PUT request with a JSON-encoded body and optional query
// parameters.
func (c *Client) Put(ctx context.Context, path string, data any, params map[string]any) Result {
	return c.do(ctx, http.MethodPut, path, params, data)
}

// Delete issues a DELETE request to path with optional query parameters.
// DELETE carries no body.
func (c *Client) Delete(ctx context.Context, path string, params map[string]any) Result {
	return c.do(ctx, http.MethodDelete, path, params, nil)
}

// Patch issues a PATCH request with a JSON-encoded body and optional query
// parameters.
func (c *Client) Patch(ctx context.Context, path string, data any, params map[string]any) Result {
	return c.do(ctx, http.MethodPatch, path, params, data)
}

// do is the single request primitive behind all five verbs. It resolves the
// base URL per call, issues the request, and folds every transport failure
// into a Result instead of returning an error.
func (c *Client) do(ctx context.Context, method, path string, params map[string]any, data any) Result {
	base := openapi.ResolveBaseURL(c.doc, c.cfg.APIBaseURL)

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := base + path

	info := RequestInfo{Method: method, URL: url, Params: params}
	if data != nil {
		info.Data = data
	}

	if c.cfg.Verbose {
		c.log.Infow("making request", "method", method, "url", url)
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if len(c.cfg.Headers) > 0 {
		req.SetHeaders(c.cfg.Headers)
	}
	for k, v := range params {
		req.SetQueryParam(k, fmt.Sprint(v))
	}
	if data != nil {
		req.SetBody(data)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		c.log.Warnw("request failed", "method", method, "url", url, "error", err)
		return Result{
			StatusCode: http.StatusInternalServerError,
			Success:    false,
			Error:      err.Error(),
			Headers:    map[string]string{},
			Request:    info,
		}
	}

	return processResponse(resp, info)
}

// processResponse normalizes a received HTTP response: decode the body as
// JSON, fall back to raw text, leave data absent when the body is empty.
// Success means status < 400; on failure the decoded body is stringified
// into Error.
func processResponse(resp *resty.Response, info RequestInfo) Result {
	var data any
	if body := resp.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			data = string(body)
		}
	}

	headers := make(map[string]string, len(resp.Header()))
	for key, values := range resp.Header() {
		headers[key] = strings.Join(values, ", ")
	}

	result := Result{
		StatusCode: resp.StatusCode(),
		Success:    resp.StatusCode() < 400,
		Data:       data,
		Headers:    headers,
		Request:    info,
	}
	if !result.Success {
		result.Error = stringifyBody(data)
		if result.Error == "" {
			result.Error = http.StatusText(resp.StatusCode())
		}
	}
	return result
}

// stringifyBody renders a decoded error body as text. Structured data is
// re-encoded as compact JSON; undecodable bodies pass through as-is.
func stringifyBody(data any) string {
	switch v := data.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}
