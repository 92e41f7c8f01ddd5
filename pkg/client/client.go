package client

// Package client issues the five supported HTTP verbs against an API described
// by an OpenAPI document and normalizes every outcome into one Result shape.

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/apiki-hq/apiki/pkg/openapi"
)

// Client drives an HTTP API using its OpenAPI specification. The spec is
// fetched once at construction; after that the client holds no mutable state,
// so concurrent use from multiple goroutines is safe.
type Client struct {
	cfg   Config
	doc   openapi.Document
	index openapi.Index
	http  *resty.Client
	log   *zap.SugaredLogger
}

// New fetches the OpenAPI document, builds the endpoint index, and returns a
// ready client. A failed or undecodable spec fetch returns a
// *openapi.FetchError and no client; per-request failures later on never do.
func New(ctx context.Context, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	cfg.Logger.Infow("fetching OpenAPI spec", "url", cfg.OpenAPIURL)
	doc, err := openapi.Fetch(ctx, cfg.OpenAPIURL, openapi.FetchOptions{
		Timeout:            cfg.Timeout,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	})
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetTimeout(cfg.Timeout)
	if cfg.InsecureSkipVerify {
		httpClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	c := &Client{
		cfg:   cfg,
		doc:   doc,
		index: openapi.BuildIndex(doc),
		http:  httpClient,
		log:   cfg.Logger,
	}
	c.log.Infow("OpenAPI spec indexed", "paths", len(c.index))
	return c, nil
}

// Document returns the raw spec fetched at construction.
func (c *Client) Document() openapi.Document { return c.doc }

// ListEndpoints returns a snapshot of the endpoint index built at
// construction. The copy keeps callers from mutating the client's view.
func (c *Client) ListEndpoints() openapi.Index {
	snapshot := make(openapi.Index, len(c.index))
	for path, methods := range c.index {
		inner := make(map[string]openapi.Operation, len(methods))
		for method, op := range methods {
			inner[method] = op
		}
		snapshot[path] = inner
	}
	return snapshot
}

// EndpointDetails returns the indexed metadata for one endpoint. Unknown
// paths and unknown methods for known paths fail with distinguishable causes
// (openapi.ErrPathNotFound, openapi.ErrMethodNotFound).
func (c *Client) EndpointDetails(path, method string) (openapi.Operation, error) {
	op, err := c.index.Operation(path, method)
	if err != nil {
		return openapi.Operation{}, fmt.Errorf("endpoint details: %w", err)
	}
	return op, nil
}
