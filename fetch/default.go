package fetch

import (
	"context"
	"sync/atomic"
)

var defaultClient atomic.Pointer[Client]

// SetDefault installs c as the package-level default client. Passing nil
// uninstalls it.
func SetDefault(c *Client) {
	defaultClient.Store(c)
}

// Default returns the installed default client, or nil.
func Default() *Client {
	return defaultClient.Load()
}

func errNoDefault() error {
	return NewInvalidRequestError("no default client installed")
}

// Request performs a request with the default client.
func Request(ctx context.Context, opts Config) (any, error) {
	c := Default()
	if c == nil {
		return nil, errNoDefault()
	}
	return c.Request(ctx, opts)
}

// Get issues a GET request with the default client.
func Get(ctx context.Context, url string, opts ...Config) (any, error) {
	return Request(ctx, verb(MethodGet, url, nil, opts))
}

// Delete issues a DELETE request with the default client.
func Delete(ctx context.Context, url string, opts ...Config) (any, error) {
	return Request(ctx, verb(MethodDelete, url, nil, opts))
}

// Post issues a POST request with the default client.
func Post(ctx context.Context, url string, data any, opts ...Config) (any, error) {
	return Request(ctx, verb(MethodPost, url, data, opts))
}

// Put issues a PUT request with the default client.
func Put(ctx context.Context, url string, data any, opts ...Config) (any, error) {
	return Request(ctx, verb(MethodPut, url, data, opts))
}

// Patch issues a PATCH request with the default client.
func Patch(ctx context.Context, url string, data any, opts ...Config) (any, error) {
	return Request(ctx, verb(MethodPatch, url, data, opts))
}

// Create derives an independent client from the default client's sender
// and environment, with defaults built from cfg. It returns an
// InvalidRequest error when no default client is installed.
func Create(cfg Config) (*Client, error) {
	c := Default()
	if c == nil {
		return nil, errNoDefault()
	}
	return c.Create(cfg), nil
}
