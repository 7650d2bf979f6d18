package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/kbukum/gofetch/fetch"
)

// Response wraps a typed REST response.
type Response[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Header holds the response headers.
	Header http.Header
	// Data is the decoded response body.
	Data T
}

// Get performs a GET request and decodes the JSON response into type T.
func Get[T any](ctx context.Context, c *fetch.Client, url string, opts ...fetch.Config) (*Response[T], error) {
	return do[T](ctx, c, fetch.MethodGet, url, nil, opts)
}

// Post performs a POST request with a JSON body and decodes the response into type T.
func Post[T any](ctx context.Context, c *fetch.Client, url string, body any, opts ...fetch.Config) (*Response[T], error) {
	return do[T](ctx, c, fetch.MethodPost, url, body, opts)
}

// Put performs a PUT request with a JSON body and decodes the response into type T.
func Put[T any](ctx context.Context, c *fetch.Client, url string, body any, opts ...fetch.Config) (*Response[T], error) {
	return do[T](ctx, c, fetch.MethodPut, url, body, opts)
}

// Patch performs a PATCH request with a JSON body and decodes the response into type T.
func Patch[T any](ctx context.Context, c *fetch.Client, url string, body any, opts ...fetch.Config) (*Response[T], error) {
	return do[T](ctx, c, fetch.MethodPatch, url, body, opts)
}

// Delete performs a DELETE request and decodes the response into type T.
func Delete[T any](ctx context.Context, c *fetch.Client, url string, opts ...fetch.Config) (*Response[T], error) {
	return do[T](ctx, c, fetch.MethodDelete, url, nil, opts)
}

func do[T any](ctx context.Context, c *fetch.Client, method fetch.Method, url string, body any, opts []fetch.Config) (*Response[T], error) {
	var data T
	cfg := fetch.MergeConfig(opts...)
	cfg.Method = method
	cfg.URL = url
	if body != nil {
		cfg.Data = body
	}
	cfg.ResponseType = fetch.ResponseJSON
	cfg.Result = &data
	cfg.Headers = fetch.MergeConfig(fetch.Config{
		Headers: map[string]string{"Accept": "application/json"},
	}, fetch.Config{Headers: cfg.Headers}).Headers

	reply, err := c.Do(ctx, cfg)
	if err != nil {
		// Status errors may still carry a JSON body worth returning.
		var fe *fetch.Error
		if errors.As(err, &fe) && fe.Response != nil {
			var errData T
			if jsonErr := fe.Response.JSON(&errData); jsonErr == nil {
				return &Response[T]{
					StatusCode: fe.StatusCode,
					Header:     fe.Response.Header(),
					Data:       errData,
				}, err
			}
		}
		return nil, err
	}

	out := &Response[T]{Data: data}
	if v, ok := reply.Value.(*T); ok && v != &data {
		out.Data = *v
	}
	if reply.Response != nil {
		out.StatusCode = reply.Response.StatusCode()
		out.Header = reply.Response.Header()
	}
	return out, nil
}
