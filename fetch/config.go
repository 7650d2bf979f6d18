package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Method is an HTTP request method.
type Method string

const (
	MethodGet     Method = http.MethodGet
	MethodPost    Method = http.MethodPost
	MethodPut     Method = http.MethodPut
	MethodDelete  Method = http.MethodDelete
	MethodPatch   Method = http.MethodPatch
	MethodHead    Method = http.MethodHead
	MethodOptions Method = http.MethodOptions
)

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodHead, MethodOptions:
		return true
	}
	return false
}

// hasBody reports whether a JSON payload is encoded for this method.
func (m Method) hasBody() bool {
	return m == MethodPost || m == MethodPut || m == MethodPatch
}

// ResponseType selects how a response body is decoded.
type ResponseType string

const (
	ResponseJSON        ResponseType = "json"
	ResponseText        ResponseType = "text"
	ResponseBlob        ResponseType = "blob"
	ResponseArrayBuffer ResponseType = "arrayBuffer"
	ResponseFormData    ResponseType = "formData"
)

// Valid reports whether t is a known response type. The empty value is
// valid. Requests decode any unknown type as JSON.
func (t ResponseType) Valid() bool {
	switch t {
	case "", ResponseJSON, ResponseText, ResponseBlob, ResponseArrayBuffer, ResponseFormData:
		return true
	}
	return false
}

const (
	// DefaultTimeout is the built-in request timeout.
	DefaultTimeout = 10 * time.Second

	// NoTimeout disables a timeout inherited from client defaults.
	NoTimeout time.Duration = -1

	headerContentType = "Content-Type"
	mimeJSON          = "application/json"
)

// RequestInterceptor receives the merged configuration before anything is
// sent. The returned Config replaces the working configuration entirely.
type RequestInterceptor func(ctx context.Context, cfg Config) (Config, error)

// ResponseInterceptor receives the decoded result. Its return value is the
// final result of the request.
type ResponseInterceptor func(ctx context.Context, result any) (any, error)

// ErrorInterceptor receives every error raised after configuration has
// been resolved. Returning a nil error resolves the request with the
// returned value; returning an error rejects the request with it.
type ErrorInterceptor func(ctx context.Context, err error) (any, error)

// Config is the per-request configuration. The same type is used for
// client defaults and call-site options; the effective configuration of a
// call is the merge of built-in defaults, client defaults and call options.
type Config struct {
	// URL is the request URL, absolute or relative to BaseURL.
	URL string `yaml:"url" mapstructure:"url"`

	// BaseURL is joined with URL unless URL is absolute.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Method is the HTTP method. Defaults to GET.
	Method Method `yaml:"method" mapstructure:"method"`

	// Headers are request headers. Keys keep the case they were given in.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Params are query parameters, serialized in insertion order.
	Params Params `yaml:"-" mapstructure:"-"`

	// Data is the request payload.
	Data any `yaml:"-" mapstructure:"-"`

	// ResponseType selects the body decoding mode. Defaults to JSON.
	ResponseType ResponseType `yaml:"response_type" mapstructure:"response_type"`

	// Timeout bounds the network call. Zero means no timeout once merged;
	// NoTimeout overrides an inherited value.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// WithCredentials asks browser-like environments to include
	// credentials (cookies) with the request.
	WithCredentials *bool `yaml:"with_credentials" mapstructure:"with_credentials"`

	// CancelToken aborts the request when cancelled.
	CancelToken *CancelToken `yaml:"-" mapstructure:"-"`

	RequestInterceptor  RequestInterceptor  `yaml:"-" mapstructure:"-"`
	ResponseInterceptor ResponseInterceptor `yaml:"-" mapstructure:"-"`
	ErrorInterceptor    ErrorInterceptor    `yaml:"-" mapstructure:"-"`

	// ParamsSerializer replaces the default query serializer.
	ParamsSerializer func(Params) string `yaml:"-" mapstructure:"-"`

	// Result, when set to a pointer, receives the decoded JSON body and is
	// returned as the request result.
	Result any `yaml:"-" mapstructure:"-"`

	// Extra holds transport-specific fields forwarded verbatim to the Sender.
	Extra map[string]any `yaml:"extra" mapstructure:"extra"`
}

// DefaultConfig returns the built-in defaults every client merges against.
func DefaultConfig() Config {
	return Config{
		Method: MethodGet,
		Headers: map[string]string{
			headerContentType: mimeJSON,
		},
		ResponseType:    ResponseJSON,
		Timeout:         DefaultTimeout,
		WithCredentials: new(bool),
	}
}

// Validate checks the method. It does not require URL, which may be
// supplied per call, and accepts any ResponseType.
func (c *Config) Validate() error {
	if c.Method != "" && !c.Method.Valid() {
		return fmt.Errorf("fetch: unsupported method %q", c.Method)
	}
	return nil
}

// effectiveTimeout returns the timeout to race against, or zero.
func (c *Config) effectiveTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 0
	}
	return c.Timeout
}

func (c *Config) credentials() bool {
	return c.WithCredentials != nil && *c.WithCredentials
}
