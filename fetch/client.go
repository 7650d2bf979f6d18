package fetch

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/observability"
)

// TracerName is the instrumentation name of request spans and metrics.
const TracerName = "github.com/kbukum/gofetch/fetch"

// Client issues requests through a Sender using its default Config as the
// template every call merges against. Client is safe for concurrent use;
// calls share no mutable state.
type Client struct {
	sender   Sender
	defaults Config
	env      Environment
	log      *logger.Logger
	tracer   trace.Tracer
	metrics  *observability.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithEnvironment sets the runtime environment used for credential handling.
func WithEnvironment(env Environment) Option {
	return func(c *Client) { c.env = env }
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithMetrics enables request metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client that sends through sender. Its defaults are the
// built-in defaults merged with cfg.
func New(sender Sender, cfg Config, opts ...Option) *Client {
	if sender == nil {
		panic("fetch: nil sender")
	}
	c := &Client{
		sender:   sender,
		defaults: MergeConfig(DefaultConfig(), cfg),
		log:      logger.Get("fetch"),
		tracer:   otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create returns an independent client whose defaults are the built-in
// defaults merged with cfg. The new client shares the sender, environment,
// logger, tracer and metrics of c but none of its defaults.
func (c *Client) Create(cfg Config) *Client {
	return &Client{
		sender:   c.sender,
		defaults: MergeConfig(DefaultConfig(), cfg),
		env:      c.env,
		log:      c.log,
		tracer:   c.tracer,
		metrics:  c.metrics,
	}
}

// CreateCancelToken returns a new CancelToken.
func (c *Client) CreateCancelToken() *CancelToken {
	return NewCancelToken()
}

// Defaults returns a copy of the client's default configuration.
func (c *Client) Defaults() Config {
	return MergeConfig(c.defaults)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, url string, opts ...Config) (any, error) {
	return c.Request(ctx, verb(MethodGet, url, nil, opts))
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, opts ...Config) (any, error) {
	return c.Request(ctx, verb(MethodDelete, url, nil, opts))
}

// Head issues a HEAD request.
func (c *Client) Head(ctx context.Context, url string, opts ...Config) (any, error) {
	return c.Request(ctx, verb(MethodHead, url, nil, opts))
}

// Options issues an OPTIONS request.
func (c *Client) Options(ctx context.Context, url string, opts ...Config) (any, error) {
	return c.Request(ctx, verb(MethodOptions, url, nil, opts))
}

// Post issues a POST request with data as payload.
func (c *Client) Post(ctx context.Context, url string, data any, opts ...Config) (any, error) {
	return c.Request(ctx, verb(MethodPost, url, data, opts))
}

// Put issues a PUT request with data as payload.
func (c *Client) Put(ctx context.Context, url string, data any, opts ...Config) (any, error) {
	return c.Request(ctx, verb(MethodPut, url, data, opts))
}

// Patch issues a PATCH request with data as payload.
func (c *Client) Patch(ctx context.Context, url string, data any, opts ...Config) (any, error) {
	return c.Request(ctx, verb(MethodPatch, url, data, opts))
}

// verb folds optional call options and forces method, url and payload.
func verb(method Method, url string, data any, opts []Config) Config {
	cfg := MergeConfig(opts...)
	cfg.Method = method
	cfg.URL = url
	if data != nil {
		cfg.Data = data
	}
	return cfg
}
