package config

import (
	"context"
	"net/http"
	"time"

	"github.com/kbukum/gofetch/fetch"
	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/observability"
	"github.com/kbukum/gofetch/transport"
	"github.com/kbukum/gofetch/validation"
)

// ClientConfig is the file/env representation of a fetch client.
//
//	name: billing
//	base_url: https://billing.internal/api
//	timeout: 5s
//	headers:
//	  Accept: application/json
//	transport:
//	  max_idle_conns: 50
//	  tls:
//	    ca_file: /etc/ssl/internal-ca.pem
//	logging:
//	  level: debug
//	observability:
//	  tracing: true
//	  endpoint: otel-collector:4318
type ClientConfig struct {
	Name    string `yaml:"name" mapstructure:"name" validate:"required"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Method is the default method. Defaults to GET.
	Method string `yaml:"method" mapstructure:"method" validate:"omitempty,http_method"`

	// Timeout is the per-request timeout. Defaults to 10s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// DisableTimeout turns the per-request timeout off.
	DisableTimeout bool `yaml:"disable_timeout" mapstructure:"disable_timeout"`

	Headers         map[string]string `yaml:"headers" mapstructure:"headers"`
	ResponseType    string            `yaml:"response_type" mapstructure:"response_type" validate:"omitempty,response_type"`
	WithCredentials bool              `yaml:"with_credentials" mapstructure:"with_credentials"`

	Transport     transport.Config     `yaml:"transport" mapstructure:"transport"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *ClientConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "fetch"
	}
	if c.Method == "" {
		c.Method = http.MethodGet
	}
	if c.Timeout == 0 {
		c.Timeout = fetch.DefaultTimeout
	}
	if c.ResponseType == "" {
		c.ResponseType = string(fetch.ResponseJSON)
	}
	c.Transport.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks struct tags, header names and nested sections.
func (c *ClientConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}

	v := validation.New().
		AbsoluteURL("base_url", c.BaseURL).
		NonNegative("timeout", c.Timeout)
	for name := range c.Headers {
		v.HeaderName("headers", name)
	}
	if err := v.Validate(); err != nil {
		return err
	}

	if err := c.Transport.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// FetchConfig converts the settings into client defaults. Header names are
// canonicalized because the loader lower-cases keys.
func (c *ClientConfig) FetchConfig() fetch.Config {
	cfg := fetch.Config{
		BaseURL:      c.BaseURL,
		Method:       fetch.Method(c.Method),
		ResponseType: fetch.ResponseType(c.ResponseType),
		Timeout:      c.Timeout,
	}
	if c.DisableTimeout {
		cfg.Timeout = fetch.NoTimeout
	}
	if c.WithCredentials {
		v := true
		cfg.WithCredentials = &v
	}
	if len(c.Headers) > 0 {
		cfg.Headers = make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			cfg.Headers[http.CanonicalHeaderKey(k)] = v
		}
	}
	return cfg
}

// TransportConfig returns the transport section.
func (c *ClientConfig) TransportConfig() transport.Config {
	return c.Transport
}

// NewClient builds a logger, sender and client from the settings. Extra
// options are applied after the logger option.
func (c *ClientConfig) NewClient(opts ...fetch.Option) (*fetch.Client, error) {
	client, _, err := transport.NewClient(c.TransportConfig(), c.FetchConfig(), c.withLogger(opts)...)
	return client, err
}

// Component returns a lifecycle component that builds the client on Start.
func (c *ClientConfig) Component(opts ...fetch.Option) *transport.Component {
	return transport.NewComponent(c.Name, c.TransportConfig(), c.FetchConfig(), c.withLogger(opts)...)
}

// StartObservability starts the exporters enabled under observability and
// returns client options that record through them. The caller shuts the
// providers down on exit.
func (c *ClientConfig) StartObservability(ctx context.Context) (*observability.Providers, []fetch.Option, error) {
	p, err := observability.Setup(ctx, c.Name, c.Observability)
	if err != nil {
		return nil, nil, err
	}

	var opts []fetch.Option
	if c.Observability.Tracing {
		opts = append(opts, fetch.WithTracer(p.Tracer(fetch.TracerName)))
	}
	if c.Observability.Metrics {
		m, err := observability.NewMetrics(p.Meter(fetch.TracerName))
		if err != nil {
			_ = p.Shutdown(ctx)
			return nil, nil, err
		}
		opts = append(opts, fetch.WithMetrics(m))
	}
	return p, opts, nil
}

func (c *ClientConfig) withLogger(opts []fetch.Option) []fetch.Option {
	l := logger.New(&c.Logging, c.Name).WithComponent("fetch")
	return append([]fetch.Option{fetch.WithLogger(l)}, opts...)
}
