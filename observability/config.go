package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Config selects which OTLP exporters a client starts.
//
//	observability:
//	  tracing: true
//	  metrics: true
//	  endpoint: otel-collector:4318
type Config struct {
	Tracing bool `yaml:"tracing" mapstructure:"tracing"`
	Metrics bool `yaml:"metrics" mapstructure:"metrics"`

	// Endpoint is the OTLP HTTP endpoint host:port. Defaults to localhost:4318.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`

	// SampleRate is the trace sampling rate. Defaults to 1.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	// Interval is the metric export interval. Defaults to 15s.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	Environment    string `yaml:"environment" mapstructure:"environment"`
}

// Enabled reports whether any exporter is switched on.
func (c *Config) Enabled() bool {
	return c.Tracing || c.Metrics
}

// ApplyDefaults fills in zero-value fields from the development defaults.
func (c *Config) ApplyDefaults() {
	def := DefaultMeterConfig("")
	if c.Endpoint == "" {
		c.Endpoint = def.Endpoint
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = def.Interval
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = def.ServiceVersion
	}
	if c.Environment == "" {
		c.Environment = def.Environment
	}
}

// Validate checks the sampling rate and export interval.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability: sample_rate must be between 0 and 1, got %v", c.SampleRate)
	}
	if c.Interval < 0 {
		return fmt.Errorf("observability: interval must not be negative")
	}
	return nil
}

// Providers holds the tracer and meter providers started by Setup. Either
// may be nil when its exporter is disabled.
type Providers struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// Setup starts the exporters enabled in cfg for serviceName.
func Setup(ctx context.Context, serviceName string, cfg Config) (*Providers, error) {
	p := &Providers{}
	if cfg.Tracing {
		tp, err := InitTracer(ctx, TracerConfig{
			ServiceName:    serviceName,
			ServiceVersion: cfg.ServiceVersion,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Endpoint,
			Insecure:       cfg.Insecure,
			SampleRate:     cfg.SampleRate,
		})
		if err != nil {
			return nil, err
		}
		p.tracerProvider = tp
	}
	if cfg.Metrics {
		mp, err := InitMeter(ctx, MeterConfig{
			ServiceName:    serviceName,
			ServiceVersion: cfg.ServiceVersion,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Endpoint,
			Insecure:       cfg.Insecure,
			Interval:       cfg.Interval,
		})
		if err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
		p.meterProvider = mp
	}
	return p, nil
}

// Tracer returns a tracer from the started provider, or the global one.
func (p *Providers) Tracer(name string) trace.Tracer {
	if p.tracerProvider != nil {
		return p.tracerProvider.Tracer(name)
	}
	return otel.Tracer(name)
}

// Meter returns a meter from the started provider, or the global one.
func (p *Providers) Meter(name string) metric.Meter {
	if p.meterProvider != nil {
		return p.meterProvider.Meter(name)
	}
	return otel.Meter(name)
}

// Shutdown flushes and stops the started providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.tracerProvider != nil {
		errs = append(errs, p.tracerProvider.Shutdown(ctx))
	}
	if p.meterProvider != nil {
		errs = append(errs, p.meterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
