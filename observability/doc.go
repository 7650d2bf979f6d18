// Package observability provides OpenTelemetry tracing and metrics for
// gofetch clients.
//
// Setup starts the OTLP exporters a Config enables:
//
//	p, err := observability.Setup(ctx, "billing", observability.Config{Tracing: true, Metrics: true})
//	defer p.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(p.Meter(fetch.TracerName))
//	client := fetch.New(sender, cfg,
//		fetch.WithTracer(p.Tracer(fetch.TracerName)),
//		fetch.WithMetrics(metrics))
//
// InitTracer and InitMeter start a single provider when finer control is
// needed.
package observability
