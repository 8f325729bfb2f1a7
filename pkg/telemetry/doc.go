// Package telemetry builds OpenTelemetry meter and tracer providers from
// environment configuration.
//
// Metrics can go to Prometheus (served by MetricsHandler from a private
// registry), OTLP over gRPC, stdout or nowhere; traces to OTLP, stdout or
// nowhere. Unused signals get noop providers, so callers can always ask for a
// Meter or Tracer.
package telemetry
