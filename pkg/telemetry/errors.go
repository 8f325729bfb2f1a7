package telemetry

import "errors"

var (
	// ErrUnknownExporter is returned for exporter names outside stdout, otlp, prometheus and none.
	ErrUnknownExporter = errors.New("unknown telemetry exporter")
	// ErrEndpointNotConfigured is returned when the otlp exporter is selected without an endpoint.
	ErrEndpointNotConfigured = errors.New("otlp endpoint not configured")
	// ErrSetup wraps any failure while building providers.
	ErrSetup = errors.New("failed to set up telemetry")
)
