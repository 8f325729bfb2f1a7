package telemetry

// Exporter names.
const (
	ExporterNone       = "none"
	ExporterStdout     = "stdout"
	ExporterOTLP       = "otlp"
	ExporterPrometheus = "prometheus"
)

// Config selects exporters using the standard OpenTelemetry variable names.
type Config struct {
	ServiceName      string  `env:"OTEL_SERVICE_NAME" envDefault:"inputguard"`
	ServiceVersion   string  `env:"OTEL_SERVICE_VERSION" envDefault:"dev"`
	MetricsExporter  string  `env:"OTEL_METRICS_EXPORTER" envDefault:"prometheus"` // prometheus|otlp|stdout|none
	TracesExporter   string  `env:"OTEL_TRACES_EXPORTER" envDefault:"none"`        // otlp|stdout|none
	TraceSampleRatio float64 `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1"`
}
