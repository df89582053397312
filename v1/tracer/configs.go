package tracer

// Config controls the OpenTelemetry tracer provider.
type Config struct {
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `koanf:"service_name"`

	// AppEnv is reported as deployment.environment.
	AppEnv string `koanf:"app_env"`

	// EnableExport ships spans with the OTLP HTTP exporter. The exporter reads
	// its endpoint from the standard OTEL_EXPORTER_OTLP_* variables.
	EnableExport bool `koanf:"enable_export"`
}
