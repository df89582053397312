package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config defines the settings for the zap-backed logger.
type Config struct {
	// Level is one of debug, info, warning, error. Anything else falls back to info.
	Level string `koanf:"level"`

	// EnableTracing adds trace_id and span_id to *WithContext log entries.
	EnableTracing bool `koanf:"enable_tracing"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `koanf:"service_name"`
}
