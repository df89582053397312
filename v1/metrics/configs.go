package metrics

// DefaultMetricsAddress is where the Prometheus endpoint listens when unset.
const DefaultMetricsAddress = ":9090"

// Config defines how the metrics endpoint is exposed.
type Config struct {
	// Address is the listen address of the /metrics server.
	Address string `koanf:"address"`

	// EnableDefaultCollectors registers Go runtime, process and build info collectors.
	EnableDefaultCollectors bool `koanf:"enable_default_collectors"`

	// Namespace prefixes every metric name created by this package.
	Namespace string `koanf:"namespace"`

	// ServiceName is attached to every series as the "service" label.
	ServiceName string `koanf:"service_name"`
}
