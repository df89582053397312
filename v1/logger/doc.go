// Package logger provides structured logging on top of Uber's zap.
//
// Every method takes a message, an optional error and any number of field maps:
//
//	log := logger.NewLogger(logger.Config{Level: logger.Info, ServiceName: "tagsearch"})
//	log.Info("search served", nil, map[string]interface{}{
//		"actor_id": 7,
//		"results":  5,
//	})
//
// The *WithContext variants add trace_id and span_id from the active
// OpenTelemetry span when Config.EnableTracing is set.
//
// Other packages in this module depend on a small Logger interface with the
// same method set instead of on *Logger, so tests can pass logger.NewNop().
//
// All methods are safe for concurrent use.
package logger
