package logger

import "github.com/prometheus/client_golang/prometheus"

// LogStatements returns the counter of service at level.
func LogStatements(service, level string) prometheus.Counter {
	return logStatements.WithLabelValues(service, level)
}
