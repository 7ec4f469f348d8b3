package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// logStatements is exported as brocante_log_statements_total{service,level}.
var logStatements = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Namespace: "brocante",
		Name:      "log_statements_total",
		Help:      "Number of log statements, by service and level.",
	},
	[]string{"service", "level"},
)

// PrometheusHook counts the log statements of one service.
type PrometheusHook struct {
	levels *prometheus.CounterVec
}

// NewPrometheusHook returns a hook counting the statements of service per level.
// Init may run several times, every hook shares the same collector.
func NewPrometheusHook(service string) PrometheusHook {
	return PrometheusHook{levels: logStatements.MustCurryWith(prometheus.Labels{"service": service})}
}

// Run implements zerolog.Hook.
func (h PrometheusHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.NoLevel || h.levels == nil {
		return
	}

	h.levels.WithLabelValues(level.String()).Inc()
}
