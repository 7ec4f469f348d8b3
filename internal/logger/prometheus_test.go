package logger_test

import (
	"io"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labrocante/brocante/internal/logger"
)

func counterValue(t *testing.T, service, level string) float64 {
	t.Helper()

	var m dto.Metric
	require.NoError(t, logger.LogStatements(service, level).Write(&m))

	return m.GetCounter().GetValue()
}

func TestPrometheusHook(t *testing.T) {
	l := zerolog.New(io.Discard).Hook(logger.NewPrometheusHook("hook-test"))

	before := counterValue(t, "hook-test", "warn")

	l.Warn().Msg("stock bas")
	l.Warn().Msg("stock bas")
	l.Log().Msg("no level")

	assert.InDelta(t, before+2, counterValue(t, "hook-test", "warn"), 0.001)

	// the zero hook is inert
	assert.NotPanics(t, func() { logger.PrometheusHook{}.Run(nil, zerolog.ErrorLevel, "") })
}
