package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/shenikar/incident_dispatch/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), &config.Config{}, newTestLogger())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_Stdout(t *testing.T) {
	cfg := &config.Config{
		TracingEnabled:     true,
		TracingExporter:    "stdout",
		TracingSampleRatio: 1,
		TracingServiceName: "dispatch-test",
	}
	shutdown, err := Init(context.Background(), cfg, newTestLogger())
	require.NoError(t, err)
	ShutdownWithTimeout(context.Background(), shutdown, newTestLogger())
}

func TestInit_UnknownExporter(t *testing.T) {
	cfg := &config.Config{TracingEnabled: true, TracingExporter: "zipkin"}
	_, err := Init(context.Background(), cfg, newTestLogger())
	assert.ErrorContains(t, err, "unsupported tracing exporter")
}
