package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log := New("debug", "json", "")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = New("verbose", "TEXT", "")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNew_AddsAppField(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New("info", "json", "incident-dispatch")
	log.SetOutput(buf)

	log.WithField("service", "dispatch").Info("Authorities dispatched")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "incident-dispatch", entry[AppField])
	assert.Equal(t, "dispatch", entry["service"])
}

func TestNew_KeepsExplicitAppField(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New("info", "json", "incident-dispatch")
	log.SetOutput(buf)

	log.WithField(AppField, "migrator").Info("done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "migrator", entry[AppField])
}
