package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	first.AssignmentCreated("fire", 0.94)
	second.AssignmentCreated("fire", 0.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(first.assignments.WithLabelValues("fire")))
	assert.Equal(t, 1, testutil.CollectAndCount(second.selectedScore))
}

func TestMetrics_Counters(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.NoCandidates()
	m.Transition("assigned", "en_route")
	m.Contention("update_status")
	m.ObserveRouting("find_best", 0.01)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.noCandidates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("assigned", "en_route")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.contention.WithLabelValues("update_status")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.routingDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.NoCandidates()
		m.AssignmentCreated("police", 1)
	})
}
