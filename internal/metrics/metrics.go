package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - счетчики и гистограммы диспетчеризации
type Metrics struct {
	routingDuration *prometheus.HistogramVec
	selectedScore   prometheus.Histogram
	assignments     *prometheus.CounterVec
	noCandidates    prometheus.Counter
	transitions     *prometheus.CounterVec
	contention      *prometheus.CounterVec
}

// New регистрирует метрики в переданном реестре; nil означает реестр по умолчанию.
// Повторная регистрация возвращает уже существующие коллекторы.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		routingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_routing_duration_seconds",
			Help:    "Time spent selecting authorities for an incident",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		selectedScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_selected_score",
			Help:    "Total score of authorities chosen for dispatch",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.2},
		}),
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_assignments_total",
			Help: "Assignments created, by authority type",
		}, []string{"authority_type"}),
		noCandidates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_no_candidates_total",
			Help: "Dispatch attempts that found no viable authority",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_status_transitions_total",
			Help: "Applied assignment status transitions",
		}, []string{"from", "to"}),
		contention: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_contention_total",
			Help: "Operations rejected because of concurrent updates",
		}, []string{"operation"}),
	}

	var err error
	if m.routingDuration, err = register(reg, m.routingDuration); err != nil {
		return nil, err
	}
	if m.selectedScore, err = register(reg, m.selectedScore); err != nil {
		return nil, err
	}
	if m.assignments, err = register(reg, m.assignments); err != nil {
		return nil, err
	}
	if m.noCandidates, err = register(reg, m.noCandidates); err != nil {
		return nil, err
	}
	if m.transitions, err = register(reg, m.transitions); err != nil {
		return nil, err
	}
	if m.contention, err = register(reg, m.contention); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveRouting фиксирует длительность выбора подразделений
func (m *Metrics) ObserveRouting(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.routingDuration.WithLabelValues(operation).Observe(seconds)
}

// AssignmentCreated учитывает назначение и итоговую оценку выбранного подразделения
func (m *Metrics) AssignmentCreated(authorityType string, score float64) {
	if m == nil {
		return
	}
	m.assignments.WithLabelValues(authorityType).Inc()
	m.selectedScore.Observe(score)
}

func (m *Metrics) NoCandidates() {
	if m == nil {
		return
	}
	m.noCandidates.Inc()
}

func (m *Metrics) Transition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) Contention(operation string) {
	if m == nil {
		return
	}
	m.contention.WithLabelValues(operation).Inc()
}
