package routing

import (
	"testing"
	"time"

	"github.com/shenikar/incident_dispatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer(t *testing.T, cfg Config) *Scorer {
	t.Helper()
	s, err := NewScorer(cfg)
	require.NoError(t, err)
	return s
}

func TestDefaultConfig_WeightsSumToOne(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 1.0, cfg.Weights.Sum(), 1e-9)
	require.NoError(t, cfg.Validate())
}

func TestNewScorer_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.TypeMatch = 0.2
	_, err := NewScorer(cfg)
	assert.ErrorContains(t, err, "weights must sum to 1.0")

	cfg = DefaultConfig()
	cfg.DistanceBands = []Band{{UpTo: 10, Score: 1}, {UpTo: 5, Score: 0.5}}
	_, err = NewScorer(cfg)
	assert.ErrorContains(t, err, "strictly ascending")
}

func TestDistanceBands_NonIncreasing(t *testing.T) {
	cfg := DefaultConfig()
	prev := bandScore(cfg.DistanceBands, 0, cfg.DistanceFloorScore)
	for km := 0.0; km <= 100; km += 0.25 {
		cur := bandScore(cfg.DistanceBands, km, cfg.DistanceFloorScore)
		assert.LessOrEqual(t, cur, prev, "distance %.2f", km)
		prev = cur
	}
}

func TestScore_DistanceBands(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())
	incident := newIncident(models.CategoryFire, models.SeverityHigh)

	cases := []struct {
		km       float64
		expected float64
	}{
		{2, 1.0},
		{8, 0.9},
		{15, 0.7},
		{25, 0.5},
		{35, 0.3},
		{45, 0.1},
	}
	for _, tc := range cases {
		c := newCandidate(models.AuthorityFire, tc.km, 0)
		score := s.Score(incident, c, testNow)
		assert.Equal(t, tc.expected, score.DistanceScore, "distance %.0f km", tc.km)
	}
}

// Сценарий: скорая в 3 км без загрузки против больницы в 45 км с одним вызовом
func TestScore_MedicalScenario(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())
	incident := newIncident(models.CategoryMedical, models.SeverityHigh)
	a := newCandidate(models.AuthorityAmbulance, 3, 0)
	b := newCandidate(models.AuthorityHospital, 45, 1)

	scoreA := s.Score(incident, a, testNow)
	scoreB := s.Score(incident, b, testNow)

	require.NotNil(t, scoreA.DistanceKM)
	assert.Equal(t, 3.0, *scoreA.DistanceKM)
	assert.Equal(t, 1.0, scoreA.DistanceScore)
	assert.Equal(t, 1.0, scoreA.WorkloadScore)
	assert.Equal(t, 0.7, scoreA.ResponseScore)
	assert.Equal(t, 1.0, scoreA.TypeScore)
	assert.Equal(t, 0.94, scoreA.Total)
	assert.False(t, scoreA.CriticalBoost)

	assert.Equal(t, 0.1, scoreB.DistanceScore)
	assert.Equal(t, 0.8, scoreB.WorkloadScore)
	assert.Equal(t, 0.8, scoreB.TypeScore)
	assert.Equal(t, 0.5, scoreB.Total)
	assert.Greater(t, scoreA.Total, scoreB.Total)
}

func TestScore_CriticalBoost(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())
	critical := newIncident(models.CategoryMedical, models.SeverityCritical)
	high := newIncident(models.CategoryMedical, models.SeverityHigh)

	idle := newCandidate(models.AuthorityAmbulance, 3, 0)
	boosted := s.Score(critical, idle, testNow)
	plain := s.Score(high, idle, testNow)

	assert.True(t, boosted.CriticalBoost)
	assert.Equal(t, 1.128, boosted.Total)
	assert.InDelta(t, plain.Total*1.2, boosted.Total, 0.001)

	for active := 0; active <= 6; active++ {
		c := newCandidate(models.AuthorityAmbulance, 3, active)
		crit := s.Score(critical, c, testNow)
		base := s.Score(high, c, testNow)
		if active < 3 {
			assert.True(t, crit.CriticalBoost, "workload %d", active)
			assert.InDelta(t, base.Total*1.2, crit.Total, 0.001, "workload %d", active)
		} else {
			assert.False(t, crit.CriticalBoost, "workload %d", active)
			assert.Equal(t, base.Total, crit.Total, "workload %d", active)
		}
	}
}

func TestScore_BeyondMaxDistanceRejected(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())
	incident := newIncident(models.CategoryFire, models.SeverityCritical)
	c := newCandidate(models.AuthorityFire, 60, 0)
	c.ResolvedHistory = history(5, 7, 9)

	score := s.Score(incident, c, testNow)

	assert.Zero(t, score.Total)
	assert.Equal(t, RejectTooFar, score.RejectedReason)
	assert.False(t, score.Viable())
	require.NotNil(t, score.DistanceKM)
	assert.Greater(t, *score.DistanceKM, 50.0)
	assert.Nil(t, score.ETAMinutes)
}

func TestScore_UnknownStationLocation(t *testing.T) {
	incident := newIncident(models.CategoryCrime, models.SeverityMedium)
	c := newCandidate(models.AuthorityPolice, 0, 0)
	c.Station = nil

	score := newTestScorer(t, DefaultConfig()).Score(incident, c, testNow)

	assert.True(t, score.Viable())
	assert.Equal(t, 0.5, score.DistanceScore)
	assert.Nil(t, score.DistanceKM)
	assert.Nil(t, score.ETAMinutes)
	// 0.5*0.4 + 1.0*0.3 + 0.7*0.2 + 1.0*0.1
	assert.Equal(t, 0.74, score.Total)

	strict := DefaultConfig()
	strict.AllowUnknownLocation = false
	score = newTestScorer(t, strict).Score(incident, c, testNow)

	assert.False(t, score.Viable())
	assert.Equal(t, RejectUnknownLocation, score.RejectedReason)
}

func TestScore_IncidentWithoutLocation(t *testing.T) {
	incident := newIncident(models.CategoryCrime, models.SeverityMedium)
	incident.Location = nil
	c := newCandidate(models.AuthorityPolice, 2, 0)

	score := newTestScorer(t, DefaultConfig()).Score(incident, c, testNow)

	assert.True(t, score.Viable())
	assert.Equal(t, 0.5, score.DistanceScore)
	assert.Nil(t, score.DistanceKM)
}

func TestScore_WorkloadBands(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())
	incident := newIncident(models.CategoryFire, models.SeverityLow)

	expected := []float64{1.0, 0.8, 0.5, 0.3, 0.1, 0.1, 0.1}
	for active, want := range expected {
		c := newCandidate(models.AuthorityFire, 1, active)
		score := s.Score(incident, c, testNow)
		assert.Equal(t, want, score.WorkloadScore, "workload %d", active)
		assert.Equal(t, active, score.CurrentWorkload)
	}
}

func TestScore_ResponseTime(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())
	incident := newIncident(models.CategoryFire, models.SeverityLow)

	cases := []struct {
		name     string
		history  []models.ResolvedRecord
		expected float64
	}{
		{"no history", nil, 0.7},
		{"fast", history(10, 12, 14), 1.0},
		{"good", history(20, 22), 0.8},
		{"average", history(30, 40), 0.6},
		{"slow", history(45, 90), 0.4},
		{"boundary 15", history(15), 1.0},
		{"boundary 25", history(25), 0.8},
		{"boundary 40", history(40), 0.6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newCandidate(models.AuthorityFire, 1, 0)
			c.ResolvedHistory = tc.history
			assert.Equal(t, tc.expected, s.Score(incident, c, testNow).ResponseScore)
		})
	}
}

func TestScore_ResponseTimeIgnoresOldHistory(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())
	incident := newIncident(models.CategoryFire, models.SeverityLow)
	assigned := testNow.Add(-40 * 24 * time.Hour)

	c := newCandidate(models.AuthorityFire, 1, 0)
	c.ResolvedHistory = []models.ResolvedRecord{
		{AssignedAt: assigned, ResolvedAt: assigned.Add(3 * time.Hour)},
	}

	assert.Equal(t, 0.7, s.Score(incident, c, testNow).ResponseScore)
}

func TestScore_TypeMatch(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())

	cases := []struct {
		category  models.IncidentCategory
		authority models.AuthorityType
		expected  float64
	}{
		{models.CategoryFire, models.AuthorityFire, 1.0},
		{models.CategoryMedical, models.AuthorityAmbulance, 1.0},
		{models.CategoryMedical, models.AuthorityHospital, 0.8},
		{models.CategoryCrime, models.AuthorityPolice, 1.0},
		{models.CategoryAccident, models.AuthorityAmbulance, 0.8},
		{models.CategoryDisaster, models.AuthorityFire, 0.8},
		{models.CategoryOther, models.AuthorityPolice, 0.8},
		{models.CategoryCrime, models.AuthorityFire, 0.5},
	}
	for _, tc := range cases {
		incident := newIncident(tc.category, models.SeverityLow)
		c := newCandidate(tc.authority, 1, 0)
		assert.Equal(t, tc.expected, s.Score(incident, c, testNow).TypeScore, "%s/%s", tc.category, tc.authority)
	}
}

func TestETA(t *testing.T) {
	s := newTestScorer(t, DefaultConfig())

	assert.Equal(t, 9, s.ETA(3, models.SeverityHigh))
	assert.Equal(t, 6, s.ETA(3, models.SeverityCritical))
	assert.Equal(t, 72, s.ETA(45, models.SeverityLow))
	assert.Equal(t, 5, s.ETA(0, models.SeverityMedium))
	assert.Equal(t, 3, s.ETA(0, models.SeverityCritical))
}

func TestScorer_CopiesConfig(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestScorer(t, cfg)

	cfg.WorkloadScores[0] = 0
	cfg.PerfectMatch[models.CategoryFire] = models.AuthorityPolice

	incident := newIncident(models.CategoryFire, models.SeverityLow)
	score := s.Score(incident, newCandidate(models.AuthorityFire, 1, 0), testNow)

	assert.Equal(t, 1.0, score.WorkloadScore)
	assert.Equal(t, 1.0, score.TypeScore)
}
