package routing

import (
	"math"
	"time"

	"github.com/shenikar/incident_dispatch/internal/geo"
	"github.com/shenikar/incident_dispatch/internal/models"
	"gonum.org/v1/gonum/stat"
)

const (
	RejectTooFar          = "too_far"
	RejectUnknownLocation = "unknown_location"
)

// Score - разбор оценки пары (инцидент, кандидат). Не сохраняется, пересчитывается по запросу.
type Score struct {
	DistanceScore   float64  `json:"distance_score"`
	WorkloadScore   float64  `json:"workload_score"`
	ResponseScore   float64  `json:"response_score"`
	TypeScore       float64  `json:"type_score"`
	Total           float64  `json:"total_score"`
	DistanceKM      *float64 `json:"distance_km"`
	CurrentWorkload int      `json:"current_workload"`
	ETAMinutes      *int     `json:"eta_minutes"`
	CriticalBoost   bool     `json:"critical_boost"`
	RejectedReason  string   `json:"rejected_reason,omitempty"`
}

// Viable - кандидат может участвовать в выборе
func (s Score) Viable() bool {
	return s.RejectedReason == "" && s.Total > 0
}

// Scorer считает взвешенную оценку кандидата. Чистая функция от входных данных, безопасна для конкурентного вызова.
type Scorer struct {
	cfg Config
}

func NewScorer(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg.clone()}, nil
}

// Score оценивает одного кандидата для инцидента на момент now
func (s *Scorer) Score(incident *models.Incident, candidate *models.AuthorityCandidate, now time.Time) Score {
	distanceScore, km, known := s.scoreDistance(incident, candidate)
	workload := candidate.ActiveAssignments

	var distance *float64
	if known {
		distance = &km
	}

	if known && km > s.cfg.MaxDistanceKM {
		return Score{DistanceKM: distance, CurrentWorkload: workload, RejectedReason: RejectTooFar}
	}
	if !known && !s.cfg.AllowUnknownLocation {
		return Score{CurrentWorkload: workload, RejectedReason: RejectUnknownLocation}
	}

	workloadScore := s.scoreWorkload(workload)
	responseScore := s.scoreResponseTime(candidate.ResolvedHistory, now)
	typeScore := s.scoreTypeMatch(incident.Category, candidate.Type)

	w := s.cfg.Weights
	total := distanceScore*w.Distance +
		workloadScore*w.Workload +
		responseScore*w.ResponseTime +
		typeScore*w.TypeMatch

	boosted := false
	if incident.IsCritical() && workload < s.cfg.CriticalBoostMaxWorkload {
		// без повторной нормализации: критичные инциденты должны обгонять обычные
		total *= s.cfg.CriticalBoost
		boosted = true
	}

	result := Score{
		DistanceScore:   geo.Round(distanceScore, 3),
		WorkloadScore:   geo.Round(workloadScore, 3),
		ResponseScore:   geo.Round(responseScore, 3),
		TypeScore:       geo.Round(typeScore, 3),
		Total:           geo.Round(total, 3),
		DistanceKM:      distance,
		CurrentWorkload: workload,
		CriticalBoost:   boosted,
	}
	if known {
		eta := s.ETA(km, incident.Severity)
		result.ETAMinutes = &eta
	}
	return result
}

// ETA - расчетное время прибытия в целых минутах (дробная часть отбрасывается)
func (s *Scorer) ETA(distanceKM float64, severity models.Severity) int {
	travel := s.cfg.NormalTravel
	if severity == models.SeverityCritical {
		travel = s.cfg.CriticalTravel
	}
	return int(distanceKM/travel.SpeedKMH*60 + travel.PrepMinutes)
}

func (s *Scorer) scoreDistance(incident *models.Incident, candidate *models.AuthorityCandidate) (float64, float64, bool) {
	if candidate.Station == nil {
		return s.cfg.UnknownDistanceScore, 0, false
	}
	km, ok := geo.Distance(incident.Location, candidate.Station)
	if !ok {
		return s.cfg.UnknownDistanceScore, 0, false
	}
	return bandScore(s.cfg.DistanceBands, km, s.cfg.DistanceFloorScore), km, true
}

func (s *Scorer) scoreWorkload(active int) float64 {
	if active < 0 {
		active = 0
	}
	scores := s.cfg.WorkloadScores
	if active >= len(scores) {
		return scores[len(scores)-1]
	}
	return scores[active]
}

// scoreResponseTime - средняя длительность (resolved_at - assigned_at) за скользящее окно
func (s *Scorer) scoreResponseTime(history []models.ResolvedRecord, now time.Time) float64 {
	since := now.Add(-s.cfg.ResponseWindow)

	minutes := make([]float64, 0, len(history))
	for _, rec := range history {
		if rec.AssignedAt.Before(since) || rec.ResolvedAt.Before(rec.AssignedAt) {
			continue
		}
		minutes = append(minutes, rec.ResolvedAt.Sub(rec.AssignedAt).Minutes())
	}
	if len(minutes) == 0 {
		return s.cfg.NoHistoryScore
	}

	avg := stat.Mean(minutes, nil)
	if math.IsNaN(avg) {
		return s.cfg.NoHistoryScore
	}
	return bandScore(s.cfg.ResponseBands, avg, s.cfg.ResponseFloorScore)
}

func (s *Scorer) scoreTypeMatch(category models.IncidentCategory, authority models.AuthorityType) float64 {
	if perfect, ok := s.cfg.PerfectMatch[category]; ok && perfect == authority {
		return s.cfg.TypeMatchPerfect
	}
	for _, t := range s.cfg.TypesFor(category) {
		if t == authority {
			return s.cfg.TypeMatchEligible
		}
	}
	return s.cfg.TypeMatchOther
}
