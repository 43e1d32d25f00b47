package routing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/incident_dispatch/internal/models"
)

var testNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

// fakeCandidates - репозиторий кандидатов в памяти, фильтрует как SQL-реализация
type fakeCandidates struct {
	candidates []*models.AuthorityCandidate
	regions    []string
	err        error
}

func (f *fakeCandidates) ListApproved(_ context.Context, types []models.AuthorityType, region string) ([]*models.AuthorityCandidate, error) {
	f.regions = append(f.regions, region)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.AuthorityCandidate, 0)
	for _, c := range f.candidates {
		if !c.CanRespond() {
			continue
		}
		if region != "" && c.Region != region {
			continue
		}
		for _, t := range types {
			if c.Type == t {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func newIncident(category models.IncidentCategory, severity models.Severity) *models.Incident {
	return &models.Incident{
		ID:       uuid.New(),
		Category: category,
		Severity: severity,
		Status:   models.IncidentVerified,
		Location: &models.Coordinates{Latitude: 5.600, Longitude: -0.200},
		Region:   "Greater Accra",
	}
}

// stationNorth размещает станцию к северу от инцидента примерно на km километров
func stationNorth(km float64) *models.Coordinates {
	return &models.Coordinates{Latitude: 5.600 + km/111.195, Longitude: -0.200}
}

func newCandidate(t models.AuthorityType, km float64, active int) *models.AuthorityCandidate {
	return &models.AuthorityCandidate{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		OrganizationName:  string(t) + " unit",
		Type:              t,
		ApprovalStatus:    models.ApprovalApproved,
		AccountActive:     true,
		Region:            "Greater Accra",
		Station:           stationNorth(km),
		ActiveAssignments: active,
	}
}

func history(minutes ...int) []models.ResolvedRecord {
	out := make([]models.ResolvedRecord, 0, len(minutes))
	for i, m := range minutes {
		assigned := testNow.Add(-time.Duration(i+1) * 24 * time.Hour)
		out = append(out, models.ResolvedRecord{
			AssignedAt: assigned,
			ResolvedAt: assigned.Add(time.Duration(m) * time.Minute),
		})
	}
	return out
}

func newTestRouter(repo CandidateRepository, cfg Config) *Router {
	r, err := NewRouter(repo, cfg, WithClock(func() time.Time { return testNow }))
	if err != nil {
		panic(err)
	}
	return r
}
