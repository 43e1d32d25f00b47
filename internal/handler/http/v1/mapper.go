package v1

import (
	"github.com/google/uuid"
	"github.com/shenikar/incident_dispatch/internal/models"
	"github.com/shenikar/incident_dispatch/internal/routing"
)

// DTOToIncidentModel преобразует DTO сообщения в доменную модель.
// ReporterID уже проверен валидатором.
func DTOToIncidentModel(dto ReportIncidentRequest) *models.Incident {
	incident := &models.Incident{
		Category:    models.IncidentCategory(dto.Category),
		Severity:    models.Severity(dto.Severity),
		Description: dto.Description,
		Region:      dto.Region,
	}
	if dto.ReporterID != "" {
		if id, err := uuid.Parse(dto.ReporterID); err == nil {
			incident.ReporterID = &id
		}
	}
	if dto.Latitude != nil && dto.Longitude != nil {
		incident.Location = &models.Coordinates{Latitude: *dto.Latitude, Longitude: *dto.Longitude}
	}
	return incident
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) IncidentResponse {
	resp := IncidentResponse{
		ID:          model.ID,
		ReporterID:  model.ReporterID,
		Category:    string(model.Category),
		Severity:    string(model.Severity),
		Status:      string(model.Status),
		Description: model.Description,
		Region:      model.Region,
		ResolvedAt:  model.ResolvedAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if model.Location != nil {
		lat, lon := model.Location.Latitude, model.Location.Longitude
		resp.Latitude, resp.Longitude = &lat, &lon
	}
	return resp
}

func ModelToAssignmentResponse(a *models.Assignment) *AssignmentResponse {
	return &AssignmentResponse{
		ID:                  a.ID,
		IncidentID:          a.IncidentID,
		AuthorityID:         a.AuthorityID,
		UnitRank:            a.UnitRank,
		Status:              string(a.Status),
		DistanceKM:          a.DistanceKM,
		EstimatedArrivalMin: a.EstimatedArrivalMin,
		Notes:               a.Notes,
		AssignedAt:          a.AssignedAt,
		ArrivedAt:           a.ArrivedAt,
		ResolvedAt:          a.ResolvedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// ModelsToAssignmentResponses преобразует слайс назначений в слайс DTO
func ModelsToAssignmentResponses(assignments []*models.Assignment) []*AssignmentResponse {
	responses := make([]*AssignmentResponse, len(assignments))
	for i, a := range assignments {
		responses[i] = ModelToAssignmentResponse(a)
	}
	return responses
}

func MatchToCandidateResponse(m routing.Match) *CandidateResponse {
	return &CandidateResponse{
		AuthorityID:      m.Candidate.ID,
		OrganizationName: m.Candidate.OrganizationName,
		AuthorityType:    string(m.Candidate.Type),
		Region:           m.Candidate.Region,
		Score: ScoreBreakdown{
			DistanceScore:     m.Score.DistanceScore,
			WorkloadScore:     m.Score.WorkloadScore,
			ResponseTimeScore: m.Score.ResponseScore,
			TypeMatchScore:    m.Score.TypeScore,
			TotalScore:        m.Score.Total,
			DistanceKM:        m.Score.DistanceKM,
			CurrentWorkload:   m.Score.CurrentWorkload,
			ETAMinutes:        m.Score.ETAMinutes,
			CriticalBoost:     m.Score.CriticalBoost,
			RejectedReason:    m.Score.RejectedReason,
		},
	}
}

func MatchesToCandidateResponses(matches []routing.Match) []*CandidateResponse {
	responses := make([]*CandidateResponse, len(matches))
	for i, m := range matches {
		responses[i] = MatchToCandidateResponse(m)
	}
	return responses
}
