package v1

import (
	"time"

	"github.com/google/uuid"
)

// ReportIncidentRequest DTO для сообщения об инциденте
// @Description DTO для сообщения об инциденте. Координаты передаются обе или ни одной.
type ReportIncidentRequest struct {
	ReporterID  string   `json:"reporter_id,omitempty" validate:"omitempty,uuid"`
	Category    string   `json:"category" validate:"required,oneof=fire medical crime accident disaster other"`
	Severity    string   `json:"severity" validate:"required,oneof=low medium high critical"`
	Description string   `json:"description,omitempty" validate:"max=2000"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Region      string   `json:"region,omitempty" validate:"max=100"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID          uuid.UUID  `json:"id"`
	ReporterID  *uuid.UUID `json:"reporter_id,omitempty"`
	Category    string     `json:"category"`
	Severity    string     `json:"severity"`
	Status      string     `json:"status"`
	Description string     `json:"description,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Region      string     `json:"region,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ReportIncidentResponse DTO с инцидентом и назначениями автодиспетчеризации
// @Description DTO с инцидентом и назначениями автодиспетчеризации
type ReportIncidentResponse struct {
	Incident    IncidentResponse      `json:"incident"`
	Dispatched  bool                  `json:"dispatched"`
	Assignments []*AssignmentResponse `json:"assignments"`
}

// ScoreBreakdown DTO с разбором оценки подразделения
// @Description DTO с разбором оценки подразделения
type ScoreBreakdown struct {
	DistanceScore     float64  `json:"distance_score"`
	WorkloadScore     float64  `json:"workload_score"`
	ResponseTimeScore float64  `json:"response_time_score"`
	TypeMatchScore    float64  `json:"type_match_score"`
	TotalScore        float64  `json:"total_score"`
	DistanceKM        *float64 `json:"distance_km"`
	CurrentWorkload   int      `json:"current_workload"`
	ETAMinutes        *int     `json:"eta_minutes"`
	CriticalBoost     bool     `json:"critical_boost"`
	RejectedReason    string   `json:"rejected_reason,omitempty"`
}

// CandidateResponse DTO подразделения с оценкой
// @Description DTO подразделения с оценкой
type CandidateResponse struct {
	AuthorityID      uuid.UUID      `json:"authority_id"`
	OrganizationName string         `json:"organization_name"`
	AuthorityType    string         `json:"authority_type"`
	Region           string         `json:"region"`
	Score            ScoreBreakdown `json:"score"`
}

// RecommendationResponse DTO с рекомендуемым подразделением
// @Description DTO с рекомендуемым подразделением. found=false - подходящих нет.
type RecommendationResponse struct {
	Found     bool               `json:"found"`
	Message   string             `json:"message,omitempty"`
	Candidate *CandidateResponse `json:"candidate,omitempty"`
}

// DispatchRequest DTO для назначения подразделений
// @Description DTO для назначения подразделений. По умолчанию одно.
type DispatchRequest struct {
	UnitCount int `json:"unit_count" validate:"omitempty,min=1"`
}

// DispatchResponse DTO с результатом назначения
// @Description DTO с результатом назначения
type DispatchResponse struct {
	Found       bool                  `json:"found"`
	Message     string                `json:"message,omitempty"`
	Assignments []*AssignmentResponse `json:"assignments"`
}

// AssignmentResponse DTO назначения
// @Description DTO назначения
type AssignmentResponse struct {
	ID                  uuid.UUID  `json:"id"`
	IncidentID          uuid.UUID  `json:"incident_id"`
	AuthorityID         uuid.UUID  `json:"authority_id"`
	UnitRank            int        `json:"unit_rank"`
	Status              string     `json:"status"`
	DistanceKM          *float64   `json:"distance_km"`
	EstimatedArrivalMin *int       `json:"estimated_arrival_min"`
	Notes               string     `json:"notes,omitempty"`
	AssignedAt          time.Time  `json:"assigned_at"`
	ArrivedAt           *time.Time `json:"arrived_at,omitempty"`
	ResolvedAt          *time.Time `json:"resolved_at,omitempty"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// StatusUpdateRequest DTO для смены статуса назначения
// @Description DTO для смены статуса назначения
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes,omitempty" validate:"max=1000"`
}
