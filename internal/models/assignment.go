package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AssignmentStatus - состояние назначения подразделения на инцидент
type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentEnRoute    AssignmentStatus = "en_route"
	AssignmentArrived    AssignmentStatus = "arrived"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentResolved   AssignmentStatus = "resolved"
	AssignmentCancelled  AssignmentStatus = "cancelled"
)

// AssignmentStatuses - полный фиксированный перечень статусов в порядке жизненного цикла
var AssignmentStatuses = []AssignmentStatus{
	AssignmentAssigned,
	AssignmentEnRoute,
	AssignmentArrived,
	AssignmentInProgress,
	AssignmentResolved,
	AssignmentCancelled,
}

// WorkloadStatuses - статусы, которые учитываются в текущей загрузке подразделения
var WorkloadStatuses = []AssignmentStatus{
	AssignmentAssigned,
	AssignmentEnRoute,
	AssignmentInProgress,
}

// IsTerminal - из resolved и cancelled переходов нет
func (s AssignmentStatus) IsTerminal() bool {
	return s == AssignmentResolved || s == AssignmentCancelled
}

// ParseAssignmentStatus разбирает статус из внешнего ввода
func ParseAssignmentStatus(raw string) (AssignmentStatus, error) {
	for _, s := range AssignmentStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of (%s)", ErrInvalidStatus, raw, ValidStatusList())
}

// ValidStatusList возвращает перечень допустимых статусов через запятую
func ValidStatusList() string {
	names := make([]string, len(AssignmentStatuses))
	for i, s := range AssignmentStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

type Assignment struct {
	ID                  uuid.UUID        `json:"id"`
	IncidentID          uuid.UUID        `json:"incident_id"`
	AuthorityID         uuid.UUID        `json:"authority_id"`
	UnitRank            int              `json:"unit_rank"`
	Status              AssignmentStatus `json:"status"`
	DistanceKM          *float64         `json:"distance_km,omitempty"`
	EstimatedArrivalMin *int             `json:"estimated_arrival_minutes,omitempty"`
	Notes               string           `json:"notes"`
	AssignedAt          time.Time        `json:"assigned_at"`
	ArrivedAt           *time.Time       `json:"arrived_at,omitempty"`
	ResolvedAt          *time.Time       `json:"resolved_at,omitempty"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// UpdateType - тип записи в хронике инцидента
type UpdateType string

const (
	UpdateStatusChange UpdateType = "status_change"
	UpdateAssignment   UpdateType = "assignment"
	UpdateComment      UpdateType = "comment"
)

// IncidentUpdate - запись хроники инцидента (append-only)
type IncidentUpdate struct {
	ID           uuid.UUID  `json:"id"`
	IncidentID   uuid.UUID  `json:"incident_id"`
	AssignmentID *uuid.UUID `json:"assignment_id,omitempty"`
	UpdatedBy    *uuid.UUID `json:"updated_by,omitempty"`
	Type         UpdateType `json:"update_type"`
	OldStatus    string     `json:"old_status"`
	NewStatus    string     `json:"new_status"`
	Message      string     `json:"message"`
	CreatedAt    time.Time  `json:"created_at"`
}
