package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentCategory - тип происшествия
type IncidentCategory string

const (
	CategoryFire     IncidentCategory = "fire"
	CategoryMedical  IncidentCategory = "medical"
	CategoryCrime    IncidentCategory = "crime"
	CategoryAccident IncidentCategory = "accident"
	CategoryDisaster IncidentCategory = "disaster"
	CategoryOther    IncidentCategory = "other"
)

// Severity - степень серьезности происшествия
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IncidentStatus - статус инцидента
type IncidentStatus string

const (
	IncidentPending    IncidentStatus = "pending"
	IncidentVerified   IncidentStatus = "verified"
	IncidentAssigned   IncidentStatus = "assigned"
	IncidentInProgress IncidentStatus = "in_progress"
	IncidentResolved   IncidentStatus = "resolved"
	IncidentRejected   IncidentStatus = "rejected"
)

// Coordinates - точка в десятичных градусах.
// Отсутствие координат выражается nil-указателем, поэтому широта и долгота всегда есть обе или нет ни одной.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Incident struct {
	ID          uuid.UUID        `json:"id"`
	ReporterID  *uuid.UUID       `json:"reporter_id,omitempty"`
	Category    IncidentCategory `json:"category"`
	Severity    Severity         `json:"severity"`
	Status      IncidentStatus   `json:"status"`
	Description string           `json:"description"`
	Location    *Coordinates     `json:"location,omitempty"`
	Region      string           `json:"region"`
	ResolvedAt  *time.Time       `json:"resolved_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// IsCritical сообщает, требует ли инцидент ускоренного реагирования
func (i *Incident) IsCritical() bool {
	return i.Severity == SeverityCritical
}

// ValidCategory проверяет, входит ли категория в фиксированный перечень
func ValidCategory(c IncidentCategory) bool {
	switch c {
	case CategoryFire, CategoryMedical, CategoryCrime, CategoryAccident, CategoryDisaster, CategoryOther:
		return true
	}
	return false
}

// ValidSeverity проверяет, входит ли серьезность в фиксированный перечень
func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
