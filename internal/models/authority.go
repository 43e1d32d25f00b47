package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthorityType - специализация реагирующего подразделения
type AuthorityType string

const (
	AuthorityPolice    AuthorityType = "police"
	AuthorityFire      AuthorityType = "fire"
	AuthorityAmbulance AuthorityType = "ambulance"
	AuthorityHospital  AuthorityType = "hospital"
)

const ApprovalApproved = "approved"

// ResolvedRecord - одно закрытое назначение из истории подразделения
type ResolvedRecord struct {
	AssignedAt time.Time `json:"assigned_at"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// AuthorityCandidate - подразделение-кандидат вместе с оперативными метриками.
// ActiveAssignments и ResolvedHistory заполняются репозиторием заранее.
type AuthorityCandidate struct {
	ID               uuid.UUID     `json:"id"`
	UserID           uuid.UUID     `json:"user_id"`
	OrganizationName string        `json:"organization_name"`
	Type             AuthorityType `json:"authority_type"`
	ApprovalStatus   string        `json:"approval_status"`
	AccountActive    bool          `json:"account_active"`
	Region           string        `json:"region"`
	Station          *Coordinates  `json:"station,omitempty"`

	ActiveAssignments int              `json:"active_assignments"`
	ResolvedHistory   []ResolvedRecord `json:"resolved_history,omitempty"`
}

// CanRespond - одобрено и владелец учетной записи активен
func (c *AuthorityCandidate) CanRespond() bool {
	return c.ApprovalStatus == ApprovalApproved && c.AccountActive
}
