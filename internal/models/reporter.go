package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reporter - репутационная запись автора сообщения о происшествии
type Reporter struct {
	ID              uuid.UUID       `json:"id"`
	VerifiedReports int             `json:"verified_reports"`
	ReputationScore decimal.Decimal `json:"reputation_score"`
}
