package ledger

import (
	"github.com/shenikar/incident_dispatch/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// ReputationIncrement - прибавка к репутации за подтвержденное сообщение
	ReputationIncrement = decimal.RequireFromString("0.05")
	// ReputationCap - верхняя граница репутации
	ReputationCap = decimal.NewFromInt(1)
)

// CreditResolvedReport засчитывает автору решенное происшествие
func CreditResolvedReport(r *models.Reporter) {
	r.VerifiedReports++
	r.ReputationScore = decimal.Min(r.ReputationScore.Add(ReputationIncrement), ReputationCap)
}
