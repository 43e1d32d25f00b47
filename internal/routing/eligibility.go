package routing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/incident_dispatch/internal/models"
)

// CandidateRepository отдает одобренные подразделения с заранее посчитанной загрузкой и историей.
// Пустой region означает поиск без ограничения по региону.
type CandidateRepository interface {
	ListApproved(ctx context.Context, types []models.AuthorityType, region string) ([]*models.AuthorityCandidate, error)
}

// EligibilityFilter сужает выборку репозитория до подразделений, которые могут выехать на инцидент
type EligibilityFilter struct {
	repo CandidateRepository
	cfg  Config
}

func NewEligibilityFilter(repo CandidateRepository, cfg Config) (*EligibilityFilter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &EligibilityFilter{repo: repo, cfg: cfg.clone()}, nil
}

// Eligible возвращает кандидатов для инцидента без исключенных.
// Сначала ищет в регионе инцидента, при пустом результате расширяет поиск на все регионы.
func (f *EligibilityFilter) Eligible(ctx context.Context, incident *models.Incident, exclude map[uuid.UUID]struct{}) ([]*models.AuthorityCandidate, error) {
	types := f.cfg.TypesFor(incident.Category)

	if incident.Region != "" {
		regional, err := f.repo.ListApproved(ctx, types, incident.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to list regional candidates: %w", err)
		}
		regional = f.keep(regional, types, incident.Region, exclude)
		if len(regional) > 0 {
			return regional, nil
		}
	}

	all, err := f.repo.ListApproved(ctx, types, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return f.keep(all, types, "", exclude), nil
}

// keep повторно применяет критерии допуска, чтобы не зависеть от точности фильтрации в хранилище
func (f *EligibilityFilter) keep(candidates []*models.AuthorityCandidate, types []models.AuthorityType, region string, exclude map[uuid.UUID]struct{}) []*models.AuthorityCandidate {
	allowed := make(map[models.AuthorityType]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(candidates))
	out := make([]*models.AuthorityCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || !c.CanRespond() {
			continue
		}
		if _, ok := allowed[c.Type]; !ok {
			continue
		}
		if region != "" && c.Region != region {
			continue
		}
		if _, ok := exclude[c.ID]; ok {
			continue
		}
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
