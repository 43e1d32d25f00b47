package routing

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/incident_dispatch/internal/models"
)

// Match - кандидат вместе с его оценкой
type Match struct {
	Candidate *models.AuthorityCandidate `json:"candidate"`
	Score     Score                      `json:"score"`
}

// Router выбирает подразделения для инцидента: фильтр -> оценка -> выбор.
// Только читает данные, поэтому не требует блокировок.
type Router struct {
	filter *EligibilityFilter
	scorer *Scorer
	now    func() time.Time
}

// Option настраивает Router
type Option func(*Router)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(r *Router) {
		r.now = now
	}
}

func NewRouter(repo CandidateRepository, cfg Config, opts ...Option) (*Router, error) {
	filter, err := NewEligibilityFilter(repo, cfg)
	if err != nil {
		return nil, err
	}
	scorer, err := NewScorer(cfg)
	if err != nil {
		return nil, err
	}
	r := &Router{filter: filter, scorer: scorer, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Rank оценивает всех допущенных кандидатов.
// Пригодные идут первыми в порядке выбора, отклоненные за ними.
func (r *Router) Rank(ctx context.Context, incident *models.Incident) ([]Match, error) {
	if err := validateIncident(incident); err != nil {
		return nil, err
	}
	candidates, err := r.filter.Eligible(ctx, incident, nil)
	if err != nil {
		return nil, err
	}

	now := r.now()
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, Match{Candidate: c, Score: r.scorer.Score(incident, c, now)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		vi, vj := matches[i].Score.Viable(), matches[j].Score.Viable()
		if vi != vj {
			return vi
		}
		return better(matches[i], matches[j])
	})
	return matches, nil
}

// FindBest возвращает лучшего кандидата или nil, если подходящих нет.
// Отсутствие кандидата - штатный результат, а не ошибка.
func (r *Router) FindBest(ctx context.Context, incident *models.Incident) (*Match, error) {
	if err := validateIncident(incident); err != nil {
		return nil, err
	}
	candidates, err := r.filter.Eligible(ctx, incident, nil)
	if err != nil {
		return nil, err
	}
	return r.pick(incident, candidates, r.now()), nil
}

// AssignMultiple жадно выбирает до count разных подразделений.
// На каждом шаге уже выбранные исключаются до применения региональной политики, поэтому
// одно подразделение не может попасть в результат дважды. Может вернуть меньше count.
func (r *Router) AssignMultiple(ctx context.Context, incident *models.Incident, count int) ([]Match, error) {
	if err := validateIncident(incident); err != nil {
		return nil, err
	}

	if count <= 0 {
		return []Match{}, nil
	}

	now := r.now()
	chosen := make([]Match, 0, count)
	exclude := make(map[uuid.UUID]struct{}, count)

	for len(chosen) < count {
		candidates, err := r.filter.Eligible(ctx, incident, exclude)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			break
		}
		best := r.pick(incident, candidates, now)
		if best == nil {
			break
		}
		chosen = append(chosen, *best)
		exclude[best.Candidate.ID] = struct{}{}
	}
	return chosen, nil
}

func (r *Router) pick(incident *models.Incident, candidates []*models.AuthorityCandidate, now time.Time) *Match {
	var best *Match
	for _, c := range candidates {
		m := Match{Candidate: c, Score: r.scorer.Score(incident, c, now)}
		if !m.Score.Viable() {
			continue
		}
		if best == nil || better(m, *best) {
			best = &m
		}
	}
	return best
}

// better задает детерминированный порядок: больший итог, затем известное расстояние раньше
// неизвестного, затем меньшее расстояние, меньшая загрузка и меньший ID.
func better(a, b Match) bool {
	if a.Score.Total != b.Score.Total {
		return a.Score.Total > b.Score.Total
	}
	da, db := a.Score.DistanceKM, b.Score.DistanceKM
	switch {
	case da != nil && db == nil:
		return true
	case da == nil && db != nil:
		return false
	case da != nil && db != nil && *da != *db:
		return *da < *db
	}
	if a.Score.CurrentWorkload != b.Score.CurrentWorkload {
		return a.Score.CurrentWorkload < b.Score.CurrentWorkload
	}
	return bytes.Compare(a.Candidate.ID[:], b.Candidate.ID[:]) < 0
}

func validateIncident(incident *models.Incident) error {
	if incident == nil {
		return fmt.Errorf("%w: incident is nil", models.ErrInvalidIncident)
	}
	if !models.ValidCategory(incident.Category) {
		return fmt.Errorf("%w: unknown category %q", models.ErrInvalidIncident, incident.Category)
	}
	if !models.ValidSeverity(incident.Severity) {
		return fmt.Errorf("%w: unknown severity %q", models.ErrInvalidIncident, incident.Severity)
	}
	return nil
}
