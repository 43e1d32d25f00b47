package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/incident_dispatch/internal/models"
	"github.com/shenikar/incident_dispatch/internal/routing"
)

// AuthorityRepository отдает кандидатов для маршрутизации вместе с загрузкой и историей выездов
type AuthorityRepository struct {
	db            *pgxpool.Pool
	historyWindow time.Duration
	now           func() time.Time
}

func NewAuthorityRepository(db *pgxpool.Pool, historyWindow time.Duration) routing.CandidateRepository {
	return &AuthorityRepository{
		db:            db,
		historyWindow: historyWindow,
		now:           time.Now,
	}
}

// ListApproved возвращает одобренные активные подразделения указанных типов.
// Пустой region - без ограничения по региону.
func (r *AuthorityRepository) ListApproved(ctx context.Context, types []models.AuthorityType, region string) ([]*models.AuthorityCandidate, error) {
	if len(types) == 0 {
		return []*models.AuthorityCandidate{}, nil
	}

	query := `
		SELECT
			a.id,
			a.user_id,
			a.organization_name,
			a.authority_type,
			a.approval_status,
			a.account_active,
			a.region,
			a.station_latitude,
			a.station_longitude,
			(
				SELECT COUNT(*)
				FROM assignments s
				WHERE s.authority_id = a.id AND s.status = ANY($3::text[])
			) AS active_assignments
		FROM authorities a
		WHERE a.approval_status = 'approved'
			AND a.account_active
			AND a.authority_type = ANY($1::text[])
			AND ($2 = '' OR a.region = $2)
		ORDER BY a.id;
	`
	rows, err := r.db.Query(ctx, query, authorityTypes(types), region, workloadStatuses())
	if err != nil {
		return nil, fmt.Errorf("failed to list approved authorities: %w", err)
	}
	defer rows.Close()

	candidates := make([]*models.AuthorityCandidate, 0)
	byID := make(map[uuid.UUID]*models.AuthorityCandidate)
	ids := make([]string, 0)
	for rows.Next() {
		c := &models.AuthorityCandidate{}
		var lat, lon *float64
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.OrganizationName,
			&c.Type,
			&c.ApprovalStatus,
			&c.AccountActive,
			&c.Region,
			&lat,
			&lon,
			&c.ActiveAssignments,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan authority row: %w", err)
		}
		if lat != nil && lon != nil {
			c.Station = &models.Coordinates{Latitude: *lat, Longitude: *lon}
		}
		candidates = append(candidates, c)
		byID[c.ID] = c
		ids = append(ids, c.ID.String())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error authority iteration: %w", err)
	}

	if len(ids) == 0 {
		return candidates, nil
	}
	if err := r.loadHistory(ctx, ids, byID); err != nil {
		return nil, err
	}
	return candidates, nil
}

// loadHistory подтягивает закрытые за окно выезды одним запросом на всех кандидатов
func (r *AuthorityRepository) loadHistory(ctx context.Context, ids []string, byID map[uuid.UUID]*models.AuthorityCandidate) error {
	query := `
		SELECT authority_id, assigned_at, resolved_at
		FROM assignments
		WHERE authority_id = ANY($1::uuid[])
			AND status = 'resolved'
			AND resolved_at IS NOT NULL
			AND assigned_at >= $2;
	`
	since := r.now().Add(-r.historyWindow)
	rows, err := r.db.Query(ctx, query, ids, since)
	if err != nil {
		return fmt.Errorf("failed to load resolution history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			authorityID uuid.UUID
			rec         models.ResolvedRecord
		)
		if err := rows.Scan(&authorityID, &rec.AssignedAt, &rec.ResolvedAt); err != nil {
			return fmt.Errorf("failed to scan history row: %w", err)
		}
		if c, ok := byID[authorityID]; ok {
			c.ResolvedHistory = append(c.ResolvedHistory, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error history iteration: %w", err)
	}
	return nil
}

func authorityTypes(types []models.AuthorityType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func workloadStatuses() []string {
	out := make([]string, len(models.WorkloadStatuses))
	for i, s := range models.WorkloadStatuses {
		out[i] = string(s)
	}
	return out
}
