package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/incident_dispatch/internal/models"
	"github.com/shenikar/incident_dispatch/internal/service"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AssignmentRepository struct {
	db          *pgxpool.Pool
	cache       incidentCache
	lockTimeout time.Duration
	logger      *logrus.Logger
}

func NewAssignmentRepository(db *pgxpool.Pool, redisClient *redis.Client, lockTimeout time.Duration, logger *logrus.Logger) service.AssignmentRepository {
	return &AssignmentRepository{
		db:          db,
		cache:       incidentCache{redisClient: redisClient},
		lockTimeout: lockTimeout,
		logger:      logger,
	}
}

const assignmentColumns = `
	id, incident_id, authority_id, unit_rank, status, distance_km, estimated_arrival_min,
	notes, assigned_at, arrived_at, resolved_at, updated_at`

// HasActiveAssignment проверяет, есть ли у инцидента назначение в нетерминальном статусе
func (r *AssignmentRepository) HasActiveAssignment(ctx context.Context, incidentID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM assignments
			WHERE incident_id = $1 AND status NOT IN ('resolved', 'cancelled')
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, incidentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check active assignments: %w", err)
	}
	return exists, nil
}

// CreateAssignments сохраняет назначения, хронику и статус инцидента в одной транзакции
func (r *AssignmentRepository) CreateAssignments(ctx context.Context, incident *models.Incident, assignments []*models.Assignment, updates []*models.IncidentUpdate) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, a := range assignments {
			query := `
				INSERT INTO assignments (id, incident_id, authority_id, unit_rank, status, distance_km,
					estimated_arrival_min, notes, assigned_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
			`
			if _, err := tx.Exec(ctx, query,
				a.ID,
				a.IncidentID,
				a.AuthorityID,
				a.UnitRank,
				a.Status,
				a.DistanceKM,
				a.EstimatedArrivalMin,
				a.Notes,
				a.AssignedAt,
				a.UpdatedAt,
			); err != nil {
				return fmt.Errorf("failed to insert assignment: %w", mapError(err))
			}
		}
		for _, u := range updates {
			if err := insertUpdate(ctx, tx, u); err != nil {
				return err
			}
		}

		query := `UPDATE incidents SET status = $1, updated_at = $2 WHERE id = $3;`
		cmdTag, err := tx.Exec(ctx, query, incident.Status, incident.UpdatedAt, incident.ID)
		if err != nil {
			return fmt.Errorf("failed to update incident status: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("incident with id %s: %w", incident.ID, models.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return mapError(err)
	}

	r.invalidate(ctx, incident.ID)
	return nil
}

// GetByID возвращает назначение по UUID
func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	query := `SELECT` + assignmentColumns + ` FROM assignments WHERE id = $1;`
	a, err := scanAssignment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment %s: %w", id, mapError(err))
	}
	return a, nil
}

// RunInTx выполняет fn в транзакции с ограничением ожидания блокировок.
// Истечение lock_timeout превращается в models.ErrContention.
func (r *AssignmentRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx service.AssignmentTx) error) error {
	var touched []uuid.UUID
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		timeout := fmt.Sprintf("%dms", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true);`, timeout); err != nil {
			return fmt.Errorf("failed to set lock timeout: %w", err)
		}
		ptx := &pgAssignmentTx{tx: tx}
		if err := fn(ctx, ptx); err != nil {
			return err
		}
		touched = ptx.touched
		return nil
	})
	if err != nil {
		return mapError(err)
	}

	r.invalidate(ctx, touched...)
	return nil
}

func (r *AssignmentRepository) invalidate(ctx context.Context, ids ...uuid.UUID) {
	if err := r.cache.invalidate(ctx, ids...); err != nil {
		r.logger.WithError(err).Warn("Failed to invalidate incident cache")
	}
}

// pgAssignmentTx - операции смены статуса внутри открытой транзакции
type pgAssignmentTx struct {
	tx      pgx.Tx
	touched []uuid.UUID
}

func (t *pgAssignmentTx) LockAssignment(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	query := `SELECT` + assignmentColumns + ` FROM assignments WHERE id = $1 FOR UPDATE;`
	a, err := scanAssignment(t.tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to lock assignment %s: %w", id, mapError(err))
	}
	return a, nil
}

func (t *pgAssignmentTx) SaveAssignment(ctx context.Context, a *models.Assignment) error {
	query := `
		UPDATE assignments SET
			status = $1,
			notes = $2,
			arrived_at = $3,
			resolved_at = $4,
			updated_at = $5
		WHERE id = $6;
	`
	cmdTag, err := t.tx.Exec(ctx, query, a.Status, a.Notes, a.ArrivedAt, a.ResolvedAt, a.UpdatedAt, a.ID)
	if err != nil {
		return fmt.Errorf("failed to save assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("assignment with id %s: %w", a.ID, models.ErrNotFound)
	}
	return nil
}

func (t *pgAssignmentTx) AuthorityName(ctx context.Context, id uuid.UUID) (string, error) {
	var name string
	err := t.tx.QueryRow(ctx, `SELECT organization_name FROM authorities WHERE id = $1;`, id).Scan(&name)
	if err != nil {
		return "", fmt.Errorf("failed to get authority %s: %w", id, mapError(err))
	}
	return name, nil
}

func (t *pgAssignmentTx) LockIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT` + incidentColumns + ` FROM incidents WHERE id = $1 FOR UPDATE;`
	incident, err := scanIncident(t.tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to lock incident %s: %w", id, mapError(err))
	}
	return incident, nil
}

// MarkIncidentResolved закрывает инцидент; время закрытия проставляется один раз
func (t *pgAssignmentTx) MarkIncidentResolved(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE incidents SET
			status = 'resolved',
			resolved_at = COALESCE(resolved_at, $1),
			updated_at = $1
		WHERE id = $2;
	`
	cmdTag, err := t.tx.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to resolve incident: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
	}
	t.touched = append(t.touched, id)
	return nil
}

func (t *pgAssignmentTx) LockReporter(ctx context.Context, id uuid.UUID) (*models.Reporter, error) {
	query := `
		SELECT id, verified_reports, reputation_score::text
		FROM reporters
		WHERE id = $1
		FOR UPDATE;
	`
	var (
		r     models.Reporter
		score string
	)
	if err := t.tx.QueryRow(ctx, query, id).Scan(&r.ID, &r.VerifiedReports, &score); err != nil {
		return nil, fmt.Errorf("failed to lock reporter %s: %w", id, mapError(err))
	}
	parsed, err := decimal.NewFromString(score)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reputation score %q: %w", score, err)
	}
	r.ReputationScore = parsed
	return &r, nil
}

func (t *pgAssignmentTx) SaveReporter(ctx context.Context, r *models.Reporter) error {
	query := `
		UPDATE reporters SET
			verified_reports = $1,
			reputation_score = $2::numeric,
			updated_at = NOW()
		WHERE id = $3;
	`
	cmdTag, err := t.tx.Exec(ctx, query, r.VerifiedReports, r.ReputationScore.StringFixed(2), r.ID)
	if err != nil {
		return fmt.Errorf("failed to save reporter: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("reporter with id %s: %w", r.ID, models.ErrNotFound)
	}
	return nil
}

func (t *pgAssignmentTx) AddUpdate(ctx context.Context, u *models.IncidentUpdate) error {
	return insertUpdate(ctx, t.tx, u)
}

func insertUpdate(ctx context.Context, tx pgx.Tx, u *models.IncidentUpdate) error {
	query := `
		INSERT INTO incident_updates (id, incident_id, assignment_id, updated_by, update_type,
			old_status, new_status, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		u.ID,
		u.IncidentID,
		u.AssignmentID,
		u.UpdatedBy,
		u.Type,
		u.OldStatus,
		u.NewStatus,
		u.Message,
		u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert incident update: %w", mapError(err))
	}
	return nil
}

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	a := &models.Assignment{}
	err := row.Scan(
		&a.ID,
		&a.IncidentID,
		&a.AuthorityID,
		&a.UnitRank,
		&a.Status,
		&a.DistanceKM,
		&a.EstimatedArrivalMin,
		&a.Notes,
		&a.AssignedAt,
		&a.ArrivedAt,
		&a.ResolvedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}
