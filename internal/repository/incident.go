package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/incident_dispatch/internal/models"
	"github.com/shenikar/incident_dispatch/internal/service"
	"github.com/sirupsen/logrus"
)

type IncidentRepository struct {
	db     *pgxpool.Pool
	cache  incidentCache
	logger *logrus.Logger
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client, logger *logrus.Logger) service.IncidentRepository {
	return &IncidentRepository{
		db:     db,
		cache:  incidentCache{redisClient: redisClient},
		logger: logger,
	}
}

const incidentColumns = `
	id, reporter_id, category, severity, status, description,
	latitude, longitude, region, resolved_at, created_at, updated_at`

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	var lat, lon *float64
	if incident.Location != nil {
		lat, lon = &incident.Location.Latitude, &incident.Location.Longitude
	}
	query := `
		INSERT INTO incidents (id, reporter_id, category, severity, status, description, latitude, longitude, region, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.ID,
		incident.ReporterID,
		incident.Category,
		incident.Severity,
		incident.Status,
		incident.Description,
		lat,
		lon,
		incident.Region,
		incident.CreatedAt,
	).Scan(&incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", mapError(err))
	}
	return nil
}

// GetByID возвращает инцидент по UUID, сначала проверяя кеш
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := r.logger.WithField("incident_id", id)

	cached, err := r.cache.get(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Incident cache read failed, falling back to database")
	}
	if cached != nil {
		return cached, nil
	}

	query := `SELECT` + incidentColumns + ` FROM incidents WHERE id = $1;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get incident %s: %w", id, mapError(err))
	}

	if err := r.cache.set(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	return incident, nil
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	var lat, lon *float64
	err := row.Scan(
		&incident.ID,
		&incident.ReporterID,
		&incident.Category,
		&incident.Severity,
		&incident.Status,
		&incident.Description,
		&lat,
		&lon,
		&incident.Region,
		&incident.ResolvedAt,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lon != nil {
		incident.Location = &models.Coordinates{Latitude: *lat, Longitude: *lon}
	}
	return incident, nil
}
