package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/incident_dispatch/internal/config"
	"github.com/shenikar/incident_dispatch/internal/ledger"
	"github.com/shenikar/incident_dispatch/internal/metrics"
	"github.com/shenikar/incident_dispatch/internal/models"
	"github.com/shenikar/incident_dispatch/internal/notification"
	"github.com/shenikar/incident_dispatch/internal/routing"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/shenikar/incident_dispatch/internal/service")

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
}

// AssignmentRepository определяет контракт для хранения назначений
type AssignmentRepository interface {
	// HasActiveAssignment - есть ли у инцидента назначение в нетерминальном статусе
	HasActiveAssignment(ctx context.Context, incidentID uuid.UUID) (bool, error)
	// CreateAssignments атомарно сохраняет назначения, записи хроники и переводит инцидент в assigned.
	// Конфликт по активному слоту возвращает models.ErrAlreadyAssigned.
	CreateAssignments(ctx context.Context, incident *models.Incident, assignments []*models.Assignment, updates []*models.IncidentUpdate) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	// RunInTx выполняет fn в одной транзакции; ошибка fn откатывает все изменения
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx AssignmentTx) error) error
}

// AssignmentTx - операции внутри транзакции смены статуса. Lock* берут эксклюзивную блокировку строки.
type AssignmentTx interface {
	LockAssignment(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	SaveAssignment(ctx context.Context, a *models.Assignment) error
	AuthorityName(ctx context.Context, id uuid.UUID) (string, error)
	LockIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	MarkIncidentResolved(ctx context.Context, id uuid.UUID, at time.Time) error
	LockReporter(ctx context.Context, id uuid.UUID) (*models.Reporter, error)
	SaveReporter(ctx context.Context, r *models.Reporter) error
	AddUpdate(ctx context.Context, u *models.IncidentUpdate) error
}

// Router - выбор подразделений для инцидента
type Router interface {
	Rank(ctx context.Context, incident *models.Incident) ([]routing.Match, error)
	FindBest(ctx context.Context, incident *models.Incident) (*routing.Match, error)
	AssignMultiple(ctx context.Context, incident *models.Incident, count int) ([]routing.Match, error)
}

// DispatchService определяет контракт бизнес-логики диспетчеризации
type DispatchService interface {
	ReportIncident(ctx context.Context, incident *models.Incident) (*ReportResult, error)
	FindBestAuthority(ctx context.Context, incidentID uuid.UUID) (*routing.Match, error)
	RankAuthorities(ctx context.Context, incidentID uuid.UUID) ([]routing.Match, error)
	AutoAssign(ctx context.Context, incidentID uuid.UUID, unitCount int) ([]*models.Assignment, error)
	UpdateAssignmentStatus(ctx context.Context, req StatusUpdate) (*models.Assignment, error)
}

// ReportResult - сохраненный инцидент и назначения, созданные автодиспетчеризацией
type ReportResult struct {
	Incident    *models.Incident
	Assignments []*models.Assignment
}

// StatusUpdate - запрос на смену статуса назначения
type StatusUpdate struct {
	AssignmentID uuid.UUID
	Status       string
	ActorID      uuid.UUID
	Notes        string
}

type dispatchService struct {
	incidents   IncidentRepository
	assignments AssignmentRepository
	router      Router
	publisher   notification.Publisher
	metrics     *metrics.Metrics
	cfg         *config.Config
	logger      *logrus.Logger
	now         func() time.Time
}

// Option настраивает сервис
type Option func(*dispatchService)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(s *dispatchService) {
		s.now = now
	}
}

// WithMetrics включает учет метрик
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *dispatchService) {
		s.metrics = m
	}
}

func NewDispatchService(
	incidents IncidentRepository,
	assignments AssignmentRepository,
	router Router,
	publisher notification.Publisher,
	cfg *config.Config,
	logger *logrus.Logger,
	opts ...Option,
) DispatchService {
	s := &dispatchService{
		incidents:   incidents,
		assignments: assignments,
		router:      router,
		publisher:   publisher,
		cfg:         cfg,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReportIncident сохраняет новый инцидент и, если включено, сразу назначает одно подразделение
func (s *dispatchService) ReportIncident(ctx context.Context, incident *models.Incident) (*ReportResult, error) {
	ctx, span := tracer.Start(ctx, "DispatchService.ReportIncident")
	defer span.End()

	log := s.logger.WithFields(logrus.Fields{
		"service":  "dispatch",
		"method":   "ReportIncident",
		"category": incident.Category,
		"severity": incident.Severity,
	})
	log.Info("Attempting to report a new incident")

	if err := validateReport(incident); err != nil {
		log.WithError(err).Warn("Rejected malformed incident")
		return nil, failSpan(span, err)
	}

	now := s.now()
	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	incident.Status = models.IncidentPending
	incident.ResolvedAt = nil
	incident.CreatedAt = now
	incident.UpdatedAt = now

	if err := s.incidents.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, failSpan(span, fmt.Errorf("service: could not create incident: %w", err))
	}
	span.SetAttributes(attribute.String("incident.id", incident.ID.String()))
	log = log.WithField("incident_id", incident.ID)
	log.Info("Incident reported")

	result := &ReportResult{Incident: incident}
	if !s.cfg.DispatchAutoOnReport {
		return result, nil
	}

	assigned, err := s.dispatch(ctx, incident, 1)
	if err != nil {
		// инцидент уже сохранен, назначение можно повторить через AutoAssign
		log.WithError(err).Warn("Automatic dispatch failed, incident left pending")
		span.RecordError(err)
		return result, nil
	}
	result.Assignments = assigned
	return result, nil
}

// FindBestAuthority возвращает лучшее подразделение для инцидента или nil, если подходящих нет
func (s *dispatchService) FindBestAuthority(ctx context.Context, incidentID uuid.UUID) (*routing.Match, error) {
	ctx, span := tracer.Start(ctx, "DispatchService.FindBestAuthority",
		trace.WithAttributes(attribute.String("incident.id", incidentID.String())))
	defer span.End()

	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "FindBestAuthority",
		"incident_id": incidentID,
	})
	log.Info("Finding best authority")

	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident")
		return nil, failSpan(span, fmt.Errorf("service: could not get incident: %w", err))
	}

	start := time.Now()
	match, err := s.router.FindBest(ctx, incident)
	s.metrics.ObserveRouting("find_best", time.Since(start).Seconds())
	if err != nil {
		log.WithError(err).Error("Failed to select authority")
		return nil, failSpan(span, fmt.Errorf("service: could not select authority: %w", err))
	}

	if match == nil {
		s.metrics.NoCandidates()
		log.Info("No suitable authority found")
		return nil, nil
	}

	span.SetAttributes(
		attribute.String("authority.id", match.Candidate.ID.String()),
		attribute.Float64("score.total", match.Score.Total),
	)
	log.WithFields(logrus.Fields{
		"authority_id": match.Candidate.ID,
		"total_score":  match.Score.Total,
	}).Info("Best authority found")
	return match, nil
}

// RankAuthorities возвращает полный разбор оценок всех допущенных подразделений
func (s *dispatchService) RankAuthorities(ctx context.Context, incidentID uuid.UUID) ([]routing.Match, error) {
	ctx, span := tracer.Start(ctx, "DispatchService.RankAuthorities",
		trace.WithAttributes(attribute.String("incident.id", incidentID.String())))
	defer span.End()

	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "RankAuthorities",
		"incident_id": incidentID,
	})

	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident")
		return nil, failSpan(span, fmt.Errorf("service: could not get incident: %w", err))
	}

	start := time.Now()
	matches, err := s.router.Rank(ctx, incident)
	s.metrics.ObserveRouting("rank", time.Since(start).Seconds())
	if err != nil {
		log.WithError(err).Error("Failed to rank authorities")
		return nil, failSpan(span, fmt.Errorf("service: could not rank authorities: %w", err))
	}

	log.WithField("candidates", len(matches)).Info("Authorities ranked")
	return matches, nil
}

// AutoAssign назначает на инцидент до unitCount подразделений.
// Пустой результат без ошибки означает, что подходящих подразделений нет.
func (s *dispatchService) AutoAssign(ctx context.Context, incidentID uuid.UUID, unitCount int) ([]*models.Assignment, error) {
	ctx, span := tracer.Start(ctx, "DispatchService.AutoAssign",
		trace.WithAttributes(
			attribute.String("incident.id", incidentID.String()),
			attribute.Int("unit_count", unitCount),
		))
	defer span.End()

	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "AutoAssign",
		"incident_id": incidentID,
		"unit_count":  unitCount,
	})
	log.Info("Attempting to dispatch authorities")

	if unitCount < 1 || unitCount > s.cfg.DispatchMaxUnits {
		err := fmt.Errorf("%w: must be within [1, %d], got %d", models.ErrInvalidUnitCount, s.cfg.DispatchMaxUnits, unitCount)
		log.WithError(err).Warn("Rejected dispatch request")
		return nil, failSpan(span, err)
	}

	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident")
		return nil, failSpan(span, fmt.Errorf("service: could not get incident: %w", err))
	}

	assigned, err := s.dispatch(ctx, incident, unitCount)
	if err != nil {
		return nil, failSpan(span, err)
	}
	return assigned, nil
}

func (s *dispatchService) dispatch(ctx context.Context, incident *models.Incident, unitCount int) ([]*models.Assignment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "dispatch",
		"incident_id": incident.ID,
	})

	active, err := s.assignments.HasActiveAssignment(ctx, incident.ID)
	if err != nil {
		log.WithError(err).Error("Failed to check active assignments")
		return nil, fmt.Errorf("service: could not check active assignments: %w", err)
	}
	if active {
		log.Warn("Incident already has an active assignment")
		return nil, fmt.Errorf("service: incident %s: %w", incident.ID, models.ErrAlreadyAssigned)
	}

	start := time.Now()
	matches, err := s.router.AssignMultiple(ctx, incident, unitCount)
	s.metrics.ObserveRouting("assign_multiple", time.Since(start).Seconds())
	if err != nil {
		log.WithError(err).Error("Failed to select authorities")
		return nil, fmt.Errorf("service: could not select authorities: %w", err)
	}

	if len(matches) == 0 {
		s.metrics.NoCandidates()
		log.Info("No suitable authority found, incident stays pending")
		s.notifyPending(ctx, incident)
		return []*models.Assignment{}, nil
	}

	now := s.now()
	assignments := make([]*models.Assignment, 0, len(matches))
	updates := make([]*models.IncidentUpdate, 0, len(matches))
	for rank, m := range matches {
		a := &models.Assignment{
			ID:                  uuid.New(),
			IncidentID:          incident.ID,
			AuthorityID:         m.Candidate.ID,
			UnitRank:            rank,
			Status:              models.AssignmentAssigned,
			DistanceKM:          m.Score.DistanceKM,
			EstimatedArrivalMin: m.Score.ETAMinutes,
			AssignedAt:          now,
			UpdatedAt:           now,
		}
		assignments = append(assignments, a)
		assignmentID := a.ID
		updates = append(updates, &models.IncidentUpdate{
			ID:           uuid.New(),
			IncidentID:   incident.ID,
			AssignmentID: &assignmentID,
			Type:         models.UpdateAssignment,
			NewStatus:    string(models.AssignmentAssigned),
			Message:      assignmentMessage(m),
			CreatedAt:    now,
		})
	}

	previous := incident.Status
	incident.Status = models.IncidentAssigned
	incident.UpdatedAt = now
	if err := s.assignments.CreateAssignments(ctx, incident, assignments, updates); err != nil {
		incident.Status = previous
		if errors.Is(err, models.ErrAlreadyAssigned) {
			s.metrics.Contention("dispatch")
			log.WithError(err).Warn("Concurrent dispatch detected")
		} else {
			log.WithError(err).Error("Failed to store assignments")
		}
		return nil, fmt.Errorf("service: could not create assignments: %w", err)
	}

	for i, m := range matches {
		s.metrics.AssignmentCreated(string(m.Candidate.Type), m.Score.Total)
		s.notifyAssigned(ctx, incident, m, assignments[i])
	}

	log.WithField("assigned", len(assignments)).Info("Authorities dispatched")
	return assignments, nil
}

// UpdateAssignmentStatus переводит назначение в новый статус под блокировкой строки.
// Первое закрытие назначения в той же транзакции закрывает инцидент и начисляет репутацию автору.
func (s *dispatchService) UpdateAssignmentStatus(ctx context.Context, req StatusUpdate) (*models.Assignment, error) {
	ctx, span := tracer.Start(ctx, "DispatchService.UpdateAssignmentStatus",
		trace.WithAttributes(
			attribute.String("assignment.id", req.AssignmentID.String()),
			attribute.String("status", req.Status),
		))
	defer span.End()

	log := s.logger.WithFields(logrus.Fields{
		"service":       "dispatch",
		"method":        "UpdateAssignmentStatus",
		"assignment_id": req.AssignmentID,
		"actor_id":      req.ActorID,
		"status":        req.Status,
	})
	log.Info("Attempting to update assignment status")

	status, err := models.ParseAssignmentStatus(req.Status)
	if err != nil {
		log.WithError(err).Warn("Rejected unknown status")
		return nil, failSpan(span, err)
	}

	var (
		result   *models.Assignment
		incident *models.Incident
		outcome  ledger.Outcome
		// closed - этот вызов закрыл инцидент и начислил репутацию
		closed bool
	)
	err = s.assignments.RunInTx(ctx, func(ctx context.Context, tx AssignmentTx) error {
		a, err := tx.LockAssignment(ctx, req.AssignmentID)
		if err != nil {
			return err
		}
		if a.AuthorityID != req.ActorID {
			return models.ErrNotAssignee
		}

		now := s.now()
		outcome, err = ledger.Apply(a, status, now)
		if err != nil {
			return err
		}
		if req.Notes != "" {
			a.Notes = req.Notes
			a.UpdatedAt = now
		}
		if outcome.Changed || req.Notes != "" {
			if err := tx.SaveAssignment(ctx, a); err != nil {
				return err
			}
		}

		actorID := req.ActorID
		assignmentID := a.ID
		if outcome.Changed {
			name, err := tx.AuthorityName(ctx, a.AuthorityID)
			if err != nil {
				return err
			}
			if err := tx.AddUpdate(ctx, &models.IncidentUpdate{
				ID:           uuid.New(),
				IncidentID:   a.IncidentID,
				AssignmentID: &assignmentID,
				UpdatedBy:    &actorID,
				Type:         models.UpdateStatusChange,
				OldStatus:    string(outcome.OldStatus),
				NewStatus:    string(outcome.NewStatus),
				Message:      ledger.StatusChangeMessage(outcome.OldStatus, outcome.NewStatus, name),
				CreatedAt:    now,
			}); err != nil {
				return err
			}

			incident, err = tx.LockIncident(ctx, a.IncidentID)
			if err != nil {
				return err
			}
		}
		if req.Notes != "" {
			if err := tx.AddUpdate(ctx, &models.IncidentUpdate{
				ID:           uuid.New(),
				IncidentID:   a.IncidentID,
				AssignmentID: &assignmentID,
				UpdatedBy:    &actorID,
				Type:         models.UpdateComment,
				Message:      ledger.NoteMessage(req.Notes),
				CreatedAt:    now,
			}); err != nil {
				return err
			}
		}

		// инцидент с несколькими подразделениями закрывается только первым из них
		if outcome.FirstResolution && incident.Status != models.IncidentResolved {
			closed = true
			if err := tx.MarkIncidentResolved(ctx, incident.ID, now); err != nil {
				return err
			}
			incident.Status = models.IncidentResolved
			if incident.ResolvedAt == nil {
				incident.ResolvedAt = &now
			}
			if incident.ReporterID != nil {
				reporter, err := tx.LockReporter(ctx, *incident.ReporterID)
				if err != nil {
					return err
				}
				ledger.CreditResolvedReport(reporter)
				if err := tx.SaveReporter(ctx, reporter); err != nil {
					return err
				}
			}
		}

		result = a
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrContention):
			s.metrics.Contention("update_status")
			log.WithError(err).Warn("Assignment is locked by a concurrent update")
		case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrNotFound):
			log.WithError(err).Warn("Status update rejected")
		default:
			log.WithError(err).Error("Failed to update assignment status")
		}
		return nil, failSpan(span, fmt.Errorf("service: could not update assignment status: %w", err))
	}

	if outcome.Changed {
		s.metrics.Transition(string(outcome.OldStatus), string(outcome.NewStatus))
		s.notifyStatusChange(ctx, incident, result, outcome, closed)
	}

	log.WithFields(logrus.Fields{
		"old_status":       outcome.OldStatus,
		"new_status":       outcome.NewStatus,
		"changed":          outcome.Changed,
		"first_resolution": outcome.FirstResolution,
		"incident_closed":  closed,
	}).Info("Assignment status updated")
	return result, nil
}

func (s *dispatchService) notifyAssigned(ctx context.Context, incident *models.Incident, m routing.Match, a *models.Assignment) {
	priority := notification.PriorityFor(incident.IsCritical(), false)
	s.publish(ctx, notification.Notification{
		RecipientID: m.Candidate.UserID,
		IncidentID:  incident.ID,
		Title:       fmt.Sprintf("New %s incident assigned", incident.Category),
		Message:     fmt.Sprintf("Severity %s. %s", incident.Severity, etaText(a)),
		Category:    notification.CategoryIncidentAssigned,
		Priority:    priority,
	})
	if incident.ReporterID != nil {
		s.publish(ctx, notification.Notification{
			RecipientID: *incident.ReporterID,
			IncidentID:  incident.ID,
			Title:       "Responders dispatched",
			Message:     fmt.Sprintf("%s is responding to your report. %s", m.Candidate.OrganizationName, etaText(a)),
			Category:    notification.CategoryIncidentAssigned,
			Priority:    priority,
		})
	}
}

func (s *dispatchService) notifyPending(ctx context.Context, incident *models.Incident) {
	if incident.ReporterID == nil {
		return
	}
	s.publish(ctx, notification.Notification{
		RecipientID: *incident.ReporterID,
		IncidentID:  incident.ID,
		Title:       "Report received",
		Message:     "No responder is available yet. Your report stays pending until one is assigned.",
		Category:    notification.CategoryPendingAssignment,
		Priority:    notification.PriorityFor(incident.IsCritical(), false),
	})
}

func (s *dispatchService) notifyStatusChange(ctx context.Context, incident *models.Incident, a *models.Assignment, outcome ledger.Outcome, closed bool) {
	if incident == nil || incident.ReporterID == nil {
		return
	}
	n := notification.Notification{
		RecipientID: *incident.ReporterID,
		IncidentID:  incident.ID,
		Title:       "Incident update",
		Message:     fmt.Sprintf("Responder status changed from %s to %s", outcome.OldStatus, outcome.NewStatus),
		Category:    notification.CategoryGeneral,
		Priority:    notification.PriorityFor(incident.IsCritical(), false),
	}
	if closed {
		n.Title = "Incident resolved"
		n.Message = "Your report has been resolved. Thank you for reporting."
		n.Category = notification.CategoryIncidentResolved
		n.Priority = notification.PriorityFor(incident.IsCritical(), true)
	}
	s.publish(ctx, n)
}

// publish не возвращает ошибку: сбой доставки не должен ломать основную операцию
func (s *dispatchService) publish(ctx context.Context, n notification.Notification) {
	if s.publisher == nil {
		return
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":      "dispatch",
			"incident_id":  n.IncidentID,
			"recipient_id": n.RecipientID,
			"category":     n.Category,
		}).WithError(err).Warn("Failed to publish notification")
	}
}

func validateReport(incident *models.Incident) error {
	if !models.ValidCategory(incident.Category) {
		return fmt.Errorf("%w: unknown category %q", models.ErrInvalidIncident, incident.Category)
	}
	if !models.ValidSeverity(incident.Severity) {
		return fmt.Errorf("%w: unknown severity %q", models.ErrInvalidIncident, incident.Severity)
	}
	if loc := incident.Location; loc != nil {
		if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
			return fmt.Errorf("%w: coordinates out of range (%v, %v)", models.ErrInvalidIncident, loc.Latitude, loc.Longitude)
		}
	}
	return nil
}

func assignmentMessage(m routing.Match) string {
	msg := "Assigned to " + m.Candidate.OrganizationName
	if m.Score.DistanceKM != nil && m.Score.ETAMinutes != nil {
		msg += fmt.Sprintf(" (%.2f km, ETA %d min)", *m.Score.DistanceKM, *m.Score.ETAMinutes)
	}
	return msg
}

func etaText(a *models.Assignment) string {
	if a.EstimatedArrivalMin == nil {
		return "ETA unknown."
	}
	return fmt.Sprintf("ETA %d min.", *a.EstimatedArrivalMin)
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
