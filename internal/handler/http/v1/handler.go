package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/incident_dispatch/internal/config"
	"github.com/shenikar/incident_dispatch/internal/models"
	"github.com/shenikar/incident_dispatch/internal/service"
	"github.com/sirupsen/logrus"
)

// ActorHeader - заголовок с ID подразделения, выполняющего действие
const ActorHeader = "X-Actor-ID"

type Handler struct {
	dispatchService service.DispatchService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(dispatchService service.DispatchService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		dispatchService: dispatchService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Report a new incident
// @Description Register an incident. When auto-dispatch is enabled the best authority is assigned immediately. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body ReportIncidentRequest true "Incident report"
// @Success 201 {object} ReportIncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) reportIncident(c *gin.Context) {
	var input ReportIncidentRequest
	log := h.logger.WithField("method", "reportIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		log.Warn("Partial coordinates")
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude must be provided together"})
		return
	}

	result, err := h.dispatchService.ReportIncident(c.Request.Context(), DTOToIncidentModel(input))
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, ReportIncidentResponse{
		Incident:    ModelToIncidentResponse(result.Incident),
		Dispatched:  len(result.Assignments) > 0,
		Assignments: ModelsToAssignmentResponses(result.Assignments),
	})
}

// @Summary Recommend an authority
// @Description Select the single best authority for an incident without assigning it. Requires API key.
// @Tags Dispatch
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} RecommendationResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/recommendation [get]
func (h *Handler) findBestAuthority(c *gin.Context) {
	id, ok := h.parseID(c, "invalid incident ID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "findBestAuthority").WithField("id", id)

	match, err := h.dispatchService.FindBestAuthority(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	if match == nil {
		c.JSON(http.StatusOK, RecommendationResponse{Found: false, Message: "no suitable authority available"})
		return
	}

	c.JSON(http.StatusOK, RecommendationResponse{Found: true, Candidate: MatchToCandidateResponse(*match)})
}

// @Summary Rank candidate authorities
// @Description Score every eligible authority for an incident, best first. Requires API key.
// @Tags Dispatch
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {array} CandidateResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/candidates [get]
func (h *Handler) rankAuthorities(c *gin.Context) {
	id, ok := h.parseID(c, "invalid incident ID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "rankAuthorities").WithField("id", id)

	matches, err := h.dispatchService.RankAuthorities(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, MatchesToCandidateResponses(matches))
}

// @Summary Dispatch authorities
// @Description Assign one or more distinct authorities to an incident. Requires API key.
// @Tags Dispatch
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param request body DispatchRequest false "Number of units, 1 by default"
// @Success 201 {object} DispatchResponse
// @Success 200 {object} DispatchResponse "No suitable authority, incident stays pending"
// @Failure 400 {object} map[string]string "Invalid incident ID or unit count"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident already has an active assignment"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/dispatch [post]
func (h *Handler) autoAssign(c *gin.Context) {
	id, ok := h.parseID(c, "invalid incident ID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "autoAssign").WithField("id", id)

	var input DispatchRequest
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.UnitCount == 0 {
		input.UnitCount = 1
	}

	assignments, err := h.dispatchService.AutoAssign(c.Request.Context(), id, input.UnitCount)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	if len(assignments) == 0 {
		c.JSON(http.StatusOK, DispatchResponse{
			Found:       false,
			Message:     "no suitable authority available, incident remains pending",
			Assignments: []*AssignmentResponse{},
		})
		return
	}

	c.JSON(http.StatusCreated, DispatchResponse{Found: true, Assignments: ModelsToAssignmentResponses(assignments)})
}

// @Summary Update assignment status
// @Description Move an assignment along its lifecycle. Only the assigned authority may do this. Requires API key.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Assignment ID"
// @Param X-Actor-ID header string true "ID of the acting authority"
// @Param request body StatusUpdateRequest true "New status and optional notes"
// @Success 200 {object} AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid ID, actor or status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Actor is not the assignee"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Failure 409 {object} map[string]string "Concurrent update, retry"
// @Failure 422 {object} map[string]string "Transition not allowed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments/{id}/status [post]
func (h *Handler) updateAssignmentStatus(c *gin.Context) {
	id, ok := h.parseID(c, "invalid assignment ID")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateAssignmentStatus").WithField("id", id)

	actorID, err := uuid.Parse(c.GetHeader(ActorHeader))
	if err != nil {
		log.WithError(err).Warn("Missing or invalid actor")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing " + ActorHeader + " header"})
		return
	}

	var input StatusUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.dispatchService.UpdateAssignmentStatus(c.Request.Context(), service.StatusUpdate{
		AssignmentID: id,
		Status:       input.Status,
		ActorID:      actorID,
		Notes:        input.Notes,
	})
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelToAssignmentResponse(assignment))
}

// @Summary Health check
// @Description Check if the service is running
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) parseID(c *gin.Context, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
		return uuid.Nil, false
	}
	return id, true
}

// writeError переводит ошибку сервиса в HTTP-ответ.
// ErrNotAssignee проверяется раньше ErrInvalidTransition.
func (h *Handler) writeError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Entity not found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrAlreadyAssigned):
		log.WithError(err).Warn("Incident already assigned")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrContention):
		log.WithError(err).Warn("Concurrent update")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
	case errors.Is(err, models.ErrInvalidStatus):
		log.WithError(err).Warn("Unknown status")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "valid_statuses": models.AssignmentStatuses})
	case errors.Is(err, models.ErrInvalidIncident), errors.Is(err, models.ErrInvalidUnitCount):
		log.WithError(err).Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotAssignee):
		log.WithError(err).Warn("Actor is not the assignee")
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidTransition):
		log.WithError(err).Warn("Transition rejected")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
