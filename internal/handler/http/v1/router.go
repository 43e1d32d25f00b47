package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("")
	if len(h.cfg.APIKeys) > 0 {
		protected.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	}

	incidents := protected.Group("/incidents")
	{
		incidents.POST("", h.reportIncident)
		incidents.GET("/:id/recommendation", h.findBestAuthority)
		incidents.GET("/:id/candidates", h.rankAuthorities)
		incidents.POST("/:id/dispatch", h.autoAssign)
	}

	protected.POST("/assignments/:id/status", h.updateAssignmentStatus)
}
