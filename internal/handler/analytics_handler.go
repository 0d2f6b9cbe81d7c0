package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/safespot/safespot-backend/internal/service"
	"github.com/safespot/safespot-backend/pkg/response"
)

// AnalyticsHandler handles HTTP requests for the today-analytics view
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Today handles GET /api/v1/analytics/:userId
func (h *AnalyticsHandler) Today(c *gin.Context) {
	userID := c.Param("userId")

	view, err := h.analyticsService.Today(userID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, view)
}
