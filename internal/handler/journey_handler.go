package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/safespot/safespot-backend/internal/models"
	"github.com/safespot/safespot-backend/internal/service"
	"github.com/safespot/safespot-backend/pkg/response"
)

// JourneyHandler handles HTTP requests for journey points and the
// reconstructed daily timeline
type JourneyHandler struct {
	journeyService *service.JourneyService
}

// NewJourneyHandler creates a new journey handler
func NewJourneyHandler(journeyService *service.JourneyService) *JourneyHandler {
	return &JourneyHandler{
		journeyService: journeyService,
	}
}

// AddPoint handles POST /api/v1/journey/point
func (h *JourneyHandler) AddPoint(c *gin.Context) {
	var req models.JourneyPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid point payload: "+err.Error())
		return
	}

	point, err := h.journeyService.AddPoint(req)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"id":      point.ID,
		"dateKey": point.DateKey,
	})
}

// Today handles GET /api/v1/journey/:userId/today
func (h *JourneyHandler) Today(c *gin.Context) {
	userID := c.Param("userId")

	today, err := h.journeyService.Today(userID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, today)
}
