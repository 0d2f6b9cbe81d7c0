package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/safespot/safespot-backend/internal/notify"
	"github.com/safespot/safespot-backend/internal/service"
	"github.com/safespot/safespot-backend/pkg/response"
)

// SOSHandler handles explicit SOS triggers from the client
type SOSHandler struct {
	alertService *service.AlertService
}

// NewSOSHandler creates a new SOS handler
func NewSOSHandler(alertService *service.AlertService) *SOSHandler {
	return &SOSHandler{
		alertService: alertService,
	}
}

// sosRequest is the payload for POST /api/v1/sos/trigger
type sosRequest struct {
	UserID    string   `json:"userId" binding:"required"`
	Latitude  *float64 `json:"lat" binding:"required"`
	Longitude *float64 `json:"lng" binding:"required"`
	Intensity string   `json:"intensity"`
}

// Trigger handles POST /api/v1/sos/trigger
func (h *SOSHandler) Trigger(c *gin.Context) {
	var req sosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing userId/lat/lng")
		return
	}

	reached, err := h.alertService.Trigger(c.Request.Context(), notify.Alert{
		UserID:    req.UserID,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Intensity: req.Intensity,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoProtectors) {
			response.NotFound(c, "No protectors found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"sentTo": reached,
	})
}
