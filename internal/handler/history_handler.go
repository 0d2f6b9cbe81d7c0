package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/safespot/safespot-backend/internal/models"
	"github.com/safespot/safespot-backend/internal/service"
	"github.com/safespot/safespot-backend/pkg/response"
)

// HistoryHandler handles HTTP requests for motion samples and summaries
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// Ingest handles POST /api/v1/history
func (h *HistoryHandler) Ingest(c *gin.Context) {
	var req models.MotionSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid sample payload: "+err.Error())
		return
	}

	result, err := h.historyService.Ingest(req)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// Latest handles GET /api/v1/history/:userId/latest
func (h *HistoryHandler) Latest(c *gin.Context) {
	userID := c.Param("userId")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	samples, err := h.historyService.Latest(userID, limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"userId": userID,
		"count":  len(samples),
		"logs":   samples,
	})
}

// DaySummary handles GET /api/v1/history/:userId/summary/day
func (h *HistoryHandler) DaySummary(c *gin.Context) {
	userID := c.Param("userId")
	dateKey := c.Query("date")

	summary, err := h.historyService.DaySummary(userID, dateKey)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, summary)
}

// WeekSummary handles GET /api/v1/history/:userId/summary/week
func (h *HistoryHandler) WeekSummary(c *gin.Context) {
	userID := c.Param("userId")

	summary, err := h.historyService.WeekSummary(userID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, summary)
}

// MonthSummary handles GET /api/v1/history/:userId/summary/month
func (h *HistoryHandler) MonthSummary(c *gin.Context) {
	userID := c.Param("userId")

	year, err := strconv.Atoi(c.DefaultQuery("year", "0"))
	if err != nil {
		response.BadRequest(c, "Invalid year parameter")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", "0"))
	if err != nil {
		response.BadRequest(c, "Invalid month parameter")
		return
	}

	summary, err := h.historyService.MonthSummary(userID, year, month)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, summary)
}

// Live handles GET /api/v1/live/:userId
func (h *HistoryHandler) Live(c *gin.Context) {
	userID := c.Param("userId")

	loc, err := h.historyService.LiveLocation(userID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if loc == nil {
		response.NotFound(c, "No location yet")
		return
	}

	response.Success(c, loc)
}
