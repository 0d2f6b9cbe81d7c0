package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/safespot/safespot-backend/internal/models"
	"github.com/safespot/safespot-backend/internal/service"
	"github.com/safespot/safespot-backend/pkg/response"
)

// ProtectorHandler handles HTTP requests for emergency contacts
type ProtectorHandler struct {
	protectorService *service.ProtectorService
}

// NewProtectorHandler creates a new protector handler
func NewProtectorHandler(protectorService *service.ProtectorService) *ProtectorHandler {
	return &ProtectorHandler{
		protectorService: protectorService,
	}
}

// List handles GET /api/v1/protectors/:userId
func (h *ProtectorHandler) List(c *gin.Context) {
	userID := c.Param("userId")

	protectors, err := h.protectorService.List(userID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, protectors)
}

// Add handles POST /api/v1/protectors
func (h *ProtectorHandler) Add(c *gin.Context) {
	var req models.ProtectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid protector payload: "+err.Error())
		return
	}

	protector, err := h.protectorService.Add(req)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, protector)
}

// Delete handles DELETE /api/v1/protectors/:id
func (h *ProtectorHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	removed, err := h.protectorService.Remove(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if !removed {
		response.NotFound(c, "Protector not found")
		return
	}

	response.Success(c, gin.H{"message": "Protector removed successfully"})
}
