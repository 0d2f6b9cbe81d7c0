package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/safespot/safespot-backend/internal/models"
	"github.com/safespot/safespot-backend/internal/service"
	"github.com/safespot/safespot-backend/pkg/response"
)

// UserHandler handles HTTP requests for user profiles
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Get handles GET /api/v1/user/:userId
func (h *UserHandler) Get(c *gin.Context) {
	userID := c.Param("userId")

	user, err := h.userService.GetOrCreate(userID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, user)
}

// Update handles PUT /api/v1/user/:userId
func (h *UserHandler) Update(c *gin.Context) {
	userID := c.Param("userId")

	var update models.UserProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.BadRequest(c, "Invalid profile payload: "+err.Error())
		return
	}

	user, err := h.userService.Update(userID, update)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, user)
}
