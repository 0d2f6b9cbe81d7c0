package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/safespot/safespot-backend/internal/service"
	"github.com/safespot/safespot-backend/pkg/response"
)

// UploadHandler handles HTTP requests for media uploads
type UploadHandler struct {
	uploadService *service.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// Avatar handles POST /api/v1/upload/avatar
func (h *UploadHandler) Avatar(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "No image provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "No image provided")
		return
	}
	defer file.Close()

	url, err := h.uploadService.Avatar(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		log.Printf("[upload] avatar upload failed: %v", err)
		response.InternalError(c, "Image upload failed")
		return
	}

	response.Success(c, gin.H{"url": url})
}
