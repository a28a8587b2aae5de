package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resiplicity/backend/internal/service"
	"github.com/resiplicity/backend/internal/types"
)

// ImageHandler handles plating image generation.
type ImageHandler struct {
	images *service.PlatingImageService
}

// NewImageHandler creates a new ImageHandler instance
func NewImageHandler(images *service.PlatingImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// GeneratePlating handles POST /images/plating.
func (h *ImageHandler) GeneratePlating(c *gin.Context) {
	var req types.PlatingImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.images.GeneratePlatingImage(c.Request.Context(), req)
	if err != nil {
		log.Printf("[Image] plating image generation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "image generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
