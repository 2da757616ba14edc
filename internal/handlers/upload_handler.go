package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/arnelectric/storefront-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

// UploadImage streams a product image to Cloudinary. The route sits
// behind the admin middleware, so role checks are already done.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	const MaxUploadSize = 10 << 20 // 10MB
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("No file provided or file too large (Max 10MB)"))
		return
	}
	defer file.Close()

	// Sniff the first 512 bytes to validate the actual file type, then
	// rewind so Cloudinary reads the whole file.
	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to read file for validation"))
		return
	}
	file.Seek(0, 0)

	contentType := http.DetectContentType(buffer)
	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	if !allowedTypes[contentType] {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Unsupported file type. Please upload JPG, PNG, WEBP, or GIF"))
		return
	}

	// UUID filename prevents path traversal and name collisions.
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		switch contentType {
		case "image/jpeg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/webp":
			ext = ".webp"
		case "image/gif":
			ext = ".gif"
		}
	}
	safeFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	imageURL, err := utils.UploadToCloudinary(file, safeFilename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Cloudinary upload failed: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image uploaded successfully",
		"url":     imageURL,
		"size":    header.Size,
		"type":    contentType,
	})
}
