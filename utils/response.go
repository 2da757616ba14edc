package utils

import "github.com/gin-gonic/gin"

// SuccessResponse wraps a payload in the envelope the storefront expects.
func SuccessResponse(message string, data interface{}) gin.H {
	return gin.H{
		"success": true,
		"message": message,
		"data":    data,
	}
}

func ErrorResponse(message string) gin.H {
	return gin.H{
		"success": false,
		"error":   message,
	}
}
