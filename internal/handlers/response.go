package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope so clients can branch on
// success before looking at data.
func successResponse(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, gin.H{
		"success":     true,
		"message":     message,
		"status_code": statusCode,
		"timestamp":   time.Now().Format(time.RFC3339),
		"data":        data,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success":    false,
		"message":    message,
		"error_code": statusCode,
		"timestamp":  time.Now().Format(time.RFC3339),
		"data":       nil,
	})
}

func validationErrorResponse(c *gin.Context, errors map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success":           false,
		"message":           "parameter validation failed",
		"error_code":        http.StatusBadRequest,
		"timestamp":         time.Now().Format(time.RFC3339),
		"data":              nil,
		"validation_errors": errors,
	})
}
