package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{
		Status:  "error",
		Message: message,
	})
}

func RespondWithInternalError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Status:  "error",
		Message: message,
		Error:   err.Error(),
	})
}
