package httpHandler

import (
	"errors"
	"net/http"

	"rental-server/apperrors"
	"rental-server/middleware"

	"github.com/gin-gonic/gin"
)

// respondError maps an error kind to its status code. Unexpected errors are
// logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		middleware.LoggerFrom(c).Error("request failed", "error", err)
		message = "Server Error"
	}
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Invalid request body",
	})
}

// emptyIfNil keeps list responses as JSON arrays.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
