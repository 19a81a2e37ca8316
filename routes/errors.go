package routes

import (
	"errors"
	"log"
	"net/http"

	"taskhive/taskhive/models"
	"taskhive/taskhive/services"

	"github.com/gin-gonic/gin"
)

// respondError is the single place handler failures turn into HTTP responses.
// Field-level validation failures carry the per-field list; everything else
// is a uniform {success, message} body. Unexpected errors are logged and
// surfaced as a generic 500.
func respondError(c *gin.Context, err error) {
	var fieldErrors models.ValidationErrors
	if errors.As(err, &fieldErrors) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": fieldErrors})
		return
	}

	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrEmailTaken):
		status = http.StatusConflict
	default:
		log.Printf("Unexpected handler error: %v", err)
		message = "Internal server error"
	}

	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondBindError reports a malformed or incomplete request body.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
}
