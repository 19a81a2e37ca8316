package middleware

import (
	"errors"
	"net/http"

	"taskhive/taskhive/database"
	"taskhive/taskhive/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextTaskKey is where the ownership guard stores the resolved task so the
// downstream handler does not look it up again.
const ContextTaskKey = "task"

// TaskOwnership resolves the task named by the :id parameter and rejects the
// request unless the authenticated caller owns it. A malformed id is a client
// error, an absent task is not found, and someone else's task is forbidden.
func TaskOwnership[T any, PT services.CategoryTaskPtr[T]](db *database.Database, taskService *services.TaskService[T, PT]) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, exists := c.Get("userID")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
			return
		}
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Invalid user ID format"})
			return
		}

		task, err := taskService.GetByID(db, c.Param("id"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidInput):
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid task id"})
			case errors.Is(err, services.ErrTaskNotFound):
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			}
			return
		}

		if task.Base().UserID != userID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to access this task"})
			return
		}

		c.Set(ContextTaskKey, task)
		c.Next()
	}
}
