package middleware

import (
	"errors"
	"strconv"

	apierrors "github.com/avaldezm/task-tracker/internal/errors"
	"github.com/avaldezm/task-tracker/internal/models"
	"github.com/avaldezm/task-tracker/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ContextKeyTask is the gin context key the loaded task is stored under.
const ContextKeyTask = "task"

// RequireTaskOwner loads the task named by the :id parameter and enforces the
// ownership policy: absent task is 404, present but foreign task is 403. The
// loaded task is stashed in the context for the handler.
func RequireTaskOwner(taskRepo repository.TaskRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		task, err := taskRepo.FindByID(taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		if task.UserID != userID {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Set(ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTaskOwner.
func GetTask(c *gin.Context) (*models.Task, bool) {
	value, exists := c.Get(ContextKeyTask)
	if !exists {
		return nil, false
	}
	task, ok := value.(*models.Task)
	return task, ok
}
