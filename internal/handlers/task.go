package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/avaldezm/task-tracker/internal/dto"
	apierrors "github.com/avaldezm/task-tracker/internal/errors"
	"github.com/avaldezm/task-tracker/internal/middleware"
	"github.com/avaldezm/task-tracker/internal/models"
	"github.com/avaldezm/task-tracker/internal/services"
	"github.com/gin-gonic/gin"
)

// TaskHandler serves the task pages and the task JSON endpoint.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// taskView adapts a task for HTML templates. Content is already sanitized at
// write time, so it is safe to mark.
type taskView struct {
	ID            uint64
	ContentHTML   template.HTML
	Priority      int
	PriorityLabel string
	CreatedAt     string
}

func toTaskView(task models.Task) taskView {
	return taskView{
		ID:            task.ID,
		ContentHTML:   template.HTML(task.Content),
		Priority:      task.Priority,
		PriorityLabel: task.PriorityLabel(),
		CreatedAt:     task.CreatedAt.Format("2006-01-02 15:04"),
	}
}

// Index renders the task list page, highest priority first.
func (h *TaskHandler) Index(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	views := make([]taskView, len(tasks))
	for i, task := range tasks {
		views[i] = toTaskView(task)
	}

	c.HTML(http.StatusOK, "index.html", gin.H{"tasks": views})
}

// CreateTask creates a task from the form on the list page.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	priority, err := strconv.Atoi(c.DefaultPostForm("priority", "0"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid priority")
		return
	}

	_, err = h.taskService.CreateTask(services.CreateTaskInput{
		Content:  c.PostForm("content"),
		Priority: priority,
		OwnerID:  userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/tasks/")
}

// UpdateTask rewrites the content and priority of an owned task. The
// ownership check has already run in RequireTaskOwner.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	priority, err := strconv.Atoi(c.DefaultPostForm("priority", strconv.Itoa(task.Priority)))
	if err != nil {
		apierrors.BadRequest(c, "Invalid priority")
		return
	}

	if err := h.taskService.UpdateTask(task, c.PostForm("content"), priority); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/tasks/")
}

// DeleteTask permanently removes an owned task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/tasks/")
}

// ViewTask renders a single owned task.
func (h *TaskHandler) ViewTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.HTML(http.StatusOK, "view_task.html", gin.H{"task": toTaskView(*task)})
}

// ListTasksJSON returns the current user's tasks as JSON, same ordering as
// the list page.
func (h *TaskHandler) ListTasksJSON(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContentRequired):
		apierrors.BadRequest(c, "Content cannot be empty")
	case errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, "Invalid priority")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	default:
		apierrors.InternalError(c, "")
	}
}
