package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/avaldezm/task-tracker/internal/models"
	"github.com/avaldezm/task-tracker/internal/repository"
)

var (
	ErrContentRequired = errors.New("content cannot be empty")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrTaskNotFound    = errors.New("task not found")
)

// TaskService handles task business logic. All operations act on tasks of a
// single owner; ownership itself is enforced before the service is reached.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Content  string
	Priority int
	OwnerID  uint64
}

// ListTasks returns the owner's tasks, highest priority first, newest first
// within a priority.
func (s *TaskService) ListTasks(ownerID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask validates input, renders the Markdown content to sanitized HTML
// and persists the task for its owner.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if !models.ValidPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		Content:  RenderMarkdown(content),
		Priority: input.Priority,
		UserID:   input.OwnerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask re-validates and re-renders content exactly as CreateTask does
// and persists the change. The update timestamp is refreshed by the save.
func (s *TaskService) UpdateTask(task *models.Task, content string, priority int) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrContentRequired
	}
	if !models.ValidPriority(priority) {
		return ErrInvalidPriority
	}

	task.Content = RenderMarkdown(content)
	task.Priority = priority

	if err := s.taskRepo.Update(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// DeleteTask permanently removes a task. There is no soft delete or undo.
func (s *TaskService) DeleteTask(task *models.Task) error {
	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
