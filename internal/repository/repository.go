package repository

import (
	"github.com/avaldezm/task-tracker/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsernameOrEmail finds a user matching either column. Used to
	// reject duplicate registrations with a single lookup.
	FindByUsernameOrEmail(username, email string) (*models.User, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// ListByOwner returns all tasks owned by a user, highest priority
	// first, most recently created first within a priority.
	ListByOwner(userID uint64) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete permanently removes a task
	Delete(id uint64) error
}
