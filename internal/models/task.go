package models

import "time"

type TaskPriority int

const (
	PriorityLow    TaskPriority = 0
	PriorityMedium TaskPriority = 1
	PriorityHigh   TaskPriority = 2
)

// ValidPriority reports whether p is one of the three allowed levels.
func ValidPriority(p int) bool {
	return p >= int(PriorityLow) && p <= int(PriorityHigh)
}

type Task struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Priority  int       `gorm:"not null;default:0" json:"priority"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// PriorityLabel returns the human-readable name of the task's priority.
func (t Task) PriorityLabel() string {
	switch TaskPriority(t.Priority) {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	default:
		return "Low"
	}
}
