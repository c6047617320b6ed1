package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/Fuku-x/connect-app/pkg/utils"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is a personal tracker item, visible only to its owner.
type Task struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"index;not null" json:"user_id"`

	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `gorm:"type:text;default:'todo'" json:"status"`
	Priority    TaskPriority `gorm:"type:text;default:'medium'" json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = utils.GenerateID()
	}
	return nil
}

// ValidTaskStatus reports whether s is one of the three task states.
func ValidTaskStatus(s TaskStatus) bool {
	return s == TaskTodo || s == TaskInProgress || s == TaskDone
}

// ValidTaskPriority reports whether p is a known priority level.
func ValidTaskPriority(p TaskPriority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
