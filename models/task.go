package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskType string

const (
	TaskTypeWork     TaskType = "work"
	TaskTypeFood     TaskType = "food"
	TaskTypeHomework TaskType = "homework"
	TaskTypeEmail    TaskType = "email"
	TaskTypeMeeting  TaskType = "meeting"
	TaskTypeProject  TaskType = "project"
	TaskTypeHealth   TaskType = "health"
	TaskTypePersonal TaskType = "personal"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// TaskBase carries the field set shared by every task category. Category
// structs embed it by value so each category table repeats these columns.
type TaskBase struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Priority    Priority       `gorm:"not null" json:"priority"`
	Status      Status         `gorm:"not null;index" json:"status"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	TaskType    TaskType       `gorm:"not null" json:"task_type"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// CategoryTask is implemented by every category struct. Base gives uniform
// access to the shared fields; Validate checks base and category constraints
// together.
type CategoryTask interface {
	Base() *TaskBase
	Validate() error
}

// ApplyDefaults fills the fields the API treats as optional on create.
func (b *TaskBase) ApplyDefaults() {
	if b.Priority == "" {
		b.Priority = PriorityMedium
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
}

func (b *TaskBase) validateBase() ValidationErrors {
	var errs ValidationErrors
	if b.Title == "" {
		errs.add("title", "title is required")
	} else if len(b.Title) > 200 {
		errs.add("title", "title must be at most 200 characters")
	}
	switch b.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
	default:
		errs.add("priority", fmt.Sprintf("invalid priority %q", b.Priority))
	}
	switch b.Status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
	default:
		errs.add("status", fmt.Sprintf("invalid status %q", b.Status))
	}
	return errs
}

func validateEnum(errs *ValidationErrors, field, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	errs.add(field, fmt.Sprintf("invalid value %q", value))
}

func validateNonNegative(errs *ValidationErrors, field string, value float64) {
	if value < 0 {
		errs.add(field, "must not be negative")
	}
}
