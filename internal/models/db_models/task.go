package db_models

import "github.com/google/uuid"

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusDone    TaskStatus = "done"
)

type Task struct {
	BaseModel
	OwnerID     uuid.UUID `gorm:"index"`
	Title       string    `gorm:"not null"`
	Description string
	Status      TaskStatus `gorm:"default:pending;index"`
	DueDate     *int64     // unix seconds, optional

	Owner  Account     `gorm:"foreignKey:OwnerID"`
	Shares []TaskShare `gorm:"foreignKey:TaskID"`
}

// TaskShare grants read/write access on a task to another user by email.
type TaskShare struct {
	BaseModel
	TaskID uuid.UUID `gorm:"index;uniqueIndex:idx_task_share_email"`
	Email  string    `gorm:"index;uniqueIndex:idx_task_share_email"`
}
