package models

import (
	"time"

	"github.com/gestorapp/gestor/internal/patch"
)

// TaskStatus is three-valued on purpose: "not done" is an explicit outcome,
// not the absence of "done". Any status may follow any other.
type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskDone    TaskStatus = "done"
	TaskNotDone TaskStatus = "not_done"
)

func (s TaskStatus) Valid() bool {
	return s == TaskPending || s == TaskDone || s == TaskNotDone
}

type TaskPriority string

const (
	PriorityNormal    TaskPriority = "normal"
	PriorityImportant TaskPriority = "important"
	PriorityUrgent    TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	return p == PriorityNormal || p == PriorityImportant || p == PriorityUrgent
}

// Task is a TMI ("Tarefa Mais Importante") item. IsUrgent is orthogonal to
// Priority: both can be set independently.
type Task struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	DueDate     DateOnly     `json:"dueDate"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	IsUrgent    bool         `json:"isUrgent"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type TaskPatch struct {
	Title       patch.Field[string]       `json:"title,omitzero"`
	Description patch.Field[string]       `json:"description,omitzero"`
	DueDate     patch.Field[DateOnly]     `json:"dueDate,omitzero"`
	Status      patch.Field[TaskStatus]   `json:"status,omitzero"`
	Priority    patch.Field[TaskPriority] `json:"priority,omitzero"`
	IsUrgent    patch.Field[bool]         `json:"isUrgent,omitzero"`
}
