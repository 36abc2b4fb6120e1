package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Task and VolunteerAssignment are part of the schema but carry no
// lifecycle rules; approved volunteers are linked to events through them.
type Task struct {
	bun.BaseModel `bun:"table:tasks"`

	ID           string     `bun:"id,pk" json:"id"`
	EventID      string     `bun:"event_id,notnull" json:"event_id"`
	Title        string     `bun:"title,notnull" json:"title"`
	Description  string     `bun:"description,nullzero" json:"description,omitempty"`
	AssignedRole string     `bun:"assigned_role,nullzero" json:"assigned_role,omitempty"`
	Status       TaskStatus `bun:"status,notnull" json:"status"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

type VolunteerAssignment struct {
	bun.BaseModel `bun:"table:volunteer_assignments"`

	ID          string    `bun:"id,pk" json:"id"`
	EventID     string    `bun:"event_id,notnull" json:"event_id"`
	VolunteerID string    `bun:"volunteer_id,notnull" json:"volunteer_id"`
	TaskID      string    `bun:"task_id,nullzero" json:"task_id,omitempty"`
	ShiftStart  time.Time `bun:"shift_start,nullzero" json:"shift_start,omitempty"`
	ShiftEnd    time.Time `bun:"shift_end,nullzero" json:"shift_end,omitempty"`
	Notes       string    `bun:"notes,nullzero" json:"notes,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
