package model

import "time"

type TaskCreate struct {
	ProjectID   int64
	AssigneeID  *int64
	Title       string
	Description string
	Tags        []string
	Priority    Priority
	Date        time.Time
}

type Task struct {
	ID           int64
	Recurring    bool
	RecurrenceID *int64
	Active       bool
	CreatedAt    time.Time
	TaskCreate
}

type TaskUpdate struct {
	Title       string
	Description string
	AssigneeID  *int64
	Tags        []string
	Priority    Priority
	// Active is left untouched when nil.
	Active *bool
}

type Priority int

const (
	PriorityNormal Priority = iota
	PriorityUrgent
)

type UpdateScope string

const (
	UpdateScopeThis       UpdateScope = "this"
	UpdateScopeSubsequent UpdateScope = "subsequent"
	UpdateScopeAll        UpdateScope = "all"
)

type TasksFilter struct {
	RecurrenceID int64
	CreatedFrom  *time.Time
}
