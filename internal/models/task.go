package models

import "time"

// Task represents a unit of work assigned to a user. Status is a free-form
// string; the assignee is fixed at creation time and never changed by
// updates.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AssigneeID  string    `json:"assigneeId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserTask is a task joined with its assignee, as returned by the
// caller's-tasks listing.
type UserTask struct {
	Task
	AssigneeName     string `json:"assigneeName"`
	AssigneeUsername string `json:"assigneeUsername"`
	AssigneeIsAdmin  bool   `json:"assigneeIsAdmin"`
}
