package entity

import "time"

// Task represents work assigned by an admin to an employee. Status moves
// strictly forward one step at a time; CompletedAt is stamped when the
// task reaches completed.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`
	AssignedBy  string `json:"assigned_by"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Owner returns the assignee; tasks are owned by the person doing the work
func (t *Task) Owner() string {
	return t.AssignedTo
}
