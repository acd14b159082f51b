package entity

import "time"

// Incident represents a workplace issue reported by an employee. Its
// lifecycle is forward-only: open, optionally in-progress once assigned,
// then resolved and closed. ResolvedAt is stamped when the incident
// reaches resolved and is never cleared afterwards.
type Incident struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	AssignedTo   string `json:"assigned_to,omitempty"`

	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Owner returns the identity of the reporter
func (i *Incident) Owner() string {
	return i.EmployeeID
}
