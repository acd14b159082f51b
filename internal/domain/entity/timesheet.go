package entity

import "time"

// Timesheet is a single check-in/check-out cycle for one employee at one
// location. At most one timesheet per employee may be active at a time.
// CheckIn and CheckOut are wall-clock strings (HH:MM:SS) as captured by
// the client; WorkingHours is stored unrounded and only rounded for
// presentation.
type Timesheet struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	LocationID   string `json:"location_id"`

	// Date is the work date (YYYY-MM-DD)
	Date    string `json:"date"`
	CheckIn string `json:"check_in"`

	CheckOut     string  `json:"check_out,omitempty"`
	WorkingHours float64 `json:"working_hours,omitempty"`

	AccessCode string `json:"access_code,omitempty"`
	Status     string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Owner returns the identity of the employee on the clock
func (t *Timesheet) Owner() string {
	return t.EmployeeID
}
