package entity

import "time"

// BookingRequest represents an employee's request for a seat on a given
// date and time slot. Requests start pending and are decided exactly once
// by an admin; a rejection always carries a reason and an approval never
// does.
type BookingRequest struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	EmployeeEmail string `json:"employee_email"`
	SeatID        string `json:"seat_id"`
	LocationID    string `json:"location_id"`

	// Date is a calendar date (YYYY-MM-DD) with no time component
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`

	Status string `json:"status"`

	// Reason is present iff Status is rejected
	Reason string `json:"reason,omitempty"`

	// AccessCode is an optional token validated against the known set at
	// creation; it has no lifecycle effect beyond being stored
	AccessCode string `json:"access_code,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Owner returns the identity that owns this booking
func (b *BookingRequest) Owner() string {
	return b.EmployeeID
}
