package event

// Type identifies the type of change event emitted by the store layer
type Type string

const (
	TypeBookingCreated  Type = "booking.created"
	TypeBookingDecided  Type = "booking.decided"
	TypeIncidentCreated Type = "incident.created"
	TypeIncidentUpdated Type = "incident.updated"
	TypeTaskCreated     Type = "task.created"
	TypeTaskUpdated     Type = "task.updated"
	TypeTimesheetOpened Type = "timesheet.opened"
	TypeTimesheetClosed Type = "timesheet.closed"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeBookingCreated,
		TypeBookingDecided,
		TypeIncidentCreated,
		TypeIncidentUpdated,
		TypeTaskCreated,
		TypeTaskUpdated,
		TypeTimesheetOpened,
		TypeTimesheetClosed:
		return true
	default:
		return false
	}
}

// All returns every defined event type, for subscribers that want the
// full change feed
func All() []Type {
	return []Type{
		TypeBookingCreated,
		TypeBookingDecided,
		TypeIncidentCreated,
		TypeIncidentUpdated,
		TypeTaskCreated,
		TypeTaskUpdated,
		TypeTimesheetOpened,
		TypeTimesheetClosed,
	}
}
