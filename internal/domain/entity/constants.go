package entity

// Kind identifies one of the four record kinds held by the store
type Kind string

const (
	KindBooking   Kind = "booking"
	KindIncident  Kind = "incident"
	KindTask      Kind = "task"
	KindTimesheet Kind = "timesheet"
)

// Role constants
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Status constants for BookingRequest
const (
	BookingStatusPending  = "pending"
	BookingStatusApproved = "approved"
	BookingStatusRejected = "rejected"
)

// Status constants for Incident
const (
	IncidentStatusOpen       = "open"
	IncidentStatusInProgress = "in-progress"
	IncidentStatusResolved   = "resolved"
	IncidentStatusClosed     = "closed"
)

// Incident category constants
const (
	CategoryTechnical = "technical"
	CategorySecurity  = "security"
	CategoryFacility  = "facility"
	CategoryHR        = "hr"
	CategoryOther     = "other"
)

// Priority constants (critical is incident-only)
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Status constants for Task
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// Status constants for Timesheet
const (
	TimesheetStatusActive    = "active"
	TimesheetStatusCompleted = "completed"
)

// ValidCategory reports whether c is a known incident category
func ValidCategory(c string) bool {
	switch c {
	case CategoryTechnical, CategorySecurity, CategoryFacility, CategoryHR, CategoryOther:
		return true
	default:
		return false
	}
}

// ValidIncidentPriority reports whether p is a known incident priority
func ValidIncidentPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// ValidTaskPriority reports whether p is a known task priority.
// Tasks do not use the critical level.
func ValidTaskPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
