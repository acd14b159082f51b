// Package query derives role-scoped views from store collections. All
// projections are pure; consumers recompute them on every change event.
package query

import "github.com/seatbook/seatbook/internal/domain/entity"

// Owned is any entity that knows its owning identity
type Owned interface {
	Owner() string
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// PendingOnly keeps booking requests awaiting an admin decision
func PendingOnly(bookings []*entity.BookingRequest) []*entity.BookingRequest {
	return filter(bookings, func(b *entity.BookingRequest) bool {
		return b.Status == entity.BookingStatusPending
	})
}

// MineOnly keeps entities owned by the given employee
func MineOnly[T Owned](items []T, employeeID string) []T {
	return filter(items, func(item T) bool {
		return item.Owner() == employeeID
	})
}

// OpenOrInProgress keeps incidents that still need attention
func OpenOrInProgress(incidents []*entity.Incident) []*entity.Incident {
	return filter(incidents, func(in *entity.Incident) bool {
		return in.Status == entity.IncidentStatusOpen || in.Status == entity.IncidentStatusInProgress
	})
}

// AssignedTo keeps tasks assigned to the given identity
func AssignedTo(tasks []*entity.Task, assigneeID string) []*entity.Task {
	return filter(tasks, func(t *entity.Task) bool {
		return t.AssignedTo == assigneeID
	})
}
