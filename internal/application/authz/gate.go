// Package authz decides whether an actor may perform a lifecycle action
// on an entity. Rules are evaluated per call against the actor passed in
// explicitly; there is no ambient identity.
package authz

import (
	"errors"
	"fmt"

	"github.com/seatbook/seatbook/internal/domain/entity"
)

// ErrForbidden is returned when the actor lacks the role or ownership
// required for the requested action
var ErrForbidden = errors.New("forbidden")

// Action names a lifecycle action subject to authorization
type Action string

const (
	ActionCreate   Action = "create"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionAssign   Action = "assign"
	ActionResolve  Action = "resolve"
	ActionClose    Action = "close"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCheckIn  Action = "check_in"
	ActionCheckOut Action = "check_out"
)

// rule decides one (kind, action) pair given the actor and the owning
// identity of the target entity
type rule func(actor entity.Actor, owner string) bool

func adminOnly(actor entity.Actor, _ string) bool {
	return actor.IsAdmin()
}

func ownerOnly(actor entity.Actor, owner string) bool {
	return actor.ID == owner
}

func ownerOrAdmin(actor entity.Actor, owner string) bool {
	return actor.ID == owner || actor.IsAdmin()
}

var rules = map[entity.Kind]map[Action]rule{
	entity.KindBooking: {
		ActionCreate:  ownerOnly,
		ActionApprove: adminOnly,
		ActionReject:  adminOnly,
	},
	entity.KindIncident: {
		ActionCreate:  ownerOnly,
		ActionAssign:  adminOnly,
		ActionResolve: adminOnly,
		ActionClose:   adminOnly,
	},
	entity.KindTask: {
		ActionCreate:   adminOnly,
		ActionStart:    ownerOrAdmin,
		ActionComplete: ownerOrAdmin,
	},
	entity.KindTimesheet: {
		ActionCheckIn:  ownerOnly,
		ActionCheckOut: ownerOnly,
	},
}

// Authorize checks whether the actor may perform the action on an entity
// of the given kind owned by owner. It returns nil when allowed and a
// wrapped ErrForbidden otherwise. Unknown (kind, action) pairs are denied.
func Authorize(actor entity.Actor, kind entity.Kind, action Action, owner string) error {
	kindRules, ok := rules[kind]
	if !ok {
		return fmt.Errorf("%w: unknown entity kind %q", ErrForbidden, kind)
	}

	check, ok := kindRules[action]
	if !ok {
		return fmt.Errorf("%w: action %q not defined for %s", ErrForbidden, action, kind)
	}

	if !check(actor, owner) {
		return fmt.Errorf("%w: actor %s may not %s %s", ErrForbidden, actor.ID, action, kind)
	}

	return nil
}
