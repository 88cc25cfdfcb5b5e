package user

import (
	"booking-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidRole = errs.New("invalid role")

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleShopOwner Role = "shop_owner"
	RoleAdmin     Role = "admin"
	// RoleSystem is carried by background sweeps and internal collaborators.
	RoleSystem Role = "system"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleShopOwner, RoleAdmin, RoleSystem:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Actor is whoever triggers a state change.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func SystemActor() Actor {
	return Actor{ID: uuid.Nil, Role: RoleSystem}
}

func (a Actor) IsPrivileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleSystem
}
