//go:build unit || e2e

package builder

import (
	"time"

	"booking-marketplace/internal/domain/user"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	Role         user.Role
	IsInfluencer bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:    uuid.New(),
		Email: "customer@example.com",
		Role:  user.RoleCustomer,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) Actor() user.Actor {
	return user.Actor{ID: u.ID, Role: u.Role}
}

func (u *UserBuilder) BuildSnapshot() *shared.UserSnapshot {
	return &shared.UserSnapshot{
		ID:           u.ID,
		Role:         string(u.Role),
		IsInfluencer: u.IsInfluencer,
	}
}

func (u *UserBuilder) BuildInfra() sqlc.Users {
	return sqlc.Users{
		ID:           u.ID,
		Email:        u.Email,
		Role:         string(u.Role),
		IsInfluencer: u.IsInfluencer,
		CreatedAt:    pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
}

func (u *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	u.ID = id
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role user.Role) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) AsInfluencer() *UserBuilder {
	u.IsInfluencer = true
	return u
}
