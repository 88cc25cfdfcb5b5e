package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

const NotificationKindReservationEvent = "reservation_event"

type ResourceSnapshot struct {
	ID     uuid.UUID
	ShopID uuid.UUID
	Name   string
	Active bool
}

type ServiceSnapshot struct {
	ID     uuid.UUID
	ShopID uuid.UUID
	Name   string
	Price  int64
	Active bool
}

type UserSnapshot struct {
	ID           uuid.UUID
	Role         string
	IsInfluencer bool
}

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Endpoint            string
	Status              string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}

// ActiveSlot is an interval held by a requested or confirmed reservation.
type ActiveSlot struct {
	ReservationID uuid.UUID
	ResourceKey   uuid.UUID
	Start         time.Time
	End           time.Time
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    time.Time
	Attempts int32
}

// BalanceCache holds computed point balances. Writers invalidate after commit.
type BalanceCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*CachedBalance, bool, error)
	Set(ctx context.Context, b CachedBalance, ttl time.Duration) error
	Invalidate(ctx context.Context, userIDs ...uuid.UUID) error
}

type CachedBalance struct {
	UserID          uuid.UUID  `json:"user_id"`
	Balance         int64      `json:"balance"`
	Available       int64      `json:"available"`
	Pending         int64      `json:"pending"`
	NextAvailableAt *time.Time `json:"next_available_at,omitempty"`
	ComputedAt      time.Time  `json:"computed_at"`
}

// EventPublisher delivers outbox messages to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, messageID uuid.UUID, payload []byte) error
}
