package queries

import (
	"context"
	"time"

	"booking-marketplace/internal/domain/payment"
	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/internal/domain/user"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/pkg/clock"
	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrReservationAccess   = errs.New("reservation access denied")
)

type ReservationReadStore interface {
	// FindByID returns the view with line items and payments, plus the owner of the shop.
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, uuid.UUID, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actor user.Actor) (*ReservationView, error)
	// GetByIDSystem skips authorization. Used for read-after-write and idempotent replays.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type reservationQueriesImpl struct {
	store       ReservationReadStore
	clock       clock.Clock
	preparedTTL time.Duration
}

func NewReservationQueries(store ReservationReadStore, clk clock.Clock, cfg config.PaymentConfig) ReservationQueries {
	return &reservationQueriesImpl{
		store:       store,
		clock:       clk,
		preparedTTL: cfg.PreparedTTL,
	}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor user.Actor) (*ReservationView, error) {
	view, ownerID, err := q.find(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsPrivileged():
	case actor.Role == user.RoleShopOwner && ownerID == actor.ID:
	case view.CustomerID == actor.ID:
	default:
		return nil, ErrReservationAccess
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, _, err := q.find(ctx, id)
	return view, err
}

func (q *reservationQueriesImpl) find(ctx context.Context, id uuid.UUID) (*ReservationView, uuid.UUID, error) {
	view, ownerID, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, uuid.Nil, ErrReservationNotFound
		}
		return nil, uuid.Nil, err
	}
	view.AwaitingPaymentExpired = AwaitingPaymentExpired(view, q.clock.Now(), q.preparedTTL)
	return view, ownerID, nil
}

// AwaitingPaymentExpired reports whether a requested reservation has no paid deposit and its
// payment window has closed. The window runs until the later of createdAt+ttl and the expiry
// of the most recent deposit intent.
func AwaitingPaymentExpired(v *ReservationView, now time.Time, ttl time.Duration) bool {
	if v.Status != reservation.StatusRequested.String() {
		return false
	}

	deadline := v.CreatedAt.Add(ttl)
	for _, p := range v.Payments {
		if p.Stage != payment.StageDeposit.String() {
			continue
		}
		switch p.Status {
		case payment.StatusPaid.String():
			return false
		case payment.StatusPrepared.String():
			if now.Before(p.ExpiresAt) {
				return false
			}
		}
		if p.ExpiresAt.After(deadline) {
			deadline = p.ExpiresAt
		}
	}
	return !now.Before(deadline)
}
