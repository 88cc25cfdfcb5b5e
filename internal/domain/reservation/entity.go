package reservation

import (
	"fmt"
	"time"

	"booking-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus        = errs.New("invalid reservation status")
	ErrInvalidTransition    = errs.New("invalid reservation status transition")
	ErrDepositNotPaid       = errs.New("deposit payment is not paid")
	ErrFinalPaymentRequired = errs.New("final payment must be paid before completion")
	ErrNoShowTooEarly       = errs.New("no-show can only be recorded after the scheduled start")
	ErrSlotInPast           = errs.New("slot start is in the past")
	ErrAlreadyModified      = errs.New("reservation was already modified in this unit of work")
	ErrSlotConflict         = errs.New("slot is no longer available")
)

// ConflictError reports that another active reservation holds an overlapping slot.
// errors.Is(err, ErrSlotConflict) matches it.
type ConflictError struct {
	ConflictingReservationID uuid.UUID
}

func (e *ConflictError) Error() string {
	if e.ConflictingReservationID == uuid.Nil {
		return ErrSlotConflict.Error()
	}
	return fmt.Sprintf("%s: held by reservation %s", ErrSlotConflict.Error(), e.ConflictingReservationID)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

// Canceller identifies the side that cancels, which decides the terminal status.
type Canceller string

const (
	CancelledByCustomer Canceller = "customer"
	CancelledByShop     Canceller = "shop"
)

// Settlement is the payment state the transitions depend on.
type Settlement struct {
	DepositPaid bool
	FinalPaid   bool
}

type Event struct {
	Type          EventType
	ReservationID uuid.UUID
	OccurredAt    time.Time
	Payload       map[string]any
}

func NewEvent(eventType EventType, reservationID uuid.UUID, at time.Time, payload map[string]any) Event {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["reservation_id"] = reservationID.String()
	payload["type"] = eventType.String()
	return Event{Type: eventType, ReservationID: reservationID, OccurredAt: at, Payload: payload}
}

type Reservation struct {
	id           uuid.UUID
	customerID   uuid.UUID
	shopID       uuid.UUID
	resourceID   *uuid.UUID
	resourceKey  uuid.UUID
	slot         TimeSlot
	status       Status
	lineItems    []LineItem
	amounts      Amounts
	pointsEarned int64
	cancelReason string
	version      int64
	// version as last read from storage; 0 for a reservation that was never stored
	persistedVersion int64
	createdAt        time.Time
	updatedAt        time.Time

	events []Event
}

type NewInput struct {
	CustomerID         uuid.UUID
	ShopID             uuid.UUID
	ResourceID         *uuid.UUID
	ResourceKey        uuid.UUID
	Slot               TimeSlot
	LineItems          []LineItem
	PointsUsed         int64
	DepositRatePercent decimal.Decimal
}

func NewReservation(in NewInput, now time.Time) (*Reservation, error) {
	if !in.Slot.Start().After(now) {
		return nil, ErrSlotInPast
	}

	amounts, err := CalculateAmounts(in.LineItems, in.PointsUsed, in.DepositRatePercent)
	if err != nil {
		return nil, err
	}

	items := make([]LineItem, len(in.LineItems))
	copy(items, in.LineItems)

	r := &Reservation{
		id:          uuid.New(),
		customerID:  in.CustomerID,
		shopID:      in.ShopID,
		resourceID:  in.ResourceID,
		resourceKey: in.ResourceKey,
		slot:        in.Slot,
		status:      StatusRequested,
		lineItems:   items,
		amounts:     amounts,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}
	r.record(EventRequested, now, map[string]any{
		"customer_id": in.CustomerID.String(),
		"shop_id":     in.ShopID.String(),
		"starts_at":   in.Slot.Start().Format(time.RFC3339),
		"total":       amounts.Total.Amount(),
		"deposit":     amounts.Deposit.Amount(),
	})
	return r, nil
}

type ReconstructInput struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	ShopID       uuid.UUID
	ResourceID   *uuid.UUID
	ResourceKey  uuid.UUID
	Slot         TimeSlot
	Status       Status
	LineItems    []LineItem
	Subtotal     int64
	PointsUsed   int64
	Total        int64
	Deposit      int64
	Remaining    int64
	PointsEarned int64
	CancelReason string
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reconstruct rebuilds a stored reservation without re-running creation rules.
func Reconstruct(in ReconstructInput) (*Reservation, error) {
	if !in.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if in.Deposit+in.Remaining != in.Total {
		return nil, errs.Newf("reservation %s: deposit %d + remaining %d != total %d", in.ID, in.Deposit, in.Remaining, in.Total)
	}
	return &Reservation{
		id:          in.ID,
		customerID:  in.CustomerID,
		shopID:      in.ShopID,
		resourceID:  in.ResourceID,
		resourceKey: in.ResourceKey,
		slot:        in.Slot,
		status:      in.Status,
		lineItems:   in.LineItems,
		amounts: Amounts{
			Subtotal:   Money{amount: in.Subtotal},
			PointsUsed: Money{amount: in.PointsUsed},
			Total:      Money{amount: in.Total},
			Deposit:    Money{amount: in.Deposit},
			Remaining:  Money{amount: in.Remaining},
		},
		pointsEarned:     in.PointsEarned,
		cancelReason:     in.CancelReason,
		version:          in.Version,
		persistedVersion: in.Version,
		createdAt:        in.CreatedAt,
		updatedAt:        in.UpdatedAt,
	}, nil
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) CustomerID() uuid.UUID       { return r.customerID }
func (r *Reservation) ShopID() uuid.UUID           { return r.shopID }
func (r *Reservation) ResourceID() *uuid.UUID      { return r.resourceID }
func (r *Reservation) ResourceKey() uuid.UUID      { return r.resourceKey }
func (r *Reservation) Slot() TimeSlot              { return r.slot }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) Amounts() Amounts            { return r.amounts }
func (r *Reservation) PointsEarned() int64         { return r.pointsEarned }
func (r *Reservation) CancelReason() string        { return r.cancelReason }
func (r *Reservation) Version() int64              { return r.version }
func (r *Reservation) ExpectedVersion() int64      { return r.persistedVersion }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }
func (r *Reservation) IsNew() bool                 { return r.persistedVersion == 0 }
func (r *Reservation) IsOwnedBy(id uuid.UUID) bool { return r.customerID == id }

func (r *Reservation) LineItems() []LineItem {
	out := make([]LineItem, len(r.lineItems))
	copy(out, r.lineItems)
	return out
}

// Confirm moves requested -> confirmed once the deposit is paid.
func (r *Reservation) Confirm(s Settlement, now time.Time) error {
	if r.status != StatusRequested {
		return r.invalidTransition(StatusConfirmed)
	}
	if !s.DepositPaid {
		return ErrDepositNotPaid
	}
	return r.transition(StatusConfirmed, EventConfirmed, now, nil)
}

// Complete moves confirmed -> completed. A non-zero remaining amount must be settled first.
func (r *Reservation) Complete(s Settlement, now time.Time) error {
	if r.status != StatusConfirmed {
		return r.invalidTransition(StatusCompleted)
	}
	if !r.amounts.Remaining.IsZero() && !s.FinalPaid {
		return ErrFinalPaymentRequired
	}
	return r.transition(StatusCompleted, EventCompleted, now, map[string]any{
		"customer_id": r.customerID.String(),
		"total":       r.amounts.Total.Amount(),
	})
}

func (r *Reservation) Cancel(by Canceller, reason string, now time.Time) error {
	var (
		to    Status
		event EventType
	)
	switch by {
	case CancelledByCustomer:
		to, event = StatusCancelledByUser, EventCancelledByUser
	case CancelledByShop:
		to, event = StatusCancelledByShop, EventCancelledByShop
	default:
		return errs.Newf("unknown canceller %q", by)
	}
	if !r.status.IsActive() {
		return r.invalidTransition(to)
	}
	if err := r.transition(to, event, now, map[string]any{
		"customer_id": r.customerID.String(),
		"reason":      reason,
	}); err != nil {
		return err
	}
	r.cancelReason = reason
	return nil
}

func (r *Reservation) MarkNoShow(now time.Time) error {
	if r.status != StatusConfirmed {
		return r.invalidTransition(StatusNoShow)
	}
	if now.Before(r.slot.Start()) {
		return ErrNoShowTooEarly
	}
	return r.transition(StatusNoShow, EventNoShow, now, map[string]any{
		"customer_id": r.customerID.String(),
	})
}

// RecordPointsEarned stores the points credited for a completed reservation.
func (r *Reservation) RecordPointsEarned(points int64) error {
	if r.status != StatusCompleted {
		return r.invalidTransition(StatusCompleted)
	}
	r.pointsEarned = points
	return nil
}

// PullEvents returns and clears the events recorded since the last call.
func (r *Reservation) PullEvents() []Event {
	ev := r.events
	r.events = nil
	return ev
}

func (r *Reservation) transition(to Status, event EventType, now time.Time, payload map[string]any) error {
	if r.version != r.persistedVersion {
		return ErrAlreadyModified
	}
	from := r.status
	r.status = to
	r.updatedAt = now
	r.version++

	if payload == nil {
		payload = map[string]any{}
	}
	payload["from"] = from.String()
	payload["to"] = to.String()
	r.record(event, now, payload)
	return nil
}

func (r *Reservation) record(eventType EventType, at time.Time, payload map[string]any) {
	r.events = append(r.events, NewEvent(eventType, r.id, at, payload))
}

func (r *Reservation) invalidTransition(to Status) error {
	return errs.Wrapf(ErrInvalidTransition, "%s -> %s", r.status, to)
}
