package payment

import (
	"fmt"
	"time"

	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStage    = errs.New("invalid payment stage")
	ErrInvalidStatus   = errs.New("invalid payment status")
	ErrStageNotAllowed = errs.New("payment stage is not allowed in the current reservation status")
	ErrNothingToPay    = errs.New("no remaining amount to pay")
	ErrDuplicateStage  = errs.New("a payment for this stage already exists")

	ErrVerificationFailed = errs.New("payment could not be verified")
	ErrAmountMismatch     = errs.Mark(errs.New("gateway amount does not match"), ErrVerificationFailed)
	ErrStatusMismatch     = errs.Mark(errs.New("gateway status is not paid"), ErrVerificationFailed)
	ErrOrderRefMismatch   = errs.Mark(errs.New("gateway order reference does not match"), ErrVerificationFailed)

	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
	ErrInvalidSignature   = errs.New("invalid webhook signature")

	ErrInvalidTransition   = errs.New("invalid payment status transition")
	ErrNotCancellable      = errs.New("payment cannot be cancelled in its current status")
	ErrInvalidCancelAmount = errs.New("cancel amount must be positive and within the refundable amount")
	ErrCancellationSeen    = errs.New("gateway cancellation is already recorded")
)

// OrderRefFor binds a gateway order to one reservation stage.
func OrderRefFor(reservationID uuid.UUID, stage Stage) string {
	return fmt.Sprintf("RSV-%s-%s", reservationID, stage)
}

// AmountForStage returns what the customer owes for a stage, enforcing the stage guards.
func AmountForStage(res *reservation.Reservation, stage Stage) (int64, error) {
	switch stage {
	case StageDeposit:
		if res.Status() != reservation.StatusRequested {
			return 0, errs.Wrapf(ErrStageNotAllowed, "deposit requires %s, got %s", reservation.StatusRequested, res.Status())
		}
		return res.Amounts().Deposit.Amount(), nil
	case StageFinal:
		if res.Status() != reservation.StatusConfirmed {
			return 0, errs.Wrapf(ErrStageNotAllowed, "final requires %s, got %s", reservation.StatusConfirmed, res.Status())
		}
		remaining := res.Amounts().Remaining.Amount()
		if remaining <= 0 {
			return 0, ErrNothingToPay
		}
		return remaining, nil
	default:
		return 0, ErrInvalidStage
	}
}

type Payment struct {
	id                    uuid.UUID
	reservationID         uuid.UUID
	stage                 Stage
	externalID            string
	orderRef              string
	amount                int64
	status                Status
	metadata              Metadata
	cancellationRequested bool
	cancelReason          string
	refundedAmount        int64
	expiresAt             time.Time
	paidAt                *time.Time
	version               int64
	persistedVersion      int64
	createdAt             time.Time
	updatedAt             time.Time
}

type NewInput struct {
	ReservationID uuid.UUID
	Stage         Stage
	Amount        int64
	Intent        PreparedIntent
	ExpiresAt     time.Time
}

func NewPayment(in NewInput, now time.Time) (*Payment, error) {
	if !in.Stage.IsValid() {
		return nil, ErrInvalidStage
	}
	if in.Amount <= 0 {
		return nil, ErrNothingToPay
	}
	if in.Intent.ExternalID == "" {
		return nil, errs.New("external payment id is required")
	}
	return &Payment{
		id:            uuid.New(),
		reservationID: in.ReservationID,
		stage:         in.Stage,
		externalID:    in.Intent.ExternalID,
		orderRef:      OrderRefFor(in.ReservationID, in.Stage),
		amount:        in.Amount,
		status:        StatusPrepared,
		metadata:      Metadata{CheckoutParams: in.Intent.CheckoutParams},
		expiresAt:     in.ExpiresAt,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type ReconstructInput struct {
	ID                    uuid.UUID
	ReservationID         uuid.UUID
	Stage                 Stage
	ExternalID            string
	OrderRef              string
	Amount                int64
	Status                Status
	Metadata              Metadata
	CancellationRequested bool
	CancelReason          string
	RefundedAmount        int64
	ExpiresAt             time.Time
	PaidAt                *time.Time
	Version               int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func Reconstruct(in ReconstructInput) (*Payment, error) {
	if !in.Stage.IsValid() {
		return nil, ErrInvalidStage
	}
	if !in.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Payment{
		id:                    in.ID,
		reservationID:         in.ReservationID,
		stage:                 in.Stage,
		externalID:            in.ExternalID,
		orderRef:              in.OrderRef,
		amount:                in.Amount,
		status:                in.Status,
		metadata:              in.Metadata,
		cancellationRequested: in.CancellationRequested,
		cancelReason:          in.CancelReason,
		refundedAmount:        in.RefundedAmount,
		expiresAt:             in.ExpiresAt,
		paidAt:                in.PaidAt,
		version:               in.Version,
		persistedVersion:      in.Version,
		createdAt:             in.CreatedAt,
		updatedAt:             in.UpdatedAt,
	}, nil
}

func (p *Payment) ID() uuid.UUID               { return p.id }
func (p *Payment) ReservationID() uuid.UUID    { return p.reservationID }
func (p *Payment) Stage() Stage                { return p.stage }
func (p *Payment) IsDeposit() bool             { return p.stage == StageDeposit }
func (p *Payment) ExternalID() string          { return p.externalID }
func (p *Payment) OrderRef() string            { return p.orderRef }
func (p *Payment) Amount() int64               { return p.amount }
func (p *Payment) Status() Status              { return p.status }
func (p *Payment) Metadata() Metadata          { return p.metadata }
func (p *Payment) CancellationRequested() bool { return p.cancellationRequested }
func (p *Payment) CancelReason() string        { return p.cancelReason }
func (p *Payment) RefundedAmount() int64       { return p.refundedAmount }
func (p *Payment) ExpiresAt() time.Time        { return p.expiresAt }
func (p *Payment) PaidAt() *time.Time          { return p.paidAt }
func (p *Payment) Version() int64              { return p.version }
func (p *Payment) ExpectedVersion() int64      { return p.persistedVersion }
func (p *Payment) CreatedAt() time.Time        { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time        { return p.updatedAt }

func (p *Payment) IsExpired(now time.Time) bool {
	return p.status == StatusPrepared && !p.expiresAt.IsZero() && !now.Before(p.expiresAt)
}

// Refundable is what a cancellation can still return: the unrefunded part of a paid payment,
// or the whole amount of an intent that was never paid.
func (p *Payment) Refundable() int64 {
	switch p.status {
	case StatusPaid:
		return p.amount - p.refundedAmount
	case StatusPrepared:
		return p.amount
	default:
		return 0
	}
}

// Verify checks the gateway record against what was prepared.
// Status is checked before amount and order reference.
func (p *Payment) Verify(gp GatewayPayment) error {
	if gp.ExternalID != p.externalID {
		return errs.Wrapf(ErrOrderRefMismatch, "external id %q != %q", gp.ExternalID, p.externalID)
	}
	if gp.Status != GatewayStatusPaid {
		return errs.Wrapf(ErrStatusMismatch, "gateway status %q", gp.Status)
	}
	if gp.Amount != p.amount {
		return errs.Wrapf(ErrAmountMismatch, "gateway amount %d != expected %d", gp.Amount, p.amount)
	}
	if gp.OrderRef != p.orderRef {
		return errs.Wrapf(ErrOrderRefMismatch, "gateway order ref %q != %q", gp.OrderRef, p.orderRef)
	}
	return nil
}

func (p *Payment) MarkPaid(gp GatewayPayment, now time.Time) error {
	if err := p.requirePrepared(StatusPaid); err != nil {
		return err
	}
	paidAt := now
	if gp.PaidAt != nil {
		paidAt = *gp.PaidAt
	}
	p.paidAt = &paidAt
	p.snapshot(gp, now)
	p.touch(StatusPaid, now)
	return nil
}

func (p *Payment) MarkFailed(reason string, gp *GatewayPayment, now time.Time) error {
	if err := p.requirePrepared(StatusFailed); err != nil {
		return err
	}
	if gp != nil {
		p.snapshot(*gp, now)
	}
	p.metadata.FailureReason = reason
	p.touch(StatusFailed, now)
	return nil
}

// MarkCancelled records a cancellation reported by the gateway before the payment was paid.
func (p *Payment) MarkCancelled(gp GatewayPayment, now time.Time) error {
	if err := p.requirePrepared(StatusCancelled); err != nil {
		return err
	}
	p.snapshot(gp, now)
	p.cancellationRequested = false
	p.touch(StatusCancelled, now)
	return nil
}

// RequestCancellation flags the payment so the money is returned through the gateway after commit.
// It reports whether a gateway call is needed.
func (p *Payment) RequestCancellation(reason string, now time.Time) bool {
	if p.Refundable() <= 0 {
		return false
	}
	if p.cancellationRequested {
		return true
	}
	p.cancellationRequested = true
	p.cancelReason = reason
	p.updatedAt = now
	p.version++
	return true
}

// ResolveCancelAmount validates a requested cancel amount. nil means everything refundable.
// Unpaid intents can only be voided in full.
func (p *Payment) ResolveCancelAmount(amount *int64) (int64, error) {
	refundable := p.Refundable()
	if refundable <= 0 {
		return 0, errs.Wrapf(ErrNotCancellable, "status %s", p.status)
	}
	if amount == nil {
		return refundable, nil
	}
	if *amount <= 0 || *amount > refundable {
		return 0, ErrInvalidCancelAmount
	}
	if p.status == StatusPrepared && *amount != refundable {
		return 0, errs.Wrap(ErrInvalidCancelAmount, "partial void of an unpaid payment")
	}
	return *amount, nil
}

// HasCancellation reports whether the gateway cancellation with this id was already applied.
func (p *Payment) HasCancellation(id string) bool {
	if id == "" {
		return false
	}
	for _, c := range p.metadata.Cancellations {
		if c.ID == id {
			return true
		}
	}
	return false
}

// RecordCancellation appends a gateway cancellation. The payment becomes cancelled once nothing is left.
// The gateway collapses retries under one idempotency key, so a record id is applied at most once.
func (p *Payment) RecordCancellation(rec CancellationRecord, now time.Time) error {
	if p.HasCancellation(rec.ID) {
		return errs.Wrapf(ErrCancellationSeen, "cancellation %s", rec.ID)
	}
	if rec.Amount <= 0 || rec.Amount > p.Refundable() {
		return ErrInvalidCancelAmount
	}
	p.metadata.Cancellations = append(p.metadata.Cancellations, rec)
	if p.status == StatusPaid {
		p.refundedAmount += rec.Amount
	}
	p.cancellationRequested = false
	if p.status == StatusPrepared || p.refundedAmount >= p.amount {
		p.touch(StatusCancelled, now)
		return nil
	}
	p.updatedAt = now
	p.version++
	return nil
}

func (p *Payment) requirePrepared(to Status) error {
	if p.status != StatusPrepared {
		return errs.Wrapf(ErrInvalidTransition, "%s -> %s", p.status, to)
	}
	if p.version != p.persistedVersion {
		return errs.Wrap(ErrInvalidTransition, "payment already modified in this unit of work")
	}
	return nil
}

func (p *Payment) touch(to Status, now time.Time) {
	p.status = to
	p.updatedAt = now
	p.version++
}

func (p *Payment) snapshot(gp GatewayPayment, now time.Time) {
	p.metadata.Snapshots = append(p.metadata.Snapshots, GatewaySnapshot{
		Status:    gp.Status,
		Amount:    gp.Amount,
		OrderRef:  gp.OrderRef,
		FetchedAt: now,
	})
}
