//go:build unit || e2e

package builder

import (
	"time"

	"booking-marketplace/internal/domain/payment"

	"github.com/google/uuid"
)

type PaymentBuilder struct {
	ID                    uuid.UUID
	ReservationID         uuid.UUID
	Stage                 payment.Stage
	ExternalID            string
	Amount                int64
	Status                payment.Status
	RefundedAmount        int64
	CancellationRequested bool
	ExpiresAt             time.Time
	Version               int64
	Now                   time.Time
}

func NewPaymentBuilder() *PaymentBuilder {
	now := time.Date(2030, time.June, 1, 3, 0, 0, 0, time.UTC)
	return &PaymentBuilder{
		ID:            uuid.New(),
		ReservationID: uuid.New(),
		Stage:         payment.StageDeposit,
		ExternalID:    "pay_" + uuid.NewString(),
		Amount:        20000,
		Status:        payment.StatusPrepared,
		ExpiresAt:     now.Add(30 * time.Minute),
		Version:       1,
		Now:           now,
	}
}

func (b *PaymentBuilder) With(mutate func(*PaymentBuilder)) *PaymentBuilder {
	mutate(b)
	return b
}

func (b *PaymentBuilder) WithReservationID(id uuid.UUID) *PaymentBuilder {
	b.ReservationID = id
	return b
}

func (b *PaymentBuilder) WithStage(stage payment.Stage) *PaymentBuilder {
	b.Stage = stage
	return b
}

func (b *PaymentBuilder) WithExternalID(id string) *PaymentBuilder {
	b.ExternalID = id
	return b
}

func (b *PaymentBuilder) WithAmount(amount int64) *PaymentBuilder {
	b.Amount = amount
	return b
}

func (b *PaymentBuilder) WithStatus(status payment.Status) *PaymentBuilder {
	b.Status = status
	return b
}

func (b *PaymentBuilder) WithRefunded(amount int64) *PaymentBuilder {
	b.RefundedAmount = amount
	return b
}

func (b *PaymentBuilder) WithCancellationRequested() *PaymentBuilder {
	b.CancellationRequested = true
	return b
}

func (b *PaymentBuilder) WithExpiresAt(t time.Time) *PaymentBuilder {
	b.ExpiresAt = t
	return b
}

// GatewayPaid returns the gateway record that verifies this payment.
func (b *PaymentBuilder) GatewayPaid() payment.GatewayPayment {
	paidAt := b.Now
	return payment.GatewayPayment{
		ExternalID: b.ExternalID,
		Status:     payment.GatewayStatusPaid,
		Amount:     b.Amount,
		OrderRef:   payment.OrderRefFor(b.ReservationID, b.Stage),
		PaidAt:     &paidAt,
	}
}

func (b *PaymentBuilder) BuildStored() *payment.Payment {
	var paidAt *time.Time
	if b.Status == payment.StatusPaid || b.RefundedAmount > 0 {
		t := b.Now
		paidAt = &t
	}
	p, err := payment.Reconstruct(payment.ReconstructInput{
		ID:                    b.ID,
		ReservationID:         b.ReservationID,
		Stage:                 b.Stage,
		ExternalID:            b.ExternalID,
		OrderRef:              payment.OrderRefFor(b.ReservationID, b.Stage),
		Amount:                b.Amount,
		Status:                b.Status,
		CancellationRequested: b.CancellationRequested,
		RefundedAmount:        b.RefundedAmount,
		ExpiresAt:             b.ExpiresAt,
		PaidAt:                paidAt,
		Version:               b.Version,
		CreatedAt:             b.Now,
		UpdatedAt:             b.Now,
	})
	if err != nil {
		panic(err)
	}
	return p
}
