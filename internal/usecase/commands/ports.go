package commands

import (
	"context"
	"encoding/json"
	"time"

	"booking-marketplace/internal/domain/payment"
	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

// PaymentGateway is the external payment provider. Implementations retry transient failures
// and report exhaustion as payment.ErrGatewayUnavailable.
type PaymentGateway interface {
	Prepare(ctx context.Context, req PrepareIntentRequest) (payment.PreparedIntent, error)
	GetPayment(ctx context.Context, externalID string) (payment.GatewayPayment, error)
	CancelPayment(ctx context.Context, req CancelIntentRequest) (payment.CancellationRecord, error)
	VerifySignature(payload []byte, signature string) bool
}

type PrepareIntentRequest struct {
	OrderRef   string
	Amount     int64
	Currency   string
	CustomerID uuid.UUID
	ExpiresAt  time.Time
}

type CancelIntentRequest struct {
	ExternalID string
	Amount     int64
	Reason     string
	// IdempotencyKey lets the gateway collapse retried cancellations of the same slice.
	IdempotencyKey string
}

// storeErr tags repository failures with the taxonomy the handlers map to status codes.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindStaleVersion), infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrConcurrentModification)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrNotFound)
	default:
		var repoErr infra.RepositoryError
		if errs.As(err, &repoErr) {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return err
	}
}

// enqueueEvents writes reservation events to the outbox inside the caller's transaction.
func enqueueEvents(ctx context.Context, tx shared.Tx, events []reservation.Event) error {
	for _, ev := range events {
		payload, err := json.Marshal(map[string]any{
			"reservation_id": ev.ReservationID,
			"event_type":     ev.Type.String(),
			"occurred_at":    ev.OccurredAt,
			"payload":        ev.Payload,
		})
		if err != nil {
			return errs.Wrap(err, "encode reservation event")
		}
		if err := tx.Notifications().CreateJob(ctx, tx.DB(), shared.NotificationKindReservationEvent, ev.Type.String(), payload, ev.OccurredAt); err != nil {
			return storeErr(err)
		}
	}
	return nil
}

// settlementOf derives which stages are paid from the stored payments.
func settlementOf(payments []*payment.Payment) reservation.Settlement {
	var s reservation.Settlement
	for _, p := range payments {
		if p.Status() != payment.StatusPaid {
			continue
		}
		switch p.Stage() {
		case payment.StageDeposit:
			s.DepositPaid = true
		case payment.StageFinal:
			s.FinalPaid = true
		}
	}
	return s
}
