package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"booking-marketplace/internal/domain/payment"
	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/internal/domain/user"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/pkg/clock"
	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	paymentExpiredReason   = "payment window expired"
	lateRefundReason       = "reservation no longer accepts this payment"
	defaultRefundBatch     = 50
	defaultExpiryBatch     = 100
	settlementConcurrency  = 4
	liveStageConstraint    = "payments_live_stage_uidx"
	webhookExternalIDField = "external_payment_id"
)

var (
	ErrPaymentNotFound  = errs.New("payment not found")
	ErrPaymentForbidden = errs.New("actor may not manage this payment")
	ErrInvalidWebhook   = errs.New("webhook payload is invalid")
)

type PaymentIntent struct {
	PaymentID         uuid.UUID
	ReservationID     uuid.UUID
	Stage             payment.Stage
	ExternalPaymentID string
	OrderRef          string
	Amount            int64
	Currency          string
	CheckoutParams    map[string]string
	ExpiresAt         time.Time
}

type ConfirmationResult struct {
	PaymentID         uuid.UUID
	ReservationID     uuid.UUID
	Stage             payment.Stage
	PaymentStatus     payment.Status
	ReservationStatus reservation.Status
	// AlreadyProcessed is set when the payment had already left the prepared state.
	AlreadyProcessed bool
	// RefundScheduled is set when the money arrived after the reservation stopped accepting it.
	RefundScheduled bool
	PointsEarned    int64
	CustomerID      uuid.UUID
}

type CancellationResult struct {
	PaymentID       uuid.UUID
	Status          payment.Status
	CancelledAmount int64
	RefundedTotal   int64
	Refundable      int64
}

type PaymentCommands interface {
	Prepare(ctx context.Context, reservationID uuid.UUID, stage payment.Stage, actor user.Actor) (*PaymentIntent, error)
	// Confirm fetches the authoritative gateway record and applies it.
	Confirm(ctx context.Context, externalPaymentID string) (*ConfirmationResult, error)
	HandleGatewayCallback(ctx context.Context, payload []byte, signature string) (*ConfirmationResult, error)
	Cancel(ctx context.Context, paymentID uuid.UUID, actor user.Actor, reason string, amount *int64) (*CancellationResult, error)
	SettleCancellation(ctx context.Context, paymentID uuid.UUID) error
	ProcessPendingCancellations(ctx context.Context, limit int) (int, error)
	// ExpireAbandoned fails prepared payments whose checkout window has passed.
	ExpireAbandoned(ctx context.Context, limit int) (int, error)
}

type paymentUseCaseImpl struct {
	uow         shared.UnitOfWork
	gateway     PaymentGateway
	cache       shared.BalanceCache
	policy      point.Policy
	clock       clock.Clock
	preparedTTL time.Duration
	currency    string
	refundBatch int
	expiryBatch int
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	cache shared.BalanceCache,
	policy point.Policy,
	clk clock.Clock,
	cfg config.PaymentConfig,
) PaymentCommands {
	refundBatch, expiryBatch := int(cfg.RefundBatch), int(cfg.ExpiryBatch)
	if refundBatch <= 0 {
		refundBatch = defaultRefundBatch
	}
	if expiryBatch <= 0 {
		expiryBatch = defaultExpiryBatch
	}
	return &paymentUseCaseImpl{
		uow:         uow,
		gateway:     gateway,
		cache:       cache,
		policy:      policy,
		clock:       clk,
		preparedTTL: cfg.PreparedTTL,
		currency:    cfg.Currency,
		refundBatch: refundBatch,
		expiryBatch: expiryBatch,
	}
}

func (p *paymentUseCaseImpl) Prepare(ctx context.Context, reservationID uuid.UUID, stage payment.Stage, actor user.Actor) (*PaymentIntent, error) {
	if !stage.IsValid() {
		return nil, payment.ErrInvalidStage
	}

	var (
		amount     int64
		customerID uuid.UUID
	)
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := p.loadPayable(ctx, tx, reservationID, stage, actor)
		if err != nil {
			return err
		}
		amount, err = payment.AmountForStage(res, stage)
		if err != nil {
			return err
		}
		customerID = res.CustomerID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := p.clock.Now()
	expiresAt := now.Add(p.preparedTTL)
	orderRef := payment.OrderRefFor(reservationID, stage)
	intent, err := p.gateway.Prepare(ctx, PrepareIntentRequest{
		OrderRef:   orderRef,
		Amount:     amount,
		Currency:   p.currency,
		CustomerID: customerID,
		ExpiresAt:  expiresAt,
	})
	if err != nil {
		return nil, err
	}

	var created *payment.Payment
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := p.loadPayable(ctx, tx, reservationID, stage, actor)
		if err != nil {
			return err
		}
		// the amount may not move between the two units of work
		current, err := payment.AmountForStage(res, stage)
		if err != nil {
			return err
		}
		if current != amount {
			return errs.Wrapf(payment.ErrStageNotAllowed, "amount changed from %d to %d", amount, current)
		}

		created, err = payment.NewPayment(payment.NewInput{
			ReservationID: reservationID,
			Stage:         stage,
			Amount:        amount,
			Intent:        intent,
			ExpiresAt:     expiresAt,
		}, p.clock.Now())
		if err != nil {
			return err
		}
		if err = tx.Payments().Create(ctx, tx.DB(), created); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) && infra.ConstraintOf(err) == liveStageConstraint {
				return payment.ErrDuplicateStage
			}
			return storeErr(err)
		}
		return nil
	})
	if err != nil {
		// the gateway holds an intent nobody will pay; void it so it cannot be used later
		p.voidOrphanIntent(ctx, intent.ExternalID, amount)
		return nil, err
	}

	return &PaymentIntent{
		PaymentID:         created.ID(),
		ReservationID:     reservationID,
		Stage:             stage,
		ExternalPaymentID: created.ExternalID(),
		OrderRef:          created.OrderRef(),
		Amount:            created.Amount(),
		Currency:          p.currency,
		CheckoutParams:    intent.CheckoutParams,
		ExpiresAt:         created.ExpiresAt(),
	}, nil
}

// loadPayable checks the actor and the live payments of the stage. An expired prepared intent
// is failed so the stage can be prepared again.
func (p *paymentUseCaseImpl) loadPayable(
	ctx context.Context,
	tx shared.Tx,
	reservationID uuid.UUID,
	stage payment.Stage,
	actor user.Actor,
) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindByID(ctx, tx.DB(), reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, storeErr(err)
	}
	if !actor.IsPrivileged() && !res.IsOwnedBy(actor.ID) {
		return nil, ErrReservationForbidden
	}

	existing, err := tx.Payments().ListByReservation(ctx, tx.DB(), reservationID)
	if err != nil {
		return nil, storeErr(err)
	}
	now := p.clock.Now()
	for _, e := range existing {
		if e.Stage() != stage {
			continue
		}
		switch {
		case e.IsExpired(now):
			if err := e.MarkFailed(paymentExpiredReason, nil, now); err != nil {
				return nil, err
			}
			if err := tx.Payments().Update(ctx, tx.DB(), e); err != nil {
				return nil, storeErr(err)
			}
		case e.Status() == payment.StatusPrepared, e.Status() == payment.StatusPaid, e.Status() == payment.StatusCancelled:
			return nil, payment.ErrDuplicateStage
		}
	}
	return res, nil
}

func (p *paymentUseCaseImpl) voidOrphanIntent(ctx context.Context, externalID string, amount int64) {
	_, err := p.gateway.CancelPayment(ctx, CancelIntentRequest{
		ExternalID:     externalID,
		Amount:         amount,
		Reason:         "intent not stored",
		IdempotencyKey: "orphan-" + externalID,
	})
	if err != nil {
		slog.Error("failed to void orphaned gateway intent, manual reconciliation required",
			"external_payment_id", externalID,
			"error", err.Error())
	}
}

func (p *paymentUseCaseImpl) HandleGatewayCallback(ctx context.Context, payload []byte, signature string) (*ConfirmationResult, error) {
	if !p.gateway.VerifySignature(payload, signature) {
		return nil, payment.ErrInvalidSignature
	}

	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode webhook"), ErrInvalidWebhook)
	}
	externalID, _ := body[webhookExternalIDField].(string)
	if externalID == "" {
		return nil, errs.Wrapf(ErrInvalidWebhook, "missing %s", webhookExternalIDField)
	}
	return p.Confirm(ctx, externalID)
}

func (p *paymentUseCaseImpl) Confirm(ctx context.Context, externalPaymentID string) (*ConfirmationResult, error) {
	current, err := p.findByExternalID(ctx, externalPaymentID)
	if err != nil {
		return nil, err
	}
	if current.Status().IsTerminal() {
		return alreadyProcessed(current), nil
	}

	gp, err := p.gateway.GetPayment(ctx, externalPaymentID)
	if err != nil {
		return nil, err
	}

	var (
		result    *ConfirmationResult
		verifyErr error
		flagged   []uuid.UUID
	)
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result, verifyErr, flagged = nil, nil, nil
		now := p.clock.Now()

		pay, err := tx.Payments().FindByExternalID(ctx, tx.DB(), externalPaymentID)
		if err != nil {
			return storeErr(err)
		}
		if pay.Status().IsTerminal() {
			result = alreadyProcessed(pay)
			return nil
		}

		switch gp.Status {
		case payment.GatewayStatusPending:
			// nothing changes until the gateway settles
			return errs.Wrap(payment.ErrStatusMismatch, "gateway payment is still pending")
		case payment.GatewayStatusCancelled:
			if err = pay.MarkCancelled(gp, now); err != nil {
				return err
			}
			result = &ConfirmationResult{PaymentStatus: payment.StatusCancelled}
			return p.savePaymentOutcome(ctx, tx, pay, reservation.EventPaymentCancelled, now, result)
		}

		if verifyErr = pay.Verify(gp); verifyErr != nil {
			reason := verifyErr.Error()
			if gp.Status == payment.GatewayStatusFailed && gp.FailReason != "" {
				reason = gp.FailReason
			}
			if err = pay.MarkFailed(reason, &gp, now); err != nil {
				return err
			}
			result = &ConfirmationResult{PaymentStatus: payment.StatusFailed}
			return p.savePaymentOutcome(ctx, tx, pay, reservation.EventPaymentFailed, now, result)
		}

		if err = pay.MarkPaid(gp, now); err != nil {
			return err
		}
		result, err = p.applySettlement(ctx, tx, pay, now)
		if err != nil {
			return err
		}
		if result.RefundScheduled {
			flagged = append(flagged, pay.ID())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.PointsEarned > 0 {
		if cerr := p.cache.Invalidate(ctx, result.CustomerID); cerr != nil {
			slog.Warn("failed to invalidate point balance cache", "error", cerr.Error())
		}
	}
	for _, id := range flagged {
		if serr := p.SettleCancellation(ctx, id); serr != nil {
			slog.Warn("late payment refund deferred to retry sweep", "payment_id", id.String(), "error", serr.Error())
		}
	}
	if verifyErr != nil {
		return result, verifyErr
	}
	return result, nil
}

// applySettlement runs the reservation transition for a payment that was just marked paid.
// A reservation that can no longer take it keeps the money flagged for refund.
func (p *paymentUseCaseImpl) applySettlement(ctx context.Context, tx shared.Tx, pay *payment.Payment, now time.Time) (*ConfirmationResult, error) {
	res, err := tx.Reservations().FindByID(ctx, tx.DB(), pay.ReservationID())
	if err != nil {
		return nil, storeErr(err)
	}
	payments, err := tx.Payments().ListByReservation(ctx, tx.DB(), res.ID())
	if err != nil {
		return nil, storeErr(err)
	}
	for i, e := range payments {
		if e.ID() == pay.ID() {
			payments[i] = pay
		}
	}
	settlement := settlementOf(payments)

	result := &ConfirmationResult{
		PaymentID:     pay.ID(),
		ReservationID: res.ID(),
		Stage:         pay.Stage(),
		PaymentStatus: payment.StatusPaid,
		CustomerID:    res.CustomerID(),
	}

	var transitionErr error
	switch pay.Stage() {
	case payment.StageDeposit:
		transitionErr = res.Confirm(settlement, now)
	case payment.StageFinal:
		if transitionErr = res.Complete(settlement, now); transitionErr == nil {
			result.PointsEarned, err = creditCompletion(ctx, tx, res, p.policy, now)
			if err != nil {
				return nil, err
			}
		}
	}

	if transitionErr != nil {
		slog.Warn("payment arrived for a reservation that cannot accept it",
			"payment_id", pay.ID().String(),
			"reservation_id", res.ID().String(),
			"reservation_status", res.Status().String(),
			"error", transitionErr.Error())
		pay.RequestCancellation(lateRefundReason, now)
		result.RefundScheduled = true
	}

	if err = tx.Payments().Update(ctx, tx.DB(), pay); err != nil {
		return nil, storeErr(err)
	}
	if transitionErr == nil {
		if err = tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return nil, storeErr(err)
		}
	}
	events := res.PullEvents()
	if result.RefundScheduled {
		events = append(events, reservation.NewEvent(reservation.EventRefundScheduled, res.ID(), now, map[string]any{
			"payment_id": pay.ID().String(),
			"stage":      pay.Stage().String(),
			"amount":     pay.Refundable(),
			"reason":     lateRefundReason,
		}))
	}
	if err = enqueueEvents(ctx, tx, events); err != nil {
		return nil, err
	}

	result.ReservationStatus = res.Status()
	return result, nil
}

func (p *paymentUseCaseImpl) savePaymentOutcome(
	ctx context.Context,
	tx shared.Tx,
	pay *payment.Payment,
	event reservation.EventType,
	now time.Time,
	result *ConfirmationResult,
) error {
	if err := tx.Payments().Update(ctx, tx.DB(), pay); err != nil {
		return storeErr(err)
	}
	res, err := tx.Reservations().FindByID(ctx, tx.DB(), pay.ReservationID())
	if err != nil {
		return storeErr(err)
	}
	result.PaymentID = pay.ID()
	result.ReservationID = pay.ReservationID()
	result.Stage = pay.Stage()
	result.ReservationStatus = res.Status()
	return enqueueEvents(ctx, tx, []reservation.Event{
		reservation.NewEvent(event, pay.ReservationID(), now, map[string]any{
			"payment_id":  pay.ID().String(),
			"stage":       pay.Stage().String(),
			"customer_id": res.CustomerID().String(),
			"reason":      pay.Metadata().FailureReason,
		}),
	})
}

func (p *paymentUseCaseImpl) Cancel(ctx context.Context, paymentID uuid.UUID, actor user.Actor, reason string, amount *int64) (*CancellationResult, error) {
	var (
		externalID string
		resolved   int64
		version    int64
	)
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pay, err := p.findByID(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		res, err := tx.Reservations().FindByID(ctx, tx.DB(), pay.ReservationID())
		if err != nil {
			return storeErr(err)
		}
		sched, err := tx.Reads().ScheduleByShopID(ctx, res.ShopID())
		if err != nil {
			return storeErr(err)
		}
		if !canManage(actor, sched) {
			return ErrPaymentForbidden
		}
		resolved, err = pay.ResolveCancelAmount(amount)
		if err != nil {
			return err
		}
		externalID, version = pay.ExternalID(), pay.Version()
		return nil
	})
	if err != nil {
		return nil, err
	}

	rec, err := p.gateway.CancelPayment(ctx, CancelIntentRequest{
		ExternalID:     externalID,
		Amount:         resolved,
		Reason:         reason,
		IdempotencyKey: fmt.Sprintf("%s-%d", paymentID, version),
	})
	if err != nil {
		slog.Error("gateway cancellation failed, manual reconciliation may be required",
			"payment_id", paymentID.String(),
			"amount", resolved,
			"error", err.Error())
		return nil, err
	}
	return p.recordCancellation(ctx, paymentID, rec)
}

func (p *paymentUseCaseImpl) recordCancellation(ctx context.Context, paymentID uuid.UUID, rec payment.CancellationRecord) (*CancellationResult, error) {
	var result *CancellationResult
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := p.clock.Now()
		pay, err := p.findByID(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		result = &CancellationResult{PaymentID: pay.ID(), CancelledAmount: rec.Amount}
		if pay.HasCancellation(rec.ID) {
			// a concurrent caller sent the same idempotency key and already booked this refund
			slog.Info("gateway cancellation already recorded", "payment_id", pay.ID().String(), "cancellation_id", rec.ID)
			result.Status, result.RefundedTotal, result.Refundable = pay.Status(), pay.RefundedAmount(), pay.Refundable()
			return nil
		}
		if rec.CancelledAt.IsZero() {
			rec.CancelledAt = now
		}
		if err = pay.RecordCancellation(rec, now); err != nil {
			return err
		}
		if err = tx.Payments().Update(ctx, tx.DB(), pay); err != nil {
			return storeErr(err)
		}
		result.Status, result.RefundedTotal, result.Refundable = pay.Status(), pay.RefundedAmount(), pay.Refundable()
		return enqueueEvents(ctx, tx, []reservation.Event{
			reservation.NewEvent(reservation.EventPaymentCancelled, pay.ReservationID(), now, map[string]any{
				"payment_id": pay.ID().String(),
				"stage":      pay.Stage().String(),
				"amount":     rec.Amount,
				"reason":     rec.Reason,
			}),
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *paymentUseCaseImpl) SettleCancellation(ctx context.Context, paymentID uuid.UUID) error {
	var pending *payment.Payment
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pay, err := p.findByID(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		pending = pay
		return nil
	})
	if err != nil {
		return err
	}
	if !pending.CancellationRequested() || pending.Refundable() <= 0 {
		return nil
	}

	rec, err := p.gateway.CancelPayment(ctx, CancelIntentRequest{
		ExternalID:     pending.ExternalID(),
		Amount:         pending.Refundable(),
		Reason:         pending.CancelReason(),
		IdempotencyKey: fmt.Sprintf("%s-%d", pending.ID(), pending.Version()),
	})
	if err != nil {
		return err
	}
	_, err = p.recordCancellation(ctx, paymentID, rec)
	return err
}

func (p *paymentUseCaseImpl) ProcessPendingCancellations(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = p.refundBatch
	}

	var pending []*payment.Payment
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var lerr error
		pending, lerr = tx.Payments().ListPendingCancellation(ctx, tx.DB(), int32(limit)) // #nosec G115 -- bounded batch size
		return storeErr(lerr)
	})
	if err != nil {
		return 0, err
	}

	var settled atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(settlementConcurrency)
	for _, pay := range pending {
		g.Go(func() error {
			if serr := p.SettleCancellation(gctx, pay.ID()); serr != nil {
				slog.Warn("pending cancellation still unsettled",
					"payment_id", pay.ID().String(),
					"error", serr.Error())
				return nil
			}
			settled.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(settled.Load()), err
	}
	return int(settled.Load()), nil
}

func (p *paymentUseCaseImpl) ExpireAbandoned(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = p.expiryBatch
	}

	var expired []*payment.Payment
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var lerr error
		expired, lerr = tx.Payments().ListExpiredPrepared(ctx, tx.DB(), p.clock.Now(), int32(limit)) // #nosec G115 -- bounded batch size
		return storeErr(lerr)
	})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, candidate := range expired {
		err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			now := p.clock.Now()
			pay, err := p.findByID(ctx, tx, candidate.ID())
			if err != nil {
				return err
			}
			if !pay.IsExpired(now) {
				return nil
			}
			if err = pay.MarkFailed(paymentExpiredReason, nil, now); err != nil {
				return err
			}
			return storeErr(tx.Payments().Update(ctx, tx.DB(), pay))
		})
		if err != nil {
			slog.Warn("failed to expire prepared payment", "payment_id", candidate.ID().String(), "error", err.Error())
			continue
		}
		count++
	}
	return count, nil
}

func (p *paymentUseCaseImpl) findByExternalID(ctx context.Context, externalID string) (*payment.Payment, error) {
	var found *payment.Payment
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pay, err := tx.Payments().FindByExternalID(ctx, tx.DB(), externalID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPaymentNotFound
			}
			return storeErr(err)
		}
		found = pay
		return nil
	})
	return found, err
}

func (p *paymentUseCaseImpl) findByID(ctx context.Context, tx shared.Tx, id uuid.UUID) (*payment.Payment, error) {
	pay, err := tx.Payments().FindByID(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, storeErr(err)
	}
	return pay, nil
}

func alreadyProcessed(pay *payment.Payment) *ConfirmationResult {
	return &ConfirmationResult{
		PaymentID:        pay.ID(),
		ReservationID:    pay.ReservationID(),
		Stage:            pay.Stage(),
		PaymentStatus:    pay.Status(),
		AlreadyProcessed: true,
	}
}
