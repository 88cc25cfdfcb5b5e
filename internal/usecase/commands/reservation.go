package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"booking-marketplace/internal/domain/payment"
	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/internal/domain/schedule"
	"booking-marketplace/internal/domain/user"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/pkg/clock"
	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/usecase/queries"
	"booking-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	reserveEndpoint        = "POST /reservations"
	idempotencyTTL         = 24 * time.Hour
	abandonedCancelReason  = "payment window expired"
	defaultAbandonedBatch  = 100
	noShowVoidReason       = "no-show"
	cancelledPaymentReason = "reservation cancelled"
)

var (
	ErrShopNotFound          = errs.New("shop not found")
	ErrResourceNotFound      = errs.New("resource not found")
	ErrResourceInactive      = errs.New("resource is not accepting bookings")
	ErrServiceNotFound       = errs.New("service is not offered by this shop")
	ErrReservationNotFound   = errs.New("reservation not found")
	ErrReservationForbidden  = errs.New("actor may not change this reservation")
	ErrIdempotencyResultLost = errs.New("completed request missing result reservation ID")
)

type ReserveItem struct {
	ServiceID uuid.UUID `json:"service_id"`
	Quantity  int       `json:"quantity"`
}

type ReserveInput struct {
	CustomerID      uuid.UUID     `json:"customer_id"`
	ShopID          uuid.UUID     `json:"shop_id"`
	ResourceID      *uuid.UUID    `json:"resource_id,omitempty"`
	Date            time.Time     `json:"date"`
	StartTime       string        `json:"start_time"`
	DurationMinutes int           `json:"duration_minutes"`
	Items           []ReserveItem `json:"items"`
	PointsToUse     int64         `json:"points_to_use"`
}

type ReserveResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationCommands interface {
	Reserve(ctx context.Context, in ReserveInput, idempotencyKey uuid.UUID) (*ReserveResult, error)
	Cancel(ctx context.Context, reservationID uuid.UUID, actor user.Actor, reason string) (*queries.ReservationView, error)
	Complete(ctx context.Context, reservationID uuid.UUID, actor user.Actor) (*queries.ReservationView, error)
	MarkNoShow(ctx context.Context, reservationID uuid.UUID, actor user.Actor) (*queries.ReservationView, error)
	// CancelAbandoned cancels requested reservations whose deposit window closed without a payment.
	CancelAbandoned(ctx context.Context, limit int) (int, error)
}

// CancellationSettler returns money for payments flagged for cancellation.
type CancellationSettler interface {
	SettleCancellation(ctx context.Context, paymentID uuid.UUID) error
}

type reservationUseCaseImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	settler            CancellationSettler
	cache              shared.BalanceCache
	policy             point.Policy
	clock              clock.Clock
	preparedTTL        time.Duration
	idempotencyTTL     time.Duration
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	settler CancellationSettler,
	cache shared.BalanceCache,
	policy point.Policy,
	clk clock.Clock,
	cfg config.PaymentConfig,
) ReservationCommands {
	ttl := cfg.IdempotencyTTL
	if ttl <= 0 {
		ttl = idempotencyTTL
	}
	return &reservationUseCaseImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		settler:            settler,
		cache:              cache,
		policy:             policy,
		clock:              clk,
		preparedTTL:        cfg.PreparedTTL,
		idempotencyTTL:     ttl,
	}
}

func (r *reservationUseCaseImpl) Reserve(ctx context.Context, in ReserveInput, idempotencyKey uuid.UUID) (*ReserveResult, error) {
	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}
	startMinute, err := schedule.ParseClock(in.StartTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	requestHash := r.calculateRequestHash(in)

	var (
		reservationID uuid.UUID
		replayed      bool
	)
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := r.clock.Now()

		existing, ierr := r.claimIdempotencyKey(ctx, tx, idempotencyKey, in.CustomerID, requestHash, now)
		if ierr != nil {
			return ierr
		}
		if existing != nil {
			reservationID, replayed = *existing, true
			return nil
		}

		res, ierr := r.buildReservation(ctx, tx, in, startMinute, now)
		if ierr != nil {
			return ierr
		}

		id, ierr := r.insertReservation(ctx, tx, res)
		if ierr != nil {
			return ierr
		}

		if in.PointsToUse > 0 {
			if ierr = r.usePoints(ctx, tx, in.CustomerID, in.PointsToUse, id, now); ierr != nil {
				return ierr
			}
		}

		if ierr = enqueueEvents(ctx, tx, res.PullEvents()); ierr != nil {
			return ierr
		}

		if ierr = tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, in.CustomerID, r.calculateIDHash(id), id); ierr != nil {
			return storeErr(ierr)
		}
		reservationID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !replayed && in.PointsToUse > 0 {
		r.invalidateBalances(ctx, in.CustomerID)
	}

	// Read-after-write: Get the complete reservation view from read store
	view, err := r.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &ReserveResult{Reservation: view, IsReplayed: replayed}, nil
}

// claimIdempotencyKey returns the reservation of a completed earlier request, or nil once this
// request owns the key.
func (r *reservationUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	requestHash string,
	now time.Time,
) (*uuid.UUID, error) {
	expiresAt := now.Add(r.idempotencyTTL)
	inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, reserveEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, storeErr(err)
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, storeErr(err)
		}
		// the previous record expired; take it over
		claimed, cerr := tx.Idempotency().ClaimExpired(ctx, tx.DB(), key, userID, requestHash, expiresAt, now)
		if cerr != nil {
			return nil, storeErr(cerr)
		}
		if !claimed {
			return nil, errs.ErrIdempotencyInProgress
		}
		return nil, nil
	}

	if existing.Endpoint != reserveEndpoint || existing.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyKeyReused
	}
	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultReservationID == nil {
			return nil, ErrIdempotencyResultLost
		}
		return existing.ResultReservationID, nil
	default:
		return nil, errs.ErrIdempotencyInProgress
	}
}

func (r *reservationUseCaseImpl) buildReservation(
	ctx context.Context,
	tx shared.Tx,
	in ReserveInput,
	startMinute int,
	now time.Time,
) (*reservation.Reservation, error) {
	sched, err := tx.Reads().ScheduleByShopID(ctx, in.ShopID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, storeErr(err)
	}

	resourceKey, err := sched.ResourceKey(in.ResourceID)
	if err != nil {
		return nil, err
	}
	if in.ResourceID != nil && *in.ResourceID != uuid.Nil {
		if err := r.validateResource(ctx, tx, in.ShopID, *in.ResourceID); err != nil {
			return nil, err
		}
	}

	date := sched.BusinessDate(in.Date)
	window, err := sched.ResolveWindow(date, startMinute, in.DurationMinutes)
	if err != nil {
		return nil, err
	}
	start, end := sched.AbsoluteRange(date, window)
	slot := reservation.RestoreTimeSlot(date, window.Start, in.DurationMinutes, start, end)

	items, err := r.priceLineItems(ctx, tx, in.ShopID, in.Items)
	if err != nil {
		return nil, err
	}

	return reservation.NewReservation(reservation.NewInput{
		CustomerID:         in.CustomerID,
		ShopID:             in.ShopID,
		ResourceID:         in.ResourceID,
		ResourceKey:        resourceKey,
		Slot:               slot,
		LineItems:          items,
		PointsUsed:         in.PointsToUse,
		DepositRatePercent: sched.DepositRatePercent(),
	}, now)
}

func (r *reservationUseCaseImpl) validateResource(ctx context.Context, tx shared.Tx, shopID, resourceID uuid.UUID) error {
	res, err := tx.Reads().ResourceByID(ctx, shopID, resourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrResourceNotFound
		}
		return storeErr(err)
	}
	if !res.Active {
		return ErrResourceInactive
	}
	return nil
}

// priceLineItems takes unit prices from the shop catalogue, never from the request.
func (r *reservationUseCaseImpl) priceLineItems(ctx context.Context, tx shared.Tx, shopID uuid.UUID, reqItems []ReserveItem) ([]reservation.LineItem, error) {
	if len(reqItems) == 0 {
		return nil, reservation.ErrEmptyLineItems
	}
	ids := make([]uuid.UUID, len(reqItems))
	for i, it := range reqItems {
		ids[i] = it.ServiceID
	}
	catalogue, err := tx.Reads().ServicesByIDs(ctx, shopID, ids)
	if err != nil {
		return nil, storeErr(err)
	}

	items := make([]reservation.LineItem, 0, len(reqItems))
	for _, it := range reqItems {
		svc, ok := catalogue[it.ServiceID]
		if !ok || !svc.Active {
			return nil, errs.Wrapf(ErrServiceNotFound, "service %s", it.ServiceID)
		}
		li, err := reservation.NewLineItem(it.ServiceID, it.Quantity, svc.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, nil
}

// insertReservation scans for an overlapping holder first and relies on the exclusion
// constraint for the race the scan cannot see.
func (r *reservationUseCaseImpl) insertReservation(ctx context.Context, tx shared.Tx, res *reservation.Reservation) (uuid.UUID, error) {
	if holder, err := r.findHolder(ctx, tx, res); err != nil {
		return uuid.Nil, err
	} else if holder != uuid.Nil {
		return uuid.Nil, &reservation.ConflictError{ConflictingReservationID: holder}
	}

	id, err := tx.Reservations().Create(ctx, tx.DB(), res)
	if err == nil {
		return id, nil
	}
	if !infra.IsKind(err, infra.KindConflict) {
		return uuid.Nil, storeErr(err)
	}

	holder, herr := r.findHolder(ctx, tx, res)
	if herr != nil {
		slog.Warn("failed to look up conflicting reservation", "error", herr.Error())
	}
	return uuid.Nil, &reservation.ConflictError{ConflictingReservationID: holder}
}

func (r *reservationUseCaseImpl) findHolder(ctx context.Context, tx shared.Tx, res *reservation.Reservation) (uuid.UUID, error) {
	active, err := tx.Reservations().ListActiveInRange(ctx, tx.DB(), res.ShopID(), res.ResourceKey(), res.Slot().Start(), res.Slot().End())
	if err != nil {
		return uuid.Nil, storeErr(err)
	}
	if len(active) == 0 {
		return uuid.Nil, nil
	}
	return active[0].ReservationID, nil
}

func (r *reservationUseCaseImpl) usePoints(ctx context.Context, tx shared.Tx, userID uuid.UUID, amount int64, reservationID uuid.UUID, now time.Time) error {
	ledger, err := tx.Points().LoadLedger(ctx, tx.DB(), userID)
	if err != nil {
		return storeErr(err)
	}
	entry, err := ledger.Use(amount, &reservationID, now)
	if err != nil {
		return err
	}
	return storeErr(tx.Points().Append(ctx, tx.DB(), entry))
}

func (r *reservationUseCaseImpl) Cancel(ctx context.Context, reservationID uuid.UUID, actor user.Actor, reason string) (*queries.ReservationView, error) {
	var (
		flagged       []uuid.UUID
		pointsChanged bool
		customerID    uuid.UUID
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		flagged, pointsChanged = nil, false
		now := r.clock.Now()

		res, sched, err := r.load(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		customerID = res.CustomerID()

		by, err := cancellerFor(actor, res, sched)
		if err != nil {
			return err
		}
		if err = res.Cancel(by, reason, now); err != nil {
			return err
		}

		flagged, pointsChanged, err = r.releaseMoney(ctx, tx, res, reason, now)
		if err != nil {
			return err
		}
		return r.save(ctx, tx, res)
	})
	if err != nil {
		return nil, err
	}

	if pointsChanged {
		r.invalidateBalances(ctx, customerID)
	}
	r.settle(ctx, flagged)
	return r.reservationQueries.GetByIDSystem(ctx, reservationID)
}

// releaseMoney flags refundable payments and returns the points used at booking.
func (r *reservationUseCaseImpl) releaseMoney(
	ctx context.Context,
	tx shared.Tx,
	res *reservation.Reservation,
	reason string,
	now time.Time,
) ([]uuid.UUID, bool, error) {
	payments, err := tx.Payments().ListByReservation(ctx, tx.DB(), res.ID())
	if err != nil {
		return nil, false, storeErr(err)
	}

	var flagged []uuid.UUID
	var events []reservation.Event
	for _, p := range payments {
		if !p.RequestCancellation(cancelledPaymentReason, now) {
			continue
		}
		if p.Version() != p.ExpectedVersion() {
			if err := tx.Payments().Update(ctx, tx.DB(), p); err != nil {
				return nil, false, storeErr(err)
			}
		}
		flagged = append(flagged, p.ID())
		events = append(events, reservation.NewEvent(reservation.EventRefundScheduled, res.ID(), now, map[string]any{
			"payment_id": p.ID().String(),
			"stage":      p.Stage().String(),
			"amount":     p.Refundable(),
			"reason":     reason,
		}))
	}
	if err := enqueueEvents(ctx, tx, events); err != nil {
		return nil, false, err
	}

	used := res.Amounts().PointsUsed.Amount()
	if used <= 0 {
		return flagged, false, nil
	}
	ledger, err := tx.Points().LoadLedger(ctx, tx.DB(), res.CustomerID())
	if err != nil {
		return nil, false, storeErr(err)
	}
	entry, err := ledger.Refund(used, res.ID(), now)
	if err != nil {
		return nil, false, err
	}
	if err := tx.Points().Append(ctx, tx.DB(), entry); err != nil {
		return nil, false, storeErr(err)
	}
	return flagged, true, nil
}

func (r *reservationUseCaseImpl) Complete(ctx context.Context, reservationID uuid.UUID, actor user.Actor) (*queries.ReservationView, error) {
	var (
		earned     int64
		customerID uuid.UUID
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := r.clock.Now()

		res, sched, err := r.load(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if !canManage(actor, sched) {
			return ErrReservationForbidden
		}
		customerID = res.CustomerID()

		payments, err := tx.Payments().ListByReservation(ctx, tx.DB(), res.ID())
		if err != nil {
			return storeErr(err)
		}
		if err = res.Complete(settlementOf(payments), now); err != nil {
			return err
		}

		earned, err = creditCompletion(ctx, tx, res, r.policy, now)
		if err != nil {
			return err
		}
		return r.save(ctx, tx, res)
	})
	if err != nil {
		return nil, err
	}

	if earned > 0 {
		r.invalidateBalances(ctx, customerID)
	}
	return r.reservationQueries.GetByIDSystem(ctx, reservationID)
}

func (r *reservationUseCaseImpl) MarkNoShow(ctx context.Context, reservationID uuid.UUID, actor user.Actor) (*queries.ReservationView, error) {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := r.clock.Now()

		res, sched, err := r.load(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if !canManage(actor, sched) {
			return ErrReservationForbidden
		}
		if err = res.MarkNoShow(now); err != nil {
			return err
		}

		// the deposit is forfeited; open final-stage intents are voided
		payments, err := tx.Payments().ListByReservation(ctx, tx.DB(), res.ID())
		if err != nil {
			return storeErr(err)
		}
		for _, p := range payments {
			if p.Status() != payment.StatusPrepared {
				continue
			}
			if err = p.MarkFailed(noShowVoidReason, nil, now); err != nil {
				return err
			}
			if err = tx.Payments().Update(ctx, tx.DB(), p); err != nil {
				return storeErr(err)
			}
		}
		return r.save(ctx, tx, res)
	})
	if err != nil {
		return nil, err
	}
	return r.reservationQueries.GetByIDSystem(ctx, reservationID)
}

func (r *reservationUseCaseImpl) CancelAbandoned(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = defaultAbandonedBatch
	}
	cutoff := r.clock.Now().Add(-r.preparedTTL)

	var ids []uuid.UUID
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var lerr error
		ids, lerr = tx.Reservations().ListAbandoned(ctx, tx.DB(), cutoff, int32(limit)) // #nosec G115 -- bounded batch size
		return storeErr(lerr)
	})
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, id := range ids {
		done, err := r.cancelAbandoned(ctx, id)
		if err != nil {
			slog.Warn("failed to cancel abandoned reservation",
				"reservation_id", id.String(),
				"error", err.Error())
			continue
		}
		if done {
			cancelled++
		}
	}
	return cancelled, nil
}

func (r *reservationUseCaseImpl) cancelAbandoned(ctx context.Context, id uuid.UUID) (bool, error) {
	var (
		done          bool
		pointsChanged bool
		customerID    uuid.UUID
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		done, pointsChanged = false, false
		now := r.clock.Now()

		res, _, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if res.Status() != reservation.StatusRequested {
			return nil
		}
		customerID = res.CustomerID()

		payments, err := tx.Payments().ListByReservation(ctx, tx.DB(), res.ID())
		if err != nil {
			return storeErr(err)
		}
		for _, p := range payments {
			if !p.IsDeposit() {
				continue
			}
			// a deposit arrived or is still payable since the scan
			if p.Status() == payment.StatusPaid || (p.Status() == payment.StatusPrepared && !p.IsExpired(now)) {
				return nil
			}
			if p.IsExpired(now) {
				if err = p.MarkFailed(abandonedCancelReason, nil, now); err != nil {
					return err
				}
				if err = tx.Payments().Update(ctx, tx.DB(), p); err != nil {
					return storeErr(err)
				}
			}
		}

		if err = res.Cancel(reservation.CancelledByCustomer, abandonedCancelReason, now); err != nil {
			return err
		}
		if _, pointsChanged, err = r.releaseMoney(ctx, tx, res, abandonedCancelReason, now); err != nil {
			return err
		}
		if err = r.save(ctx, tx, res); err != nil {
			return err
		}
		done = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if pointsChanged {
		r.invalidateBalances(ctx, customerID)
	}
	return done, nil
}

func (r *reservationUseCaseImpl) load(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, *schedule.Schedule, error) {
	res, err := tx.Reservations().FindByID(ctx, tx.DB(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrReservationNotFound
		}
		return nil, nil, storeErr(err)
	}
	sched, err := tx.Reads().ScheduleByShopID(ctx, res.ShopID())
	if err != nil {
		return nil, nil, storeErr(err)
	}
	return res, sched, nil
}

// save persists the transition guarded by the version read and enqueues its events.
func (r *reservationUseCaseImpl) save(ctx context.Context, tx shared.Tx, res *reservation.Reservation) error {
	if err := tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
		return storeErr(err)
	}
	return enqueueEvents(ctx, tx, res.PullEvents())
}

func (r *reservationUseCaseImpl) settle(ctx context.Context, paymentIDs []uuid.UUID) {
	for _, id := range paymentIDs {
		if err := r.settler.SettleCancellation(ctx, id); err != nil {
			slog.Warn("payment cancellation deferred to retry sweep",
				"payment_id", id.String(),
				"error", err.Error())
		}
	}
}

func (r *reservationUseCaseImpl) invalidateBalances(ctx context.Context, userIDs ...uuid.UUID) {
	if err := r.cache.Invalidate(ctx, userIDs...); err != nil {
		slog.Warn("failed to invalidate point balance cache", "error", err.Error())
	}
}

func (r *reservationUseCaseImpl) calculateRequestHash(in ReserveInput) string {
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (r *reservationUseCaseImpl) calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}

// cancellerFor maps the actor to the side that cancels. System sweeps cancel on the customer's behalf.
func cancellerFor(actor user.Actor, res *reservation.Reservation, sched *schedule.Schedule) (reservation.Canceller, error) {
	switch {
	case actor.Role == user.RoleSystem:
		return reservation.CancelledByCustomer, nil
	case actor.Role == user.RoleAdmin:
		return reservation.CancelledByShop, nil
	case actor.Role == user.RoleShopOwner && sched.IsOwnedBy(actor.ID):
		return reservation.CancelledByShop, nil
	case res.IsOwnedBy(actor.ID):
		return reservation.CancelledByCustomer, nil
	default:
		return "", ErrReservationForbidden
	}
}

func canManage(actor user.Actor, sched *schedule.Schedule) bool {
	return actor.IsPrivileged() || (actor.Role == user.RoleShopOwner && sched.IsOwnedBy(actor.ID))
}

// creditCompletion earns points on the settled total of a completed reservation.
func creditCompletion(ctx context.Context, tx shared.Tx, res *reservation.Reservation, policy point.Policy, now time.Time) (int64, error) {
	customer, err := tx.Reads().UserByID(ctx, res.CustomerID())
	if err != nil {
		return 0, storeErr(err)
	}
	earned := policy.EarnedFor(res.Amounts().Total.Amount(), customer.IsInfluencer)
	if earned <= 0 {
		return 0, nil
	}

	ledger, err := tx.Points().LoadLedger(ctx, tx.DB(), res.CustomerID())
	if err != nil {
		return 0, storeErr(err)
	}
	entry, err := ledger.Earn(earned, res.ID(), policy.AvailableAt(now), now)
	if err != nil {
		return 0, err
	}
	if err = tx.Points().Append(ctx, tx.DB(), entry); err != nil {
		return 0, storeErr(err)
	}
	if err = res.RecordPointsEarned(earned); err != nil {
		return 0, err
	}
	return earned, nil
}
