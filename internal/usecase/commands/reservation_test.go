//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"booking-marketplace/internal/domain/payment"
	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/internal/domain/user"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/pkg/clock"
	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/usecase/commands"
	"booking-marketplace/internal/usecase/queries"
	"booking-marketplace/internal/usecase/shared"
	"booking-marketplace/tests/common/builder"
	commandsmock "booking-marketplace/tests/mock/commands"
	queriesmock "booking-marketplace/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reserveFixture struct {
	env         *txEnv
	queries     *queriesmock.MockReservationQueries
	uc          commands.ReservationCommands
	in          commands.ReserveInput
	key         uuid.UUID
	serviceID   uuid.UUID
	scheduleBld *builder.ScheduleBuilder
}

func newReserveFixture(t *testing.T, ctrl *gomock.Controller) *reserveFixture {
	t.Helper()
	env := newTxEnv(ctrl)
	mockQueries := queriesmock.NewMockReservationQueries(ctrl)
	settler := commandsmock.NewMockCancellationSettler(ctrl)

	now := time.Date(2030, time.May, 1, 0, 0, 0, 0, time.UTC)
	uc := commands.NewReservationUseCase(env.uow, mockQueries, settler, env.cache, defaultPolicy(t),
		clock.NewMockClock(now), config.PaymentConfig{PreparedTTL: 30 * time.Minute})

	sb := builder.NewScheduleBuilder()
	serviceID := uuid.New()
	return &reserveFixture{
		env:     env,
		queries: mockQueries,
		uc:      uc,
		in: commands.ReserveInput{
			CustomerID:      uuid.New(),
			ShopID:          sb.ShopID,
			Date:            sb.Date(2030, time.June, 3),
			StartTime:       "10:00",
			DurationMinutes: 60,
			Items:           []commands.ReserveItem{{ServiceID: serviceID, Quantity: 1}},
		},
		key:         uuid.New(),
		serviceID:   serviceID,
		scheduleBld: sb,
	}
}

func (f *reserveFixture) expectCatalogue() {
	f.env.reads.EXPECT().ScheduleByShopID(gomock.Any(), f.in.ShopID).Return(f.scheduleBld.MustBuild(), nil)
	f.env.reads.EXPECT().ServicesByIDs(gomock.Any(), f.in.ShopID, []uuid.UUID{f.serviceID}).
		Return(map[uuid.UUID]shared.ServiceSnapshot{
			f.serviceID: {ID: f.serviceID, ShopID: f.in.ShopID, Name: "Cut", Price: 100000, Active: true},
		}, nil)
}

func TestReservationUseCase_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("success: creates the reservation and completes the key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newReserveFixture(t, ctrl)

		f.env.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), f.key, f.in.CustomerID, "POST /reservations", gomock.Any(), gomock.Any()).Return(true, nil)
		f.expectCatalogue()
		f.env.reservations.EXPECT().ListActiveInRange(gomock.Any(), gomock.Any(), f.in.ShopID, uuid.Nil, gomock.Any(), gomock.Any()).Return(nil, nil)

		var created uuid.UUID
		f.env.reservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, res *reservation.Reservation) (uuid.UUID, error) {
				created = res.ID()
				assert.Equal(t, int64(100000), res.Amounts().Total.Amount())
				assert.Equal(t, int64(20000), res.Amounts().Deposit.Amount())
				assert.Equal(t, reservation.StatusRequested, res.Status())
				return res.ID(), nil
			})
		f.env.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), shared.NotificationKindReservationEvent, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.env.idempotency.EXPECT().UpdateStatusCompleted(gomock.Any(), gomock.Any(), f.key, f.in.CustomerID, gomock.Any(), gomock.Any()).Return(nil)
		f.queries.EXPECT().GetByIDSystem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
				assert.Equal(t, created, id)
				return &queries.ReservationView{ID: id}, nil
			})

		result, err := f.uc.Reserve(ctx, f.in, f.key)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
		assert.Equal(t, created, result.Reservation.ID)
	})

	t.Run("success: completed key replays the first result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newReserveFixture(t, ctrl)
		first := uuid.New()

		var endpoint, hash string
		f.env.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), f.key, f.in.CustomerID, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, _, _ uuid.UUID, ep, requestHash string, _ time.Time) (bool, error) {
				endpoint, hash = ep, requestHash
				return false, nil
			})
		f.env.reads.EXPECT().IdempotencyByKey(gomock.Any(), f.key, f.in.CustomerID).
			DoAndReturn(func(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
				return &shared.IdempotencyRecord{
					Key: key, UserID: userID, Endpoint: endpoint,
					Status: shared.IdempotencyStatusCompleted, RequestHash: hash, ResultReservationID: &first,
				}, nil
			})
		f.queries.EXPECT().GetByIDSystem(gomock.Any(), first).Return(&queries.ReservationView{ID: first}, nil)

		result, err := f.uc.Reserve(ctx, f.in, f.key)
		require.NoError(t, err)
		assert.True(t, result.IsReplayed)
		assert.Equal(t, first, result.Reservation.ID)
	})

	t.Run("error: key reused with a different body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newReserveFixture(t, ctrl)

		f.env.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), f.key, f.in.CustomerID, gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.env.reads.EXPECT().IdempotencyByKey(gomock.Any(), f.key, f.in.CustomerID).
			Return(&shared.IdempotencyRecord{Status: shared.IdempotencyStatusCompleted, RequestHash: "other"}, nil)

		_, err := f.uc.Reserve(ctx, f.in, f.key)
		require.ErrorIs(t, err, errs.ErrIdempotencyKeyReused)
	})

	t.Run("error: key already spent on another endpoint", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newReserveFixture(t, ctrl)

		var hash string
		f.env.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), f.key, f.in.CustomerID, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, _, _ uuid.UUID, _, requestHash string, _ time.Time) (bool, error) {
				hash = requestHash
				return false, nil
			})
		f.env.reads.EXPECT().IdempotencyByKey(gomock.Any(), f.key, f.in.CustomerID).
			DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*shared.IdempotencyRecord, error) {
				return &shared.IdempotencyRecord{Endpoint: "POST /payments", Status: shared.IdempotencyStatusCompleted, RequestHash: hash}, nil
			})

		_, err := f.uc.Reserve(ctx, f.in, f.key)
		require.ErrorIs(t, err, errs.ErrIdempotencyKeyReused)
	})

	t.Run("error: first request still processing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newReserveFixture(t, ctrl)

		var endpoint, hash string
		f.env.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), f.key, f.in.CustomerID, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, _, _ uuid.UUID, ep, requestHash string, _ time.Time) (bool, error) {
				endpoint, hash = ep, requestHash
				return false, nil
			})
		f.env.reads.EXPECT().IdempotencyByKey(gomock.Any(), f.key, f.in.CustomerID).
			DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*shared.IdempotencyRecord, error) {
				return &shared.IdempotencyRecord{Endpoint: endpoint, Status: shared.IdempotencyStatusProcessing, RequestHash: hash}, nil
			})

		_, err := f.uc.Reserve(ctx, f.in, f.key)
		require.ErrorIs(t, err, errs.ErrIdempotencyInProgress)
	})

	t.Run("error: overlap found by the pre-scan names the holder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newReserveFixture(t, ctrl)
		holder := uuid.New()

		f.env.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), f.key, f.in.CustomerID, gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.expectCatalogue()
		f.env.reservations.EXPECT().ListActiveInRange(gomock.Any(), gomock.Any(), f.in.ShopID, uuid.Nil, gomock.Any(), gomock.Any()).
			Return([]shared.ActiveSlot{{ReservationID: holder}}, nil)

		_, err := f.uc.Reserve(ctx, f.in, f.key)
		require.ErrorIs(t, err, reservation.ErrSlotConflict)
		var conflict *reservation.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, holder, conflict.ConflictingReservationID)
	})

	t.Run("error: exclusion constraint catches the race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newReserveFixture(t, ctrl)
		holder := uuid.New()

		f.env.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), f.key, f.in.CustomerID, gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.expectCatalogue()
		gomock.InOrder(
			f.env.reservations.EXPECT().ListActiveInRange(gomock.Any(), gomock.Any(), f.in.ShopID, uuid.Nil, gomock.Any(), gomock.Any()).Return(nil, nil),
			f.env.reservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(uuid.Nil, infra.WrapRepoErr("failed to create reservation", errors.New("exclusion"), infra.KindConflict)),
			f.env.reservations.EXPECT().ListActiveInRange(gomock.Any(), gomock.Any(), f.in.ShopID, uuid.Nil, gomock.Any(), gomock.Any()).
				Return([]shared.ActiveSlot{{ReservationID: holder}}, nil),
		)

		_, err := f.uc.Reserve(ctx, f.in, f.key)
		var conflict *reservation.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, holder, conflict.ConflictingReservationID)
	})

	t.Run("error: missing idempotency key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newReserveFixture(t, ctrl)

		_, err := f.uc.Reserve(ctx, f.in, uuid.Nil)
		require.ErrorIs(t, err, errs.ErrIdempotencyKeyRequired)
	})

	t.Run("error: inactive service is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newReserveFixture(t, ctrl)

		f.env.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), f.key, f.in.CustomerID, gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.env.reads.EXPECT().ScheduleByShopID(gomock.Any(), f.in.ShopID).Return(f.scheduleBld.MustBuild(), nil)
		f.env.reads.EXPECT().ServicesByIDs(gomock.Any(), f.in.ShopID, gomock.Any()).
			Return(map[uuid.UUID]shared.ServiceSnapshot{f.serviceID: {ID: f.serviceID, Price: 100000, Active: false}}, nil)

		_, err := f.uc.Reserve(ctx, f.in, f.key)
		require.ErrorIs(t, err, commands.ErrServiceNotFound)
	})
}

type lifecycleFixture struct {
	env       *txEnv
	store     *memStore
	settler   *commandsmock.MockCancellationSettler
	clock     *clock.MockClock
	sched     *builder.ScheduleBuilder
	serviceID uuid.UUID
	uc        commands.ReservationCommands
}

func newLifecycleFixture(t *testing.T, ctrl *gomock.Controller, now time.Time) *lifecycleFixture {
	t.Helper()
	env := newTxEnv(ctrl)
	store := newMemStore()
	store.wire(env)
	mockQueries := queriesmock.NewMockReservationQueries(ctrl)
	store.wireViews(mockQueries)
	settler := commandsmock.NewMockCancellationSettler(ctrl)

	sb := builder.NewScheduleBuilder()
	store.putSchedule(sb.MustBuild())
	serviceID := uuid.New()
	store.putService(shared.ServiceSnapshot{ID: serviceID, ShopID: sb.ShopID, Name: "Cut", Price: 100000, Active: true})

	clk := clock.NewMockClock(now)
	uc := commands.NewReservationUseCase(env.uow, mockQueries, settler, env.cache, defaultPolicy(t), clk,
		config.PaymentConfig{PreparedTTL: 30 * time.Minute})
	return &lifecycleFixture{env: env, store: store, settler: settler, clock: clk, sched: sb, serviceID: serviceID, uc: uc}
}

func (f *lifecycleFixture) reserveInput(customerID uuid.UUID, start string) commands.ReserveInput {
	return commands.ReserveInput{
		CustomerID:      customerID,
		ShopID:          f.sched.ShopID,
		Date:            f.sched.Date(2030, time.June, 3),
		StartTime:       start,
		DurationMinutes: 60,
		Items:           []commands.ReserveItem{{ServiceID: f.serviceID, Quantity: 1}},
	}
}

func (f *lifecycleFixture) seed(b *builder.ReservationBuilder) *reservation.Reservation {
	res := b.WithShopID(f.sched.ShopID).BuildStored()
	f.store.putReservation(res)
	return res
}

func (f *lifecycleFixture) seedPayment(b *builder.PaymentBuilder) *payment.Payment {
	p := b.BuildStored()
	f.store.putPayment(p)
	return p
}

func (f *lifecycleFixture) owner() user.Actor {
	return user.Actor{ID: f.sched.OwnerID, Role: user.RoleShopOwner}
}

func seoul(t *testing.T, day, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(builder.DefaultTimeZone)
	require.NoError(t, err)
	return time.Date(2030, time.June, day, hour, minute, 0, 0, loc)
}

func TestReservationUseCase_SlotLifecycle(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newLifecycleFixture(t, ctrl, time.Date(2030, time.May, 1, 0, 0, 0, 0, time.UTC))
	alice, bob := uuid.New(), uuid.New()

	first, err := f.uc.Reserve(ctx, f.reserveInput(alice, "10:00"), uuid.New())
	require.NoError(t, err)
	holder := first.Reservation.ID

	t.Run("overlapping start is rejected with the holder", func(t *testing.T) {
		_, err := f.uc.Reserve(ctx, f.reserveInput(bob, "10:30"), uuid.New())
		var conflict *reservation.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, holder, conflict.ConflictingReservationID)
	})

	t.Run("adjacent slot is accepted", func(t *testing.T) {
		adjacent, err := f.uc.Reserve(ctx, f.reserveInput(bob, "11:00"), uuid.New())
		require.NoError(t, err)
		assert.NotEqual(t, holder, adjacent.Reservation.ID)
	})

	t.Run("cancelled slot can be rebooked", func(t *testing.T) {
		_, err := f.uc.Reserve(ctx, f.reserveInput(bob, "10:00"), uuid.New())
		require.ErrorIs(t, err, reservation.ErrSlotConflict)

		view, err := f.uc.Cancel(ctx, holder, user.Actor{ID: alice, Role: user.RoleCustomer}, "plans changed")
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCancelledByUser.String(), view.Status)

		rebooked, err := f.uc.Reserve(ctx, f.reserveInput(bob, "10:00"), uuid.New())
		require.NoError(t, err)
		assert.NotEqual(t, holder, rebooked.Reservation.ID)
		assert.Equal(t, reservation.StatusRequested.String(), rebooked.Reservation.Status)
	})

	t.Run("strangers cannot cancel", func(t *testing.T) {
		_, err := f.uc.Cancel(ctx, holder, user.Actor{ID: uuid.New(), Role: user.RoleCustomer}, "")
		require.ErrorIs(t, err, commands.ErrReservationForbidden)
	})
}

func TestReservationUseCase_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("shop cancellation flags the deposit and returns used points", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newLifecycleFixture(t, ctrl, seoul(t, 2, 9, 0))
		res := f.seed(builder.NewReservationBuilder().WithStatus(reservation.StatusConfirmed).WithPointsUsed(3000))
		customer := res.CustomerID()
		deposit := f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).
			WithAmount(res.Amounts().Deposit.Amount()).WithStatus(payment.StatusPaid))

		earnedAt := seoul(t, 1, 0, 0).AddDate(0, -1, 0)
		f.store.putPoints(
			point.Reconstruct(point.ReconstructInput{
				ID: uuid.New(), UserID: customer, Seq: 1, Amount: 5000, Type: point.TypeEarned,
				Reason: point.ReasonReservationCompletion, BalanceAfter: 5000, AvailableAt: earnedAt, CreatedAt: earnedAt,
			}),
			point.Reconstruct(point.ReconstructInput{
				ID: uuid.New(), UserID: customer, Seq: 2, Amount: -3000, Type: point.TypeUsed,
				Reason: point.ReasonReservationPayment, BalanceAfter: 2000, AvailableAt: earnedAt, CreatedAt: earnedAt,
			}),
		)

		f.settler.EXPECT().SettleCancellation(gomock.Any(), deposit.ID()).Return(nil)
		f.env.cache.EXPECT().Invalidate(gomock.Any(), customer).Return(nil)

		view, err := f.uc.Cancel(ctx, res.ID(), f.owner(), "stylist is sick")
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCancelledByShop.String(), view.Status)

		stored := f.store.payment(deposit.ID())
		assert.True(t, stored.CancellationRequested())
		assert.Equal(t, payment.StatusPaid, stored.Status())
		assert.Equal(t, int64(5000), f.store.ledger(customer).Balance())
		assert.Equal(t, 1, f.store.eventCount(reservation.EventRefundScheduled))
		assert.Equal(t, 1, f.store.eventCount(reservation.EventCancelledByShop))
	})

	t.Run("finished reservations stay as they are", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newLifecycleFixture(t, ctrl, seoul(t, 4, 9, 0))
		res := f.seed(builder.NewReservationBuilder().WithStatus(reservation.StatusCompleted))

		_, err := f.uc.Cancel(ctx, res.ID(), f.owner(), "")
		require.Error(t, err)
		assert.Equal(t, reservation.StatusCompleted, f.store.reservation(res.ID()).Status())
	})
}

func TestReservationUseCase_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("settled reservation completes and earns points", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newLifecycleFixture(t, ctrl, seoul(t, 3, 11, 30))
		res := f.seed(builder.NewReservationBuilder().WithStatus(reservation.StatusConfirmed))
		f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).WithStatus(payment.StatusPaid))
		f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).WithStage(payment.StageFinal).
			WithAmount(80000).WithStatus(payment.StatusPaid))

		f.env.cache.EXPECT().Invalidate(gomock.Any(), res.CustomerID()).Return(nil)

		view, err := f.uc.Complete(ctx, res.ID(), f.owner())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCompleted.String(), view.Status)
		assert.Equal(t, int64(2500), view.PointsEarned)
		assert.Equal(t, int64(2500), f.store.ledger(res.CustomerID()).Balance())
		assert.Equal(t, 1, f.store.eventCount(reservation.EventCompleted))
	})

	t.Run("unpaid remainder blocks completion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newLifecycleFixture(t, ctrl, seoul(t, 3, 11, 30))
		res := f.seed(builder.NewReservationBuilder().WithStatus(reservation.StatusConfirmed))
		f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).WithStatus(payment.StatusPaid))

		_, err := f.uc.Complete(ctx, res.ID(), f.owner())
		require.ErrorIs(t, err, reservation.ErrFinalPaymentRequired)
		assert.Equal(t, reservation.StatusConfirmed, f.store.reservation(res.ID()).Status())
	})

	t.Run("customers cannot complete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newLifecycleFixture(t, ctrl, seoul(t, 3, 11, 30))
		res := f.seed(builder.NewReservationBuilder().WithStatus(reservation.StatusConfirmed))

		_, err := f.uc.Complete(ctx, res.ID(), user.Actor{ID: res.CustomerID(), Role: user.RoleCustomer})
		require.ErrorIs(t, err, commands.ErrReservationForbidden)
	})
}

func TestReservationUseCase_MarkNoShow(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newLifecycleFixture(t, ctrl, seoul(t, 3, 9, 30))
	res := f.seed(builder.NewReservationBuilder().WithStatus(reservation.StatusConfirmed))
	deposit := f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).WithStatus(payment.StatusPaid))
	final := f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).WithStage(payment.StageFinal).
		WithAmount(80000).WithExpiresAt(seoul(t, 3, 12, 0)))

	_, err := f.uc.MarkNoShow(ctx, res.ID(), f.owner())
	require.ErrorIs(t, err, reservation.ErrNoShowTooEarly)
	assert.Equal(t, payment.StatusPrepared, f.store.payment(final.ID()).Status())

	f.clock.Set(seoul(t, 3, 10, 15))
	view, err := f.uc.MarkNoShow(ctx, res.ID(), f.owner())
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusNoShow.String(), view.Status)

	voided := f.store.payment(final.ID())
	assert.Equal(t, payment.StatusFailed, voided.Status())
	assert.Equal(t, "no-show", voided.Metadata().FailureReason)
	kept := f.store.payment(deposit.ID())
	assert.Equal(t, payment.StatusPaid, kept.Status())
	assert.False(t, kept.CancellationRequested(), "the deposit is forfeited")
}

func TestReservationUseCase_CancelAbandoned(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	now := seoul(t, 1, 14, 0)
	f := newLifecycleFixture(t, ctrl, now)

	expired := f.seed(builder.NewReservationBuilder())
	expiredDeposit := f.seedPayment(builder.NewPaymentBuilder().WithReservationID(expired.ID()))
	neverPaid := f.seed(builder.NewReservationBuilder())
	stillPaying := f.seed(builder.NewReservationBuilder())
	f.seedPayment(builder.NewPaymentBuilder().WithReservationID(stillPaying.ID()).WithExpiresAt(now.Add(10 * time.Minute)))
	confirmed := f.seed(builder.NewReservationBuilder().WithStatus(reservation.StatusConfirmed))

	n, err := f.uc.CancelAbandoned(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, id := range []uuid.UUID{expired.ID(), neverPaid.ID()} {
		res := f.store.reservation(id)
		assert.Equal(t, reservation.StatusCancelledByUser, res.Status())
		assert.Equal(t, "payment window expired", res.CancelReason())
	}
	assert.Equal(t, payment.StatusFailed, f.store.payment(expiredDeposit.ID()).Status())
	assert.Equal(t, reservation.StatusRequested, f.store.reservation(stillPaying.ID()).Status())
	assert.Equal(t, reservation.StatusConfirmed, f.store.reservation(confirmed.ID()).Status())
}
