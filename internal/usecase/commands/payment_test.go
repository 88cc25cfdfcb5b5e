//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"booking-marketplace/internal/domain/payment"
	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/internal/domain/user"
	"booking-marketplace/internal/pkg/clock"
	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/usecase/commands"
	"booking-marketplace/internal/usecase/shared"
	"booking-marketplace/tests/common/builder"
	commandsmock "booking-marketplace/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type paymentFixture struct {
	env     *txEnv
	store   *memStore
	gateway *commandsmock.MockPaymentGateway
	clock   *clock.MockClock
	sched   *builder.ScheduleBuilder
	uc      commands.PaymentCommands
}

func newPaymentFixture(t *testing.T, ctrl *gomock.Controller, policy point.Policy) *paymentFixture {
	t.Helper()
	env := newTxEnv(ctrl)
	store := newMemStore()
	store.wire(env)

	sb := builder.NewScheduleBuilder()
	store.putSchedule(sb.MustBuild())

	gw := commandsmock.NewMockPaymentGateway(ctrl)
	clk := clock.NewMockClock(time.Date(2030, time.June, 1, 3, 5, 0, 0, time.UTC))
	uc := commands.NewPaymentUseCase(env.uow, gw, env.cache, policy, clk,
		config.PaymentConfig{PreparedTTL: 30 * time.Minute, Currency: "KRW"})

	return &paymentFixture{env: env, store: store, gateway: gw, clock: clk, sched: sb, uc: uc}
}

func (f *paymentFixture) seedReservation(status reservation.Status) *reservation.Reservation {
	res := builder.NewReservationBuilder().WithShopID(f.sched.ShopID).WithStatus(status).BuildStored()
	f.store.putReservation(res)
	return res
}

func (f *paymentFixture) seedPayment(b *builder.PaymentBuilder) *payment.Payment {
	p := b.BuildStored()
	f.store.putPayment(p)
	return p
}

func (f *paymentFixture) owner() user.Actor {
	return user.Actor{ID: f.sched.OwnerID, Role: user.RoleShopOwner}
}

func webhookBody(externalID string) []byte {
	return []byte(`{"external_payment_id":"` + externalID + `","status":"paid"}`)
}

func TestPaymentUseCase_Prepare(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newPaymentFixture(t, ctrl, defaultPolicy(t))
	res := f.seedReservation(reservation.StatusRequested)
	customer := user.Actor{ID: res.CustomerID(), Role: user.RoleCustomer}

	f.gateway.EXPECT().Prepare(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req commands.PrepareIntentRequest) (payment.PreparedIntent, error) {
			assert.Equal(t, payment.OrderRefFor(res.ID(), payment.StageDeposit), req.OrderRef)
			assert.Equal(t, int64(20000), req.Amount)
			assert.Equal(t, "KRW", req.Currency)
			assert.Equal(t, res.CustomerID(), req.CustomerID)
			return payment.PreparedIntent{ExternalID: "pay_new", CheckoutParams: map[string]string{"url": "https://pay.example/c/1"}}, nil
		})

	intent, err := f.uc.Prepare(ctx, res.ID(), payment.StageDeposit, customer)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), intent.Amount)
	assert.Equal(t, "pay_new", intent.ExternalPaymentID)
	assert.Equal(t, f.clock.Now().Add(30*time.Minute), intent.ExpiresAt)

	stored := f.store.payment(intent.PaymentID)
	require.NotNil(t, stored)
	assert.Equal(t, payment.StatusPrepared, stored.Status())

	t.Run("live intent blocks a second one for the stage", func(t *testing.T) {
		_, err := f.uc.Prepare(ctx, res.ID(), payment.StageDeposit, customer)
		require.ErrorIs(t, err, payment.ErrDuplicateStage)
	})

	t.Run("other customers are rejected", func(t *testing.T) {
		_, err := f.uc.Prepare(ctx, res.ID(), payment.StageDeposit, user.Actor{ID: f.sched.OwnerID, Role: user.RoleCustomer})
		require.ErrorIs(t, err, commands.ErrReservationForbidden)
	})
}

func TestPaymentUseCase_HandleGatewayCallback(t *testing.T) {
	ctx := context.Background()

	t.Run("replayed webhook is acknowledged without reapplying", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(t, ctrl, defaultPolicy(t))
		res := f.seedReservation(reservation.StatusRequested)
		b := builder.NewPaymentBuilder().WithReservationID(res.ID())
		pay := f.seedPayment(b)

		f.gateway.EXPECT().VerifySignature(gomock.Any(), "sig").Return(true).Times(2)
		f.gateway.EXPECT().GetPayment(gomock.Any(), pay.ExternalID()).Return(b.GatewayPaid(), nil).Times(1)

		first, err := f.uc.HandleGatewayCallback(ctx, webhookBody(pay.ExternalID()), "sig")
		require.NoError(t, err)
		assert.False(t, first.AlreadyProcessed)
		assert.Equal(t, payment.StatusPaid, first.PaymentStatus)
		assert.Equal(t, reservation.StatusConfirmed, first.ReservationStatus)

		second, err := f.uc.HandleGatewayCallback(ctx, webhookBody(pay.ExternalID()), "sig")
		require.NoError(t, err)
		assert.True(t, second.AlreadyProcessed)
		assert.Equal(t, payment.StatusPaid, second.PaymentStatus)

		stored := f.store.reservation(res.ID())
		assert.Equal(t, reservation.StatusConfirmed, stored.Status())
		assert.Equal(t, int64(2), stored.Version())
		assert.Equal(t, 1, f.store.eventCount(reservation.EventConfirmed))
		assert.Len(t, f.store.payment(pay.ID()).Metadata().Snapshots, 1)
	})

	t.Run("bad signature is rejected before any lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(t, ctrl, defaultPolicy(t))

		f.gateway.EXPECT().VerifySignature(gomock.Any(), "forged").Return(false)

		_, err := f.uc.HandleGatewayCallback(ctx, webhookBody("pay_1"), "forged")
		require.ErrorIs(t, err, payment.ErrInvalidSignature)
	})

	t.Run("payload without a payment id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(t, ctrl, defaultPolicy(t))

		f.gateway.EXPECT().VerifySignature(gomock.Any(), "sig").Return(true).Times(2)

		_, err := f.uc.HandleGatewayCallback(ctx, []byte(`{"status":"paid"}`), "sig")
		require.ErrorIs(t, err, commands.ErrInvalidWebhook)
		_, err = f.uc.HandleGatewayCallback(ctx, []byte(`not json`), "sig")
		require.ErrorIs(t, err, commands.ErrInvalidWebhook)
	})
}

func TestPaymentUseCase_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("amount mismatch fails the payment and leaves the reservation requested", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(t, ctrl, defaultPolicy(t))
		res := f.seedReservation(reservation.StatusRequested)
		b := builder.NewPaymentBuilder().WithReservationID(res.ID())
		pay := f.seedPayment(b)

		gp := b.GatewayPaid()
		gp.Amount = 19000
		f.gateway.EXPECT().GetPayment(gomock.Any(), pay.ExternalID()).Return(gp, nil)

		result, err := f.uc.Confirm(ctx, pay.ExternalID())
		require.ErrorIs(t, err, payment.ErrAmountMismatch)
		require.NotNil(t, result)
		assert.Equal(t, payment.StatusFailed, result.PaymentStatus)
		assert.Equal(t, reservation.StatusRequested, result.ReservationStatus)

		storedPay := f.store.payment(pay.ID())
		assert.Equal(t, payment.StatusFailed, storedPay.Status())
		assert.NotEmpty(t, storedPay.Metadata().FailureReason)
		storedRes := f.store.reservation(res.ID())
		assert.Equal(t, reservation.StatusRequested, storedRes.Status())
		assert.Equal(t, res.Version(), storedRes.Version())
		assert.Equal(t, 1, f.store.eventCount(reservation.EventPaymentFailed))
	})

	t.Run("pending gateway payment changes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(t, ctrl, defaultPolicy(t))
		res := f.seedReservation(reservation.StatusRequested)
		b := builder.NewPaymentBuilder().WithReservationID(res.ID())
		pay := f.seedPayment(b)

		gp := b.GatewayPaid()
		gp.Status, gp.PaidAt = payment.GatewayStatusPending, nil
		f.gateway.EXPECT().GetPayment(gomock.Any(), pay.ExternalID()).Return(gp, nil)

		_, err := f.uc.Confirm(ctx, pay.ExternalID())
		require.ErrorIs(t, err, payment.ErrStatusMismatch)
		assert.Equal(t, payment.StatusPrepared, f.store.payment(pay.ID()).Status())
		assert.Equal(t, reservation.StatusRequested, f.store.reservation(res.ID()).Status())
	})

	t.Run("unknown payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(t, ctrl, defaultPolicy(t))

		_, err := f.uc.Confirm(ctx, "pay_missing")
		require.ErrorIs(t, err, commands.ErrPaymentNotFound)
	})

	t.Run("late deposit for a cancelled reservation is refunded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(t, ctrl, defaultPolicy(t))
		res := f.seedReservation(reservation.StatusCancelledByUser)
		b := builder.NewPaymentBuilder().WithReservationID(res.ID())
		pay := f.seedPayment(b)

		f.gateway.EXPECT().GetPayment(gomock.Any(), pay.ExternalID()).Return(b.GatewayPaid(), nil)
		f.gateway.EXPECT().CancelPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req commands.CancelIntentRequest) (payment.CancellationRecord, error) {
				assert.Equal(t, pay.ExternalID(), req.ExternalID)
				assert.Equal(t, int64(20000), req.Amount)
				return payment.CancellationRecord{ID: "cnl_late", Amount: req.Amount, Reason: req.Reason}, nil
			})

		result, err := f.uc.Confirm(ctx, pay.ExternalID())
		require.NoError(t, err)
		assert.True(t, result.RefundScheduled)
		assert.Equal(t, reservation.StatusCancelledByUser, result.ReservationStatus)

		stored := f.store.payment(pay.ID())
		assert.Equal(t, payment.StatusCancelled, stored.Status())
		assert.Equal(t, int64(20000), stored.RefundedAmount())
		assert.False(t, stored.CancellationRequested())
		assert.Equal(t, reservation.StatusCancelledByUser, f.store.reservation(res.ID()).Status())
		assert.Equal(t, 1, f.store.eventCount(reservation.EventRefundScheduled))
		assert.Equal(t, 1, f.store.eventCount(reservation.EventPaymentCancelled))
	})

	t.Run("refund stays flagged when the gateway is down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(t, ctrl, defaultPolicy(t))
		res := f.seedReservation(reservation.StatusNoShow)
		b := builder.NewPaymentBuilder().WithReservationID(res.ID())
		pay := f.seedPayment(b)

		f.gateway.EXPECT().GetPayment(gomock.Any(), pay.ExternalID()).Return(b.GatewayPaid(), nil)
		f.gateway.EXPECT().CancelPayment(gomock.Any(), gomock.Any()).Return(payment.CancellationRecord{}, payment.ErrGatewayUnavailable)

		result, err := f.uc.Confirm(ctx, pay.ExternalID())
		require.NoError(t, err)
		assert.True(t, result.RefundScheduled)

		stored := f.store.payment(pay.ID())
		assert.Equal(t, payment.StatusPaid, stored.Status())
		assert.True(t, stored.CancellationRequested())
		assert.Equal(t, int64(20000), stored.Refundable())
	})
}

func TestPaymentUseCase_ConfirmFinalPayment(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		earningCap int64
		influencer bool
		wantPoints int64
	}{
		{name: "regular customer earns the rate", earningCap: 300000, wantPoints: 2500},
		{name: "earnings are capped", earningCap: 2000, wantPoints: 2000},
		{name: "influencer multiplier applies after the cap", earningCap: 2000, influencer: true, wantPoints: 4000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			policy, err := point.ParsePolicy("2.5", tc.earningCap, "2", 7, 365)
			require.NoError(t, err)
			f := newPaymentFixture(t, ctrl, policy)

			res := f.seedReservation(reservation.StatusConfirmed)
			f.store.putUser(shared.UserSnapshot{ID: res.CustomerID(), Role: "customer", IsInfluencer: tc.influencer})
			f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).WithStatus(payment.StatusPaid))
			fb := builder.NewPaymentBuilder().WithReservationID(res.ID()).WithStage(payment.StageFinal).WithAmount(80000)
			final := f.seedPayment(fb)

			f.gateway.EXPECT().GetPayment(gomock.Any(), final.ExternalID()).Return(fb.GatewayPaid(), nil)
			f.env.cache.EXPECT().Invalidate(gomock.Any(), res.CustomerID()).Return(nil)

			result, err := f.uc.Confirm(ctx, final.ExternalID())
			require.NoError(t, err)
			assert.Equal(t, reservation.StatusCompleted, result.ReservationStatus)
			assert.Equal(t, tc.wantPoints, result.PointsEarned)
			assert.False(t, result.RefundScheduled)

			stored := f.store.reservation(res.ID())
			assert.Equal(t, reservation.StatusCompleted, stored.Status())
			assert.Equal(t, tc.wantPoints, stored.PointsEarned())

			ledger := f.store.ledger(res.CustomerID())
			assert.Equal(t, tc.wantPoints, ledger.Balance())
			assert.Zero(t, ledger.Available(f.clock.Now()), "earned points wait out the availability delay")
			assert.Equal(t, tc.wantPoints, ledger.Available(f.clock.Now().AddDate(0, 0, 7)))
		})
	}
}

func TestPaymentUseCase_Cancel(t *testing.T) {
	ctx := context.Background()
	partial := func(v int64) *int64 { return &v }

	t.Run("partial refund by the shop owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(t, ctrl, defaultPolicy(t))
		res := f.seedReservation(reservation.StatusConfirmed)
		pay := f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).WithStatus(payment.StatusPaid))

		f.gateway.EXPECT().CancelPayment(gomock.Any(), commands.CancelIntentRequest{
			ExternalID:     pay.ExternalID(),
			Amount:         5000,
			Reason:         "service shortened",
			IdempotencyKey: pay.ID().String() + "-1",
		}).Return(payment.CancellationRecord{ID: "cnl_1", Amount: 5000, Reason: "service shortened"}, nil)

		result, err := f.uc.Cancel(ctx, pay.ID(), f.owner(), "service shortened", partial(5000))
		require.NoError(t, err)
		assert.Equal(t, payment.StatusPaid, result.Status)
		assert.Equal(t, int64(5000), result.CancelledAmount)
		assert.Equal(t, int64(15000), result.Refundable)
		assert.Equal(t, int64(5000), f.store.payment(pay.ID()).RefundedAmount())
	})

	t.Run("concurrent cancel under the same idempotency key is booked once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(t, ctrl, defaultPolicy(t))
		res := f.seedReservation(reservation.StatusConfirmed)
		pay := f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).WithStatus(payment.StatusPaid))
		rec := payment.CancellationRecord{ID: "cnl_1", Amount: 3000, Reason: "partial"}

		var keys []string
		f.gateway.EXPECT().CancelPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, req commands.CancelIntentRequest) (payment.CancellationRecord, error) {
				keys = append(keys, req.IdempotencyKey)
				if len(keys) == 1 {
					// the second request reads the same version while the first waits on the gateway
					inner, err := f.uc.Cancel(ctx, pay.ID(), f.owner(), "partial", partial(3000))
					require.NoError(t, err)
					assert.Equal(t, int64(3000), inner.RefundedTotal)
				}
				return rec, nil
			}).Times(2)

		result, err := f.uc.Cancel(ctx, pay.ID(), f.owner(), "partial", partial(3000))
		require.NoError(t, err)
		require.Len(t, keys, 2)
		assert.Equal(t, keys[0], keys[1])
		assert.Equal(t, int64(3000), result.RefundedTotal)
		assert.Equal(t, int64(17000), result.Refundable)

		stored := f.store.payment(pay.ID())
		assert.Equal(t, int64(3000), stored.RefundedAmount())
		assert.Len(t, stored.Metadata().Cancellations, 1)
		assert.Equal(t, 1, f.store.eventCount(reservation.EventPaymentCancelled))
	})

	t.Run("customers may not cancel payments directly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(t, ctrl, defaultPolicy(t))
		res := f.seedReservation(reservation.StatusConfirmed)
		pay := f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).WithStatus(payment.StatusPaid))

		_, err := f.uc.Cancel(ctx, pay.ID(), user.Actor{ID: res.CustomerID(), Role: user.RoleCustomer}, "", nil)
		require.ErrorIs(t, err, commands.ErrPaymentForbidden)
	})

	t.Run("amount above the refundable part", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(t, ctrl, defaultPolicy(t))
		res := f.seedReservation(reservation.StatusConfirmed)
		pay := f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).WithStatus(payment.StatusPaid).WithRefunded(15000))

		_, err := f.uc.Cancel(ctx, pay.ID(), f.owner(), "", partial(6000))
		require.ErrorIs(t, err, payment.ErrInvalidCancelAmount)
	})
}

func TestPaymentUseCase_ProcessPendingCancellations(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newPaymentFixture(t, ctrl, defaultPolicy(t))
	res := f.seedReservation(reservation.StatusCancelledByShop)
	flagged := f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).WithStatus(payment.StatusPaid).WithCancellationRequested())
	untouched := f.seedPayment(builder.NewPaymentBuilder().WithStatus(payment.StatusPaid))

	f.gateway.EXPECT().CancelPayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req commands.CancelIntentRequest) (payment.CancellationRecord, error) {
			assert.Equal(t, flagged.ExternalID(), req.ExternalID)
			return payment.CancellationRecord{ID: "cnl_sweep", Amount: req.Amount}, nil
		})

	n, err := f.uc.ProcessPendingCancellations(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, payment.StatusCancelled, f.store.payment(flagged.ID()).Status())
	assert.Equal(t, payment.StatusPaid, f.store.payment(untouched.ID()).Status())
}

func TestPaymentUseCase_ExpireAbandoned(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newPaymentFixture(t, ctrl, defaultPolicy(t))
	res := f.seedReservation(reservation.StatusRequested)

	stale := f.seedPayment(builder.NewPaymentBuilder().WithReservationID(res.ID()).WithExpiresAt(f.clock.Now().Add(-time.Minute)))
	live := f.seedPayment(builder.NewPaymentBuilder().WithStage(payment.StageFinal))

	n, err := f.uc.ExpireAbandoned(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	expired := f.store.payment(stale.ID())
	assert.Equal(t, payment.StatusFailed, expired.Status())
	assert.Equal(t, "payment window expired", expired.Metadata().FailureReason)
	assert.Equal(t, payment.StatusPrepared, f.store.payment(live.ID()).Status())
}
