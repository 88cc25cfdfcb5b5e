//go:build unit

package payment_test

import (
	"testing"
	"time"

	"booking-marketplace/internal/domain/payment"
	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountForStage(t *testing.T) {
	testCases := []struct {
		name   string
		status reservation.Status
		rate   string
		stage  payment.Stage
		want   int64
		errIs  error
	}{
		{name: "deposit while requested", status: reservation.StatusRequested, rate: "20", stage: payment.StageDeposit, want: 20000},
		{name: "deposit after confirmation", status: reservation.StatusConfirmed, rate: "20", stage: payment.StageDeposit, errIs: payment.ErrStageNotAllowed},
		{name: "final while confirmed", status: reservation.StatusConfirmed, rate: "20", stage: payment.StageFinal, want: 80000},
		{name: "final before confirmation", status: reservation.StatusRequested, rate: "20", stage: payment.StageFinal, errIs: payment.ErrStageNotAllowed},
		{name: "final with nothing left", status: reservation.StatusConfirmed, rate: "100", stage: payment.StageFinal, errIs: payment.ErrNothingToPay},
		{name: "final after cancellation", status: reservation.StatusCancelledByUser, rate: "20", stage: payment.StageFinal, errIs: payment.ErrStageNotAllowed},
		{name: "unknown stage", status: reservation.StatusRequested, rate: "20", stage: "tip", errIs: payment.ErrInvalidStage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := builder.NewReservationBuilder().WithStatus(tc.status).WithDepositRate(tc.rate).BuildStored()
			got, err := payment.AmountForStage(res, tc.stage)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewPayment(t *testing.T) {
	res := builder.NewReservationBuilder().BuildStored()
	now := time.Now()

	p, err := payment.NewPayment(payment.NewInput{
		ReservationID: res.ID(),
		Stage:         payment.StageDeposit,
		Amount:        20000,
		Intent:        payment.PreparedIntent{ExternalID: "pay_1", CheckoutParams: map[string]string{"url": "https://pay.example/checkout"}},
		ExpiresAt:     now.Add(30 * time.Minute),
	}, now)
	require.NoError(t, err)

	assert.Equal(t, payment.StatusPrepared, p.Status())
	assert.True(t, p.IsDeposit())
	assert.Equal(t, payment.OrderRefFor(res.ID(), payment.StageDeposit), p.OrderRef())
	assert.Equal(t, "https://pay.example/checkout", p.Metadata().CheckoutParams["url"])
	assert.False(t, p.IsExpired(now))
	assert.True(t, p.IsExpired(now.Add(30*time.Minute)))

	_, err = payment.NewPayment(payment.NewInput{ReservationID: res.ID(), Stage: payment.StageDeposit, Amount: 20000}, now)
	assert.Error(t, err)

	_, err = payment.NewPayment(payment.NewInput{ReservationID: res.ID(), Stage: payment.StageDeposit, Amount: 0, Intent: payment.PreparedIntent{ExternalID: "x"}}, now)
	assert.ErrorIs(t, err, payment.ErrNothingToPay)
}

func TestVerify(t *testing.T) {
	b := builder.NewPaymentBuilder()
	p := b.BuildStored()

	testCases := []struct {
		name   string
		mutate func(*payment.GatewayPayment)
		errIs  error
	}{
		{name: "matches", mutate: func(*payment.GatewayPayment) {}},
		{name: "still pending", mutate: func(gp *payment.GatewayPayment) { gp.Status = payment.GatewayStatusPending }, errIs: payment.ErrStatusMismatch},
		{name: "failed at gateway", mutate: func(gp *payment.GatewayPayment) { gp.Status = payment.GatewayStatusFailed }, errIs: payment.ErrStatusMismatch},
		{name: "amount lower", mutate: func(gp *payment.GatewayPayment) { gp.Amount-- }, errIs: payment.ErrAmountMismatch},
		{name: "amount higher", mutate: func(gp *payment.GatewayPayment) { gp.Amount++ }, errIs: payment.ErrAmountMismatch},
		{name: "other order", mutate: func(gp *payment.GatewayPayment) { gp.OrderRef = "RSV-other-deposit" }, errIs: payment.ErrOrderRefMismatch},
		{name: "other payment id", mutate: func(gp *payment.GatewayPayment) { gp.ExternalID = "pay_other" }, errIs: payment.ErrOrderRefMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gp := b.GatewayPaid()
			tc.mutate(&gp)

			err := p.Verify(gp)
			if tc.errIs == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.errIs)
			assert.True(t, errs.Is(err, payment.ErrVerificationFailed))
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	now := time.Now()

	t.Run("mark paid", func(t *testing.T) {
		b := builder.NewPaymentBuilder()
		p := b.BuildStored()

		require.NoError(t, p.MarkPaid(b.GatewayPaid(), now))
		assert.Equal(t, payment.StatusPaid, p.Status())
		require.NotNil(t, p.PaidAt())
		assert.Len(t, p.Metadata().Snapshots, 1)
		assert.Equal(t, int64(2), p.Version())
		assert.Equal(t, int64(1), p.ExpectedVersion())
	})

	t.Run("terminal payments do not transition again", func(t *testing.T) {
		for _, st := range []payment.Status{payment.StatusPaid, payment.StatusFailed, payment.StatusCancelled} {
			b := builder.NewPaymentBuilder().WithStatus(st)
			p := b.BuildStored()
			assert.ErrorIs(t, p.MarkPaid(b.GatewayPaid(), now), payment.ErrInvalidTransition, st.String())
			assert.ErrorIs(t, p.MarkFailed("x", nil, now), payment.ErrInvalidTransition, st.String())
		}
	})

	t.Run("mark failed keeps the reason", func(t *testing.T) {
		p := builder.NewPaymentBuilder().BuildStored()
		require.NoError(t, p.MarkFailed("amount mismatch", nil, now))
		assert.Equal(t, payment.StatusFailed, p.Status())
		assert.Equal(t, "amount mismatch", p.Metadata().FailureReason)
	})

	t.Run("mark cancelled by gateway", func(t *testing.T) {
		b := builder.NewPaymentBuilder()
		p := b.BuildStored()
		gp := b.GatewayPaid()
		gp.Status = payment.GatewayStatusCancelled
		require.NoError(t, p.MarkCancelled(gp, now))
		assert.Equal(t, payment.StatusCancelled, p.Status())
	})
}

func TestCancellation(t *testing.T) {
	now := time.Now()
	amount := func(v int64) *int64 { return &v }

	t.Run("partial then full refund of a paid payment", func(t *testing.T) {
		p := builder.NewPaymentBuilder().WithStatus(payment.StatusPaid).BuildStored()
		assert.Equal(t, int64(20000), p.Refundable())

		got, err := p.ResolveCancelAmount(amount(5000))
		require.NoError(t, err)
		require.NoError(t, p.RecordCancellation(payment.CancellationRecord{ID: "c1", Amount: got, Reason: "partial", CancelledAt: now}, now))
		assert.Equal(t, payment.StatusPaid, p.Status())
		assert.Equal(t, int64(15000), p.Refundable())

		got, err = p.ResolveCancelAmount(nil)
		require.NoError(t, err)
		assert.Equal(t, int64(15000), got)
		require.NoError(t, p.RecordCancellation(payment.CancellationRecord{ID: "c2", Amount: got, Reason: "rest", CancelledAt: now}, now))

		assert.Equal(t, payment.StatusCancelled, p.Status())
		assert.Equal(t, int64(20000), p.RefundedAmount())
		assert.Len(t, p.Metadata().Cancellations, 2)
		assert.Zero(t, p.Refundable())
	})

	t.Run("same gateway cancellation applied once", func(t *testing.T) {
		p := builder.NewPaymentBuilder().WithStatus(payment.StatusPaid).BuildStored()
		rec := payment.CancellationRecord{ID: "cnl_1", Amount: 3000, Reason: "partial", CancelledAt: now}

		require.NoError(t, p.RecordCancellation(rec, now))
		assert.True(t, p.HasCancellation("cnl_1"))
		assert.False(t, p.HasCancellation(""))

		err := p.RecordCancellation(rec, now)
		require.ErrorIs(t, err, payment.ErrCancellationSeen)
		assert.Equal(t, int64(3000), p.RefundedAmount())
		assert.Len(t, p.Metadata().Cancellations, 1)
	})

	t.Run("invalid amounts", func(t *testing.T) {
		p := builder.NewPaymentBuilder().WithStatus(payment.StatusPaid).BuildStored()
		_, err := p.ResolveCancelAmount(amount(0))
		assert.ErrorIs(t, err, payment.ErrInvalidCancelAmount)
		_, err = p.ResolveCancelAmount(amount(20001))
		assert.ErrorIs(t, err, payment.ErrInvalidCancelAmount)
	})

	t.Run("unpaid payments are voided in full only", func(t *testing.T) {
		p := builder.NewPaymentBuilder().BuildStored()
		_, err := p.ResolveCancelAmount(amount(100))
		assert.ErrorIs(t, err, payment.ErrInvalidCancelAmount)

		got, err := p.ResolveCancelAmount(nil)
		require.NoError(t, err)
		require.NoError(t, p.RecordCancellation(payment.CancellationRecord{ID: "v1", Amount: got, CancelledAt: now}, now))
		assert.Equal(t, payment.StatusCancelled, p.Status())
		assert.Zero(t, p.RefundedAmount())
	})

	t.Run("failed payments are not cancellable", func(t *testing.T) {
		p := builder.NewPaymentBuilder().WithStatus(payment.StatusFailed).BuildStored()
		_, err := p.ResolveCancelAmount(nil)
		assert.ErrorIs(t, err, payment.ErrNotCancellable)
		assert.False(t, p.RequestCancellation("cancelled", now))
	})

	t.Run("request cancellation flags once", func(t *testing.T) {
		p := builder.NewPaymentBuilder().WithStatus(payment.StatusPaid).BuildStored()
		assert.True(t, p.RequestCancellation("reservation cancelled", now))
		assert.True(t, p.CancellationRequested())
		v := p.Version()
		assert.True(t, p.RequestCancellation("again", now))
		assert.Equal(t, v, p.Version())
		assert.Equal(t, "reservation cancelled", p.CancelReason())
	})
}
