//go:build unit

package reservation_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, res.ID())
		assert.Equal(t, reservation.StatusRequested, res.Status())
		assert.Equal(t, int64(100000), res.Amounts().Total.Amount())
		assert.Equal(t, int64(20000), res.Amounts().Deposit.Amount())
		assert.Equal(t, int64(80000), res.Amounts().Remaining.Amount())
		assert.Equal(t, int64(1), res.Version())
		assert.Equal(t, int64(0), res.ExpectedVersion())
		assert.True(t, res.IsNew())
		assert.Equal(t, time.Hour, res.Slot().Duration())

		events := res.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, reservation.EventRequested, events[0].Type)
		assert.Empty(t, res.PullEvents())
	})

	t.Run("validation", func(t *testing.T) {
		testCases := []struct {
			name   string
			mutate func(*builder.ReservationBuilder)
			errIs  error
		}{
			{
				name:   "slot already started",
				mutate: func(b *builder.ReservationBuilder) { b.WithNow(b.Date.Add(10 * time.Hour)) },
				errIs:  reservation.ErrSlotInPast,
			},
			{
				name:   "no line items",
				mutate: func(b *builder.ReservationBuilder) { b.WithItems() },
				errIs:  reservation.ErrEmptyLineItems,
			},
			{
				name: "free services only",
				mutate: func(b *builder.ReservationBuilder) {
					b.WithItems(builder.LineItemSpec{ServiceID: uuid.New(), Quantity: 1, UnitPrice: 0})
				},
				errIs: reservation.ErrZeroTotal,
			},
			{
				name:   "points cover the whole subtotal",
				mutate: func(b *builder.ReservationBuilder) { b.WithPointsUsed(100000) },
				errIs:  reservation.ErrPointsExceedSubtotal,
			},
			{
				name:   "negative points",
				mutate: func(b *builder.ReservationBuilder) { b.WithPointsUsed(-1) },
				errIs:  reservation.ErrNegativeAmount,
			},
			{
				name:   "deposit rate zero",
				mutate: func(b *builder.ReservationBuilder) { b.WithDepositRate("0") },
				errIs:  reservation.ErrInvalidDepositRate,
			},
			{
				name: "zero quantity",
				mutate: func(b *builder.ReservationBuilder) {
					b.WithItems(builder.LineItemSpec{ServiceID: uuid.New(), Quantity: 0, UnitPrice: 1000})
				},
				errIs: reservation.ErrInvalidQuantity,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				res, err := builder.NewReservationBuilder().With(tc.mutate).BuildDomain()
				require.Nil(t, res)
				require.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestCalculateAmounts(t *testing.T) {
	serviceA, serviceB := uuid.New(), uuid.New()

	testCases := []struct {
		name        string
		items       []builder.LineItemSpec
		points      int64
		rate        string
		wantTotal   int64
		wantDeposit int64
	}{
		{
			name:        "single item 20 percent",
			items:       []builder.LineItemSpec{{ServiceID: serviceA, Quantity: 1, UnitPrice: 100000}},
			rate:        "20",
			wantTotal:   100000,
			wantDeposit: 20000,
		},
		{
			name: "several items with quantity",
			items: []builder.LineItemSpec{
				{ServiceID: serviceA, Quantity: 2, UnitPrice: 15000},
				{ServiceID: serviceB, Quantity: 1, UnitPrice: 7000},
			},
			rate:        "10",
			wantTotal:   37000,
			wantDeposit: 3700,
		},
		{
			name:        "points reduce the total before the deposit split",
			items:       []builder.LineItemSpec{{ServiceID: serviceA, Quantity: 1, UnitPrice: 100000}},
			points:      10000,
			rate:        "20",
			wantTotal:   90000,
			wantDeposit: 18000,
		},
		{
			name:        "fractional rate floors",
			items:       []builder.LineItemSpec{{ServiceID: serviceA, Quantity: 1, UnitPrice: 99999}},
			rate:        "33.3",
			wantTotal:   99999,
			wantDeposit: 33299,
		},
		{
			name:        "deposit never rounds down to zero",
			items:       []builder.LineItemSpec{{ServiceID: serviceA, Quantity: 1, UnitPrice: 3}},
			rate:        "20",
			wantTotal:   3,
			wantDeposit: 1,
		},
		{
			name:        "full prepayment",
			items:       []builder.LineItemSpec{{ServiceID: serviceA, Quantity: 1, UnitPrice: 50000}},
			rate:        "100",
			wantTotal:   50000,
			wantDeposit: 50000,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := builder.NewReservationBuilder().WithItems(tc.items...).LineItems()
			require.NoError(t, err)

			amounts, err := reservation.CalculateAmounts(items, tc.points, decimal.RequireFromString(tc.rate))
			require.NoError(t, err)
			assert.Equal(t, tc.wantTotal, amounts.Total.Amount())
			assert.Equal(t, tc.wantDeposit, amounts.Deposit.Amount())
			assert.Equal(t, amounts.Total.Amount(), amounts.Deposit.Amount()+amounts.Remaining.Amount())
		})
	}

	t.Run("deposit plus remaining equals total for every rate", func(t *testing.T) {
		for _, price := range []int64{1, 7, 999, 12345, 100000, 987654321} {
			for _, rate := range []string{"0.5", "1", "12.5", "20", "33.33", "50", "99.9", "100"} {
				items, err := builder.NewReservationBuilder().
					WithItems(builder.LineItemSpec{ServiceID: serviceA, Quantity: 1, UnitPrice: price}).
					LineItems()
				require.NoError(t, err)

				amounts, err := reservation.CalculateAmounts(items, 0, decimal.RequireFromString(rate))
				require.NoError(t, err, fmt.Sprintf("price=%d rate=%s", price, rate))
				assert.Equal(t, amounts.Total.Amount(), amounts.Deposit.Amount()+amounts.Remaining.Amount())
				assert.Positive(t, amounts.Deposit.Amount())
				assert.GreaterOrEqual(t, amounts.Remaining.Amount(), int64(0))
			}
		}
	})
}

func TestTransitions(t *testing.T) {
	startOfSlot := func(b *builder.ReservationBuilder) time.Time {
		slot, err := b.Slot()
		require.NoError(t, err)
		return slot.Start()
	}

	t.Run("confirm requires a paid deposit", func(t *testing.T) {
		res := builder.NewReservationBuilder().BuildStored()

		err := res.Confirm(reservation.Settlement{}, time.Now())
		require.ErrorIs(t, err, reservation.ErrDepositNotPaid)
		assert.Equal(t, reservation.StatusRequested, res.Status())

		require.NoError(t, res.Confirm(reservation.Settlement{DepositPaid: true}, time.Now()))
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
		assert.Equal(t, int64(2), res.Version())
		assert.Equal(t, int64(1), res.ExpectedVersion())

		events := res.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, reservation.EventConfirmed, events[0].Type)
		assert.Equal(t, "requested", events[0].Payload["from"])
		assert.Equal(t, "confirmed", events[0].Payload["to"])
	})

	t.Run("a second transition in the same unit of work is rejected", func(t *testing.T) {
		res := builder.NewReservationBuilder().BuildStored()
		require.NoError(t, res.Confirm(reservation.Settlement{DepositPaid: true}, time.Now()))

		err := res.Cancel(reservation.CancelledByCustomer, "changed plans", time.Now())
		require.ErrorIs(t, err, reservation.ErrAlreadyModified)
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
	})

	t.Run("complete requires the final payment when a balance remains", func(t *testing.T) {
		res := builder.NewReservationBuilder().WithStatus(reservation.StatusConfirmed).BuildStored()

		err := res.Complete(reservation.Settlement{DepositPaid: true}, time.Now())
		require.ErrorIs(t, err, reservation.ErrFinalPaymentRequired)

		require.NoError(t, res.Complete(reservation.Settlement{DepositPaid: true, FinalPaid: true}, time.Now()))
		assert.Equal(t, reservation.StatusCompleted, res.Status())
		require.NoError(t, res.RecordPointsEarned(2500))
		assert.Equal(t, int64(2500), res.PointsEarned())
	})

	t.Run("complete without a balance needs no final payment", func(t *testing.T) {
		res := builder.NewReservationBuilder().WithDepositRate("100").WithStatus(reservation.StatusConfirmed).BuildStored()
		require.NoError(t, res.Complete(reservation.Settlement{DepositPaid: true}, time.Now()))
		assert.Equal(t, reservation.StatusCompleted, res.Status())
	})

	t.Run("complete from requested is invalid", func(t *testing.T) {
		res := builder.NewReservationBuilder().BuildStored()
		err := res.Complete(reservation.Settlement{DepositPaid: true, FinalPaid: true}, time.Now())
		require.ErrorIs(t, err, reservation.ErrInvalidTransition)
	})

	t.Run("cancel by side", func(t *testing.T) {
		testCases := []struct {
			name  string
			from  reservation.Status
			by    reservation.Canceller
			want  reservation.Status
			errIs error
		}{
			{name: "customer cancels requested", from: reservation.StatusRequested, by: reservation.CancelledByCustomer, want: reservation.StatusCancelledByUser},
			{name: "customer cancels confirmed", from: reservation.StatusConfirmed, by: reservation.CancelledByCustomer, want: reservation.StatusCancelledByUser},
			{name: "shop cancels confirmed", from: reservation.StatusConfirmed, by: reservation.CancelledByShop, want: reservation.StatusCancelledByShop},
			{name: "completed cannot be cancelled", from: reservation.StatusCompleted, by: reservation.CancelledByCustomer, errIs: reservation.ErrInvalidTransition},
			{name: "cancelled cannot be cancelled again", from: reservation.StatusCancelledByShop, by: reservation.CancelledByShop, errIs: reservation.ErrInvalidTransition},
			{name: "no-show cannot be cancelled", from: reservation.StatusNoShow, by: reservation.CancelledByShop, errIs: reservation.ErrInvalidTransition},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				res := builder.NewReservationBuilder().WithStatus(tc.from).BuildStored()
				err := res.Cancel(tc.by, "reason", time.Now())
				if tc.errIs != nil {
					require.ErrorIs(t, err, tc.errIs)
					assert.Equal(t, tc.from, res.Status())
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tc.want, res.Status())
				assert.False(t, res.Status().IsActive())
				assert.Equal(t, "reason", res.CancelReason())
			})
		}
	})

	t.Run("no-show only after the scheduled start", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithStatus(reservation.StatusConfirmed)
		res := b.BuildStored()
		start := startOfSlot(b)

		err := res.MarkNoShow(start.Add(-time.Minute))
		require.ErrorIs(t, err, reservation.ErrNoShowTooEarly)

		require.NoError(t, res.MarkNoShow(start))
		assert.Equal(t, reservation.StatusNoShow, res.Status())
	})

	t.Run("no-show from requested is invalid", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		res := b.BuildStored()
		err := res.MarkNoShow(startOfSlot(b).Add(time.Hour))
		require.ErrorIs(t, err, reservation.ErrInvalidTransition)
	})
}

func TestTimeSlotOverlap(t *testing.T) {
	date := builder.NewReservationBuilder().Date
	slot := func(start, duration int) reservation.TimeSlot {
		s, err := reservation.NewTimeSlot(date, start, duration)
		require.NoError(t, err)
		return s
	}

	existing := slot(600, 60)
	assert.True(t, existing.Overlaps(slot(630, 60)), "10:30-11:30 overlaps 10:00-11:00")
	assert.False(t, existing.Overlaps(slot(660, 60)), "11:00-12:00 is adjacent")
	assert.False(t, existing.Overlaps(slot(540, 60)), "09:00-10:00 is adjacent")
	assert.True(t, existing.Overlaps(slot(540, 180)), "containing slot overlaps")

	overnight := slot(23*60, 120)
	assert.True(t, overnight.Overlaps(slot(24*60+30, 60)), "post-midnight part of the same business day")
	assert.Equal(t, date.Day()+1, overnight.End().Day())

	_, err := reservation.NewTimeSlot(date, 600, 0)
	assert.ErrorIs(t, err, reservation.ErrInvalidTimeSlot)
}

func TestConflictError(t *testing.T) {
	winner := uuid.New()
	var err error = &reservation.ConflictError{ConflictingReservationID: winner}

	assert.True(t, errors.Is(err, reservation.ErrSlotConflict))
	assert.Contains(t, err.Error(), winner.String())

	var ce *reservation.ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, winner, ce.ConflictingReservationID)
}

func TestReconstruct_RejectsBrokenAmounts(t *testing.T) {
	b := builder.NewReservationBuilder()
	items, err := b.LineItems()
	require.NoError(t, err)
	slot, err := b.Slot()
	require.NoError(t, err)

	_, err = reservation.Reconstruct(reservation.ReconstructInput{
		ID:        uuid.New(),
		Status:    reservation.StatusRequested,
		Slot:      slot,
		LineItems: items,
		Subtotal:  100000,
		Total:     100000,
		Deposit:   20000,
		Remaining: 70000,
		Version:   1,
	})
	require.Error(t, err)

	_, err = reservation.Reconstruct(reservation.ReconstructInput{Status: "pending"})
	require.ErrorIs(t, err, reservation.ErrInvalidStatus)
}
