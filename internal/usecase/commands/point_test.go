//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/pkg/clock"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/usecase/commands"
	"booking-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPointUseCase_Earn(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC)
	userID, reservationID := uuid.New(), uuid.New()

	testCases := []struct {
		name         string
		influencer   bool
		baseAmount   int64
		expectAmount int64
		expectErr    error
	}{
		{name: "success: regular customer earns the base rate", baseAmount: 100000, expectAmount: 2500},
		{name: "success: influencer earns the multiplied rate", influencer: true, baseAmount: 100000, expectAmount: 5000},
		{name: "success: earning is capped before the multiplier", baseAmount: 100_000_000, expectAmount: 300000},
		{name: "error: tiny base amount earns nothing", baseAmount: 30, expectErr: commands.ErrNothingEarned},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			env := newTxEnv(ctrl)
			uc := commands.NewPointUseCase(env.uow, env.cache, defaultPolicy(t), clock.NewMockClock(now))

			env.points.EXPECT().LoadLedger(gomock.Any(), gomock.Any(), userID).Return(point.NewLedger(userID, nil), nil)
			env.reads.EXPECT().UserByID(gomock.Any(), userID).Return(&shared.UserSnapshot{ID: userID, Role: "customer", IsInfluencer: tc.influencer}, nil)

			if tc.expectErr == nil {
				env.points.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, entries ...*point.Transaction) error {
						require.Len(t, entries, 1)
						assert.Equal(t, tc.expectAmount, entries[0].Amount())
						return nil
					})
				env.cache.EXPECT().Invalidate(gomock.Any(), userID).Return(nil)
			}

			result, err := uc.Earn(ctx, userID, reservationID, tc.baseAmount)
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectAmount, result.Amount)
			assert.Equal(t, point.TypeEarned, result.Type)
			assert.Equal(t, point.ReasonReservationCompletion, result.Reason)
			assert.True(t, now.AddDate(0, 0, 7).Equal(result.AvailableAt))
		})
	}
}

func TestPointUseCase_Use(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("success: debit from an available credit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		env := newTxEnv(ctrl)
		uc := commands.NewPointUseCase(env.uow, env.cache, defaultPolicy(t), clock.NewMockClock(now))

		ledger := point.NewLedger(userID, []*point.Transaction{point.Reconstruct(point.ReconstructInput{
			ID: uuid.New(), UserID: userID, Seq: 1, Amount: 1000, Type: point.TypeEarned,
			Reason: point.ReasonReservationCompletion, BalanceAfter: 1000,
			AvailableAt: now.AddDate(0, 0, -1), CreatedAt: now.AddDate(0, 0, -8),
		})})
		env.points.EXPECT().LoadLedger(gomock.Any(), gomock.Any(), userID).Return(ledger, nil)
		env.points.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		env.cache.EXPECT().Invalidate(gomock.Any(), userID).Return(errors.New("redis down"))

		result, err := uc.Use(ctx, userID, 400, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(-400), result.Amount)
		assert.Equal(t, int64(600), result.BalanceAfter)
		assert.Equal(t, int64(2), result.Seq)
	})

	t.Run("error: pending points are not spendable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		env := newTxEnv(ctrl)
		uc := commands.NewPointUseCase(env.uow, env.cache, defaultPolicy(t), clock.NewMockClock(now))

		ledger := point.NewLedger(userID, []*point.Transaction{point.Reconstruct(point.ReconstructInput{
			ID: uuid.New(), UserID: userID, Seq: 1, Amount: 1000, Type: point.TypeEarned,
			Reason: point.ReasonReservationCompletion, BalanceAfter: 1000,
			AvailableAt: now.AddDate(0, 0, 3), CreatedAt: now.AddDate(0, 0, -4),
		})})
		env.points.EXPECT().LoadLedger(gomock.Any(), gomock.Any(), userID).Return(ledger, nil)

		_, err := uc.Use(ctx, userID, 400, nil)
		require.ErrorIs(t, err, point.ErrInsufficientBalance)
	})
}

func TestPointUseCase_Adjust_SequenceCollision(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	env := newTxEnv(ctrl)
	uc := commands.NewPointUseCase(env.uow, env.cache, defaultPolicy(t), clock.NewMockClock(time.Now()))

	env.points.EXPECT().LoadLedger(gomock.Any(), gomock.Any(), userID).Return(point.NewLedger(userID, nil), nil)
	env.points.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(infra.WrapRepoErr("failed to insert point transaction", errors.New("duplicate"), infra.KindDuplicateKey))

	_, err := uc.Adjust(ctx, userID, 500)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrConcurrentModification))
}

func TestPointUseCase_CreditBonus_RejectsNonReferralReason(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	env := newTxEnv(ctrl)
	uc := commands.NewPointUseCase(env.uow, env.cache, defaultPolicy(t), clock.NewMockClock(time.Now()))

	env.points.EXPECT().LoadLedger(gomock.Any(), gomock.Any(), userID).Return(point.NewLedger(userID, nil), nil)

	_, err := uc.CreditBonus(ctx, userID, 1000, point.ReasonAdmin)
	require.ErrorIs(t, err, point.ErrInvalidReason)
}

func TestPointUseCase_ExpirePoints(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2031, time.June, 10, 0, 0, 0, 0, time.UTC)
	stale, spent, broken := uuid.New(), uuid.New(), uuid.New()
	env := newTxEnv(ctrl)
	uc := commands.NewPointUseCase(env.uow, env.cache, defaultPolicy(t), clock.NewMockClock(now))

	env.points.EXPECT().ListUsersWithExpirableCredits(gomock.Any(), gomock.Any(), now.AddDate(0, 0, -365), uuid.Nil, gomock.Any()).
		Return([]uuid.UUID{stale, spent, broken}, nil)

	createdAt := now.AddDate(-1, 0, -5)
	env.points.EXPECT().LoadLedger(gomock.Any(), gomock.Any(), stale).Return(point.NewLedger(stale, []*point.Transaction{
		point.Reconstruct(point.ReconstructInput{
			ID: uuid.New(), UserID: stale, Seq: 1, Amount: 800, Type: point.TypeEarned,
			Reason: point.ReasonReservationCompletion, BalanceAfter: 800,
			AvailableAt: createdAt.AddDate(0, 0, 7), CreatedAt: createdAt,
		}),
	}), nil)
	env.points.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, entries ...*point.Transaction) error {
			require.Len(t, entries, 1)
			assert.Equal(t, point.TypeExpired, entries[0].Type())
			assert.Equal(t, int64(-800), entries[0].Amount())
			return nil
		})
	env.cache.EXPECT().Invalidate(gomock.Any(), stale).Return(nil)

	// a fully spent credit still gets a marker so the scan stops returning it; the cache stays untouched
	env.points.EXPECT().LoadLedger(gomock.Any(), gomock.Any(), spent).Return(point.NewLedger(spent, []*point.Transaction{
		point.Reconstruct(point.ReconstructInput{
			ID: uuid.New(), UserID: spent, Seq: 1, Amount: 500, Type: point.TypeEarned,
			Reason: point.ReasonReservationCompletion, BalanceAfter: 500,
			AvailableAt: createdAt.AddDate(0, 0, 7), CreatedAt: createdAt,
		}),
		point.Reconstruct(point.ReconstructInput{
			ID: uuid.New(), UserID: spent, Seq: 2, Amount: -500, Type: point.TypeUsed,
			Reason: point.ReasonReservationPayment, BalanceAfter: 0,
			AvailableAt: createdAt.AddDate(0, 0, 10), CreatedAt: createdAt.AddDate(0, 0, 10),
		}),
	}), nil)
	env.points.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, entries ...*point.Transaction) error {
			require.Len(t, entries, 1)
			assert.Equal(t, point.TypeExpired, entries[0].Type())
			assert.Zero(t, entries[0].Amount())
			return nil
		})

	env.points.EXPECT().LoadLedger(gomock.Any(), gomock.Any(), broken).
		Return(nil, infra.WrapRepoErr("failed to load ledger", errors.New("connection reset")))

	n, err := uc.ExpirePoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
