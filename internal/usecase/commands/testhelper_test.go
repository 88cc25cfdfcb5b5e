//go:build unit

package commands_test

import (
	"context"
	"testing"

	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/usecase/shared"
	sharedmock "booking-marketplace/tests/mock/shared"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// txEnv runs every Within call against the same mocked transaction.
type txEnv struct {
	uow           *sharedmock.MockUnitOfWork
	tx            *sharedmock.MockTx
	reads         *sharedmock.MockCommandReads
	reservations  *sharedmock.MockReservationRepository
	payments      *sharedmock.MockPaymentRepository
	points        *sharedmock.MockPointRepository
	idempotency   *sharedmock.MockIdempotencyRepository
	notifications *sharedmock.MockNotificationRepository
	cache         *sharedmock.MockBalanceCache
}

func newTxEnv(ctrl *gomock.Controller) *txEnv {
	env := &txEnv{
		uow:           sharedmock.NewMockUnitOfWork(ctrl),
		tx:            sharedmock.NewMockTx(ctrl),
		reads:         sharedmock.NewMockCommandReads(ctrl),
		reservations:  sharedmock.NewMockReservationRepository(ctrl),
		payments:      sharedmock.NewMockPaymentRepository(ctrl),
		points:        sharedmock.NewMockPointRepository(ctrl),
		idempotency:   sharedmock.NewMockIdempotencyRepository(ctrl),
		notifications: sharedmock.NewMockNotificationRepository(ctrl),
		cache:         sharedmock.NewMockBalanceCache(ctrl),
	}

	env.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, env.tx)
		}).AnyTimes()

	env.tx.EXPECT().DB().Return(nil).AnyTimes()
	env.tx.EXPECT().Reads().Return(env.reads).AnyTimes()
	env.tx.EXPECT().Reservations().Return(env.reservations).AnyTimes()
	env.tx.EXPECT().Payments().Return(env.payments).AnyTimes()
	env.tx.EXPECT().Points().Return(env.points).AnyTimes()
	env.tx.EXPECT().Idempotency().Return(env.idempotency).AnyTimes()
	env.tx.EXPECT().Notifications().Return(env.notifications).AnyTimes()
	return env
}

func defaultPolicy(t *testing.T) point.Policy {
	t.Helper()
	policy, err := point.ParsePolicy("2.5", 300000, "2", 7, 365)
	require.NoError(t, err)
	return policy
}
