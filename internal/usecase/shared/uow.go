package shared

import (
	"context"
	"time"

	"booking-marketplace/internal/domain/payment"
	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/internal/domain/schedule"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one write transaction, retrying serialization failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Payments() PaymentRepository
	Points() PointRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

type CommandReads interface {
	ScheduleByShopID(ctx context.Context, shopID uuid.UUID) (*schedule.Schedule, error)
	ResourceByID(ctx context.Context, shopID, resourceID uuid.UUID) (*ResourceSnapshot, error)
	ServicesByIDs(ctx context.Context, shopID uuid.UUID, serviceIDs []uuid.UUID) (map[uuid.UUID]ServiceSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type ReservationRepository interface {
	// Create inserts the reservation and its line items. An overlapping active slot
	// surfaces as infra.KindConflict and leaves the transaction usable.
	Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	FindByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	// Update writes status and settlement fields guarded by the expected version.
	Update(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
	ListActiveInRange(ctx context.Context, tx sqlc.DBTX, shopID, resourceKey uuid.UUID, from, to time.Time) ([]ActiveSlot, error)
	ListAbandoned(ctx context.Context, tx sqlc.DBTX, createdBefore time.Time, limit int32) ([]uuid.UUID, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, p *payment.Payment) error
	FindByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*payment.Payment, error)
	FindByExternalID(ctx context.Context, tx sqlc.DBTX, externalID string) (*payment.Payment, error)
	ListByReservation(ctx context.Context, tx sqlc.DBTX, reservationID uuid.UUID) ([]*payment.Payment, error)
	Update(ctx context.Context, tx sqlc.DBTX, p *payment.Payment) error
	ListPendingCancellation(ctx context.Context, tx sqlc.DBTX, limit int32) ([]*payment.Payment, error)
	ListExpiredPrepared(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int32) ([]*payment.Payment, error)
}

type PointRepository interface {
	LoadLedger(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID) (*point.Ledger, error)
	// Append persists new ledger entries. A sequence collision surfaces as infra.KindDuplicateKey.
	Append(ctx context.Context, tx sqlc.DBTX, entries ...*point.Transaction) error
	ListUsersWithExpirableCredits(ctx context.Context, tx sqlc.DBTX, createdBefore time.Time, afterUserID uuid.UUID, limit int32) ([]uuid.UUID, error)
}

type IdempotencyRepository interface {
	// TryInsert reports whether a new processing record was created.
	TryInsert(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, resultHash string, reservationID uuid.UUID) error
	ClaimExpired(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, requestHash string, expiresAt, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	ClaimDue(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int32) ([]NotificationJob, error)
	MarkSent(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID) error
	MarkFailed(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID, lastError string) error
	Reschedule(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID, runAt time.Time, lastError string) error
}
