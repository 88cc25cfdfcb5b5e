package uow

import (
	"context"

	"booking-marketplace/internal/domain/schedule"
	"booking-marketplace/internal/infra/readstore"
	"booking-marketplace/internal/infra/repository"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/pkg/clock"
	"booking-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

// pgTx binds every repository and read to one pgx transaction.
type pgTx struct {
	db            sqlc.DBTX
	reservations  *repository.ReservationRepository
	payments      *repository.PaymentRepository
	points        *repository.PointRepository
	idempotency   *repository.IdempotencyRepository
	notifications *repository.NotificationRepository
	reads         *txReads
}

func newTx(u *PostgresUoW, db sqlc.DBTX) *pgTx {
	return &pgTx{
		db:            db,
		reservations:  repository.NewReservationRepository(u.q, db),
		payments:      repository.NewPaymentRepository(u.q, db),
		points:        repository.NewPointRepository(u.q, db),
		idempotency:   repository.NewIdempotencyRepository(u.q, db),
		notifications: repository.NewNotificationRepository(u.q, db),
		reads: &txReads{
			db:          db,
			clock:       u.clock,
			shops:       readstore.NewShopReadStore(u.q, db),
			users:       readstore.NewUserReadStore(u.q),
			idempotency: readstore.NewIdempotencyReadStore(u.q),
		},
	}
}

func (t *pgTx) DB() sqlc.DBTX { return t.db }
func (t *pgTx) Reservations() shared.ReservationRepository { return t.reservations }
func (t *pgTx) Payments() shared.PaymentRepository { return t.payments }
func (t *pgTx) Points() shared.PointRepository { return t.points }
func (t *pgTx) Idempotency() shared.IdempotencyRepository { return t.idempotency }
func (t *pgTx) Notifications() shared.NotificationRepository { return t.notifications }
func (t *pgTx) Reads() shared.CommandReads { return t.reads }

// txReads serves the catalogue and identity lookups a command validates against,
// inside the command's own transaction.
type txReads struct {
	db          sqlc.DBTX
	clock       clock.Clock
	shops       *readstore.ShopReadStore
	users       *readstore.UserReadStore
	idempotency *readstore.IdempotencyReadStore
}

func (r *txReads) ScheduleByShopID(ctx context.Context, shopID uuid.UUID) (*schedule.Schedule, error) {
	return r.shops.FindSchedule(ctx, shopID)
}

func (r *txReads) ResourceByID(ctx context.Context, shopID, resourceID uuid.UUID) (*shared.ResourceSnapshot, error) {
	res, err := r.shops.FindResource(ctx, shopID, resourceID)
	if err != nil {
		return nil, err
	}
	return &shared.ResourceSnapshot{ID: res.ID, ShopID: res.ShopID, Name: res.Name, Active: res.Active}, nil
}

// ServicesByIDs keys the catalogue by service id; ids missing from the map do not belong to the shop.
func (r *txReads) ServicesByIDs(ctx context.Context, shopID uuid.UUID, serviceIDs []uuid.UUID) (map[uuid.UUID]shared.ServiceSnapshot, error) {
	services, err := r.shops.FindServices(ctx, shopID, serviceIDs)
	if err != nil {
		return nil, err
	}

	catalogue := make(map[uuid.UUID]shared.ServiceSnapshot, len(services))
	for _, svc := range services {
		catalogue[svc.ID] = shared.ServiceSnapshot{
			ID:     svc.ID,
			ShopID: svc.ShopID,
			Name:   svc.Name,
			Price:  svc.Price,
			Active: svc.Active,
		}
	}
	return catalogue, nil
}

func (r *txReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	u, err := r.users.FindByID(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return &shared.UserSnapshot{ID: u.ID, Role: u.Role, IsInfluencer: u.IsInfluencer}, nil
}

func (r *txReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	return r.idempotency.Lookup(ctx, r.db, key, userID, r.clock.Now())
}
