package readstore

import (
	"context"
	"time"

	"booking-marketplace/internal/domain/schedule"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/infra/repository/converter"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/pkg/pgconv"
	"booking-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
)

type ShopReadQueries interface {
	GetShopByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetShopByIDRow, error)
	ListShopOperatingHours(ctx context.Context, db sqlc.DBTX, shopID uuid.UUID) ([]sqlc.ShopOperatingHours, error)
	GetShopResource(ctx context.Context, db sqlc.DBTX, arg sqlc.GetShopResourceParams) (sqlc.ShopResources, error)
	ListShopServicesByIDs(ctx context.Context, db sqlc.DBTX, arg sqlc.ListShopServicesByIDsParams) ([]sqlc.ShopServices, error)
	ListActiveReservationsInRange(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveReservationsInRangeParams) ([]sqlc.ListActiveReservationsInRangeRow, error)
}

type ShopReadStore struct {
	queries ShopReadQueries
	db      sqlc.DBTX
}

func NewShopReadStore(queries ShopReadQueries, db sqlc.DBTX) *ShopReadStore {
	return &ShopReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ShopReadStore) FindSchedule(ctx context.Context, shopID uuid.UUID) (*schedule.Schedule, error) {
	shop, err := r.queries.GetShopByID(ctx, r.db, shopID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("shop not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find shop by ID", err)
	}

	hours, err := r.queries.ListShopOperatingHours(ctx, r.db, shopID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list operating hours", err)
	}

	sched, err := converter.ScheduleToDomain(shop, hours)
	if err != nil {
		return nil, infra.WrapRepoErr("stored shop schedule is invalid", err, infra.KindInvalidData)
	}
	return sched, nil
}

func (r *ShopReadStore) FindResource(ctx context.Context, shopID, resourceID uuid.UUID) (*queries.ResourceView, error) {
	row, err := r.queries.GetShopResource(ctx, r.db, sqlc.GetShopResourceParams{
		ID:     resourceID,
		ShopID: shopID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource", err)
	}

	return &queries.ResourceView{
		ID:     row.ID,
		ShopID: row.ShopID,
		Name:   row.Name,
		Active: row.Active,
	}, nil
}

func (r *ShopReadStore) FindServices(ctx context.Context, shopID uuid.UUID, serviceIDs []uuid.UUID) ([]queries.ServiceView, error) {
	rows, err := r.queries.ListShopServicesByIDs(ctx, r.db, sqlc.ListShopServicesByIDsParams{
		ShopID:     shopID,
		ServiceIds: serviceIDs,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list shop services", err)
	}

	views := make([]queries.ServiceView, len(rows))
	for i, row := range rows {
		views[i] = queries.ServiceView{
			ID:     row.ID,
			ShopID: row.ShopID,
			Name:   row.Name,
			Price:  row.Price,
			Active: row.Active,
		}
	}
	return views, nil
}

func (r *ShopReadStore) BusySlots(ctx context.Context, shopID, resourceKey uuid.UUID, from, to time.Time) ([]queries.BusySlot, error) {
	rows, err := r.queries.ListActiveReservationsInRange(ctx, r.db, sqlc.ListActiveReservationsInRangeParams{
		ShopID:      shopID,
		ResourceKey: resourceKey,
		RangeEnd:    pgconv.TimeToPgtype(to),
		RangeStart:  pgconv.TimeToPgtype(from),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list busy slots", err)
	}

	slots := make([]queries.BusySlot, len(rows))
	for i, row := range rows {
		slots[i] = queries.BusySlot{
			ReservationID: row.ID,
			Start:         pgconv.TimeFromPgtype(row.StartsAt),
			End:           pgconv.TimeFromPgtype(row.EndsAt),
		}
	}
	return slots, nil
}
