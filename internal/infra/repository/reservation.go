package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"booking-marketplace/internal/domain/reservation"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/infra/repository/converter"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/pkg/pgconv"
	"booking-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) (uuid.UUID, error)
	CreateReservationLineItem(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationLineItemParams) error
	GetReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetReservationByIDRow, error)
	ListReservationLineItems(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.ReservationLineItems, error)
	UpdateReservationState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationStateParams) (int64, error)
	ListActiveReservationsInRange(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveReservationsInRangeParams) ([]sqlc.ListActiveReservationsInRangeRow, error)
	ListAbandonedReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.ListAbandonedReservationsParams) ([]uuid.UUID, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      sqlc.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db sqlc.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

// Create runs the insert inside a savepoint when tx is a pgx transaction, so an exclusion
// violation can be followed by a lookup of the holder in the same transaction.
func (r *ReservationRepository) Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	db := tx
	var sp pgx.Tx
	if outer, ok := tx.(pgx.Tx); ok {
		nested, err := outer.Begin(ctx)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to open savepoint", err)
		}
		sp, db = nested, nested
	}

	id, err := r.insert(ctx, db, res)
	if err != nil {
		if sp != nil {
			if rbErr := sp.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				slog.Warn("failed to roll back savepoint", "error", rbErr.Error())
			}
		}
		return uuid.Nil, err
	}

	if sp != nil {
		if err := sp.Commit(ctx); err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to release savepoint", err)
		}
	}
	return id, nil
}

func (r *ReservationRepository) insert(ctx context.Context, db sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	id, err := r.queries.CreateReservation(ctx, db, converter.ReservationToInfra(res))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	for _, item := range converter.LineItemsToInfra(res) {
		if err := r.queries.CreateReservationLineItem(ctx, db, item); err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create reservation line item", err)
		}
	}
	return id, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByID(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	items, err := r.queries.ListReservationLineItems(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservation line items", err)
	}

	res, err := converter.ReservationToDomain(row, items)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation is invalid", err, infra.KindInvalidData)
	}
	return res, nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	affected, err := r.queries.UpdateReservationState(ctx, tx, converter.ReservationStateToInfra(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation version changed", nil, infra.KindStaleVersion)
	}
	return nil
}

func (r *ReservationRepository) ListActiveInRange(ctx context.Context, tx sqlc.DBTX, shopID, resourceKey uuid.UUID, from, to time.Time) ([]shared.ActiveSlot, error) {
	rows, err := r.queries.ListActiveReservationsInRange(ctx, tx, sqlc.ListActiveReservationsInRangeParams{
		ShopID:      shopID,
		ResourceKey: resourceKey,
		RangeEnd:    pgconv.TimeToPgtype(to),
		RangeStart:  pgconv.TimeToPgtype(from),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active reservations", err)
	}

	slots := make([]shared.ActiveSlot, len(rows))
	for i, row := range rows {
		slots[i] = shared.ActiveSlot{
			ReservationID: row.ID,
			ResourceKey:   row.ResourceKey,
			Start:         pgconv.TimeFromPgtype(row.StartsAt),
			End:           pgconv.TimeFromPgtype(row.EndsAt),
		}
	}
	return slots, nil
}

func (r *ReservationRepository) ListAbandoned(ctx context.Context, tx sqlc.DBTX, createdBefore time.Time, limit int32) ([]uuid.UUID, error) {
	ids, err := r.queries.ListAbandonedReservations(ctx, tx, sqlc.ListAbandonedReservationsParams{
		CreatedBefore: pgconv.TimeToPgtype(createdBefore),
		MaxRows:       limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list abandoned reservations", err)
	}
	return ids, nil
}
