package readstore

import (
	"context"
	"time"

	"booking-marketplace/internal/domain/schedule"
	"booking-marketplace/internal/infra"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/pkg/pgconv"
	"booking-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetReservationByIDRow, error)
	ListReservationLineItems(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.ReservationLineItems, error)
	ListPaymentsByReservation(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.Payments, error)
	GetShopByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetShopByIDRow, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, uuid.UUID, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, uuid.Nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, uuid.Nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	items, err := r.queries.ListReservationLineItems(ctx, r.db, id)
	if err != nil {
		return nil, uuid.Nil, infra.WrapRepoErr("failed to list reservation line items", err)
	}

	payments, err := r.queries.ListPaymentsByReservation(ctx, r.db, id)
	if err != nil {
		return nil, uuid.Nil, infra.WrapRepoErr("failed to list reservation payments", err)
	}

	shop, err := r.queries.GetShopByID(ctx, r.db, row.ShopID)
	if err != nil {
		return nil, uuid.Nil, infra.WrapRepoErr("failed to find reservation shop", err)
	}

	return rowToReservationView(row, items, payments), shop.OwnerID, nil
}

func rowToReservationView(row sqlc.GetReservationByIDRow, items []sqlc.ReservationLineItems, payments []sqlc.Payments) *queries.ReservationView {
	view := &queries.ReservationView{
		ID:              row.ID,
		CustomerID:      row.CustomerID,
		ShopID:          row.ShopID,
		ResourceID:      pgconv.UUIDPtrFromPgtype(row.ResourceID),
		BusinessDate:    pgconv.DateFromPgtype(row.BusinessDate, time.UTC),
		StartTime:       schedule.FormatClock(int(row.StartMinute)),
		DurationMinutes: int(row.DurationMinutes),
		StartsAt:        pgconv.TimeFromPgtype(row.StartsAt),
		EndsAt:          pgconv.TimeFromPgtype(row.EndsAt),
		Status:          row.Status,
		SubtotalAmount:  row.SubtotalAmount,
		PointsUsed:      row.PointsUsed,
		TotalAmount:     row.TotalAmount,
		DepositAmount:   row.DepositAmount,
		RemainingAmount: row.RemainingAmount,
		PointsEarned:    row.PointsEarned,
		CancelReason:    pgconv.StringPtrFromPgtype(row.CancelReason),
		Version:         row.Version,
		LineItems:       make([]queries.LineItemView, len(items)),
		Payments:        make([]queries.PaymentSummaryView, len(payments)),
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}

	for i, item := range items {
		view.LineItems[i] = queries.LineItemView{
			ServiceID: item.ServiceID,
			Quantity:  int(item.Quantity),
			UnitPrice: item.UnitPrice,
			LineTotal: item.UnitPrice * int64(item.Quantity),
		}
	}

	for i, p := range payments {
		view.Payments[i] = queries.PaymentSummaryView{
			ID:                    p.ID,
			Stage:                 p.Stage,
			ExternalPaymentID:     p.ExternalPaymentID,
			Amount:                p.Amount,
			Status:                p.Status,
			RefundedAmount:        p.RefundedAmount,
			CancellationRequested: p.CancellationRequested,
			ExpiresAt:             pgconv.TimeFromPgtype(p.ExpiresAt),
			PaidAt:                pgconv.TimePtrFromPgtype(p.PaidAt),
			CreatedAt:             pgconv.TimeFromPgtype(p.CreatedAt),
		}
	}

	return view
}
