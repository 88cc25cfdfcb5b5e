package readstore

import (
	"context"
	"time"

	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/infra/repository/converter"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/pkg/pgconv"
	"booking-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
)

type PointReadQueries interface {
	ListPointTransactionsByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]sqlc.PointTransactions, error)
	ListPointHistoryFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListPointHistoryFirstPageParams) ([]sqlc.PointTransactions, error)
	ListPointHistoryKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListPointHistoryKeysetParams) ([]sqlc.PointTransactions, error)
}

type PointReadStore struct {
	queries PointReadQueries
	db      sqlc.DBTX
}

func NewPointReadStore(queries PointReadQueries, db sqlc.DBTX) *PointReadStore {
	return &PointReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *PointReadStore) Ledger(ctx context.Context, userID uuid.UUID) (*point.Ledger, error) {
	rows, err := r.queries.ListPointTransactionsByUser(ctx, r.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load point ledger", err)
	}
	return point.NewLedger(userID, converter.PointTransactionsToDomain(rows)), nil
}

func (r *PointReadStore) HistoryFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.PointHistoryItem, error) {
	rows, err := r.queries.ListPointHistoryFirstPage(ctx, r.db, sqlc.ListPointHistoryFirstPageParams{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list point history", err)
	}
	return toHistoryItems(rows), nil
}

func (r *PointReadStore) HistoryKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.PointHistoryItem, error) {
	rows, err := r.queries.ListPointHistoryKeyset(ctx, r.db, sqlc.ListPointHistoryKeysetParams{
		UserID:    userID,
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		MaxRows:   limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list point history page", err)
	}
	return toHistoryItems(rows), nil
}

func toHistoryItems(rows []sqlc.PointTransactions) []*queries.PointHistoryItem {
	items := make([]*queries.PointHistoryItem, len(rows))
	for i, row := range rows {
		items[i] = &queries.PointHistoryItem{
			ID:            row.ID,
			Seq:           row.Seq,
			Amount:        row.Amount,
			Type:          row.Type,
			Reason:        row.Reason,
			BalanceAfter:  row.BalanceAfter,
			AvailableAt:   pgconv.TimeFromPgtype(row.AvailableAt),
			ReservationID: pgconv.UUIDPtrFromPgtype(row.ReservationID),
			CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}
	return items
}
