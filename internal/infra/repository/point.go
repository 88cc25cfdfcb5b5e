package repository

import (
	"context"
	"time"

	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/infra/repository/converter"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PointWriteQueries interface {
	ListPointTransactionsByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]sqlc.PointTransactions, error)
	InsertPointTransaction(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertPointTransactionParams) error
	ListUsersWithExpirableCredits(ctx context.Context, db sqlc.DBTX, arg sqlc.ListUsersWithExpirableCreditsParams) ([]uuid.UUID, error)
}

type PointRepository struct {
	queries PointWriteQueries
	db      sqlc.DBTX
}

func NewPointRepository(queries PointWriteQueries, db sqlc.DBTX) *PointRepository {
	return &PointRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PointRepository) LoadLedger(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID) (*point.Ledger, error) {
	rows, err := r.queries.ListPointTransactionsByUser(ctx, tx, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load point ledger", err)
	}
	return point.NewLedger(userID, converter.PointTransactionsToDomain(rows)), nil
}

// Append inserts entries in sequence order. The (user_id, seq) unique key rejects an entry
// computed from a stale ledger.
func (r *PointRepository) Append(ctx context.Context, tx sqlc.DBTX, entries ...*point.Transaction) error {
	for _, e := range entries {
		if err := r.queries.InsertPointTransaction(ctx, tx, converter.PointTransactionToInfra(e)); err != nil {
			return infra.WrapRepoErr("failed to append point transaction", err)
		}
	}
	return nil
}

func (r *PointRepository) ListUsersWithExpirableCredits(ctx context.Context, tx sqlc.DBTX, createdBefore time.Time, afterUserID uuid.UUID, limit int32) ([]uuid.UUID, error) {
	ids, err := r.queries.ListUsersWithExpirableCredits(ctx, tx, sqlc.ListUsersWithExpirableCreditsParams{
		CreatedBefore: pgconv.TimeToPgtype(createdBefore),
		AfterUserID:   afterUserID,
		MaxRows:       limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users with expirable credits", err)
	}
	return ids, nil
}
