package readstore

import (
	"context"
	"time"

	"booking-marketplace/internal/infra"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/pkg/pgconv"
	"booking-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.GetIdempotencyKeyParams) (sqlc.IdempotencyKeys, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries) *IdempotencyReadStore {
	return &IdempotencyReadStore{queries: queries}
}

// Lookup returns the live record of (key, userID). Records at or past expiresAt are reported
// as KindNotFound, the caller may then claim the key for a new request.
func (r *IdempotencyReadStore) Lookup(ctx context.Context, db sqlc.DBTX, key, userID uuid.UUID, now time.Time) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, db, sqlc.GetIdempotencyKeyParams{Key: key, UserID: userID})
	switch {
	case pgconv.IsNoRows(err):
		return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
	case err != nil:
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	expiresAt := pgconv.TimeFromPgtype(row.ExpiresAt)
	if !now.Before(expiresAt) {
		return nil, infra.WrapRepoErr("idempotency key expired", nil, infra.KindNotFound)
	}

	return &shared.IdempotencyRecord{
		Key:                 row.Key,
		UserID:              row.UserID,
		Endpoint:            row.Endpoint,
		Status:              row.Status,
		RequestHash:         row.RequestHash,
		ResultReservationID: pgconv.UUIDPtrFromPgtype(row.ResultReservationID),
		ExpiresAt:           expiresAt,
	}, nil
}
