package converter

import (
	"booking-marketplace/internal/domain/point"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/pkg/pgconv"
)

func PointTransactionToInfra(t *point.Transaction) sqlc.InsertPointTransactionParams {
	return sqlc.InsertPointTransactionParams{
		ID:                  t.ID(),
		UserID:              t.UserID(),
		Seq:                 t.Seq(),
		Amount:              t.Amount(),
		Type:                t.Type().String(),
		Reason:              t.Reason().String(),
		BalanceAfter:        t.BalanceAfter(),
		AvailableAt:         pgconv.TimeToPgtype(t.AvailableAt()),
		ReservationID:       pgconv.UUIDPtrToPgtype(t.ReservationID()),
		SourceTransactionID: pgconv.UUIDPtrToPgtype(t.SourceTransactionID()),
		CreatedAt:           pgconv.TimeToPgtype(t.CreatedAt()),
	}
}

func PointTransactionToDomain(row sqlc.PointTransactions) *point.Transaction {
	return point.Reconstruct(point.ReconstructInput{
		ID:                  row.ID,
		UserID:              row.UserID,
		Seq:                 row.Seq,
		Amount:              row.Amount,
		Type:                point.Type(row.Type),
		Reason:              point.Reason(row.Reason),
		BalanceAfter:        row.BalanceAfter,
		AvailableAt:         pgconv.TimeFromPgtype(row.AvailableAt),
		ReservationID:       pgconv.UUIDPtrFromPgtype(row.ReservationID),
		SourceTransactionID: pgconv.UUIDPtrFromPgtype(row.SourceTransactionID),
		CreatedAt:           pgconv.TimeFromPgtype(row.CreatedAt),
	})
}

func PointTransactionsToDomain(rows []sqlc.PointTransactions) []*point.Transaction {
	out := make([]*point.Transaction, len(rows))
	for i, row := range rows {
		out[i] = PointTransactionToDomain(row)
	}
	return out
}
