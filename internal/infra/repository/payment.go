package repository

import (
	"context"
	"time"

	"booking-marketplace/internal/domain/payment"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/infra/repository/converter"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PaymentWriteQueries interface {
	CreatePayment(ctx context.Context, db sqlc.DBTX, arg sqlc.CreatePaymentParams) error
	GetPaymentByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Payments, error)
	GetPaymentByExternalID(ctx context.Context, db sqlc.DBTX, externalPaymentID string) (sqlc.Payments, error)
	ListPaymentsByReservation(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.Payments, error)
	UpdatePayment(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdatePaymentParams) (int64, error)
	ListPaymentsPendingCancellation(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.Payments, error)
	ListExpiredPreparedPayments(ctx context.Context, db sqlc.DBTX, arg sqlc.ListExpiredPreparedPaymentsParams) ([]sqlc.Payments, error)
}

type PaymentRepository struct {
	queries PaymentWriteQueries
	db      sqlc.DBTX
}

func NewPaymentRepository(queries PaymentWriteQueries, db sqlc.DBTX) *PaymentRepository {
	return &PaymentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, tx sqlc.DBTX, p *payment.Payment) error {
	params, err := converter.PaymentToInfra(p)
	if err != nil {
		return infra.WrapRepoErr("failed to encode payment", err, infra.KindInvalidData)
	}
	if err := r.queries.CreatePayment(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*payment.Payment, error) {
	row, err := r.queries.GetPaymentByID(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by ID", err)
	}
	return toPayment(row)
}

func (r *PaymentRepository) FindByExternalID(ctx context.Context, tx sqlc.DBTX, externalID string) (*payment.Payment, error) {
	row, err := r.queries.GetPaymentByExternalID(ctx, tx, externalID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by external ID", err)
	}
	return toPayment(row)
}

func (r *PaymentRepository) ListByReservation(ctx context.Context, tx sqlc.DBTX, reservationID uuid.UUID) ([]*payment.Payment, error) {
	rows, err := r.queries.ListPaymentsByReservation(ctx, tx, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments by reservation", err)
	}
	return toPayments(rows)
}

func (r *PaymentRepository) Update(ctx context.Context, tx sqlc.DBTX, p *payment.Payment) error {
	params, err := converter.PaymentStateToInfra(p)
	if err != nil {
		return infra.WrapRepoErr("failed to encode payment", err, infra.KindInvalidData)
	}
	affected, err := r.queries.UpdatePayment(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("payment version changed", nil, infra.KindStaleVersion)
	}
	return nil
}

func (r *PaymentRepository) ListPendingCancellation(ctx context.Context, tx sqlc.DBTX, limit int32) ([]*payment.Payment, error) {
	rows, err := r.queries.ListPaymentsPendingCancellation(ctx, tx, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments pending cancellation", err)
	}
	return toPayments(rows)
}

func (r *PaymentRepository) ListExpiredPrepared(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int32) ([]*payment.Payment, error) {
	rows, err := r.queries.ListExpiredPreparedPayments(ctx, tx, sqlc.ListExpiredPreparedPaymentsParams{
		Now:     pgconv.TimeToPgtype(now),
		MaxRows: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired prepared payments", err)
	}
	return toPayments(rows)
}

func toPayment(row sqlc.Payments) (*payment.Payment, error) {
	p, err := converter.PaymentToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored payment is invalid", err, infra.KindInvalidData)
	}
	return p, nil
}

func toPayments(rows []sqlc.Payments) ([]*payment.Payment, error) {
	out, err := converter.PaymentsToDomain(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("stored payment is invalid", err, infra.KindInvalidData)
	}
	return out, nil
}
