package converter

import (
	"encoding/json"

	"booking-marketplace/internal/domain/payment"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/pkg/pgconv"
)

func PaymentToInfra(p *payment.Payment) (sqlc.CreatePaymentParams, error) {
	meta, err := json.Marshal(p.Metadata())
	if err != nil {
		return sqlc.CreatePaymentParams{}, errs.Wrap(err, "marshal payment metadata")
	}

	params := sqlc.CreatePaymentParams{
		ID:                    p.ID(),
		ReservationID:         p.ReservationID(),
		Stage:                 p.Stage().String(),
		ExternalPaymentID:     p.ExternalID(),
		OrderRef:              p.OrderRef(),
		Amount:                p.Amount(),
		Status:                p.Status().String(),
		Metadata:              meta,
		CancellationRequested: p.CancellationRequested(),
		RefundedAmount:        p.RefundedAmount(),
		ExpiresAt:             pgconv.TimeToPgtype(p.ExpiresAt()),
		PaidAt:                pgconv.TimePtrToPgtype(p.PaidAt()),
		Version:               p.Version(),
		CreatedAt:             pgconv.TimeToPgtype(p.CreatedAt()),
		UpdatedAt:             pgconv.TimeToPgtype(p.UpdatedAt()),
	}
	if reason := p.CancelReason(); reason != "" {
		params.CancelReason = pgconv.StringToPgtype(reason)
	}
	return params, nil
}

func PaymentStateToInfra(p *payment.Payment) (sqlc.UpdatePaymentParams, error) {
	meta, err := json.Marshal(p.Metadata())
	if err != nil {
		return sqlc.UpdatePaymentParams{}, errs.Wrap(err, "marshal payment metadata")
	}

	params := sqlc.UpdatePaymentParams{
		Status:                p.Status().String(),
		Metadata:              meta,
		CancellationRequested: p.CancellationRequested(),
		RefundedAmount:        p.RefundedAmount(),
		PaidAt:                pgconv.TimePtrToPgtype(p.PaidAt()),
		NewVersion:            p.Version(),
		UpdatedAt:             pgconv.TimeToPgtype(p.UpdatedAt()),
		ID:                    p.ID(),
		ExpectedVersion:       p.ExpectedVersion(),
	}
	if reason := p.CancelReason(); reason != "" {
		params.CancelReason = pgconv.StringToPgtype(reason)
	}
	return params, nil
}

func PaymentToDomain(row sqlc.Payments) (*payment.Payment, error) {
	var meta payment.Metadata
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &meta); err != nil {
			return nil, errs.Wrapf(err, "unmarshal metadata of payment %s", row.ID)
		}
	}

	var cancelReason string
	if row.CancelReason.Valid {
		cancelReason = row.CancelReason.String
	}

	return payment.Reconstruct(payment.ReconstructInput{
		ID:                    row.ID,
		ReservationID:         row.ReservationID,
		Stage:                 payment.Stage(row.Stage),
		ExternalID:            row.ExternalPaymentID,
		OrderRef:              row.OrderRef,
		Amount:                row.Amount,
		Status:                payment.Status(row.Status),
		Metadata:              meta,
		CancellationRequested: row.CancellationRequested,
		CancelReason:          cancelReason,
		RefundedAmount:        row.RefundedAmount,
		ExpiresAt:             pgconv.TimeFromPgtype(row.ExpiresAt),
		PaidAt:                pgconv.TimePtrFromPgtype(row.PaidAt),
		Version:               row.Version,
		CreatedAt:             pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:             pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}

func PaymentsToDomain(rows []sqlc.Payments) ([]*payment.Payment, error) {
	out := make([]*payment.Payment, 0, len(rows))
	for _, row := range rows {
		p, err := PaymentToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
