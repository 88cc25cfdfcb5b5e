package converter

import (
	"booking-marketplace/internal/domain/reservation"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/pkg/pgconv"
)

func ReservationToInfra(res *reservation.Reservation) sqlc.CreateReservationParams {
	slot := res.Slot()
	amounts := res.Amounts()

	return sqlc.CreateReservationParams{
		ID:              res.ID(),
		CustomerID:      res.CustomerID(),
		ShopID:          res.ShopID(),
		ResourceID:      pgconv.UUIDPtrToPgtype(res.ResourceID()),
		ResourceKey:     res.ResourceKey(),
		BusinessDate:    pgconv.DateToPgtype(slot.Date()),
		StartMinute:     int32(slot.StartMinute()),     // #nosec G115 -- bounded by NewTimeSlot
		DurationMinutes: int32(slot.DurationMinutes()), // #nosec G115 -- bounded by the shop's max duration
		StartsAt:        pgconv.TimeToPgtype(slot.Start()),
		EndsAt:          pgconv.TimeToPgtype(slot.End()),
		Status:          res.Status().String(),
		SubtotalAmount:  amounts.Subtotal.Amount(),
		PointsUsed:      amounts.PointsUsed.Amount(),
		TotalAmount:     amounts.Total.Amount(),
		DepositAmount:   amounts.Deposit.Amount(),
		RemainingAmount: amounts.Remaining.Amount(),
		Version:         res.Version(),
		CreatedAt:       pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:       pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func LineItemsToInfra(res *reservation.Reservation) []sqlc.CreateReservationLineItemParams {
	items := res.LineItems()
	params := make([]sqlc.CreateReservationLineItemParams, len(items))
	for i, li := range items {
		params[i] = sqlc.CreateReservationLineItemParams{
			ReservationID: res.ID(),
			LineNo:        int32(i + 1),
			ServiceID:     li.ServiceID(),
			Quantity:      int32(li.Quantity()),
			UnitPrice:     li.UnitPrice().Amount(),
		}
	}
	return params
}

func ReservationStateToInfra(res *reservation.Reservation) sqlc.UpdateReservationStateParams {
	params := sqlc.UpdateReservationStateParams{
		Status:          res.Status().String(),
		PointsEarned:    res.PointsEarned(),
		NewVersion:      res.Version(),
		UpdatedAt:       pgconv.TimeToPgtype(res.UpdatedAt()),
		ID:              res.ID(),
		ExpectedVersion: res.ExpectedVersion(),
	}
	if reason := res.CancelReason(); reason != "" {
		params.CancelReason = pgconv.StringToPgtype(reason)
	}
	return params
}

func ReservationToDomain(row sqlc.GetReservationByIDRow, items []sqlc.ReservationLineItems) (*reservation.Reservation, error) {
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	lineItems := make([]reservation.LineItem, 0, len(items))
	for _, it := range items {
		li, err := reservation.NewLineItem(it.ServiceID, int(it.Quantity), it.UnitPrice)
		if err != nil {
			return nil, err
		}
		lineItems = append(lineItems, li)
	}

	start := pgconv.TimeFromPgtype(row.StartsAt)
	slot := reservation.RestoreTimeSlot(
		pgconv.DateFromPgtype(row.BusinessDate, start.Location()),
		int(row.StartMinute),
		int(row.DurationMinutes),
		start,
		pgconv.TimeFromPgtype(row.EndsAt),
	)

	var cancelReason string
	if row.CancelReason.Valid {
		cancelReason = row.CancelReason.String
	}

	return reservation.Reconstruct(reservation.ReconstructInput{
		ID:           row.ID,
		CustomerID:   row.CustomerID,
		ShopID:       row.ShopID,
		ResourceID:   pgconv.UUIDPtrFromPgtype(row.ResourceID),
		ResourceKey:  row.ResourceKey,
		Slot:         slot,
		Status:       status,
		LineItems:    lineItems,
		Subtotal:     row.SubtotalAmount,
		PointsUsed:   row.PointsUsed,
		Total:        row.TotalAmount,
		Deposit:      row.DepositAmount,
		Remaining:    row.RemainingAmount,
		PointsEarned: row.PointsEarned,
		CancelReason: cancelReason,
		Version:      row.Version,
		CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:    pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}
