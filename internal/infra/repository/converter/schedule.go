package converter

import (
	"time"

	"booking-marketplace/internal/domain/schedule"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

func ScheduleToDomain(shop sqlc.GetShopByIDRow, hours []sqlc.ShopOperatingHours) (*schedule.Schedule, error) {
	rate, err := decimal.NewFromString(shop.DepositRatePercent)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "deposit rate of shop %s", shop.ID), schedule.ErrInvalidSchedule)
	}

	days := make([]schedule.DayHours, 0, len(hours))
	for _, h := range hours {
		day := schedule.DayHours{
			Weekday: time.Weekday(h.Weekday),
			Closed:  h.Closed,
			Open:    int(h.OpenMinute),
			Close:   int(h.CloseMinute),
		}
		if h.BreakStartMinute.Valid && h.BreakEndMinute.Valid {
			bs, be := int(h.BreakStartMinute.Int32), int(h.BreakEndMinute.Int32)
			day.BreakStart, day.BreakEnd = &bs, &be
		}
		days = append(days, day)
	}

	return schedule.NewSchedule(schedule.Spec{
		ShopID:             shop.ID,
		OwnerID:            shop.OwnerID,
		TimeZone:           shop.TimeZone,
		Hours:              days,
		MinDurationMinutes: int(shop.MinDurationMinutes),
		MaxDurationMinutes: int(shop.MaxDurationMinutes),
		Granularity:        schedule.Granularity(shop.Granularity),
		DepositRatePercent: rate,
	})
}
