//go:build unit || e2e

package builder

import (
	"fmt"
	"time"

	"booking-marketplace/internal/domain/reservation"
	reqdto "booking-marketplace/internal/handler/dto/request"
	sqlc "booking-marketplace/internal/infra/sqlc/generated"
	"booking-marketplace/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type LineItemSpec struct {
	ServiceID uuid.UUID
	Quantity  int
	UnitPrice int64
}

type ReservationBuilder struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	ShopID      uuid.UUID
	ResourceID  *uuid.UUID
	Date        time.Time
	StartMinute int
	Duration    int
	Items       []LineItemSpec
	PointsUsed  int64
	DepositRate string
	Status      reservation.Status
	Version     int64
	Now         time.Time
}

// NewReservationBuilder returns a 10:00-11:00 booking on Monday 2030-06-03 (Asia/Seoul)
// for 100,000 with a 20% deposit.
func NewReservationBuilder() *ReservationBuilder {
	loc, err := time.LoadLocation(DefaultTimeZone)
	if err != nil {
		panic(err)
	}
	return &ReservationBuilder{
		ID:          uuid.New(),
		CustomerID:  uuid.New(),
		ShopID:      uuid.New(),
		Date:        time.Date(2030, time.June, 3, 0, 0, 0, 0, loc),
		StartMinute: 10 * 60,
		Duration:    60,
		Items:       []LineItemSpec{{ServiceID: uuid.New(), Quantity: 1, UnitPrice: 100000}},
		DepositRate: "20",
		Status:      reservation.StatusRequested,
		Version:     1,
		Now:         time.Date(2030, time.June, 1, 12, 0, 0, 0, loc),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithCustomerID(id uuid.UUID) *ReservationBuilder {
	b.CustomerID = id
	return b
}

func (b *ReservationBuilder) WithShopID(id uuid.UUID) *ReservationBuilder {
	b.ShopID = id
	return b
}

func (b *ReservationBuilder) WithResourceID(id uuid.UUID) *ReservationBuilder {
	b.ResourceID = &id
	return b
}

func (b *ReservationBuilder) WithDate(date time.Time) *ReservationBuilder {
	b.Date = date
	return b
}

func (b *ReservationBuilder) WithSlot(startMinute, duration int) *ReservationBuilder {
	b.StartMinute, b.Duration = startMinute, duration
	return b
}

func (b *ReservationBuilder) WithItems(items ...LineItemSpec) *ReservationBuilder {
	b.Items = items
	return b
}

func (b *ReservationBuilder) WithPointsUsed(points int64) *ReservationBuilder {
	b.PointsUsed = points
	return b
}

func (b *ReservationBuilder) WithDepositRate(rate string) *ReservationBuilder {
	b.DepositRate = rate
	return b
}

func (b *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithVersion(v int64) *ReservationBuilder {
	b.Version = v
	return b
}

func (b *ReservationBuilder) WithNow(now time.Time) *ReservationBuilder {
	b.Now = now
	return b
}

func (b *ReservationBuilder) LineItems() ([]reservation.LineItem, error) {
	items := make([]reservation.LineItem, 0, len(b.Items))
	for _, spec := range b.Items {
		li, err := reservation.NewLineItem(spec.ServiceID, spec.Quantity, spec.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, nil
}

func (b *ReservationBuilder) Slot() (reservation.TimeSlot, error) {
	return reservation.NewTimeSlot(b.Date, b.StartMinute, b.Duration)
}

func (b *ReservationBuilder) resourceKey() uuid.UUID {
	if b.ResourceID == nil {
		return uuid.Nil
	}
	return *b.ResourceID
}

// BuildDomain creates a brand-new reservation through the domain constructor.
func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	items, err := b.LineItems()
	if err != nil {
		return nil, err
	}
	slot, err := b.Slot()
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(reservation.NewInput{
		CustomerID:         b.CustomerID,
		ShopID:             b.ShopID,
		ResourceID:         b.ResourceID,
		ResourceKey:        b.resourceKey(),
		Slot:               slot,
		LineItems:          items,
		PointsUsed:         b.PointsUsed,
		DepositRatePercent: decimal.RequireFromString(b.DepositRate),
	}, b.Now)
}

// BuildStored rebuilds a reservation as if loaded from storage in the builder's status.
func (b *ReservationBuilder) BuildStored() *reservation.Reservation {
	items, err := b.LineItems()
	if err != nil {
		panic(err)
	}
	slot, err := b.Slot()
	if err != nil {
		panic(err)
	}
	amounts, err := reservation.CalculateAmounts(items, b.PointsUsed, decimal.RequireFromString(b.DepositRate))
	if err != nil {
		panic(err)
	}
	res, err := reservation.Reconstruct(reservation.ReconstructInput{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		ShopID:      b.ShopID,
		ResourceID:  b.ResourceID,
		ResourceKey: b.resourceKey(),
		Slot:        slot,
		Status:      b.Status,
		LineItems:   items,
		Subtotal:    amounts.Subtotal.Amount(),
		PointsUsed:  amounts.PointsUsed.Amount(),
		Total:       amounts.Total.Amount(),
		Deposit:     amounts.Deposit.Amount(),
		Remaining:   amounts.Remaining.Amount(),
		Version:     b.Version,
		CreatedAt:   b.Now,
		UpdatedAt:   b.Now,
	})
	if err != nil {
		panic(err)
	}
	return res
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	items := make([]reqdto.ReserveItem, len(b.Items))
	for i, spec := range b.Items {
		items[i] = reqdto.ReserveItem{ServiceID: spec.ServiceID, Quantity: spec.Quantity}
	}
	return reqdto.CreateReservationRequest{
		ShopID:          b.ShopID,
		ResourceID:      b.ResourceID,
		Date:            b.Date.Format(time.DateOnly),
		StartTime:       fmt.Sprintf("%02d:%02d", b.StartMinute/60, b.StartMinute%60),
		DurationMinutes: b.Duration,
		Items:           items,
		PointsToUse:     b.PointsUsed,
	}
}

// BuildView projects the stored reservation the way the read store returns it.
func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	res := b.BuildStored()
	items := make([]queries.LineItemView, 0, len(res.LineItems()))
	for _, li := range res.LineItems() {
		items = append(items, queries.LineItemView{
			ServiceID: li.ServiceID(),
			Quantity:  li.Quantity(),
			UnitPrice: li.UnitPrice().Amount(),
			LineTotal: li.LineTotal().Amount(),
		})
	}
	return &queries.ReservationView{
		ID:              res.ID(),
		CustomerID:      res.CustomerID(),
		ShopID:          res.ShopID(),
		ResourceID:      b.ResourceID,
		BusinessDate:    b.Date,
		StartTime:       fmt.Sprintf("%02d:%02d", b.StartMinute/60, b.StartMinute%60),
		DurationMinutes: b.Duration,
		StartsAt:        res.Slot().Start(),
		EndsAt:          res.Slot().End(),
		Status:          string(res.Status()),
		SubtotalAmount:  res.Amounts().Subtotal.Amount(),
		PointsUsed:      res.Amounts().PointsUsed.Amount(),
		TotalAmount:     res.Amounts().Total.Amount(),
		DepositAmount:   res.Amounts().Deposit.Amount(),
		RemainingAmount: res.Amounts().Remaining.Amount(),
		Version:         res.Version(),
		LineItems:       items,
		Payments:        []queries.PaymentSummaryView{},
		CreatedAt:       b.Now,
		UpdatedAt:       b.Now,
	}
}

// BuildInfra returns the stored rows the write queries hand back for this reservation.
func (b *ReservationBuilder) BuildInfra() (sqlc.GetReservationByIDRow, []sqlc.ReservationLineItems) {
	res := b.BuildStored()
	amounts := res.Amounts()
	row := sqlc.GetReservationByIDRow{
		ID:              res.ID(),
		CustomerID:      res.CustomerID(),
		ShopID:          res.ShopID(),
		ResourceKey:     res.ResourceKey(),
		BusinessDate:    pgtype.Date{Time: time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), 0, 0, 0, 0, time.UTC), Valid: true},
		StartMinute:     int32(b.StartMinute),
		DurationMinutes: int32(b.Duration),
		StartsAt:        pgtype.Timestamptz{Time: res.Slot().Start(), Valid: true},
		EndsAt:          pgtype.Timestamptz{Time: res.Slot().End(), Valid: true},
		Status:          string(res.Status()),
		SubtotalAmount:  amounts.Subtotal.Amount(),
		PointsUsed:      amounts.PointsUsed.Amount(),
		TotalAmount:     amounts.Total.Amount(),
		DepositAmount:   amounts.Deposit.Amount(),
		RemainingAmount: amounts.Remaining.Amount(),
		Version:         res.Version(),
		CreatedAt:       pgtype.Timestamptz{Time: b.Now, Valid: true},
		UpdatedAt:       pgtype.Timestamptz{Time: b.Now, Valid: true},
	}
	if b.ResourceID != nil {
		row.ResourceID = pgtype.UUID{Bytes: *b.ResourceID, Valid: true}
	}

	items := make([]sqlc.ReservationLineItems, len(b.Items))
	for i, spec := range b.Items {
		items[i] = sqlc.ReservationLineItems{
			ReservationID: res.ID(),
			LineNo:        int32(i + 1),
			ServiceID:     spec.ServiceID,
			Quantity:      int32(spec.Quantity),
			UnitPrice:     spec.UnitPrice,
		}
	}
	return row, items
}
