package reservation

import (
	"fmt"
	"time"

	"booking-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTimeSlot      = errs.New("invalid time slot")
	ErrNegativeAmount       = errs.New("amount cannot be negative")
	ErrInvalidQuantity      = errs.New("quantity must be positive")
	ErrEmptyLineItems       = errs.New("at least one service line item is required")
	ErrPointsExceedSubtotal = errs.New("points used must be less than the subtotal")
	ErrZeroTotal            = errs.New("reservation total must be positive")
	ErrInvalidDepositRate   = errs.New("deposit rate must be within (0, 100]")
)

// TimeSlot is a half-open [start, end) range anchored on a business date in the shop's zone.
// startMinute may exceed 1440 for the post-midnight part of an overnight business day.
type TimeSlot struct {
	date            time.Time
	startMinute     int
	durationMinutes int
	start           time.Time
	end             time.Time
}

func NewTimeSlot(date time.Time, startMinute, durationMinutes int) (TimeSlot, error) {
	if durationMinutes <= 0 || startMinute < 0 || startMinute >= 2*24*60 {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	y, m, d := date.Date()
	loc := date.Location()
	return TimeSlot{
		date:            time.Date(y, m, d, 0, 0, 0, 0, loc),
		startMinute:     startMinute,
		durationMinutes: durationMinutes,
		start:           time.Date(y, m, d, 0, startMinute, 0, 0, loc),
		end:             time.Date(y, m, d, 0, startMinute+durationMinutes, 0, 0, loc),
	}, nil
}

// RestoreTimeSlot rebuilds a stored slot from its business-date fields and absolute bounds.
func RestoreTimeSlot(date time.Time, startMinute, durationMinutes int, start, end time.Time) TimeSlot {
	return TimeSlot{
		date:            date,
		startMinute:     startMinute,
		durationMinutes: durationMinutes,
		start:           start,
		end:             end,
	}
}

func (ts TimeSlot) Date() time.Time      { return ts.date }
func (ts TimeSlot) StartMinute() int     { return ts.startMinute }
func (ts TimeSlot) DurationMinutes() int { return ts.durationMinutes }
func (ts TimeSlot) Start() time.Time     { return ts.start }
func (ts TimeSlot) End() time.Time       { return ts.end }

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps uses half-open semantics, so back-to-back slots do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

// Money is an amount in the smallest currency unit (KRW has no minor unit).
type Money struct {
	amount int64
}

func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: amount}, nil
}

func MustMoney(amount int64) Money {
	m, err := NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount - other.amount}
}

func (m Money) Times(n int) Money {
	return Money{amount: m.amount * int64(n)}
}

func (m Money) IsZero() bool {
	return m.amount == 0
}

// PercentFloor returns floor(m * percent / 100).
func (m Money) PercentFloor(percent decimal.Decimal) Money {
	v := decimal.NewFromInt(m.amount).Mul(percent).Div(decimal.NewFromInt(100)).Floor()
	return Money{amount: v.IntPart()}
}

type LineItem struct {
	serviceID uuid.UUID
	quantity  int
	unitPrice Money
}

func NewLineItem(serviceID uuid.UUID, quantity int, unitPrice int64) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	price, err := NewMoney(unitPrice)
	if err != nil {
		return LineItem{}, err
	}
	return LineItem{serviceID: serviceID, quantity: quantity, unitPrice: price}, nil
}

func (li LineItem) ServiceID() uuid.UUID { return li.serviceID }
func (li LineItem) Quantity() int        { return li.quantity }
func (li LineItem) UnitPrice() Money     { return li.unitPrice }

func (li LineItem) LineTotal() Money {
	return li.unitPrice.Times(li.quantity)
}

// Amounts holds the money split of a reservation. Deposit + Remaining always equals Total.
type Amounts struct {
	Subtotal   Money
	PointsUsed Money
	Total      Money
	Deposit    Money
	Remaining  Money
}

// CalculateAmounts derives totals from line items, points redeemed at booking and the shop's deposit rate.
// The deposit is at least one unit so every booking has something to confirm.
func CalculateAmounts(items []LineItem, pointsUsed int64, depositRatePercent decimal.Decimal) (Amounts, error) {
	if len(items) == 0 {
		return Amounts{}, ErrEmptyLineItems
	}
	if !depositRatePercent.IsPositive() || depositRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return Amounts{}, ErrInvalidDepositRate
	}
	points, err := NewMoney(pointsUsed)
	if err != nil {
		return Amounts{}, err
	}

	var subtotal Money
	for _, li := range items {
		subtotal = subtotal.Add(li.LineTotal())
	}
	if subtotal.IsZero() {
		return Amounts{}, ErrZeroTotal
	}
	if points.Amount() >= subtotal.Amount() {
		return Amounts{}, ErrPointsExceedSubtotal
	}

	total := subtotal.Sub(points)
	deposit := total.PercentFloor(depositRatePercent)
	if deposit.IsZero() {
		deposit = Money{amount: 1}
	}

	return Amounts{
		Subtotal:   subtotal,
		PointsUsed: points,
		Total:      total,
		Deposit:    deposit,
		Remaining:  total.Sub(deposit),
	}, nil
}
