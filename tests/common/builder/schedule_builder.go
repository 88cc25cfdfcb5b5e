//go:build unit || e2e

package builder

import (
	"time"

	"booking-marketplace/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultTimeZone = "Asia/Seoul"

type ScheduleBuilder struct {
	ShopID      uuid.UUID
	OwnerID     uuid.UUID
	TimeZone    string
	Hours       map[time.Weekday]schedule.DayHours
	MinDuration int
	MaxDuration int
	Granularity schedule.Granularity
	DepositRate string
}

// NewScheduleBuilder returns a shop open 09:00-18:00 every day with shop-level allocation.
func NewScheduleBuilder() *ScheduleBuilder {
	hours := make(map[time.Weekday]schedule.DayHours, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		hours[wd] = schedule.DayHours{Weekday: wd, Open: 9 * 60, Close: 18 * 60}
	}
	return &ScheduleBuilder{
		ShopID:      uuid.New(),
		OwnerID:     uuid.New(),
		TimeZone:    DefaultTimeZone,
		Hours:       hours,
		MinDuration: 30,
		MaxDuration: 240,
		Granularity: schedule.GranularityShop,
		DepositRate: "20",
	}
}

func (b *ScheduleBuilder) With(mutate func(*ScheduleBuilder)) *ScheduleBuilder {
	mutate(b)
	return b
}

func (b *ScheduleBuilder) WithShopID(id uuid.UUID) *ScheduleBuilder {
	b.ShopID = id
	return b
}

func (b *ScheduleBuilder) WithOwnerID(id uuid.UUID) *ScheduleBuilder {
	b.OwnerID = id
	return b
}

func (b *ScheduleBuilder) WithHours(wd time.Weekday, open, closing int) *ScheduleBuilder {
	b.Hours[wd] = schedule.DayHours{Weekday: wd, Open: open, Close: closing}
	return b
}

func (b *ScheduleBuilder) WithBreak(wd time.Weekday, start, end int) *ScheduleBuilder {
	h := b.Hours[wd]
	h.BreakStart, h.BreakEnd = &start, &end
	b.Hours[wd] = h
	return b
}

func (b *ScheduleBuilder) WithClosed(wd time.Weekday) *ScheduleBuilder {
	b.Hours[wd] = schedule.DayHours{Weekday: wd, Closed: true}
	return b
}

func (b *ScheduleBuilder) WithDurationRange(minMinutes, maxMinutes int) *ScheduleBuilder {
	b.MinDuration, b.MaxDuration = minMinutes, maxMinutes
	return b
}

func (b *ScheduleBuilder) WithGranularity(g schedule.Granularity) *ScheduleBuilder {
	b.Granularity = g
	return b
}

func (b *ScheduleBuilder) WithDepositRate(rate string) *ScheduleBuilder {
	b.DepositRate = rate
	return b
}

func (b *ScheduleBuilder) Spec() schedule.Spec {
	hours := make([]schedule.DayHours, 0, len(b.Hours))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if h, ok := b.Hours[wd]; ok {
			hours = append(hours, h)
		}
	}
	return schedule.Spec{
		ShopID:             b.ShopID,
		OwnerID:            b.OwnerID,
		TimeZone:           b.TimeZone,
		Hours:              hours,
		MinDurationMinutes: b.MinDuration,
		MaxDurationMinutes: b.MaxDuration,
		Granularity:        b.Granularity,
		DepositRatePercent: decimal.RequireFromString(b.DepositRate),
	}
}

func (b *ScheduleBuilder) BuildDomain() (*schedule.Schedule, error) {
	return schedule.NewSchedule(b.Spec())
}

func (b *ScheduleBuilder) MustBuild() *schedule.Schedule {
	s, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return s
}

// Date returns a calendar date in the builder's zone.
func (b *ScheduleBuilder) Date(year int, month time.Month, day int) time.Time {
	loc, err := time.LoadLocation(b.TimeZone)
	if err != nil {
		panic(err)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
