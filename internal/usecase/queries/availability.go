package queries

import (
	"context"
	"errors"
	"time"

	"booking-marketplace/internal/domain/schedule"
	"booking-marketplace/internal/infra"
	"booking-marketplace/internal/pkg/clock"
	"booking-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrShopNotFound     = errs.New("shop not found")
	ErrResourceNotFound = errs.New("resource not found")
)

// Reasons reported when a slot is not available.
const (
	ReasonShopClosed          = "shop_closed"
	ReasonOutsideHours        = "outside_operating_hours"
	ReasonBreakTime           = "break_time"
	ReasonDurationOutOfRange  = "duration_out_of_range"
	ReasonInPast              = "in_past"
	ReasonConflict            = "conflict"
	ReasonResourceUnavailable = "resource_unavailable"
)

type ShopReadStore interface {
	FindSchedule(ctx context.Context, shopID uuid.UUID) (*schedule.Schedule, error)
	FindResource(ctx context.Context, shopID, resourceID uuid.UUID) (*ResourceView, error)
	// BusySlots lists active reservations on resourceKey overlapping [from, to).
	BusySlots(ctx context.Context, shopID, resourceKey uuid.UUID, from, to time.Time) ([]BusySlot, error)
}

type AvailabilityQuery struct {
	ShopID          uuid.UUID
	ResourceID      *uuid.UUID
	Date            time.Time
	StartTime       string
	DurationMinutes int
}

type OpenSlotsQuery struct {
	ShopID          uuid.UUID
	ResourceID      *uuid.UUID
	Date            time.Time
	DurationMinutes int
	StepMinutes     int
}

type AvailabilityQueries interface {
	CheckAvailability(ctx context.Context, q AvailabilityQuery) (*AvailabilityView, error)
	ListOpenSlots(ctx context.Context, q OpenSlotsQuery) ([]OpenSlotView, error)
}

type availabilityQueriesImpl struct {
	store ShopReadStore
	clock clock.Clock
}

func NewAvailabilityQueries(store ShopReadStore, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store, clock: clk}
}

func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, in AvailabilityQuery) (*AvailabilityView, error) {
	startMinute, err := schedule.ParseClock(in.StartTime)
	if err != nil {
		return nil, err
	}

	sched, key, err := q.scheduleAndKey(ctx, in.ShopID, in.ResourceID)
	if err != nil {
		return nil, err
	}
	reason, err := q.resourceReason(ctx, in.ShopID, in.ResourceID)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return &AvailabilityView{Reason: reason}, nil
	}

	date := sched.BusinessDate(in.Date)
	iv, err := sched.ResolveWindow(date, startMinute, in.DurationMinutes)
	if err != nil {
		if reason := scheduleReason(err); reason != "" {
			return &AvailabilityView{Reason: reason}, nil
		}
		return nil, err
	}

	start, end := sched.AbsoluteRange(date, iv)
	view := &AvailabilityView{StartsAt: &start, EndsAt: &end}
	if !start.After(q.clock.Now()) {
		view.Reason = ReasonInPast
		return view, nil
	}

	busy, err := q.store.BusySlots(ctx, in.ShopID, key, start, end)
	if err != nil {
		return nil, err
	}
	if len(busy) > 0 {
		holder := busy[0].ReservationID
		view.Reason = ReasonConflict
		view.ConflictingReservationID = &holder
		return view, nil
	}

	view.Available = true
	return view, nil
}

func (q *availabilityQueriesImpl) ListOpenSlots(ctx context.Context, in OpenSlotsQuery) ([]OpenSlotView, error) {
	sched, key, err := q.scheduleAndKey(ctx, in.ShopID, in.ResourceID)
	if err != nil {
		return nil, err
	}
	reason, err := q.resourceReason(ctx, in.ShopID, in.ResourceID)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return []OpenSlotView{}, nil
	}

	date := sched.BusinessDate(in.Date)
	candidates, err := sched.Candidates(date, in.DurationMinutes, in.StepMinutes)
	if err != nil {
		if errors.Is(err, schedule.ErrShopClosed) {
			return []OpenSlotView{}, nil
		}
		return nil, err
	}
	if len(candidates) == 0 {
		return []OpenSlotView{}, nil
	}

	dayStart, _ := sched.AbsoluteRange(date, candidates[0])
	_, dayEnd := sched.AbsoluteRange(date, candidates[len(candidates)-1])
	busy, err := q.store.BusySlots(ctx, in.ShopID, key, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	out := make([]OpenSlotView, 0, len(candidates))
	for _, iv := range candidates {
		start, end := sched.AbsoluteRange(date, iv)
		if !start.After(now) || overlapsAny(busy, start, end) {
			continue
		}
		out = append(out, OpenSlotView{
			StartTime: schedule.FormatClock(iv.Start),
			StartsAt:  start,
			EndsAt:    end,
		})
	}
	return out, nil
}

func (q *availabilityQueriesImpl) scheduleAndKey(ctx context.Context, shopID uuid.UUID, resourceID *uuid.UUID) (*schedule.Schedule, uuid.UUID, error) {
	sched, err := q.store.FindSchedule(ctx, shopID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, uuid.Nil, ErrShopNotFound
		}
		return nil, uuid.Nil, err
	}
	key, err := sched.ResourceKey(resourceID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return sched, key, nil
}

func (q *availabilityQueriesImpl) resourceReason(ctx context.Context, shopID uuid.UUID, resourceID *uuid.UUID) (string, error) {
	if resourceID == nil || *resourceID == uuid.Nil {
		return "", nil
	}
	res, err := q.store.FindResource(ctx, shopID, *resourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", ErrResourceNotFound
		}
		return "", err
	}
	if !res.Active {
		return ReasonResourceUnavailable, nil
	}
	return "", nil
}

func scheduleReason(err error) string {
	switch {
	case errors.Is(err, schedule.ErrShopClosed):
		return ReasonShopClosed
	case errors.Is(err, schedule.ErrOutsideOperatingHours):
		return ReasonOutsideHours
	case errors.Is(err, schedule.ErrInBreakTime):
		return ReasonBreakTime
	case errors.Is(err, schedule.ErrDurationOutOfRange):
		return ReasonDurationOutOfRange
	default:
		return ""
	}
}

func overlapsAny(busy []BusySlot, start, end time.Time) bool {
	for _, b := range busy {
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
