package schedule

import (
	"time"

	"booking-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrShopClosed            = errs.New("shop is closed on the requested date")
	ErrOutsideOperatingHours = errs.New("requested time is outside operating hours")
	ErrInBreakTime           = errs.New("requested time overlaps the break")
	ErrDurationOutOfRange    = errs.New("service duration is out of the allowed range")
	ErrResourceRequired      = errs.New("resource is required for this shop")
	ErrInvalidSchedule       = errs.New("invalid shop schedule")
)

type Granularity string

const (
	// GranularityShop allows one active reservation per shop per instant.
	GranularityShop Granularity = "shop"
	// GranularityResource allows one active reservation per resource (staff member) per instant.
	GranularityResource Granularity = "resource"
)

func (g Granularity) IsValid() bool {
	return g == GranularityShop || g == GranularityResource
}

type DayHours struct {
	Weekday    time.Weekday
	Closed     bool
	Open       int
	Close      int
	BreakStart *int
	BreakEnd   *int
}

// window returns the operating interval and optional break with overnight hours normalised
// so that every bound is expressed in minutes from the business day's midnight.
func (d DayHours) window() (Interval, *Interval) {
	open, closing := d.Open, d.Close
	if closing <= open {
		closing += minutesPerDay
	}
	operating := Interval{Start: open, End: closing}

	if d.BreakStart == nil || d.BreakEnd == nil {
		return operating, nil
	}
	bs, be := *d.BreakStart, *d.BreakEnd
	if bs < open {
		bs += minutesPerDay
	}
	if be <= bs {
		be += minutesPerDay
	}
	return operating, &Interval{Start: bs, End: be}
}

func (d DayHours) IsOvernight() bool {
	return !d.Closed && d.Close <= d.Open
}

type Spec struct {
	ShopID             uuid.UUID
	OwnerID            uuid.UUID
	TimeZone           string
	Hours              []DayHours
	MinDurationMinutes int
	MaxDurationMinutes int
	Granularity        Granularity
	DepositRatePercent decimal.Decimal
}

type Schedule struct {
	shopID      uuid.UUID
	ownerID     uuid.UUID
	location    *time.Location
	hours       map[time.Weekday]DayHours
	minDuration int
	maxDuration int
	granularity Granularity
	depositRate decimal.Decimal
}

func NewSchedule(spec Spec) (*Schedule, error) {
	loc, err := time.LoadLocation(spec.TimeZone)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "load time zone %q", spec.TimeZone), ErrInvalidSchedule)
	}
	if spec.MinDurationMinutes <= 0 || spec.MaxDurationMinutes < spec.MinDurationMinutes {
		return nil, errs.Wrap(ErrInvalidSchedule, "duration bounds")
	}
	if !spec.Granularity.IsValid() {
		return nil, errs.Wrap(ErrInvalidSchedule, "granularity")
	}
	if !spec.DepositRatePercent.IsPositive() || spec.DepositRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errs.Wrap(ErrInvalidSchedule, "deposit rate")
	}

	hours := make(map[time.Weekday]DayHours, len(spec.Hours))
	for _, h := range spec.Hours {
		if !h.Closed && (h.Open < 0 || h.Open >= minutesPerDay || h.Close < 0 || h.Close > minutesPerDay) {
			return nil, errs.Wrapf(ErrInvalidSchedule, "hours for %s", h.Weekday)
		}
		hours[h.Weekday] = h
	}

	return &Schedule{
		shopID:      spec.ShopID,
		ownerID:     spec.OwnerID,
		location:    loc,
		hours:       hours,
		minDuration: spec.MinDurationMinutes,
		maxDuration: spec.MaxDurationMinutes,
		granularity: spec.Granularity,
		depositRate: spec.DepositRatePercent,
	}, nil
}

func (s *Schedule) ShopID() uuid.UUID                   { return s.shopID }
func (s *Schedule) OwnerID() uuid.UUID                  { return s.ownerID }
func (s *Schedule) Location() *time.Location            { return s.location }
func (s *Schedule) Granularity() Granularity            { return s.granularity }
func (s *Schedule) DepositRatePercent() decimal.Decimal { return s.depositRate }
func (s *Schedule) MinDuration() int                    { return s.minDuration }
func (s *Schedule) MaxDuration() int                    { return s.maxDuration }

func (s *Schedule) dayHours(date time.Time) (DayHours, bool) {
	h, ok := s.hours[date.Weekday()]
	if !ok || h.Closed {
		return DayHours{}, false
	}
	return h, true
}

// ResolveWindow validates a requested start and duration on a business date and returns the
// normalised interval. A start earlier than opening on an overnight day is taken to be the
// post-midnight part of that business day.
func (s *Schedule) ResolveWindow(date time.Time, startMinute, durationMinutes int) (Interval, error) {
	if durationMinutes < s.minDuration || durationMinutes > s.maxDuration {
		return Interval{}, ErrDurationOutOfRange
	}

	h, ok := s.dayHours(date)
	if !ok {
		return Interval{}, ErrShopClosed
	}

	operating, brk := h.window()

	start := startMinute
	if h.IsOvernight() && start < operating.Start {
		start += minutesPerDay
	}
	requested := Interval{Start: start, End: start + durationMinutes}

	if !operating.Contains(requested) {
		return Interval{}, ErrOutsideOperatingHours
	}
	if brk != nil && brk.Overlaps(requested) {
		return Interval{}, ErrInBreakTime
	}
	return requested, nil
}

// Candidates enumerates every start on a stepMinutes grid from opening that would pass ResolveWindow.
func (s *Schedule) Candidates(date time.Time, durationMinutes, stepMinutes int) ([]Interval, error) {
	if stepMinutes <= 0 {
		stepMinutes = durationMinutes
	}
	if durationMinutes < s.minDuration || durationMinutes > s.maxDuration {
		return nil, ErrDurationOutOfRange
	}
	h, ok := s.dayHours(date)
	if !ok {
		return nil, ErrShopClosed
	}

	operating, brk := h.window()
	var out []Interval
	for start := operating.Start; start+durationMinutes <= operating.End; start += stepMinutes {
		iv := Interval{Start: start, End: start + durationMinutes}
		if brk != nil && brk.Overlaps(iv) {
			continue
		}
		out = append(out, iv)
	}
	return out, nil
}

// AbsoluteRange converts an interval on a business date to instants in the shop's zone.
func (s *Schedule) AbsoluteRange(date time.Time, iv Interval) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, iv.Start, 0, 0, s.location)
	end := time.Date(y, m, d, 0, iv.End, 0, 0, s.location)
	return start, end
}

// BusinessDate interprets a calendar date in the shop's zone.
func (s *Schedule) BusinessDate(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location)
}

// ResourceKey returns the conflict-key component for a request. Shop-level shops always use uuid.Nil.
func (s *Schedule) ResourceKey(resourceID *uuid.UUID) (uuid.UUID, error) {
	if s.granularity == GranularityShop {
		return uuid.Nil, nil
	}
	if resourceID == nil || *resourceID == uuid.Nil {
		return uuid.Nil, ErrResourceRequired
	}
	return *resourceID, nil
}

func (s *Schedule) IsOwnedBy(userID uuid.UUID) bool {
	return s.ownerID == userID
}
