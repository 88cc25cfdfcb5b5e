package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"booking-marketplace/internal/pkg/errs"
)

const minutesPerDay = 24 * 60

var ErrInvalidClockTime = errs.New("invalid clock time, expected HH:MM")

// Interval is a half-open [Start, End) range in minutes from the business day's midnight.
// Values past 1440 belong to the following calendar day.
type Interval struct {
	Start int
	End   int
}

func (i Interval) Duration() int {
	return i.End - i.Start
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

func (i Interval) Contains(o Interval) bool {
	return i.Start <= o.Start && o.End <= i.End
}

// ParseClock parses "HH:MM" into minutes since midnight. "24:00" is accepted as a closing time.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, ErrInvalidClockTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidClockTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrInvalidClockTime
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, ErrInvalidClockTime
	}
	return h*60 + m, nil
}

func FormatClock(minutes int) string {
	minutes %= minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
