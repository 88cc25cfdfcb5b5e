//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"booking-marketplace/internal/domain/schedule"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hm(h, m int) int { return h*60 + m }

func TestResolveWindow(t *testing.T) {
	b := builder.NewScheduleBuilder().WithBreak(time.Monday, hm(12, 0), hm(13, 0)).WithClosed(time.Sunday)
	s := b.MustBuild()
	monday := b.Date(2030, time.June, 3)
	sunday := b.Date(2030, time.June, 2)

	testCases := []struct {
		name     string
		date     time.Time
		start    int
		duration int
		want     schedule.Interval
		errIs    error
	}{
		{name: "inside hours", date: monday, start: hm(10, 0), duration: 60, want: schedule.Interval{Start: 600, End: 660}},
		{name: "ends exactly at close", date: monday, start: hm(17, 0), duration: 60, want: schedule.Interval{Start: 1020, End: 1080}},
		{name: "starts exactly at open", date: monday, start: hm(9, 0), duration: 30, want: schedule.Interval{Start: 540, End: 570}},
		{name: "before open", date: monday, start: hm(8, 30), duration: 60, errIs: schedule.ErrOutsideOperatingHours},
		{name: "runs past close", date: monday, start: hm(17, 30), duration: 60, errIs: schedule.ErrOutsideOperatingHours},
		{name: "overlaps break", date: monday, start: hm(11, 30), duration: 60, errIs: schedule.ErrInBreakTime},
		{name: "ends when break starts", date: monday, start: hm(11, 0), duration: 60, want: schedule.Interval{Start: 660, End: 720}},
		{name: "starts when break ends", date: monday, start: hm(13, 0), duration: 60, want: schedule.Interval{Start: 780, End: 840}},
		{name: "closed weekday", date: sunday, start: hm(10, 0), duration: 60, errIs: schedule.ErrShopClosed},
		{name: "too short", date: monday, start: hm(10, 0), duration: 20, errIs: schedule.ErrDurationOutOfRange},
		{name: "too long", date: monday, start: hm(10, 0), duration: 300, errIs: schedule.ErrDurationOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ResolveWindow(tc.date, tc.start, tc.duration)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveWindow_Overnight(t *testing.T) {
	b := builder.NewScheduleBuilder().WithHours(time.Friday, hm(20, 0), hm(2, 0))
	s := b.MustBuild()
	friday := b.Date(2030, time.June, 7)

	testCases := []struct {
		name     string
		start    int
		duration int
		want     schedule.Interval
		errIs    error
	}{
		{name: "spans midnight", start: hm(23, 0), duration: 120, want: schedule.Interval{Start: 1380, End: 1500}},
		{name: "after midnight", start: hm(1, 0), duration: 60, want: schedule.Interval{Start: 1500, End: 1560}},
		{name: "past overnight close", start: hm(1, 30), duration: 60, errIs: schedule.ErrOutsideOperatingHours},
		{name: "evening before open", start: hm(19, 0), duration: 60, errIs: schedule.ErrOutsideOperatingHours},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ResolveWindow(friday, tc.start, tc.duration)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("absolute range lands on the next calendar day", func(t *testing.T) {
		start, end := s.AbsoluteRange(friday, schedule.Interval{Start: 1500, End: 1560})
		assert.Equal(t, 8, start.Day())
		assert.Equal(t, 1, start.Hour())
		assert.Equal(t, 2, end.Hour())
		assert.Equal(t, s.Location(), start.Location())
	})
}

func TestCandidates(t *testing.T) {
	b := builder.NewScheduleBuilder().WithBreak(time.Monday, hm(12, 0), hm(13, 0))
	s := b.MustBuild()

	got, err := s.Candidates(b.Date(2030, time.June, 3), 60, 60)
	require.NoError(t, err)

	want := []schedule.Interval{
		{Start: 540, End: 600}, {Start: 600, End: 660}, {Start: 660, End: 720},
		{Start: 780, End: 840}, {Start: 840, End: 900}, {Start: 900, End: 960},
		{Start: 960, End: 1020}, {Start: 1020, End: 1080},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Candidates() mismatch (-want +got):\n%s", diff)
	}

	_, err = s.Candidates(b.Date(2030, time.June, 3), 10, 10)
	assert.ErrorIs(t, err, schedule.ErrDurationOutOfRange)
}

func TestResourceKey(t *testing.T) {
	resourceID := uuid.New()

	shopLevel := builder.NewScheduleBuilder().MustBuild()
	key, err := shopLevel.ResourceKey(&resourceID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, key)

	perResource := builder.NewScheduleBuilder().WithGranularity(schedule.GranularityResource).MustBuild()
	key, err = perResource.ResourceKey(&resourceID)
	require.NoError(t, err)
	assert.Equal(t, resourceID, key)

	_, err = perResource.ResourceKey(nil)
	assert.ErrorIs(t, err, schedule.ErrResourceRequired)
}

func TestNewSchedule_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*builder.ScheduleBuilder)
	}{
		{name: "unknown zone", mutate: func(b *builder.ScheduleBuilder) { b.TimeZone = "Mars/Olympus" }},
		{name: "inverted duration bounds", mutate: func(b *builder.ScheduleBuilder) { b.WithDurationRange(60, 30) }},
		{name: "zero deposit rate", mutate: func(b *builder.ScheduleBuilder) { b.WithDepositRate("0") }},
		{name: "deposit rate above 100", mutate: func(b *builder.ScheduleBuilder) { b.WithDepositRate("120") }},
		{name: "unknown granularity", mutate: func(b *builder.ScheduleBuilder) { b.WithGranularity("seat") }},
		{name: "open past midnight", mutate: func(b *builder.ScheduleBuilder) { b.WithHours(time.Monday, 1500, 60) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.NewScheduleBuilder().With(tc.mutate).BuildDomain()
			require.Error(t, err)
			assert.True(t, errs.Is(err, schedule.ErrInvalidSchedule))
		})
	}
}

func TestParseClock(t *testing.T) {
	testCases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "23:59", want: 1439},
		{in: "24:00", want: 1440},
		{in: "24:30", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := schedule.ParseClock(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, schedule.ErrInvalidClockTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			if got < 24*60 {
				assert.Equal(t, tc.in, schedule.FormatClock(got))
			}
		})
	}
}
