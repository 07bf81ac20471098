package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aristath/marketframe/pkg/holiday"
	"github.com/aristath/marketframe/pkg/temporal"
)

func testCalendar(t *testing.T) *Calendar {
	t.Helper()
	independenceDay := holiday.Rule{Name: "Independence Day", Month: time.July, Day: 4, Observance: holiday.NearestWorkday}
	cal, err := New(Options{
		Name:         "TEST",
		TimezoneName: "America/New_York",
		DefaultTimes: map[TimeKind]MarketTimeSpec{
			MarketOpen:  AtTime(temporal.NewTime(9, 30, 0)),
			MarketClose: AtTime(temporal.NewTime(16, 0, 0)),
			BreakStart:  AtTime(temporal.NewTime(12, 0, 0)),
			BreakEnd:    AtTime(temporal.NewTime(13, 0, 0)),
		},
		Holidays: holiday.Calendar{Rules: []holiday.Rule{independenceDay}},
		SpecialTimes: []SpecialTime{
			{MarketTime: MarketClose, Time: temporal.NewTime(13, 0, 0),
				Start: ptr(temporal.NewDate(2023, time.July, 3)), End: ptr(temporal.NewDate(2023, time.July, 3))},
		},
	})
	require.NoError(t, err)
	return cal
}

func ptr[T any](v T) *T { return &v }

func TestValidDaysExcludesHolidayAndWeekend(t *testing.T) {
	cal := testCalendar(t)
	days := cal.ValidDays(temporal.NewDate(2023, time.June, 30), temporal.NewDate(2023, time.July, 6))
	for _, d := range days {
		require.NotEqual(t, temporal.NewDate(2023, time.July, 4), d)
		require.NotEqual(t, time.Saturday, d.Weekday())
		require.NotEqual(t, time.Sunday, d.Weekday())
	}
}

func TestSpecialCloseAndBreakClamp(t *testing.T) {
	cal := testCalendar(t)
	sched, err := cal.Schedule(temporal.NewDate(2023, time.July, 3), temporal.NewDate(2023, time.July, 3), ScheduleOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, sched.RowCount())
	row, err := sched.ILoc(0)
	require.NoError(t, err)
	schema := sched.Table().Schema()
	mclose, _ := row[schema.FieldByName("market_close")].Timestamp()
	require.Equal(t, 13, mclose.In(mustLoc(t)).Hour())
	breakEnd, _ := row[schema.FieldByName("break_end")].Timestamp()
	require.True(t, !breakEnd.After(mclose))
}

func mustLoc(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func TestInvalidOverrideRejectsNonOpenCloseTarget(t *testing.T) {
	_, err := New(Options{
		TimezoneName: "UTC",
		DefaultTimes: map[TimeKind]MarketTimeSpec{
			MarketOpen:  AtTime(temporal.NewTime(9, 30, 0)),
			MarketClose: AtTime(temporal.NewTime(16, 0, 0)),
		},
		SpecialTimes: []SpecialTime{{MarketTime: BreakStart, Time: temporal.NewTime(10, 0, 0)}},
	})
	require.Error(t, err)
}
