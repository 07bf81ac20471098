package exchanges

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aristath/marketframe/pkg/market"
	"github.com/aristath/marketframe/pkg/temporal"
)

func TestNYSEValidDaysAcrossJulyFourth(t *testing.T) {
	cal, err := NYSE()
	require.NoError(t, err)
	days := cal.ValidDays(temporal.NewDate(2023, time.June, 30), temporal.NewDate(2023, time.July, 6))
	for _, d := range days {
		require.False(t, d.Equal(temporal.NewDate(2023, time.July, 4)))
	}
}

func TestNYSEEarlyCloseDayAfterThanksgiving(t *testing.T) {
	cal, err := NYSE()
	require.NoError(t, err)
	d := temporal.NewDate(2023, time.November, 24) // day after Thanksgiving 2023
	sched, err := cal.Schedule(d, d, market.ScheduleOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, sched.RowCount())
	row, err := sched.ILoc(0)
	require.NoError(t, err)
	mclose, _ := row[sched.Table().Schema().FieldByName("market_close")].Timestamp()
	loc, _ := time.LoadLocation("America/New_York")
	require.Equal(t, 13, mclose.In(loc).Hour())
}

func TestCMEGlobexCryptoOpensSunday(t *testing.T) {
	cal, err := CMEGlobexCrypto()
	require.NoError(t, err)
	monday := temporal.NewDate(2020, time.January, 13)
	sched, err := cal.Schedule(monday, monday, market.ScheduleOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, sched.RowCount())
	row, err := sched.ILoc(0)
	require.NoError(t, err)
	mopen, _ := row[sched.Table().Schema().FieldByName("market_open")].Timestamp()
	loc, _ := time.LoadLocation("America/Chicago")
	inLoc := mopen.In(loc)
	require.Equal(t, temporal.NewDate(2020, time.January, 12), temporal.NewDate(inLoc.Year(), inLoc.Month(), inLoc.Day()))
	require.Equal(t, 17, inLoc.Hour())
}

func TestCMEBondGoodFridaySplit(t *testing.T) {
	cal, err := CMEBondAndAgricultural()
	require.NoError(t, err)
	gf2020 := temporal.NewDate(2020, time.April, 10)
	days2020 := cal.ValidDays(gf2020.AddDays(-1), gf2020.AddDays(1))
	open2020 := false
	for _, d := range days2020 {
		if d.Equal(gf2020) {
			open2020 = true
		}
	}
	require.False(t, open2020, "2020 Good Friday is a designated full closure")

	gf2021 := temporal.NewDate(2021, time.April, 2)
	sched2021, err := cal.Schedule(gf2021, gf2021, market.ScheduleOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, sched2021.RowCount())
	row, err := sched2021.ILoc(0)
	require.NoError(t, err)
	mclose, _ := row[sched2021.Table().Schema().FieldByName("market_close")].Timestamp()
	loc, _ := time.LoadLocation("America/Chicago")
	inLoc := mclose.In(loc)
	require.Equal(t, gf2021, temporal.NewDate(inLoc.Year(), inLoc.Month(), inLoc.Day()))
	require.Equal(t, 10, inLoc.Hour())
	require.Equal(t, 0, inLoc.Minute())
}

func TestFakeCalendarForceSpecialTimesClamp(t *testing.T) {
	cal, err := FakeCalendar()
	require.NoError(t, err)
	d := temporal.NewDate(2016, time.December, 29)

	clamped, err := cal.Schedule(d, d, market.ScheduleOptions{})
	require.NoError(t, err)
	row, _ := clamped.ILoc(0)
	schema := clamped.Table().Schema()
	open, _ := row[schema.FieldByName("market_open")].Timestamp()
	breakStart, _ := row[schema.FieldByName("break_start")].Timestamp()
	require.False(t, breakStart.Before(open), "conditional clamp should raise BreakStart to the new MarketOpen")
}
