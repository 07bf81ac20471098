package exchanges

import (
	"time"

	"github.com/aristath/marketframe/pkg/holiday"
	"github.com/aristath/marketframe/pkg/market"
	"github.com/aristath/marketframe/pkg/temporal"
)

// cmeBondGoodFridayFullClosureYears lists the years CME closed bond and
// agricultural futures entirely on Good Friday; every other year the
// session instead runs a shortened (half) day, per CME's holiday
// calendar notices.
var cmeBondGoodFridayFullClosureYears = map[int]bool{
	2020: true,
	2015: true,
	2010: true,
}

func cmeBondHolidays() holiday.Calendar {
	rules := []holiday.Rule{
		{Name: "New Year's Day", Month: time.January, Day: 1, Observance: holiday.SundayToMonday},
		{Name: "Martin Luther King Jr. Day", Month: time.January, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Monday, N: 3}}},
		{Name: "Memorial Day", Month: time.May, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Monday, N: -1}}},
		{Name: "Independence Day", Month: time.July, Day: 4, Observance: holiday.NearestWorkday},
		{Name: "Labor Day", Month: time.September, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Monday, N: 1}}},
		{Name: "Thanksgiving Day", Month: time.November, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Thursday, N: 4}}},
		{Name: "Christmas Day", Month: time.December, Day: 25, Observance: holiday.NearestWorkday},
	}
	for year, full := range cmeBondGoodFridayFullClosureYears {
		if !full {
			continue
		}
		d := holiday.EasterSunday(year).AddDays(-2)
		rules = append(rules, holiday.Rule{Name: "Good Friday (full close)", Month: d.Month, Day: d.Day, Start: ptrDate(d), End: ptrDate(d)})
	}
	return holiday.Calendar{Rules: rules}
}

// cmeBondGoodFridayEarlyCloses is the SpecialTime set for the half-day Good
// Fridays: every year not in the full-closure set gets an early 10:00
// close.
func cmeBondGoodFridayEarlyCloses() []market.SpecialTime {
	var out []market.SpecialTime
	for year := 1990; year <= 2035; year++ {
		if cmeBondGoodFridayFullClosureYears[year] {
			continue
		}
		d := holiday.EasterSunday(year).AddDays(-2)
		out = append(out, market.SpecialTime{MarketTime: market.MarketClose, Time: temporal.NewTime(10, 0, 0), Start: ptrDate(d), End: ptrDate(d)})
	}
	return out
}

// CMEBondAndAgricultural builds the CME bond/agricultural futures
// calendar: 08:30-13:20 Chicago time, with Good Friday a full closure in
// designated years and a 10:00 early close in every other year.
func CMEBondAndAgricultural() (*market.Calendar, error) {
	return market.New(market.Options{
		Name:         "CME_Bond_Agricultural",
		TimezoneName: "America/Chicago",
		DefaultTimes: map[market.TimeKind]market.MarketTimeSpec{
			market.MarketOpen:  market.AtTime(temporal.NewTime(8, 30, 0)),
			market.MarketClose: market.AtTime(temporal.NewTime(13, 20, 0)),
		},
		Holidays:     cmeBondHolidays(),
		SpecialTimes: cmeBondGoodFridayEarlyCloses(),
	})
}
