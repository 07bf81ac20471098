// Package exchanges implements C10: the pre-built exchange configurations
// layered on top of the market-calendar engine (C9).
package exchanges

import (
	"time"

	"github.com/aristath/marketframe/pkg/holiday"
	"github.com/aristath/marketframe/pkg/market"
	"github.com/aristath/marketframe/pkg/temporal"
)

func ptrDate(d temporal.Date) *temporal.Date { return &d }

// nyseHolidays is the NYSE's full-closure holiday ruleset.
func nyseHolidays() holiday.Calendar {
	juneteenthStart := temporal.NewDate(2022, time.January, 1)
	return holiday.Calendar{Rules: []holiday.Rule{
		{Name: "New Year's Day", Month: time.January, Day: 1, Observance: holiday.SundayToMonday},
		{Name: "Martin Luther King Jr. Day", Month: time.January, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Monday, N: 3}},
			Start: ptrDate(temporal.NewDate(1998, time.January, 1))},
		{Name: "Washington's Birthday", Month: time.February, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Monday, N: 3}}},
		{Name: "Good Friday", Offsets: []holiday.Offset{{Kind: holiday.OffsetEaster, N: -2}}},
		{Name: "Memorial Day", Month: time.May, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Monday, N: -1}}},
		{Name: "Juneteenth National Independence Day", Month: time.June, Day: 19, Observance: holiday.NearestWorkday, Start: &juneteenthStart},
		{Name: "Independence Day", Month: time.July, Day: 4, Observance: holiday.NearestWorkday},
		{Name: "Labor Day", Month: time.September, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Monday, N: 1}}},
		{Name: "Thanksgiving Day", Month: time.November, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Thursday, N: 4}}},
		{Name: "Christmas Day", Month: time.December, Day: 25, Observance: holiday.NearestWorkday},
	}}
}

// nyseEarlyCloses is the SpecialTime set for the NYSE's scheduled 1pm
// closes: the day after Thanksgiving and Christmas Eve (when a trading
// day).
func nyseEarlyCloses() []market.SpecialTime {
	var out []market.SpecialTime
	for year := 1990; year <= 2035; year++ {
		thanksgiving, _ := holiday.Rule{Month: time.November, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Thursday, N: 4}}}.Evaluate(year)
		dayAfter := thanksgiving.AddDays(1)
		out = append(out, market.SpecialTime{MarketTime: market.MarketClose, Time: temporal.NewTime(13, 0, 0), Start: ptrDate(dayAfter), End: ptrDate(dayAfter)})

		christmasEve := temporal.NewDate(year, time.December, 24)
		if christmasEve.Weekday() != time.Saturday && christmasEve.Weekday() != time.Sunday {
			out = append(out, market.SpecialTime{MarketTime: market.MarketClose, Time: temporal.NewTime(13, 0, 0), Start: ptrDate(christmasEve), End: ptrDate(christmasEve)})
		}
	}
	return out
}

// NYSE builds the New York Stock Exchange calendar: 09:30-16:00 America/New_York,
// no midday break, full NYSE holiday ruleset, and the day-after-Thanksgiving/
// Christmas-Eve 13:00 early closes.
func NYSE() (*market.Calendar, error) {
	return market.New(market.Options{
		Name:         "NYSE",
		TimezoneName: "America/New_York",
		DefaultTimes: map[market.TimeKind]market.MarketTimeSpec{
			market.MarketOpen:  market.AtTime(temporal.NewTime(9, 30, 0)),
			market.MarketClose: market.AtTime(temporal.NewTime(16, 0, 0)),
		},
		Holidays:     nyseHolidays(),
		SpecialTimes: nyseEarlyCloses(),
	})
}
