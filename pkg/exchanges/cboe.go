package exchanges

import (
	"time"

	"github.com/aristath/marketframe/pkg/holiday"
	"github.com/aristath/marketframe/pkg/market"
	"github.com/aristath/marketframe/pkg/temporal"
)

// cfeHolidays is the CBOE Futures Exchange holiday ruleset. CBOE (the
// options exchange) observes the same holidays: both calendars reference
// this one rule set rather than one subclassing the other.
func cfeHolidays() holiday.Calendar {
	return holiday.Calendar{Rules: []holiday.Rule{
		{Name: "New Year's Day", Month: time.January, Day: 1, Observance: holiday.SundayToMonday},
		{Name: "Martin Luther King Jr. Day", Month: time.January, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Monday, N: 3}}},
		{Name: "Washington's Birthday", Month: time.February, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Monday, N: 3}}},
		{Name: "Good Friday", Offsets: []holiday.Offset{{Kind: holiday.OffsetEaster, N: -2}}},
		{Name: "Memorial Day", Month: time.May, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Monday, N: -1}}},
		{Name: "Independence Day", Month: time.July, Day: 4, Observance: holiday.NearestWorkday},
		{Name: "Labor Day", Month: time.September, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Monday, N: 1}}},
		{Name: "Thanksgiving Day", Month: time.November, Offsets: []holiday.Offset{{Kind: holiday.OffsetNthWeekday, Weekday: time.Thursday, N: 4}}},
		{Name: "Christmas Day", Month: time.December, Day: 25, Observance: holiday.NearestWorkday},
	}}
}

// CFE builds the CBOE Futures Exchange calendar: 08:30-15:15 America/Chicago.
func CFE() (*market.Calendar, error) {
	return market.New(market.Options{
		Name:         "CFE",
		TimezoneName: "America/Chicago",
		DefaultTimes: map[market.TimeKind]market.MarketTimeSpec{
			market.MarketOpen:  market.AtTime(temporal.NewTime(8, 30, 0)),
			market.MarketClose: market.AtTime(temporal.NewTime(15, 15, 0)),
		},
		Holidays: cfeHolidays(),
	})
}

// CBOE builds the Chicago Board Options Exchange calendar: 08:30-15:00
// America/Chicago, sharing CFE's holiday ruleset.
func CBOE() (*market.Calendar, error) {
	return market.New(market.Options{
		Name:         "CBOE",
		TimezoneName: "America/Chicago",
		DefaultTimes: map[market.TimeKind]market.MarketTimeSpec{
			market.MarketOpen:  market.AtTime(temporal.NewTime(8, 30, 0)),
			market.MarketClose: market.AtTime(temporal.NewTime(15, 0, 0)),
		},
		Holidays: cfeHolidays(),
	})
}
