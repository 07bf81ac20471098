package exchanges

import (
	"time"

	"github.com/aristath/marketframe/pkg/busday"
	"github.com/aristath/marketframe/pkg/holiday"
	"github.com/aristath/marketframe/pkg/market"
	"github.com/aristath/marketframe/pkg/temporal"
)

// cmeGlobexHolidays is the small shared CME Globex closure list: New Year's
// Day, Good Friday, and Christmas Day, each a full-day closure.
func cmeGlobexHolidays() holiday.Calendar {
	return holiday.Calendar{Rules: []holiday.Rule{
		{Name: "New Year's Day", Month: time.January, Day: 1, Observance: holiday.SundayToMonday},
		{Name: "Good Friday", Offsets: []holiday.Offset{{Kind: holiday.OffsetEaster, N: -2}}},
		{Name: "Christmas Day", Month: time.December, Day: 25, Observance: holiday.NearestWorkday},
	}}
}

// CMEGlobexCrypto builds the CME Globex cryptocurrency futures calendar in
// Chicago time, modeled as a Sunday-through-Friday weekmask whose MarketOpen
// is always the prior calendar day's 17:00 (the session that opened the
// evening before rolls into the labeled trading day, so the Monday session
// opens Sunday 17:00) and whose MarketClose is that same day's 17:00.
func CMEGlobexCrypto() (*market.Calendar, error) {
	return market.New(market.Options{
		Name:         "CME_Globex_Crypto",
		TimezoneName: "America/Chicago",
		Weekmask:     busday.Weekmask{true, true, true, true, true, true, false}, // Sun-Fri
		DefaultTimes: map[market.TimeKind]market.MarketTimeSpec{
			market.MarketOpen:  {Time: temporal.NewTime(17, 0, 0), DayOffset: -1},
			market.MarketClose: market.AtTime(temporal.NewTime(17, 0, 0)),
		},
		Holidays: cmeGlobexHolidays(),
	})
}
