package exchanges

import (
	"time"

	"github.com/aristath/marketframe/pkg/holiday"
	"github.com/aristath/marketframe/pkg/market"
	"github.com/aristath/marketframe/pkg/temporal"
)

// FakeCalendar is a synthetic, minimal calendar used only by tests
// exercising force_special_times clamping: MarketOpen 09:30, BreakStart
// 10:00, BreakEnd 11:00, MarketClose 12:00, with a single ad hoc
// SpecialOpen at 10:20 on 2016-12-29 (pushing MarketOpen later than
// BreakStart's default, which is exactly the clamp case the scenario targets).
func FakeCalendar() (*market.Calendar, error) {
	specialOpenDate := temporal.NewDate(2016, time.December, 29)
	return market.New(market.Options{
		Name:         "FAKE",
		TimezoneName: "UTC",
		DefaultTimes: map[market.TimeKind]market.MarketTimeSpec{
			market.MarketOpen:  market.AtTime(temporal.NewTime(9, 30, 0)),
			market.BreakStart:  market.AtTime(temporal.NewTime(10, 0, 0)),
			market.BreakEnd:    market.AtTime(temporal.NewTime(11, 0, 0)),
			market.MarketClose: market.AtTime(temporal.NewTime(12, 0, 0)),
		},
		Holidays: holiday.Calendar{},
		SpecialTimesAdHoc: []market.AdHocTime{
			{MarketTime: market.MarketOpen, Time: temporal.NewTime(10, 20, 0), Dates: []temporal.Date{specialOpenDate}},
		},
	})
}
