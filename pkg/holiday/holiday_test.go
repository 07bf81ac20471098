package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aristath/marketframe/pkg/temporal"
)

func TestEasterSunday(t *testing.T) {
	require.Equal(t, temporal.NewDate(2020, time.April, 12), EasterSunday(2020))
	require.Equal(t, temporal.NewDate(2021, time.April, 4), EasterSunday(2021))
}

func TestGoodFridayOffset(t *testing.T) {
	rule := Rule{Name: "Good Friday", Offsets: []Offset{{Kind: OffsetEaster, N: -2}}}
	d, ok := rule.Evaluate(2021)
	require.True(t, ok)
	require.Equal(t, temporal.NewDate(2021, time.April, 2), d)
}

func TestNthWeekdayOfMonth(t *testing.T) {
	// Thanksgiving: 4th Thursday of November.
	rule := Rule{Name: "Thanksgiving", Month: time.November, Offsets: []Offset{{Kind: OffsetNthWeekday, Weekday: time.Thursday, N: 4}}}
	d, ok := rule.Evaluate(2023)
	require.True(t, ok)
	require.Equal(t, temporal.NewDate(2023, time.November, 23), d)
}

func TestJulyFourthObservance(t *testing.T) {
	rule := Rule{Name: "Independence Day", Month: time.July, Day: 4, Observance: NearestWorkday}
	d, ok := rule.Evaluate(2021) // July 4 2021 is a Sunday
	require.True(t, ok)
	require.Equal(t, temporal.NewDate(2021, time.July, 5), d)
}

func TestCalendarDatesDedup(t *testing.T) {
	cal := Calendar{Rules: []Rule{
		{Name: "A", Month: time.January, Day: 1},
		{Name: "B", Month: time.January, Day: 1},
	}}
	named := cal.NamedDates(temporal.NewDate(2023, time.January, 1), temporal.NewDate(2023, time.December, 31))
	require.Len(t, named, 1)
	require.Equal(t, "A", named[0].Name)
}

func TestEffectiveWindow(t *testing.T) {
	start := temporal.NewDate(2022, time.January, 1)
	rule := Rule{Name: "New rule", Month: time.March, Day: 1, Start: &start}
	_, ok := rule.Evaluate(2020)
	require.False(t, ok)
	_, ok = rule.Evaluate(2023)
	require.True(t, ok)
}
