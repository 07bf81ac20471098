package busday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aristath/marketframe/pkg/temporal"
)

func TestIsBusday(t *testing.T) {
	cal := NewCalendar(Weekmask{}, []temporal.Date{temporal.NewDate(2023, time.July, 4)})
	require.True(t, cal.IsBusday(temporal.NewDate(2023, time.July, 3)))
	require.False(t, cal.IsBusday(temporal.NewDate(2023, time.July, 4)))
	require.False(t, cal.IsBusday(temporal.NewDate(2023, time.July, 8))) // Saturday
}

func TestOffsetFollowing(t *testing.T) {
	cal := NewCalendar(Weekmask{}, nil)
	d, ok, err := cal.Offset(temporal.NewDate(2023, time.July, 8), 0, RollFollowing) // Saturday
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, temporal.NewDate(2023, time.July, 10), d) // Monday
}

func TestOffsetModifiedFollowingCrossesMonth(t *testing.T) {
	cal := NewCalendar(Weekmask{}, nil)
	// 2023-04-30 is a Sunday and the month's last day: Following would push
	// into May, so ModifiedFollowing should fall back to the prior Friday.
	d, ok, err := cal.Offset(temporal.NewDate(2023, time.April, 30), 0, RollModifiedFollowing)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, temporal.NewDate(2023, time.April, 28), d)
}

func TestOffsetRaise(t *testing.T) {
	cal := NewCalendar(Weekmask{}, nil)
	_, _, err := cal.Offset(temporal.NewDate(2023, time.July, 8), 0, RollRaise)
	require.Error(t, err)
}

func TestOffsetNaT(t *testing.T) {
	cal := NewCalendar(Weekmask{}, nil)
	_, ok, err := cal.Offset(temporal.NewDate(2023, time.July, 8), 0, RollNaT)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCountBusinessDays(t *testing.T) {
	cal := NewCalendar(Weekmask{}, nil)
	// 2023-07-03 (Mon) through 2023-07-10 (Mon) exclusive: Mon-Fri = 5.
	n := cal.Count(temporal.NewDate(2023, time.July, 3), temporal.NewDate(2023, time.July, 10))
	require.Equal(t, 5, n)
}

func TestCountWithHoliday(t *testing.T) {
	cal := NewCalendar(Weekmask{}, []temporal.Date{temporal.NewDate(2023, time.July, 4)})
	n := cal.Count(temporal.NewDate(2023, time.July, 3), temporal.NewDate(2023, time.July, 10))
	require.Equal(t, 4, n)
}
