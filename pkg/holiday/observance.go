package holiday

import (
	"time"

	"github.com/aristath/marketframe/pkg/temporal"
)

// Observance adjusts a raw anchor date to the date actually observed.
type Observance func(temporal.Date) temporal.Date

// SundayToMonday moves a Sunday holiday to the following Monday.
func SundayToMonday(d temporal.Date) temporal.Date {
	if d.Weekday() == time.Sunday {
		return d.AddDays(1)
	}
	return d
}

// WeekendToMonday moves a Saturday or Sunday holiday to the following
// Monday.
func WeekendToMonday(d temporal.Date) temporal.Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(2)
	case time.Sunday:
		return d.AddDays(1)
	default:
		return d
	}
}

// NearestWorkday moves a Saturday holiday to the preceding Friday and a
// Sunday holiday to the following Monday.
func NearestWorkday(d temporal.Date) temporal.Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(-1)
	case time.Sunday:
		return d.AddDays(1)
	default:
		return d
	}
}

// NextMonday moves a Saturday or Sunday holiday to the following Monday
// (alias with NYSE's traditional name for WeekendToMonday).
func NextMonday(d temporal.Date) temporal.Date { return WeekendToMonday(d) }

// NextMondayOrTuesday moves a Saturday holiday to the following Monday and
// a Sunday or Monday holiday to the following Tuesday (used for holidays
// that would otherwise collide with a weekend-shifted neighbor).
func NextMondayOrTuesday(d temporal.Date) temporal.Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(2)
	case time.Sunday:
		return d.AddDays(2)
	case time.Monday:
		return d.AddDays(1)
	default:
		return d
	}
}

// PreviousFriday moves a Saturday or Sunday holiday to the preceding
// Friday.
func PreviousFriday(d temporal.Date) temporal.Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(-1)
	case time.Sunday:
		return d.AddDays(-2)
	default:
		return d
	}
}

// NextWorkday moves any holiday forward to the next weekday.
func NextWorkday(d temporal.Date) temporal.Date {
	out := d.AddDays(1)
	for out.Weekday() == time.Saturday || out.Weekday() == time.Sunday {
		out = out.AddDays(1)
	}
	return out
}

// PreviousWorkday moves any holiday backward to the previous weekday.
func PreviousWorkday(d temporal.Date) temporal.Date {
	out := d.AddDays(-1)
	for out.Weekday() == time.Saturday || out.Weekday() == time.Sunday {
		out = out.AddDays(-1)
	}
	return out
}

// BeforeNearestWorkday returns the workday before NearestWorkday(d).
func BeforeNearestWorkday(d temporal.Date) temporal.Date {
	return PreviousWorkday(NearestWorkday(d))
}

// AfterNearestWorkday returns the workday after NearestWorkday(d).
func AfterNearestWorkday(d temporal.Date) temporal.Date {
	return NextWorkday(NearestWorkday(d))
}
