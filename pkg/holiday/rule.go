// Package holiday implements C7: the holiday rule DSL and the calendar that
// expands a rule set into concrete dates over a range.
package holiday

import (
	"time"

	"github.com/aristath/marketframe/pkg/temporal"
)

// OffsetKind selects one link of a rule's offset chain.
type OffsetKind int

const (
	// OffsetNthWeekday moves to the N-th occurrence of Weekday within the
	// rule's anchor month (N negative counts from the end, e.g. -1 is
	// "last Monday of the month").
	OffsetNthWeekday OffsetKind = iota
	// OffsetEaster moves to N days relative to the Gregorian Easter Sunday
	// of the rule's year; the anchor month/day are ignored.
	OffsetEaster
	// OffsetCalendarDays moves N raw calendar days.
	OffsetCalendarDays
	// OffsetBusinessDays moves N business days according to Weekmask
	// (holidays are not consulted, avoiding a circular dependency on the
	// calendar being built).
	OffsetBusinessDays
)

// Offset is one link of a HolidayRule's offset chain, applied in order.
type Offset struct {
	Kind     OffsetKind
	N        int
	Weekday  time.Weekday
	Weekmask [7]bool // Sunday=0 .. Saturday=6; zero value means Mon-Fri
}

func defaultWeekmask() [7]bool {
	return [7]bool{false, true, true, true, true, true, false}
}

func (o Offset) weekmask() [7]bool {
	if o.Weekmask == ([7]bool{}) {
		return defaultWeekmask()
	}
	return o.Weekmask
}

// apply resolves one offset against the rule's anchor year, returning the
// date that offset produces on its own (each offset in a chain is applied
// to the previous link's output, except Easter and NthWeekday, which always
// anchor fresh to the year, NthWeekday also to the rule's month).
func (o Offset) apply(year int, month time.Month, day int, prev temporal.Date) temporal.Date {
	switch o.Kind {
	case OffsetEaster:
		return EasterSunday(year).AddDays(o.N)
	case OffsetNthWeekday:
		return nthWeekdayOfMonth(year, month, o.Weekday, o.N)
	case OffsetCalendarDays:
		return prev.AddDays(o.N)
	case OffsetBusinessDays:
		return addBusinessDays(prev, o.N, o.weekmask())
	default:
		return prev
	}
}

func nthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) temporal.Date {
	if n >= 1 {
		first := temporal.NewDate(year, month, 1)
		offset := (int(weekday) - int(first.Weekday()) + 7) % 7
		return first.AddDays(offset + 7*(n-1))
	}
	// Negative n counts from the last day of the month backwards: -1 is the
	// last occurrence of weekday in the month.
	next := temporal.NewDate(year, month+1, 1)
	last := next.AddDays(-1)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDays(-offset + 7*(n+1))
}

func addBusinessDays(d temporal.Date, n int, weekmask [7]bool) temporal.Date {
	step := 1
	if n < 0 {
		step = -1
		n = -n
	}
	cur := d
	for n > 0 {
		cur = cur.AddDays(step)
		if weekmask[int(cur.Weekday())] {
			n--
		}
	}
	return cur
}

// Rule describes one named holiday: an anchor (month/day, or derived
// entirely from its offset chain when Day is 0), a chain of offsets applied
// in order, an optional observance adjustment, an optional effective
// window, and an optional allowed-weekdays filter.
type Rule struct {
	Name            string
	Month           time.Month
	Day             int
	Offsets         []Offset
	Observance      Observance
	Start, End      *temporal.Date // nil means unbounded on that side
	AllowedWeekdays []time.Weekday // nil means no filter
}

// Evaluate computes the rule's observed date for year, returning false if
// the rule's effective window excludes that year or its allowed-weekdays
// filter rejects the result.
func (r Rule) Evaluate(year int) (temporal.Date, bool) {
	var d temporal.Date
	if r.Day > 0 {
		d = temporal.NewDate(year, r.Month, r.Day)
	}
	for _, off := range r.Offsets {
		d = off.apply(year, r.Month, r.Day, d)
	}
	if r.Observance != nil {
		d = r.Observance(d)
	}
	if r.Start != nil && d.Before(*r.Start) {
		return temporal.Date{}, false
	}
	if r.End != nil && d.After(*r.End) {
		return temporal.Date{}, false
	}
	if r.AllowedWeekdays != nil {
		ok := false
		for _, w := range r.AllowedWeekdays {
			if d.Weekday() == w {
				ok = true
				break
			}
		}
		if !ok {
			return temporal.Date{}, false
		}
	}
	return d, true
}
