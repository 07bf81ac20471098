// Package busday implements C8: a business-day calendar (weekmask plus a
// fixed holiday set) with date offsetting under the standard non-business-
// day roll policies, and a closed-form business-day count.
package busday

import (
	"time"

	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/temporal"
)

// Weekmask marks which weekdays are business days; index by time.Weekday
// (Sunday=0).
type Weekmask [7]bool

// DefaultWeekmask is Monday through Friday.
func DefaultWeekmask() Weekmask {
	return Weekmask{false, true, true, true, true, true, false}
}

// RollPolicy selects how a non-business start date is adjusted before
// counting/offsetting.
type RollPolicy int

const (
	RollFollowing RollPolicy = iota
	RollPreceding
	RollModifiedFollowing
	RollModifiedPreceding
	RollRaise
	RollNaT
)

// Calendar pairs a Weekmask with a fixed set of holiday dates.
type Calendar struct {
	weekmask Weekmask
	holidays map[temporal.Date]bool
}

// NewCalendar builds a Calendar. An empty Weekmask defaults to Mon-Fri.
func NewCalendar(weekmask Weekmask, holidays []temporal.Date) *Calendar {
	if weekmask == (Weekmask{}) {
		weekmask = DefaultWeekmask()
	}
	h := make(map[temporal.Date]bool, len(holidays))
	for _, d := range holidays {
		h[d] = true
	}
	return &Calendar{weekmask: weekmask, holidays: h}
}

// IsBusday reports whether d is a business day: its weekday is enabled in
// the weekmask and it is not a holiday.
func (c *Calendar) IsBusday(d temporal.Date) bool {
	if !c.weekmask[int(d.Weekday())] {
		return false
	}
	return !c.holidays[d]
}

func (c *Calendar) nextBusday(d temporal.Date) temporal.Date {
	out := d.AddDays(1)
	for !c.IsBusday(out) {
		out = out.AddDays(1)
	}
	return out
}

func (c *Calendar) prevBusday(d temporal.Date) temporal.Date {
	out := d.AddDays(-1)
	for !c.IsBusday(out) {
		out = out.AddDays(-1)
	}
	return out
}

// roll adjusts d to a business day per policy, when d itself is not one.
// The bool result is false only for RollNaT applied to a non-business date,
// meaning "not a time" rather than an error.
func (c *Calendar) roll(d temporal.Date, policy RollPolicy) (temporal.Date, bool, error) {
	if c.IsBusday(d) {
		return d, true, nil
	}
	switch policy {
	case RollFollowing:
		return c.nextBusday(d), true, nil
	case RollPreceding:
		return c.prevBusday(d), true, nil
	case RollModifiedFollowing:
		out := c.nextBusday(d)
		if out.Month != d.Month {
			out = c.prevBusday(d)
		}
		return out, true, nil
	case RollModifiedPreceding:
		out := c.prevBusday(d)
		if out.Month != d.Month {
			out = c.nextBusday(d)
		}
		return out, true, nil
	case RollRaise:
		return temporal.Date{}, false, errs.Newf(errs.InvalidRange, "offset", "%s is not a business day", d.String())
	case RollNaT:
		return temporal.Date{}, false, nil
	default:
		return temporal.Date{}, false, errs.Newf(errs.InvalidRange, "offset", "unknown roll policy %d", int(policy))
	}
}

// Offset rolls start onto a business day per policy, then steps n business
// days (n may be negative; n=0 returns the rolled date itself). RollNaT
// returns ok=false with no error when start is not already a business day.
func (c *Calendar) Offset(start temporal.Date, n int, policy RollPolicy) (result temporal.Date, ok bool, err error) {
	d, ok, err := c.roll(start, policy)
	if err != nil || !ok {
		return temporal.Date{}, ok, err
	}
	step := 1
	remaining := n
	if remaining < 0 {
		step = -1
		remaining = -remaining
	}
	for remaining > 0 {
		if step > 0 {
			d = c.nextBusday(d)
		} else {
			d = c.prevBusday(d)
		}
		remaining--
	}
	return d, true, nil
}

// Count returns the number of business days in the half-open range
// [begin, end), via whole-week decomposition plus a remainder-day scan and
// a holiday correction for holidays that fall on an otherwise-business
// weekday within the range.
func (c *Calendar) Count(begin, end temporal.Date) int {
	if !begin.Before(end) {
		return 0
	}
	totalDays := daysBetween(begin, end)
	weekdaysPerWeek := 0
	for _, on := range c.weekmask {
		if on {
			weekdaysPerWeek++
		}
	}
	weeks := totalDays / 7
	remDays := totalDays % 7
	count := weeks * weekdaysPerWeek
	cur := begin.AddDays(weeks * 7)
	for i := 0; i < remDays; i++ {
		d := cur.AddDays(i)
		if c.weekmask[int(d.Weekday())] {
			count++
		}
	}
	for h := range c.holidays {
		if !h.Before(begin) && h.Before(end) && c.weekmask[int(h.Weekday())] {
			count--
		}
	}
	return count
}

func daysBetween(a, b temporal.Date) int {
	const day = 24 * time.Hour
	return int(b.ToTime(time.UTC).Sub(a.ToTime(time.UTC)) / day)
}
