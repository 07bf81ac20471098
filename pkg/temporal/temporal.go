// Package temporal provides the Date, Time, DateTime, and TimeDelta
// primitives shared by the NDFrame kernel and the market-calendar engine.
//
// Every type wraps the standard library's time.Time/time.Location rather
// than reimplementing timezone rules: time.Time is the only date/time
// primitive used anywhere across the retrieval pack this module was built
// from, and Go's tzdata-backed *time.Location already gives DST-correct
// localization, which is the hard part of this package.
package temporal

import (
	"fmt"
	"time"

	"github.com/aristath/marketframe/pkg/errs"
)

// Date is a timezone-naive calendar day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date, normalizing overflowed month/day fields the same
// way time.Date does (e.g. month 13 rolls into the next year).
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DateFromTime extracts the calendar day from t, in t's own location.
func DateFromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ToTime renders the Date as midnight in loc.
func (d Date) ToTime(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n calendar days later (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateFromTime(d.ToTime(time.UTC).AddDate(0, 0, n))
}

// Weekday reports the day of week, independent of any timezone.
func (d Date) Weekday() time.Weekday {
	return d.ToTime(time.UTC).Weekday()
}

// Before, Equal, After compare two Dates as calendar days.
func (d Date) Before(o Date) bool { return d.ToTime(time.UTC).Before(o.ToTime(time.UTC)) }
func (d Date) Equal(o Date) bool  { return d == o }
func (d Date) After(o Date) bool  { return d.ToTime(time.UTC).After(o.ToTime(time.UTC)) }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time is a time-of-day, optionally tagged with a timezone name. The tz is
// carried as metadata only: it is not applied to any instant until
// combined with a Date via Localize.
type Time struct {
	Hour, Minute, Second, Nanosecond int
	TZName                           string // empty means naive
}

// NewTime builds a naive Time.
func NewTime(hour, minute, second int) Time {
	return Time{Hour: hour, Minute: minute, Second: second}
}

// WithTZ returns a copy of t tagged with the given IANA zone name.
func (t Time) WithTZ(tzName string) Time {
	t.TZName = tzName
	return t
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// DateTime is a Date+Time pair, optionally timezone-aware. A DateTime with
// a tz is canonicalized to an absolute instant the moment it is localized;
// calendar-field extraction (Year/Month/Day/Weekday) always reads the
// local, not the system, clock.
type DateTime struct {
	instant time.Time
	naive   bool
}

// Localize combines a Date with a Time in the named location, producing an
// absolute instant. Ambiguous local times (DST fall-back) resolve via the
// Location's default fold behavior; non-existent times (DST spring-forward)
// are forward-shifted, matching time.Date's documented behavior.
func Localize(d Date, t Time, loc *time.Location) DateTime {
	inst := time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, t.Nanosecond, loc)
	return DateTime{instant: inst}
}

// NaiveDateTime builds a timezone-naive DateTime from a Date+Time pair,
// interpreted in UTC for internal bookkeeping but never converted.
func NaiveDateTime(d Date, t Time) DateTime {
	return DateTime{instant: time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, t.Nanosecond, time.UTC), naive: true}
}

// FromTime wraps a time.Time as an absolute-instant DateTime.
func FromTime(t time.Time) DateTime { return DateTime{instant: t} }

// UTC returns the instant converted to UTC.
func (dt DateTime) UTC() time.Time { return dt.instant.UTC() }

// In returns the instant as presented in loc. Converting presentation tz is
// a pure relabel: it never changes the instant.
func (dt DateTime) In(loc *time.Location) time.Time { return dt.instant.In(loc) }

// Time returns the underlying instant in its currently attached location.
func (dt DateTime) Time() time.Time { return dt.instant }

// IsNaive reports whether this DateTime was built without a timezone.
func (dt DateTime) IsNaive() bool { return dt.naive }

// Date extracts the calendar day in the DateTime's current location.
func (dt DateTime) Date() Date { return DateFromTime(dt.instant) }

// Weekday reports the day of week in the DateTime's current location.
func (dt DateTime) Weekday() time.Weekday { return dt.instant.Weekday() }

// AddDate adds calendar years/months/days, in the DateTime's current
// location.
func (dt DateTime) AddDate(years, months, days int) DateTime {
	return DateTime{instant: dt.instant.AddDate(years, months, days), naive: dt.naive}
}

// Before, Equal, After compare instants.
func (dt DateTime) Before(o DateTime) bool { return dt.instant.Before(o.instant) }
func (dt DateTime) Equal(o DateTime) bool  { return dt.instant.Equal(o.instant) }
func (dt DateTime) After(o DateTime) bool  { return dt.instant.After(o.instant) }

func (dt DateTime) String() string { return dt.instant.Format(time.RFC3339) }

// TimeDelta is a signed duration with both a fixed nanosecond count and
// calendar-only fields (years, months) that can only be resolved once
// applied to a concrete DateTime.
type TimeDelta struct {
	Years, Months, Days int
	Hours, Minutes, Seconds, Nanoseconds int64
}

// Duration returns the fixed (non-calendar) portion as a time.Duration.
// Years/Months/Days are NOT included since they are not fixed-length.
func (td TimeDelta) Duration() time.Duration {
	return time.Duration(td.Hours)*time.Hour +
		time.Duration(td.Minutes)*time.Minute +
		time.Duration(td.Seconds)*time.Second +
		time.Duration(td.Nanoseconds)
}

// Apply resolves the calendar-pure components against dt and adds the
// fixed-duration components, returning a new DateTime.
func (td TimeDelta) Apply(dt DateTime) DateTime {
	out := dt.AddDate(td.Years, td.Months, td.Days)
	out.instant = out.instant.Add(td.Duration())
	return out
}

// LoadLocation resolves an IANA timezone name, wrapping time.LoadLocation's
// error in a sentinel the caller can recognize without string matching.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errs.Wrap(errs.UnknownTimezone, "load_location", err).WithColumn(name)
	}
	return loc, nil
}
