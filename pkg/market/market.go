// Package market implements C9: the market-calendar engine — trading-day
// enumeration, per-day session-time resolution (including special-time
// overrides), and full schedule construction.
package market

import (
	"time"

	"github.com/aristath/marketframe/pkg/busday"
	"github.com/aristath/marketframe/pkg/columnar"
	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/holiday"
	"github.com/aristath/marketframe/pkg/ndframe"
	"github.com/aristath/marketframe/pkg/scalar"
	"github.com/aristath/marketframe/pkg/temporal"
	"github.com/aristath/marketframe/pkg/tsindex"
)

// TimeKind names one of a market day's session-time columns.
type TimeKind string

const (
	Pre             TimeKind = "pre"
	MarketOpen      TimeKind = "market_open"
	BreakStart      TimeKind = "break_start"
	BreakEnd        TimeKind = "break_end"
	MarketClose     TimeKind = "market_close"
	Post            TimeKind = "post"
	InternalUseOnly TimeKind = "internal_use_only"
)

// MarketTimeSpec is a market-time column's default time-of-day, plus the
// calendar-day offset to localize it against. DayOffset 0 (the default)
// localizes against the session's own trading day; -1 localizes against
// the previous calendar day, for a session whose open (or close) falls on
// the evening before, such as CME Globex Crypto's Sunday-evening open.
type MarketTimeSpec struct {
	Time      temporal.Time
	DayOffset int
}

// AtTime builds a same-day MarketTimeSpec, the common case.
func AtTime(t temporal.Time) MarketTimeSpec {
	return MarketTimeSpec{Time: t}
}

// SpecialTime overrides a market-time column's default for every date in
// [Start, End] (either bound nil means unbounded on that side).
type SpecialTime struct {
	MarketTime TimeKind
	Time       temporal.Time
	Start, End *temporal.Date
}

func (s SpecialTime) appliesTo(d temporal.Date) bool {
	if s.Start != nil && d.Before(*s.Start) {
		return false
	}
	if s.End != nil && d.After(*s.End) {
		return false
	}
	return true
}

// AdHocTime overrides a market-time column on an explicit list of dates.
type AdHocTime struct {
	MarketTime TimeKind
	Time       temporal.Time
	Dates      []temporal.Date
}

// Interruption describes one additional intraday closure beyond the primary
// break (BreakStart/BreakEnd), contributing a Start/End column pair to
// Schedule named "<Name>_start"/"<Name>_end".
type Interruption struct {
	Name         string
	DefaultStart temporal.Time
	DefaultEnd   temporal.Time
}

// Options configures a MarketCalendar.
type Options struct {
	Name              string
	TimezoneName      string
	Weekmask          busday.Weekmask
	DefaultTimes      map[TimeKind]MarketTimeSpec // must include MarketOpen, MarketClose
	Interruptions     []Interruption
	Holidays          holiday.Calendar
	SpecialTimes      []SpecialTime // applied in registration order, last match wins
	SpecialTimesAdHoc []AdHocTime
}

// Calendar is a constructed market calendar.
type Calendar struct {
	opts Options
	loc  *time.Location
}

// New validates opts and builds a Calendar. Every SpecialTime/AdHocTime
// override's MarketTime must be MarketOpen or MarketClose (the only two
// columns this engine allows special-time registration against, per its
// break-clamping design) and its own sessions must appear in DefaultTimes.
func New(opts Options) (*Calendar, error) {
	if _, ok := opts.DefaultTimes[MarketOpen]; !ok {
		return nil, errs.New(errs.InvalidOverride, "new_calendar", "market_open must be defined")
	}
	if _, ok := opts.DefaultTimes[MarketClose]; !ok {
		return nil, errs.New(errs.InvalidOverride, "new_calendar", "market_close must be defined")
	}
	for _, st := range opts.SpecialTimes {
		if st.MarketTime != MarketOpen && st.MarketTime != MarketClose {
			return nil, errs.Newf(errs.InvalidOverride, "new_calendar", "special times may only target market_open or market_close, got %s", st.MarketTime)
		}
	}
	for _, ah := range opts.SpecialTimesAdHoc {
		if ah.MarketTime != MarketOpen && ah.MarketTime != MarketClose {
			return nil, errs.Newf(errs.InvalidOverride, "new_calendar", "ad hoc special times may only target market_open or market_close, got %s", ah.MarketTime)
		}
	}
	loc, err := temporal.LoadLocation(opts.TimezoneName)
	if err != nil {
		return nil, err
	}
	return &Calendar{opts: opts, loc: loc}, nil
}

func (c *Calendar) weekmask() busday.Weekmask {
	if c.opts.Weekmask == (busday.Weekmask{}) {
		return busday.DefaultWeekmask()
	}
	return c.opts.Weekmask
}

func (c *Calendar) busdayCalendar(start, end temporal.Date) *busday.Calendar {
	holidays := c.opts.Holidays.Dates(start, end)
	return busday.NewCalendar(c.weekmask(), holidays)
}

// ValidDays returns every trading day in [start, end].
func (c *Calendar) ValidDays(start, end temporal.Date) []temporal.Date {
	cal := c.busdayCalendar(start, end)
	var out []temporal.Date
	for d := start; !d.After(end); d = d.AddDays(1) {
		if cal.IsBusday(d) {
			out = append(out, d)
		}
	}
	return out
}

// resolveTime returns the session time and calendar-day offset for
// marketTime on date d: an ad hoc override wins over a ranged special
// time, and among same-kind overrides the last one registered (scanned
// last in its slice) wins; overrides always localize same-day (offset 0).
// Absent any override it falls back to DefaultTimes, offset included.
func (c *Calendar) resolveTime(d temporal.Date, kind TimeKind) (temporal.Time, int, error) {
	spec, found := c.opts.DefaultTimes[kind]
	result := spec.Time
	offset := spec.DayOffset
	if !found && kind != MarketOpen && kind != MarketClose {
		return temporal.Time{}, 0, errs.Newf(errs.UnknownMarketTime, "resolve_time", "unknown market time %s", kind)
	}
	for _, st := range c.opts.SpecialTimes {
		if st.MarketTime == kind && st.appliesTo(d) {
			result = st.Time
			offset = 0
			found = true
		}
	}
	for _, ah := range c.opts.SpecialTimesAdHoc {
		if ah.MarketTime != kind {
			continue
		}
		for _, date := range ah.Dates {
			if date == d {
				result = ah.Time
				offset = 0
				found = true
			}
		}
	}
	if !found {
		return temporal.Time{}, 0, errs.Newf(errs.UnknownMarketTime, "resolve_time", "unknown market time %s", kind)
	}
	return result, offset, nil
}

// DaysAtTime localizes every day in days at marketTime's resolved
// time-of-day, shifting the calendar date by the configured day offset
// before localizing (used for sessions whose open or close falls on an
// adjacent calendar day).
func (c *Calendar) DaysAtTime(days []temporal.Date, kind TimeKind) ([]temporal.DateTime, error) {
	out := make([]temporal.DateTime, len(days))
	for i, d := range days {
		t, offset, err := c.resolveTime(d, kind)
		if err != nil {
			return nil, err
		}
		out[i] = temporal.Localize(d.AddDays(offset), t, c.loc)
	}
	return out, nil
}

// ScheduleOptions configures Schedule. ForceSpecialTimes controls whether a
// session's special-time override for MarketOpen/MarketClose is allowed to
// push BreakStart/BreakEnd out of order: nil means "conditional" (clamp
// only the break column the special time has actually invalidated).
type ScheduleOptions struct {
	ForceSpecialTimes *bool // nil = conditional clamp, matching spec's Open Question resolution
}

// Schedule builds the full per-day session table over [start, end]: one row
// per trading day, with MarketOpen/MarketClose columns, BreakStart/BreakEnd
// columns when defined, and one Start/End column pair per configured
// Interruption.
func (c *Calendar) Schedule(start, end temporal.Date, opts ScheduleOptions) (*ndframe.DataFrame, error) {
	days := c.ValidDays(start, end)
	n := len(days)

	opens, err := c.DaysAtTime(days, MarketOpen)
	if err != nil {
		return nil, err
	}
	closes, err := c.DaysAtTime(days, MarketClose)
	if err != nil {
		return nil, err
	}

	var breakStarts, breakEnds []temporal.DateTime
	hasBreak := false
	if _, ok := c.opts.DefaultTimes[BreakStart]; ok {
		hasBreak = true
		breakStarts, err = c.DaysAtTime(days, BreakStart)
		if err != nil {
			return nil, err
		}
		breakEnds, err = c.DaysAtTime(days, BreakEnd)
		if err != nil {
			return nil, err
		}
		applyForceClamp(opens, closes, breakStarts, breakEnds, opts.ForceSpecialTimes)
	}

	var preTimes, postTimes []temporal.DateTime
	hasPre, hasPost := false, false
	if _, ok := c.opts.DefaultTimes[Pre]; ok {
		hasPre = true
		preTimes, err = c.DaysAtTime(days, Pre)
		if err != nil {
			return nil, err
		}
	}
	if _, ok := c.opts.DefaultTimes[Post]; ok {
		hasPost = true
		postTimes, err = c.DaysAtTime(days, Post)
		if err != nil {
			return nil, err
		}
	}

	fields := []columnar.Field{
		{Name: "market_open", Type: scalar.Timestamp},
		{Name: "market_close", Type: scalar.Timestamp},
	}
	cols := []*columnar.ChunkedArray{
		timestampColumn(opens),
		timestampColumn(closes),
	}
	if hasBreak {
		fields = append(fields, columnar.Field{Name: "break_start", Type: scalar.Timestamp}, columnar.Field{Name: "break_end", Type: scalar.Timestamp})
		cols = append(cols, timestampColumn(breakStarts), timestampColumn(breakEnds))
	}
	if hasPre {
		fields = append(fields, columnar.Field{Name: "pre", Type: scalar.Timestamp})
		cols = append(cols, timestampColumn(preTimes))
	}
	if hasPost {
		fields = append(fields, columnar.Field{Name: "post", Type: scalar.Timestamp})
		cols = append(cols, timestampColumn(postTimes))
	}

	for _, interruption := range c.opts.Interruptions {
		startCol := make([]temporal.DateTime, n)
		endCol := make([]temporal.DateTime, n)
		for i, d := range days {
			startCol[i] = temporal.Localize(d, interruption.DefaultStart, c.loc)
			endCol[i] = temporal.Localize(d, interruption.DefaultEnd, c.loc)
		}
		fields = append(fields, columnar.Field{Name: interruption.Name + "_start", Type: scalar.Timestamp}, columnar.Field{Name: interruption.Name + "_end", Type: scalar.Timestamp})
		cols = append(cols, timestampColumn(startCol), timestampColumn(endCol))
	}

	schema, err := columnar.NewSchema(fields...)
	if err != nil {
		return nil, err
	}
	table, err := columnar.NewTable(schema, cols)
	if err != nil {
		return nil, err
	}
	idx := dateIndex(days)
	return ndframe.NewDataFrame(idx, table)
}

// applyForceClamp resolves the interaction between a special MarketOpen/
// MarketClose override and the BreakStart/BreakEnd columns, per the design
// resolution: if MarketOpen was pushed later than BreakStart, BreakStart is
// raised to the new MarketOpen; symmetrically, if MarketClose was pulled
// earlier than BreakEnd, BreakEnd is lowered to the new MarketClose.
// force=true and nil both clamp only the invalidated side (the conditional
// default); force=false never clamps.
func applyForceClamp(opens, closes, breakStarts, breakEnds []temporal.DateTime, force *bool) {
	if force != nil && !*force {
		return
	}
	for i := range opens {
		if breakStarts[i].Before(opens[i]) {
			breakStarts[i] = opens[i]
		}
		if breakEnds[i].After(closes[i]) {
			breakEnds[i] = closes[i]
		}
	}
}

func timestampColumn(vals []temporal.DateTime) *columnar.ChunkedArray {
	data := make([]temporal.DateTime, len(vals))
	copy(data, vals)
	return columnar.NewChunkedArrayFrom(columnar.NewTimestampArray(data, nil))
}

func dateIndex(days []temporal.Date) *tsindex.Index {
	labels := make([]scalar.Scalar, len(days))
	for i, d := range days {
		labels[i] = scalar.NewTimestamp(temporal.NaiveDateTime(d, temporal.NewTime(0, 0, 0)))
	}
	return tsindex.New("", labels)
}

// OpenAtTime reports whether the market is open at instant ts on the day it
// falls on, per the computed schedule row for that day. When onlyRTH is
// true, "open" is bounded by MarketOpen/MarketClose alone, excluding any
// Pre/Post regions the schedule defines; when false and the schedule has
// Pre/Post columns, those widen the open window. includeClose controls
// whether ts equal to the closing boundary counts as open.
func (c *Calendar) OpenAtTime(sched *ndframe.DataFrame, ts temporal.DateTime, includeClose, onlyRTH bool) (bool, error) {
	idx := sched.Index()
	day := temporal.NaiveDateTime(ts.Date(), temporal.NewTime(0, 0, 0))
	pos, err := idx.GetLoc(scalar.NewTimestamp(day))
	if err != nil {
		return false, nil
	}
	row, err := sched.ILoc(pos)
	if err != nil {
		return false, err
	}
	schema := sched.Table().Schema()
	openIdx := schema.FieldByName("market_open")
	closeIdx := schema.FieldByName("market_close")
	start, _ := row[openIdx].Timestamp()
	end, _ := row[closeIdx].Timestamp()

	if !onlyRTH {
		if preIdx := schema.FieldByName("pre"); preIdx >= 0 {
			start, _ = row[preIdx].Timestamp()
		}
		if postIdx := schema.FieldByName("post"); postIdx >= 0 {
			end, _ = row[postIdx].Timestamp()
		}
	}

	if ts.Before(start) {
		return false, nil
	}
	if includeClose {
		if ts.After(end) {
			return false, nil
		}
	} else if !ts.Before(end) {
		return false, nil
	}

	if onlyRTH {
		if bsIdx := schema.FieldByName("break_start"); bsIdx >= 0 {
			beIdx := schema.FieldByName("break_end")
			bs, _ := row[bsIdx].Timestamp()
			be, _ := row[beIdx].Timestamp()
			if !ts.Before(bs) && ts.Before(be) {
				return false, nil
			}
		}
	}
	return true, nil
}
