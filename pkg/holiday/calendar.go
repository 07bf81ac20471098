package holiday

import (
	"sort"

	"github.com/aristath/marketframe/pkg/temporal"
)

// Calendar is an ordered set of Rules. Rule order matters only for
// resolving which rule "owns" a date when two rules coincide (first wins).
type Calendar struct {
	Rules []Rule
}

// NamedDate pairs an observed holiday date with the name of the rule that
// first produced it.
type NamedDate struct {
	Date temporal.Date
	Name string
}

// Dates expands every rule across the years spanned by [start, end],
// keeping only the observed dates that fall within that window, deduplicated
// so that when two rules produce the same date the earliest-registered rule
// name is kept, returned in ascending date order.
func (c Calendar) Dates(start, end temporal.Date) []temporal.Date {
	named := c.NamedDates(start, end)
	out := make([]temporal.Date, len(named))
	for i, n := range named {
		out[i] = n.Date
	}
	return out
}

// NamedDates is Dates plus the owning rule name for each date.
func (c Calendar) NamedDates(start, end temporal.Date) []NamedDate {
	owner := make(map[temporal.Date]string)
	var order []temporal.Date
	for _, rule := range c.Rules {
		for year := start.Year - 1; year <= end.Year+1; year++ {
			d, ok := rule.Evaluate(year)
			if !ok {
				continue
			}
			if d.Before(start) || d.After(end) {
				continue
			}
			if _, exists := owner[d]; exists {
				continue
			}
			owner[d] = rule.Name
			order = append(order, d)
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })
	out := make([]NamedDate, len(order))
	for i, d := range order {
		out[i] = NamedDate{Date: d, Name: owner[d]}
	}
	return out
}
