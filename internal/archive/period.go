package archive

import (
	"sort"
	"time"
)

// PeriodMode selects how FilterByPeriod narrows a message sequence.
type PeriodMode string

const (
	PeriodAll     PeriodMode = "all"
	PeriodYear    PeriodMode = "year"
	PeriodMonth   PeriodMode = "month"
	PeriodQuarter PeriodMode = "quarter"
	PeriodCustom  PeriodMode = "custom"
)

// Period is a time-window predicate over message timestamps. Only the
// fields relevant to Mode are consulted: Year for PeriodYear, Year and
// Month for PeriodMonth, Year and Quarter (1-4) for PeriodQuarter, and
// the date-precision Start/End bounds for PeriodCustom.
type Period struct {
	Mode    PeriodMode
	Year    int
	Month   time.Month
	Quarter int
	Start   time.Time
	End     time.Time
}

// FilterByPeriod keeps the messages whose timestamp, viewed in loc,
// falls inside the period. Input order is preserved; this filters, it
// never resorts. A custom period missing either bound keeps nothing.
func FilterByPeriod(msgs []*Message, p Period, loc *time.Location) []*Message {
	if p.Mode == PeriodAll {
		return msgs
	}
	var out []*Message
	for _, m := range msgs {
		t := m.Time(loc)
		keep := false
		switch p.Mode {
		case PeriodYear:
			keep = t.Year() == p.Year
		case PeriodMonth:
			keep = t.Year() == p.Year && t.Month() == p.Month
		case PeriodQuarter:
			keep = t.Year() == p.Year && quarterOf(t.Month()) == p.Quarter
		case PeriodCustom:
			if !p.Start.IsZero() && !p.End.IsZero() {
				d := civilDate(t)
				keep = !d.Before(civilDate(p.Start)) && !d.After(civilDate(p.End))
			}
		}
		if keep {
			out = append(out, m)
		}
	}
	return out
}

// quarterOf numbers quarters 1-4: Jan-Mar is 1, Apr-Jun is 2, and so on.
func quarterOf(m time.Month) int {
	return (int(m)-1)/3 + 1
}

// civilDate truncates t to its calendar date so custom ranges compare
// at date precision, inclusive on both ends.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// YearsOf returns the distinct years, in loc, present in msgs,
// ascending. Useful for building period pickers over a conversation.
func YearsOf(msgs []*Message, loc *time.Location) []int {
	seen := make(map[int]bool)
	for _, m := range msgs {
		seen[m.Time(loc).Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
