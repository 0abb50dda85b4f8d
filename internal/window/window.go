package window

import (
	"fmt"
	"time"
)

// Local is the fixed regional offset used to interpret every calendar-date
// parameter. The restaurant operates in a single timezone; the server's own
// timezone is never consulted.
var Local = time.FixedZone("UTC+05:30", 5*3600+30*60)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Window is a resolved time range used to filter orders by creation time.
// End is normally exclusive; ranges built from an explicit from/to pair keep
// the historical inclusive end (the whole last second of the "to" day).
type Window struct {
	Start      time.Time
	End        time.Time
	IncludeEnd bool
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if w.IncludeEnd {
		return !t.After(w.End)
	}
	return t.Before(w.End)
}

// Resolve converts request parameters into a concrete window, in priority
// order: an explicit from/to pair, then a date with an optional period,
// then the current day in the fixed offset.
func Resolve(date, period, from, to string) (Window, error) {
	if from != "" && to != "" {
		return Span(from, to)
	}
	if date != "" {
		return ForPeriod(date, period)
	}
	return Today(), nil
}

// Span covers from the start of the "from" day through the last second of
// the "to" day, inclusive.
func Span(from, to string) (Window, error) {
	start, err := time.ParseInLocation(dateLayout, from, Local)
	if err != nil {
		return Window{}, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	endDay, err := time.ParseInLocation(dateLayout, to, Local)
	if err != nil {
		return Window{}, fmt.Errorf("invalid to date %q: %w", to, err)
	}
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 23, 59, 59, 0, Local)
	return Window{Start: start, End: end, IncludeEnd: true}, nil
}

// ForPeriod covers one day, week or calendar month starting at the given
// date. An empty period means day.
func ForPeriod(date, period string) (Window, error) {
	start, err := time.ParseInLocation(dateLayout, date, Local)
	if err != nil {
		return Window{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	var end time.Time
	switch period {
	case "", "day":
		end = start.AddDate(0, 0, 1)
	case "week":
		end = start.AddDate(0, 0, 7)
	case "month":
		end = start.AddDate(0, 1, 0)
	default:
		return Window{}, fmt.Errorf("invalid period %q", period)
	}

	return Window{Start: start, End: end}, nil
}

// Day covers a single calendar day.
func Day(date string) (Window, error) {
	return ForPeriod(date, "day")
}

// Month covers a whole calendar month given as "2006-01".
func Month(month string) (Window, error) {
	start, err := time.ParseInLocation(monthLayout, month, Local)
	if err != nil {
		return Window{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return Window{Start: start, End: start.AddDate(0, 1, 0)}, nil
}

// Today covers the current calendar day in the fixed offset.
func Today() Window {
	now := time.Now().In(Local)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Local)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}
