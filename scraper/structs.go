package scraper

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Weekday is one of the five teaching days covered by a timetable export.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists the teaching days in table order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func (d Weekday) String() string {
	if d < Monday || d > Friday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

func (d Weekday) MarshalText() ([]byte, error) {
	if d < Monday || d > Friday {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(weekdayNames[d]), nil
}

func (d *Weekday) UnmarshalText(text []byte) error {
	day, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = day
	return nil
}

// TimeOfDay is a wall-clock time without a date or zone. Values are not range checked.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Compare orders times by hour, then minute.
func (t TimeOfDay) Compare(o TimeOfDay) int {
	switch {
	case t.Hour != o.Hour:
		if t.Hour < o.Hour {
			return -1
		}
		return 1
	case t.Minute < o.Minute:
		return -1
	case t.Minute > o.Minute:
		return 1
	}
	return 0
}

func (t TimeOfDay) Before(o TimeOfDay) bool { return t.Compare(o) < 0 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTime(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// WeekSpecKind tags the variant held by a WeekSpec.
type WeekSpecKind int

const (
	SingleWeek WeekSpecKind = iota
	WeekRange
)

// WeekSpec is either a single week number or an inclusive range of weeks.
// For a single week Start and End are equal.
type WeekSpec struct {
	Kind  WeekSpecKind
	Start int
	End   int
}

// Single returns the spec for one week.
func Single(week int) WeekSpec {
	return WeekSpec{Kind: SingleWeek, Start: week, End: week}
}

// Range returns the spec for weeks start..end inclusive. A reversed range is kept as is.
func Range(start, end int) WeekSpec {
	return WeekSpec{Kind: WeekRange, Start: start, End: end}
}

// Contains reports whether week n falls within the spec.
func (w WeekSpec) Contains(n int) bool {
	if w.Kind == SingleWeek {
		return n == w.Start
	}
	return w.Start <= n && n <= w.End
}

func (w WeekSpec) String() string {
	if w.Kind == SingleWeek {
		return fmt.Sprintf("%d", w.Start)
	}
	return fmt.Sprintf("%d-%d", w.Start, w.End)
}

// DefaultMaxWeek is the highest teaching week a calendar year can hold.
const DefaultMaxWeek = 53

// ExpandWeeks lists the distinct week numbers covered by specs in first-seen
// order. Weeks outside 1..maxWeek are dropped, so ranges with unbounded ends
// expand to at most maxWeek numbers.
func ExpandWeeks(specs []WeekSpec, maxWeek int) []int {
	var weeks []int
	seen := make(map[int]bool)
	for _, spec := range specs {
		lo, hi := max(spec.Start, 1), min(spec.End, maxWeek)
		if lo > hi {
			continue
		}
		for n := lo; ; n++ {
			if !seen[n] {
				seen[n] = true
				weeks = append(weeks, n)
			}
			if n == hi {
				break
			}
		}
	}
	return weeks
}

// Entry is one decoded timetable row.
type Entry struct {
	ID           uuid.UUID
	Activities   []string
	ModuleTitle  *string
	SessionTitle string
	Type         string
	Weeks        []WeekSpec
	Day          Weekday
	Start        TimeOfDay
	End          TimeOfDay
	Staff        string
	Location     string
	Notes        *string
}

// Occurs reports whether the entry runs in the given week.
func (e Entry) Occurs(week int) bool {
	for _, spec := range e.Weeks {
		if spec.Contains(week) {
			return true
		}
	}
	return false
}

// Equal compares two entries field by field, ignoring ID.
func (e Entry) Equal(o Entry) bool {
	return slices.Equal(e.Activities, o.Activities) &&
		equalOptional(e.ModuleTitle, o.ModuleTitle) &&
		e.SessionTitle == o.SessionTitle &&
		e.Type == o.Type &&
		slices.Equal(e.Weeks, o.Weeks) &&
		e.Day == o.Day &&
		e.Start == o.Start &&
		e.End == o.End &&
		e.Staff == o.Staff &&
		e.Location == o.Location &&
		equalOptional(e.Notes, o.Notes)
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// DayEntries groups the entries decoded from one weekday table.
type DayEntries struct {
	Day     Weekday
	Entries []Entry
}

// Flatten joins grouped entries into one slice, keeping weekday order.
func Flatten(days []DayEntries) []Entry {
	var entries []Entry
	for _, d := range days {
		entries = append(entries, d.Entries...)
	}
	return entries
}
