package output

import (
	"io"

	"github.com/goccy/go-json"

	"timetable2json/scraper"
)

// Day is the serialized form of one weekday table.
type Day struct {
	Day     scraper.Weekday `json:"day"`
	Entries []Entry         `json:"entries"`
}

// Entry is the serialized form of a timetable entry.
type Entry struct {
	Activities   []string          `json:"activities"`
	ModuleTitle  *string           `json:"module_title"`
	SessionTitle string            `json:"session_title"`
	Type         string            `json:"type"`
	Weeks        []Week            `json:"weeks"`
	Day          scraper.Weekday   `json:"day"`
	Start        scraper.TimeOfDay `json:"start"`
	End          scraper.TimeOfDay `json:"end"`
	Staff        string            `json:"staff"`
	Location     string            `json:"location"`
	Notes        *string           `json:"notes"`
}

// Week is {"week":n} for a single week or {"start":s,"end":e} for a range.
type Week struct {
	Week  *int `json:"week,omitempty"`
	Start *int `json:"start,omitempty"`
	End   *int `json:"end,omitempty"`
}

func fromWeekSpec(w scraper.WeekSpec) Week {
	if w.Kind == scraper.SingleWeek {
		n := w.Start
		return Week{Week: &n}
	}
	start, end := w.Start, w.End
	return Week{Start: &start, End: &end}
}

// FromEntry converts a decoded entry to its serialized form.
func FromEntry(e scraper.Entry) Entry {
	weeks := make([]Week, len(e.Weeks))
	for i, w := range e.Weeks {
		weeks[i] = fromWeekSpec(w)
	}
	return Entry{
		Activities:   e.Activities,
		ModuleTitle:  e.ModuleTitle,
		SessionTitle: e.SessionTitle,
		Type:         e.Type,
		Weeks:        weeks,
		Day:          e.Day,
		Start:        e.Start,
		End:          e.End,
		Staff:        e.Staff,
		Location:     e.Location,
		Notes:        e.Notes,
	}
}

// FromDays converts grouped entries, keeping weekday order.
func FromDays(days []scraper.DayEntries) []Day {
	out := make([]Day, len(days))
	for i, d := range days {
		entries := make([]Entry, len(d.Entries))
		for j, e := range d.Entries {
			entries[j] = FromEntry(e)
		}
		out[i] = Day{Day: d.Day, Entries: entries}
	}
	return out
}

// WriteJSON writes the grouped entries as a JSON array.
func WriteJSON(w io.Writer, days []scraper.DayEntries, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(FromDays(days))
}
