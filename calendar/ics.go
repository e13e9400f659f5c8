package calendar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"timetable2json/scraper"
)

const icsTimeLayout = "20060102T150405Z"

// Event is one dated occurrence of a timetable entry.
type Event struct {
	ID          string
	Summary     string
	Location    string
	Description string
	Start       time.Time
	End         time.Time
}

// EventID identifies an occurrence by its content so repeated exports keep stable UIDs.
func EventID(summary string, start, end time.Time) string {
	hash := md5.New()
	hash.Write([]byte(summary + start.Format(time.RFC3339) + end.Format(time.RFC3339)))
	return hex.EncodeToString(hash.Sum(nil))
}

// Summary is the event title for an entry: its activity codes and session title.
func Summary(e scraper.Entry) string {
	return strings.Join(e.Activities, ", ") + " - " + e.SessionTitle
}

func description(e scraper.Entry) string {
	lines := []string{"Type: " + e.Type}
	if e.ModuleTitle != nil {
		lines = append(lines, "Module: "+*e.ModuleTitle)
	}
	if e.Staff != "" {
		lines = append(lines, "Staff: "+e.Staff)
	}
	weeks := make([]string, len(e.Weeks))
	for i, w := range e.Weeks {
		weeks[i] = w.String()
	}
	lines = append(lines, "Weeks: "+strings.Join(weeks, ", "))
	if e.Notes != nil && *e.Notes != "" {
		lines = append(lines, "Notes: "+*e.Notes)
	}
	return strings.Join(lines, "\n")
}

// Events expands every entry into one event per teaching week it runs in,
// ignoring weeks past maxWeek. weekOne is any date in week 1; its location is
// used for the wall-clock times.
func Events(days []scraper.DayEntries, weekOne time.Time, maxWeek int) []Event {
	var events []Event
	for _, d := range days {
		for _, e := range d.Entries {
			summary := Summary(e)
			desc := description(e)
			for _, week := range scraper.ExpandWeeks(e.Weeks, maxWeek) {
				date := scraper.DateForWeek(weekOne, week, e.Day)
				start := scraper.At(date, e.Start)
				end := scraper.At(date, e.End)
				if !end.After(start) {
					end = start.Add(time.Hour)
				}
				events = append(events, Event{
					ID:          EventID(summary, start, end),
					Summary:     summary,
					Location:    e.Location,
					Description: desc,
					Start:       start,
					End:         end,
				})
			}
		}
	}
	return events
}

// Build assembles an iCalendar document. stamp is written as DTSTAMP on every event.
func Build(events []Event, name string, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//timetable2json//EN")
	if name != "" {
		cal.SetXWRCalName(name)
	}
	for _, ev := range events {
		event := cal.AddEvent(ev.ID)
		event.SetDtStampTime(stamp)
		event.SetStartAt(ev.Start)
		event.SetEndAt(ev.End)
		event.SetSummary(ev.Summary)
		if ev.Location != "" {
			event.SetLocation(ev.Location)
		}
		if ev.Description != "" {
			event.SetDescription(ev.Description)
		}
	}
	return cal
}

// Write serializes events as an iCalendar document.
func Write(w io.Writer, events []Event, name string, stamp time.Time) error {
	return Build(events, name, stamp).SerializeTo(w)
}

var textUnescaper = strings.NewReplacer(`\\`, `\`, `\,`, ",", `\;`, ";", `\n`, "\n", `\N`, "\n")

func propertyText(event *ics.VEvent, p ics.ComponentProperty) string {
	prop := event.GetProperty(p)
	if prop == nil {
		return ""
	}
	return textUnescaper.Replace(prop.Value)
}

// ParseEvents reads the events of an iCalendar document. Times are returned in loc.
// Events without a start or end are skipped.
func ParseEvents(r io.Reader, loc *time.Location) ([]Event, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing ICS data: %w", err)
	}

	var events []Event
	for _, event := range cal.Events() {
		if event == nil {
			continue
		}
		startProperty := event.GetProperty(ics.ComponentPropertyDtStart)
		endProperty := event.GetProperty(ics.ComponentPropertyDtEnd)
		if startProperty == nil || endProperty == nil {
			continue
		}
		start, err := time.Parse(icsTimeLayout, startProperty.Value)
		if err != nil {
			return nil, fmt.Errorf("error parsing event start time: %w", err)
		}
		end, err := time.Parse(icsTimeLayout, endProperty.Value)
		if err != nil {
			return nil, fmt.Errorf("error parsing event end time: %w", err)
		}

		events = append(events, Event{
			ID:          event.Id(),
			Summary:     propertyText(event, ics.ComponentPropertySummary),
			Location:    propertyText(event, ics.ComponentPropertyLocation),
			Description: propertyText(event, ics.ComponentPropertyDescription),
			Start:       start.In(loc),
			End:         end.In(loc),
		})
	}
	return events, nil
}
