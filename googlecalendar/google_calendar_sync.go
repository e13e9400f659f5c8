package googlecalendar

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"

	"timetable2json/calendar"
)

// EventUpdate replaces the Google event with the given ID.
type EventUpdate struct {
	ID    string
	Event *gcal.Event
}

// Plan lists the changes that bring a Google Calendar in line with a set of events.
// Inserts and updates follow the order of the desired events.
type Plan struct {
	Insert []*gcal.Event
	Update []EventUpdate
	Delete []*gcal.Event
}

// ToGoogleEvent converts an occurrence to the Calendar API representation.
func ToGoogleEvent(ev calendar.Event, timezone string) *gcal.Event {
	return &gcal.Event{
		Summary:     ev.Summary,
		Location:    ev.Location,
		Description: ev.Description,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: timezone,
		},
	}
}

// existingID derives the content ID of an event already in Google Calendar.
func existingID(event *gcal.Event, loc *time.Location) (string, bool) {
	if event == nil || event.Status == "cancelled" || event.Start == nil || event.End == nil {
		return "", false
	}
	start, err := time.Parse(time.RFC3339, event.Start.DateTime)
	if err != nil {
		return "", false
	}
	end, err := time.Parse(time.RFC3339, event.End.DateTime)
	if err != nil {
		return "", false
	}
	return calendar.EventID(event.Summary, start.In(loc), end.In(loc)), true
}

// PlanSync matches existing and desired events by content ID. Matching events
// whose location or description changed are updated; unmatched existing events
// are deleted and unmatched desired events inserted.
func PlanSync(existing []*gcal.Event, desired []calendar.Event, loc *time.Location) Plan {
	var plan Plan

	existingByID := make(map[string]*gcal.Event)
	for _, event := range existing {
		if id, ok := existingID(event, loc); ok {
			if _, dup := existingByID[id]; dup {
				plan.Delete = append(plan.Delete, event)
				continue
			}
			existingByID[id] = event
		}
	}

	wanted := make(map[string]bool)
	for _, ev := range desired {
		if wanted[ev.ID] {
			continue
		}
		wanted[ev.ID] = true

		gEvent := ToGoogleEvent(ev, loc.String())
		current, found := existingByID[ev.ID]
		switch {
		case !found:
			plan.Insert = append(plan.Insert, gEvent)
		case current.Location != gEvent.Location || current.Description != gEvent.Description:
			plan.Update = append(plan.Update, EventUpdate{ID: current.Id, Event: gEvent})
		}
	}

	for _, event := range existing {
		if id, ok := existingID(event, loc); ok && !wanted[id] && existingByID[id] == event {
			plan.Delete = append(plan.Delete, event)
		}
	}
	return plan
}

// Sync makes calendarID hold exactly the given events.
func Sync(ctx context.Context, service *gcal.Service, calendarID string, events []calendar.Event, loc *time.Location, log *zap.Logger) error {
	existing, err := GetAllEvents(ctx, service, calendarID)
	if err != nil {
		return err
	}
	log.Debug("fetched existing events", zap.Int("count", len(existing)))

	plan := PlanSync(existing, events, loc)

	for _, event := range plan.Delete {
		log.Debug("deleting event", zap.String("summary", event.Summary), zap.String("id", event.Id))
		if err := deleteEvent(ctx, service, calendarID, event.Id); err != nil {
			return fmt.Errorf("error deleting event from Google Calendar: %w", err)
		}
	}
	for _, update := range plan.Update {
		log.Debug("updating event", zap.String("summary", update.Event.Summary), zap.String("id", update.ID))
		if _, err := service.Events.Update(calendarID, update.ID, update.Event).Context(ctx).Do(); err != nil {
			return fmt.Errorf("error updating event in Google Calendar: %w", err)
		}
	}
	for _, event := range plan.Insert {
		log.Debug("inserting event", zap.String("summary", event.Summary))
		if _, err := service.Events.Insert(calendarID, event).Context(ctx).Do(); err != nil {
			return fmt.Errorf("error inserting event into Google Calendar: %w", err)
		}
	}

	log.Info("google calendar synced",
		zap.Int("inserted", len(plan.Insert)),
		zap.Int("updated", len(plan.Update)),
		zap.Int("deleted", len(plan.Delete)))
	return nil
}
