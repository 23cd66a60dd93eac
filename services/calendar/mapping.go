package calendar

import (
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"slotgrid/models"
)

// eventFromGoogle converts a wire event into the plain model. It reports
// false when the event has no parseable start or end, which covers both
// malformed timestamps and all-day events that only carry a date.
func eventFromGoogle(item *gcal.Event) (models.Event, bool) {
	start, ok := parseEventTime(item.Start)
	if !ok {
		return models.Event{}, false
	}
	end, ok := parseEventTime(item.End)
	if !ok || !end.After(start) {
		return models.Event{}, false
	}

	ev := models.Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Start:       start,
		End:         end,
		HangoutLink: item.HangoutLink,
	}
	if item.Organizer != nil {
		ev.OrganizerSelf = item.Organizer.Self
	}
	for _, att := range item.Attendees {
		ev.Attendees = append(ev.Attendees, models.Attendee{
			Email:          att.Email,
			DisplayName:    att.DisplayName,
			ResponseStatus: att.ResponseStatus,
		})
	}
	return ev, true
}

// eventToGoogle builds the wire shape for create and update calls.
func eventToGoogle(payload models.EventPayload) *gcal.Event {
	item := &gcal.Event{
		Summary: payload.Summary,
		Start:   &gcal.EventDateTime{DateTime: payload.Start.Format(time.RFC3339)},
		End:     &gcal.EventDateTime{DateTime: payload.End.Format(time.RFC3339)},
	}
	for _, att := range payload.Attendees {
		item.Attendees = append(item.Attendees, &gcal.EventAttendee{
			Email:          att.Email,
			DisplayName:    att.DisplayName,
			ResponseStatus: att.ResponseStatus,
		})
	}
	return item
}

func parseEventTime(edt *gcal.EventDateTime) (time.Time, bool) {
	if edt == nil || edt.DateTime == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, edt.DateTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
