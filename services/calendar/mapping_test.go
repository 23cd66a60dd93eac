package calendar

import (
	"testing"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"slotgrid/models"
)

func TestEventFromGoogle(t *testing.T) {
	item := &gcal.Event{
		Id:          "evt-1",
		Summary:     "Standup",
		HangoutLink: "https://meet.example/abc",
		Start:       &gcal.EventDateTime{DateTime: "2026-01-05T09:00:00Z"},
		End:         &gcal.EventDateTime{DateTime: "2026-01-05T09:30:00Z"},
		Organizer:   &gcal.EventOrganizer{Self: true},
		Attendees: []*gcal.EventAttendee{
			{Email: "ada@example.com", DisplayName: "Ada", ResponseStatus: "accepted"},
			{Email: "bob@example.com", ResponseStatus: "needsAction"},
		},
	}

	ev, ok := eventFromGoogle(item)
	if !ok {
		t.Fatal("well-formed event should convert")
	}
	if ev.ID != "evt-1" || ev.Summary != "Standup" {
		t.Errorf("unexpected identity fields: %+v", ev)
	}
	if !ev.OrganizerSelf {
		t.Error("organizer self flag should carry over")
	}
	want := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	if !ev.Start.Equal(want) {
		t.Errorf("start = %v, want %v", ev.Start, want)
	}
	if ev.End.Sub(ev.Start) != 30*time.Minute {
		t.Errorf("duration = %v, want 30m", ev.End.Sub(ev.Start))
	}
	if len(ev.Attendees) != 2 || ev.Attendees[1].ResponseStatus != "needsAction" {
		t.Errorf("attendees not mapped: %+v", ev.Attendees)
	}
	if ev.HangoutLink != "https://meet.example/abc" {
		t.Errorf("hangout link = %q", ev.HangoutLink)
	}
}

func TestEventFromGoogle_SkipsUnusable(t *testing.T) {
	cases := []struct {
		name string
		item *gcal.Event
	}{
		{"no start", &gcal.Event{End: &gcal.EventDateTime{DateTime: "2026-01-05T10:00:00Z"}}},
		{"all-day date only", &gcal.Event{
			Start: &gcal.EventDateTime{Date: "2026-01-05"},
			End:   &gcal.EventDateTime{Date: "2026-01-06"},
		}},
		{"garbage timestamp", &gcal.Event{
			Start: &gcal.EventDateTime{DateTime: "never"},
			End:   &gcal.EventDateTime{DateTime: "2026-01-05T10:00:00Z"},
		}},
		{"end before start", &gcal.Event{
			Start: &gcal.EventDateTime{DateTime: "2026-01-05T10:00:00Z"},
			End:   &gcal.EventDateTime{DateTime: "2026-01-05T09:00:00Z"},
		}},
	}
	for _, tc := range cases {
		if _, ok := eventFromGoogle(tc.item); ok {
			t.Errorf("%s: should not convert", tc.name)
		}
	}
}

func TestEventToGoogle(t *testing.T) {
	payload := models.EventPayload{
		Summary: "Design review",
		Start:   time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC),
		End:     time.Date(2026, 1, 5, 15, 0, 0, 0, time.UTC),
		Attendees: []models.Attendee{
			{Email: "ada@example.com", ResponseStatus: "accepted"},
		},
	}

	item := eventToGoogle(payload)
	if item.Summary != "Design review" {
		t.Errorf("summary = %q", item.Summary)
	}
	if item.Start.DateTime != "2026-01-05T14:00:00Z" {
		t.Errorf("start = %q", item.Start.DateTime)
	}
	if item.End.DateTime != "2026-01-05T15:00:00Z" {
		t.Errorf("end = %q", item.End.DateTime)
	}
	if len(item.Attendees) != 1 || item.Attendees[0].Email != "ada@example.com" {
		t.Errorf("attendees = %+v", item.Attendees)
	}
}

func TestRoundTripPreservesInterval(t *testing.T) {
	payload := models.EventPayload{
		Summary: "Sync",
		Start:   time.Date(2026, 1, 5, 22, 30, 0, 0, time.UTC),
		End:     time.Date(2026, 1, 6, 0, 30, 0, 0, time.UTC),
	}
	item := eventToGoogle(payload)
	item.Id = "evt-rt"

	ev, ok := eventFromGoogle(item)
	if !ok {
		t.Fatal("round-tripped event should convert")
	}
	if !ev.Start.Equal(payload.Start) || !ev.End.Equal(payload.End) {
		t.Errorf("interval changed: %v - %v", ev.Start, ev.End)
	}
}
