package models

import "time"

// Attendee is one invitee on a calendar event.
type Attendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty"` // "accepted", "declined", "tentative", "needsAction"
}

// Event is the plain calendar event record exchanged with the provider.
type Event struct {
	ID            string     `json:"id"`
	Summary       string     `json:"summary"`
	Start         time.Time  `json:"start"`
	End           time.Time  `json:"end"`
	Attendees     []Attendee `json:"attendees,omitempty"`
	OrganizerSelf bool       `json:"organizerSelf"`
	HangoutLink   string     `json:"hangoutLink,omitempty"`
}

// EventWindow bounds a provider fetch to [Start, End).
type EventWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// EventPayload is the typed create/update shape sent to the provider.
type EventPayload struct {
	Summary   string     `json:"summary"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Attendees []Attendee `json:"attendees,omitempty"`
}

// InvitationStatus summarizes attendee responses for one event.
type InvitationStatus string

const (
	InvitationAccepted InvitationStatus = "accepted"
	InvitationPending  InvitationStatus = "pending"
	InvitationDeclined InvitationStatus = "declined"
	InvitationMixed    InvitationStatus = "mixed"
)

// AvailabilityEvent is one event materialized onto the day grid.
// StartMinutes and DurationMinutes are relative to the day column's window
// start (the earliest slot start of that day), not to midnight. Instances
// are rebuilt from provider data on every render pass and never mutated in
// place.
type AvailabilityEvent struct {
	ID               string           `json:"id"`
	DayIndex         int              `json:"dayIndex"`
	StartMinutes     int              `json:"startMinutes"`
	DurationMinutes  int              `json:"durationMinutes"`
	Title            string           `json:"title"`
	IsFromCalendar   bool             `json:"isFromCalendar"`
	InvitationStatus InvitationStatus `json:"invitationStatus,omitempty"`
	MeetLink         string           `json:"meetLink,omitempty"`
}
