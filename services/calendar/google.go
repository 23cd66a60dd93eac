// File: services/calendar/google.go
package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"slotgrid/models"
)

// googleProvider talks to the Google Calendar API. The accountID passed to
// each method is the calendar id ("primary" for the user's own calendar).
type googleProvider struct {
	svc *gcal.Service
}

// NewGoogleProvider builds a Provider on top of an OAuth2 token source.
func NewGoogleProvider(ctx context.Context, ts oauth2.TokenSource) (Provider, error) {
	svc, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize calendar client: %w", err)
	}
	return &googleProvider{svc: svc}, nil
}

func (g *googleProvider) ListEvents(ctx context.Context, accountID string, window models.EventWindow) ([]models.Event, error) {
	call := g.svc.Events.List(accountID).
		TimeMin(window.Start.Format(time.RFC3339)).
		TimeMax(window.End.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]models.Event, 0, len(res.Items))
	for _, item := range res.Items {
		ev, ok := eventFromGoogle(item)
		if !ok {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (g *googleProvider) GetEvent(ctx context.Context, accountID, eventID string) (*models.Event, error) {
	item, err := g.svc.Events.Get(accountID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}
	ev, ok := eventFromGoogle(item)
	if !ok {
		return nil, fmt.Errorf("event %s has no usable timestamps", eventID)
	}
	return &ev, nil
}

func (g *googleProvider) CreateEvent(ctx context.Context, accountID string, payload models.EventPayload) (*models.Event, error) {
	item, err := g.svc.Events.Insert(accountID, eventToGoogle(payload)).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	ev, ok := eventFromGoogle(item)
	if !ok {
		return nil, fmt.Errorf("created event %s came back without timestamps", item.Id)
	}
	return &ev, nil
}

func (g *googleProvider) UpdateEvent(ctx context.Context, accountID, eventID string, payload models.EventPayload) (*models.Event, error) {
	item, err := g.svc.Events.Patch(accountID, eventID, eventToGoogle(payload)).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", eventID, err)
	}
	ev, ok := eventFromGoogle(item)
	if !ok {
		return nil, fmt.Errorf("updated event %s came back without timestamps", eventID)
	}
	return &ev, nil
}

func (g *googleProvider) DeleteEvent(ctx context.Context, accountID, eventID string) error {
	err := g.svc.Events.Delete(accountID, eventID).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	return nil
}

// RespondToInvitation updates only the caller's own attendee entry and
// patches the attendee list back, leaving everything else untouched.
func (g *googleProvider) RespondToInvitation(ctx context.Context, accountID, eventID string, accepted bool) (*models.Event, error) {
	item, err := g.svc.Events.Get(accountID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}

	status := "declined"
	if accepted {
		status = "accepted"
	}
	var self bool
	for _, att := range item.Attendees {
		if att.Self {
			att.ResponseStatus = status
			self = true
		}
	}
	if !self {
		return nil, fmt.Errorf("caller is not an attendee of event %s", eventID)
	}

	patched, err := g.svc.Events.Patch(accountID, eventID, &gcal.Event{Attendees: item.Attendees}).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to respond to event %s: %w", eventID, err)
	}
	ev, ok := eventFromGoogle(patched)
	if !ok {
		return nil, fmt.Errorf("patched event %s came back without timestamps", eventID)
	}
	return &ev, nil
}
