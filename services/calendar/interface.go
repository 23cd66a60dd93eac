package calendar

import (
	"context"

	"slotgrid/models"
)

// Provider is the remote calendar backend the grid syncs against.
// Implementations return plain models.Event values so the rest of the
// system never touches provider wire types.
type Provider interface {
	ListEvents(ctx context.Context, accountID string, window models.EventWindow) ([]models.Event, error)
	GetEvent(ctx context.Context, accountID, eventID string) (*models.Event, error)
	CreateEvent(ctx context.Context, accountID string, payload models.EventPayload) (*models.Event, error)
	UpdateEvent(ctx context.Context, accountID, eventID string, payload models.EventPayload) (*models.Event, error)
	DeleteEvent(ctx context.Context, accountID, eventID string) error
	RespondToInvitation(ctx context.Context, accountID, eventID string, accepted bool) (*models.Event, error)
}
