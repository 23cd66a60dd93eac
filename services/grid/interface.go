package grid

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"slotgrid/models"
	"slotgrid/services/calendar"
	"slotgrid/services/schedule"
)

// GridService is the write path between committed grid gestures and the
// calendar provider. Mutations schedule a delayed re-poll of the affected
// window instead of refetching inline, so callers render from the returned
// event immediately and the cache catches up in the background.
type GridService interface {
	ListEvents(ctx context.Context, accountID string, window models.EventWindow) ([]models.Event, error)
	CommitCreate(ctx context.Context, accountID string, payload schedule.CreatePayload, window models.EventWindow) (*models.Event, error)
	CommitUpdate(ctx context.Context, accountID string, payload schedule.UpdatePayload, window models.EventWindow) (*models.Event, error)
	DeleteEvent(ctx context.Context, accountID, eventID string, window models.EventWindow) error
	Respond(ctx context.Context, accountID, eventID string, accepted bool, window models.EventWindow) (*models.Event, error)
}

// DefaultGridService backs the grid with a calendar provider, a Redis
// snapshot cache, and an asynq queue for refresh polls. Cache and Queue may
// be nil; the service then skips caching and background refreshes.
type DefaultGridService struct {
	Provider calendar.Provider
	Cache    *redis.Client
	Queue    *asynq.Client
}
