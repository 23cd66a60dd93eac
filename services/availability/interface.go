package availability

import (
	"context"

	"github.com/go-redis/redis/v8"

	availabilityRepo "slotgrid/database/repository/availability"
	"slotgrid/models"
)

// AvailabilityService manages named weekly availability sets.
type AvailabilityService interface {
	Create(ctx context.Context, ownerID string, req models.CreateAvailabilityRequest) (*models.Availability, error)
	GetByID(ctx context.Context, id string) (*models.Availability, error)
	Update(ctx context.Context, ownerID, id string, req models.UpdateAvailabilityRequest) (*models.Availability, error)
	Delete(ctx context.Context, ownerID, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Availability, error)
	RegenerateID(ctx context.Context, ownerID, oldID string) (string, error)
	UpdateBusyTimes(ctx context.Context, ownerID, id string, busy []models.BusyBlock) error
	SetFavorite(ctx context.Context, ownerID, id string) error
	SearchByEmail(ctx context.Context, email string) ([]models.Availability, error)
	SearchByUsername(ctx context.Context, username string) ([]models.Availability, error)
	SearchByEmails(ctx context.Context, emails []string) ([][]models.Availability, error)
	SearchByUsernames(ctx context.Context, usernames []string) ([][]models.Availability, error)
}

// DefaultAvailabilityService is a concrete implementation backed by the
// Mongo repository with a Redis read-through cache on lookups by id.
type DefaultAvailabilityService struct {
	Repo  availabilityRepo.AvailabilityRepository
	Cache *redis.Client
}
