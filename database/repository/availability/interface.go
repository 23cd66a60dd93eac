// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"slotgrid/database"
	"slotgrid/models"
	"slotgrid/utils"
)

// AvailabilityRepository stores named weekly availability sets keyed by
// their share id.
type AvailabilityRepository interface {
	Insert(ctx context.Context, a *models.Availability) error
	GetByID(ctx context.Context, id string) (*models.Availability, error)
	Update(ctx context.Context, a *models.Availability) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Availability, error)
	FindByOwnerEmail(ctx context.Context, email string) ([]models.Availability, error)
	FindByOwnerName(ctx context.Context, name string) ([]models.Availability, error)
	Replace(ctx context.Context, oldID string, a *models.Availability) error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database("slotgrid")
	repo := &mongoAvailabilityRepo{
		coll: db.Collection("availabilities"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("availability index setup failed", zap.Error(err))
	}
	return repo
}
