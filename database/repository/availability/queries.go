// File: database/repository/availability/queries.go
package availabilityRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotgrid/models"
)

func (r *mongoAvailabilityRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Availability, error) {
	return r.findSorted(ctx, bson.M{"ownerId": ownerID})
}

func (r *mongoAvailabilityRepo) FindByOwnerEmail(ctx context.Context, email string) ([]models.Availability, error) {
	return r.findSorted(ctx, bson.M{"ownerEmail": email})
}

func (r *mongoAvailabilityRepo) FindByOwnerName(ctx context.Context, name string) ([]models.Availability, error) {
	return r.findSorted(ctx, bson.M{"ownerName": name})
}

func (r *mongoAvailabilityRepo) findSorted(ctx context.Context, filter bson.M) ([]models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "displayOrder", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Availability
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
