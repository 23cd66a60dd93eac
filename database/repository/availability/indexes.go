// FILE: database/repository/availability/indexes.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the availabilities collection.
func (r *mongoAvailabilityRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on the share id.
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Owner listing, ordered by display position.
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "displayOrder", Value: 1}},
			Options: options.Index().SetName("owner_order_idx"),
		},
		// Search by owner email / display name.
		{
			Keys:    bson.D{{Key: "ownerEmail", Value: 1}},
			Options: options.Index().SetName("owner_email_idx"),
		},
		{
			Keys:    bson.D{{Key: "ownerName", Value: 1}},
			Options: options.Index().SetName("owner_name_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}
