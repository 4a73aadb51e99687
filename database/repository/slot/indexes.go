// FILE: database/repository/slot/indexes.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the slots collection.
func (r *mongoSlotRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on Slot ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index for instructorId and startTime (primary query pattern)
		{
			Keys:    bson.D{{Key: "instructorId", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("instructor_start_idx"),
		},
		// Compound index serving the overlap query (startTime < end AND endTime > start)
		{
			Keys:    bson.D{{Key: "instructorId", Value: 1}, {Key: "startTime", Value: 1}, {Key: "endTime", Value: 1}},
			Options: options.Index().SetName("instructor_start_end_idx"),
		},
		// Compound index for the expired-unbooked cleanup sweep
		{
			Keys:    bson.D{{Key: "isBooked", Value: 1}, {Key: "endTime", Value: 1}},
			Options: options.Index().SetName("booked_end_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}
