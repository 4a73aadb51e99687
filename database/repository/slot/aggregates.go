// File: database/repository/slot/aggregates.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"tutorhub/models"
)

// DailyStats groups the instructor's slots inside [from, to) by their IST
// calendar day. Bucketing happens server-side: $dateToString with the fixed
// +05:30 offset keys each slot by the wall-clock day instructors see.
func (r *mongoSlotRepo) DailyStats(ctx context.Context, instructorID string, from, to time.Time) ([]models.DailySlotStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"instructorId": instructorID,
			"startTime":    bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$startTime",
				"timezone": "+05:30",
			}},
			"totalSlots": bson.M{"$sum": 1},
			"bookedSlots": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$isBooked", 1, 0},
			}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate slot stats: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []models.DailySlotStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("error decoding slot stats: %w", err)
	}
	return stats, nil
}
