// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tutorhub/models"
)

func (r *mongoSlotRepo) Insert(ctx context.Context, slot models.Slot) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	slot.CreatedAt = now
	slot.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *mongoSlotRepo) InsertMany(ctx context.Context, slots []models.Slot) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	docs := make([]interface{}, len(slots))
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.New().String()
		}
		slots[i].CreatedAt = now
		slots[i].UpdatedAt = now
		docs[i] = slots[i]
	}

	// Candidates are fully validated before this call; an ordered insert only
	// fails part-way on infrastructure errors.
	if _, err := r.coll.InsertMany(ctx, docs, &options.InsertManyOptions{Ordered: boolPtr(true)}); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *mongoSlotRepo) UpdateByID(ctx context.Context, slot models.Slot) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	slot.UpdatedAt = time.Now().UTC()

	filter := bson.M{"id": slot.ID, "instructorId": slot.InstructorID}
	update := bson.M{"$set": bson.M{
		"startTime": slot.StartTime,
		"endTime":   slot.EndTime,
		"price":     slot.Price,
		"updatedAt": slot.UpdatedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Slot
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

func (r *mongoSlotRepo) DeleteByID(ctx context.Context, instructorID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "instructorId": instructorID}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoSlotRepo) DeleteManyByIDs(ctx context.Context, instructorID string, slotIDs []string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if len(slotIDs) == 0 {
		return 0, nil
	}
	filter := bson.M{"instructorId": instructorID, "id": bson.M{"$in": slotIDs}}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoSlotRepo) DeleteExpiredUnbooked(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"isBooked": false, "endTime": bson.M{"$lt": before}}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func boolPtr(b bool) *bool { return &b }
