// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"time"

	"tutorhub/config"
	"tutorhub/database"
	"tutorhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type SlotRepository interface {
	Insert(ctx context.Context, slot models.Slot) (*models.Slot, error)
	InsertMany(ctx context.Context, slots []models.Slot) ([]models.Slot, error)
	UpdateByID(ctx context.Context, slot models.Slot) (*models.Slot, error)
	DeleteByID(ctx context.Context, instructorID, slotID string) error
	DeleteManyByIDs(ctx context.Context, instructorID string, slotIDs []string) (int64, error)
	FindByID(ctx context.Context, slotID string) (*models.Slot, error)
	FindByInstructor(ctx context.Context, instructorID string, window *models.TimeRange) ([]models.Slot, error)
	FindInRange(ctx context.Context, window models.TimeRange) ([]models.Slot, error)
	FindOverlapping(ctx context.Context, instructorID string, start, end time.Time, excludeID string) ([]models.Slot, error)
	DailyStats(ctx context.Context, instructorID string, from, to time.Time) ([]models.DailySlotStats, error)
	DeleteExpiredUnbooked(ctx context.Context, before time.Time) (int64, error)
	EnsureIndexes() error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoSlotRepo{
		coll: db.Collection("slots"),
	}
}
