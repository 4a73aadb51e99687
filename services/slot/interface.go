// Package slot implements the instructor slot scheduling engine: single and
// recurring slot creation, edits, day-scoped deletion and stats, with a
// strict no-double-booking invariant per instructor.
package slot

import (
	"context"

	"tutorhub/clock"
	slotRepo "tutorhub/database/repository/slot"
	"tutorhub/models"
)

// SlotService defines the operations of the scheduling engine. All times
// cross this boundary as UTC instants; dates are IST calendar dates
// ("YYYY-MM-DD").
type SlotService interface {
	CreateSlot(ctx context.Context, instructorID string, req models.CreateSlotRequest) (*models.Slot, error)
	CreateRecurringSlots(ctx context.Context, instructorID string, req models.CreateRecurringSlotsRequest) ([]models.Slot, error)
	UpdateSlot(ctx context.Context, instructorID, slotID string, req models.UpdateSlotRequest) (*models.Slot, error)
	DeleteSlot(ctx context.Context, instructorID, slotID string) error
	ListSlots(ctx context.Context, instructorID, date string) ([]models.Slot, error)
	GetSlotStats(ctx context.Context, instructorID, mode string, opts models.StatsOptions) ([]models.DailySlotStats, error)
	DeleteUnbookedSlotsForDate(ctx context.Context, instructorID, date string) (int64, error)
}

// DefaultSlotService is the concrete implementation backed by a SlotRepository.
type DefaultSlotService struct {
	Repo  slotRepo.SlotRepository
	Clock clock.Clock

	locks instructorLocks
}
