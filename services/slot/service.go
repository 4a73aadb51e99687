package slot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tutorhub/models"
	"tutorhub/timeutil"
	"tutorhub/utils"
)

// CreateSlot validates and persists one non-recurring slot.
func (s *DefaultSlotService) CreateSlot(ctx context.Context, instructorID string, req models.CreateSlotRequest) (*models.Slot, error) {
	lock := s.locks.get(instructorID)
	lock.Lock()
	defer lock.Unlock()

	now := s.Clock.Now()
	if err := validateInterval(req.StartTime, req.EndTime, now); err != nil {
		return nil, err
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	conflicts, err := s.Repo.FindOverlapping(ctx, instructorID, req.StartTime, req.EndTime, "")
	if err != nil {
		return nil, fmt.Errorf("overlap check failed: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, conflictf("slot overlaps an existing slot on %s", timeutil.FormatDate(conflicts[0].StartTime))
	}

	created, err := s.Repo.Insert(ctx, models.Slot{
		InstructorID: instructorID,
		StartTime:    req.StartTime.UTC(),
		EndTime:      req.EndTime.UTC(),
		Price:        req.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}

	utils.GetLogger().Info("slot created",
		zap.String("instructorId", instructorID),
		zap.String("slotId", created.ID),
		zap.Time("startTime", created.StartTime))
	return created, nil
}

// CreateRecurringSlots expands a recurrence rule into concrete slots and
// persists the whole batch, or nothing at all.
func (s *DefaultSlotService) CreateRecurringSlots(ctx context.Context, instructorID string, req models.CreateRecurringSlotsRequest) ([]models.Slot, error) {
	lock := s.locks.get(instructorID)
	lock.Lock()
	defer lock.Unlock()

	now := s.Clock.Now()
	if !req.EndTime.After(req.StartTime) {
		return nil, validationf("endTime must be after startTime")
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	ruleStart, err := timeutil.ParseDate(req.Rule.StartDate)
	if err != nil {
		return nil, validationf("invalid recurrence startDate: %v", err)
	}
	todayStart, _ := timeutil.DayBounds(now)
	ruleDayStart, _ := timeutil.DayBounds(ruleStart)
	if ruleDayStart.Before(todayStart) {
		return nil, validationf("recurrence startDate %s must be today or later", req.Rule.StartDate)
	}

	candidates, err := expandRecurrence(req.StartTime, req.EndTime, req.Rule, now)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, validationf("no valid future slots")
	}

	if day, overlaps := findBatchOverlap(candidates); overlaps {
		return nil, conflictf("recurring request overlaps itself on %s", day)
	}
	for _, c := range candidates {
		conflicts, err := s.Repo.FindOverlapping(ctx, instructorID, c.start, c.end, "")
		if err != nil {
			return nil, fmt.Errorf("overlap check failed: %w", err)
		}
		if len(conflicts) > 0 {
			return nil, conflictf("slot on %s overlaps an existing slot", timeutil.FormatDate(c.start))
		}
	}

	rule := req.Rule
	rule.DaysOfWeek = append([]int(nil), req.Rule.DaysOfWeek...)

	slots := make([]models.Slot, len(candidates))
	for i, c := range candidates {
		snapshot := rule
		slots[i] = models.Slot{
			InstructorID:   instructorID,
			StartTime:      c.start,
			EndTime:        c.end,
			Price:          req.Price,
			RecurrenceRule: &snapshot,
		}
	}

	created, err := s.Repo.InsertMany(ctx, slots)
	if err != nil {
		return nil, fmt.Errorf("failed to create recurring slots: %w", err)
	}

	utils.GetLogger().Info("recurring slots created",
		zap.String("instructorId", instructorID),
		zap.Int("count", len(created)),
		zap.String("startDate", rule.StartDate),
		zap.String("endDate", rule.EndDate))
	return created, nil
}

// UpdateSlot applies a partial edit to an owned slot and re-validates every
// invariant against the effective new values.
func (s *DefaultSlotService) UpdateSlot(ctx context.Context, instructorID, slotID string, req models.UpdateSlotRequest) (*models.Slot, error) {
	lock := s.locks.get(instructorID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.Repo.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	if err := authorize(instructorID, existing); err != nil {
		return nil, err
	}

	effective := *existing
	if req.StartTime != nil {
		effective.StartTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		effective.EndTime = req.EndTime.UTC()
	}
	if req.Price != nil {
		effective.Price = *req.Price
	}

	now := s.Clock.Now()
	if err := validateInterval(effective.StartTime, effective.EndTime, now); err != nil {
		return nil, err
	}
	if err := validatePrice(effective.Price); err != nil {
		return nil, err
	}

	conflicts, err := s.Repo.FindOverlapping(ctx, instructorID, effective.StartTime, effective.EndTime, slotID)
	if err != nil {
		return nil, fmt.Errorf("overlap check failed: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, conflictf("slot overlaps an existing slot on %s", timeutil.FormatDate(conflicts[0].StartTime))
	}

	if existing.IsBooked {
		utils.GetLogger().Warn("editing a booked slot",
			zap.String("instructorId", instructorID),
			zap.String("slotId", slotID))
	}

	updated, err := s.Repo.UpdateByID(ctx, effective)
	if err != nil {
		return nil, fmt.Errorf("failed to update slot: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("slot update returned no document for %s", slotID)
	}
	return updated, nil
}

// DeleteSlot removes one owned slot.
func (s *DefaultSlotService) DeleteSlot(ctx context.Context, instructorID, slotID string) error {
	lock := s.locks.get(instructorID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.Repo.FindByID(ctx, slotID)
	if err != nil {
		return fmt.Errorf("failed to load slot: %w", err)
	}
	if err := authorize(instructorID, existing); err != nil {
		return err
	}

	if existing.IsBooked {
		utils.GetLogger().Warn("deleting a booked slot",
			zap.String("instructorId", instructorID),
			zap.String("slotId", slotID))
	}
	if err := s.Repo.DeleteByID(ctx, instructorID, slotID); err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}

// ListSlots returns the instructor's slots ordered by start time, optionally
// restricted to one IST calendar day.
func (s *DefaultSlotService) ListSlots(ctx context.Context, instructorID, date string) ([]models.Slot, error) {
	var window *models.TimeRange
	if date != "" {
		from, to, err := timeutil.DayBoundsForDate(date)
		if err != nil {
			return nil, validationf("invalid date: %v", err)
		}
		window = &models.TimeRange{From: from, To: to}
	}

	slots, err := s.Repo.FindByInstructor(ctx, instructorID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

// DeleteUnbookedSlotsForDate bulk-deletes the unbooked subset of the
// instructor's slots on one IST day. The day must contain slots, and all of
// them must belong to the caller.
func (s *DefaultSlotService) DeleteUnbookedSlotsForDate(ctx context.Context, instructorID, date string) (int64, error) {
	lock := s.locks.get(instructorID)
	lock.Lock()
	defer lock.Unlock()

	from, to, err := timeutil.DayBoundsForDate(date)
	if err != nil {
		return 0, validationf("invalid date: %v", err)
	}

	slots, err := s.Repo.FindInRange(ctx, models.TimeRange{From: from, To: to})
	if err != nil {
		return 0, fmt.Errorf("failed to load slots for %s: %w", date, err)
	}
	if len(slots) == 0 {
		return 0, ErrSlotNotFound
	}
	for i := range slots {
		if slots[i].InstructorID != instructorID {
			return 0, ErrNotSlotOwner
		}
	}

	var unbooked []string
	for i := range slots {
		if !slots[i].IsBooked {
			unbooked = append(unbooked, slots[i].ID)
		}
	}

	deleted, err := s.Repo.DeleteManyByIDs(ctx, instructorID, unbooked)
	if err != nil {
		return 0, fmt.Errorf("failed to delete slots for %s: %w", date, err)
	}

	utils.GetLogger().Info("unbooked slots deleted for day",
		zap.String("instructorId", instructorID),
		zap.String("date", date),
		zap.Int64("deleted", deleted))
	return deleted, nil
}

// authorize is the single ownership gate applied before any slot mutation.
func authorize(instructorID string, slot *models.Slot) error {
	if slot == nil {
		return ErrSlotNotFound
	}
	if slot.InstructorID != instructorID {
		return ErrNotSlotOwner
	}
	return nil
}

func validateInterval(start, end, now time.Time) error {
	if !end.After(start) {
		return validationf("endTime must be after startTime")
	}
	if !start.After(now) {
		return validationf("startTime must be in the future")
	}
	return nil
}

func validatePrice(price float64) error {
	if price < 0 {
		return validationf("price must be non-negative")
	}
	return nil
}
