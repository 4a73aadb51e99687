package slot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"tutorhub/clock"
	"tutorhub/models"
	"tutorhub/timeutil"
)

// fakeSlotRepo is an in-memory SlotRepository for service tests.
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]models.Slot
	seq   int
}

func newFakeSlotRepo(seed ...models.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[string]models.Slot)}
	for _, s := range seed {
		if s.ID == "" {
			r.seq++
			s.ID = fmt.Sprintf("seed-%d", r.seq)
		}
		r.slots[s.ID] = s
	}
	return r
}

func (r *fakeSlotRepo) Insert(_ context.Context, slot models.Slot) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slot.ID == "" {
		r.seq++
		slot.ID = fmt.Sprintf("slot-%d", r.seq)
	}
	r.slots[slot.ID] = slot
	return &slot, nil
}

func (r *fakeSlotRepo) InsertMany(_ context.Context, slots []models.Slot) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range slots {
		if slots[i].ID == "" {
			r.seq++
			slots[i].ID = fmt.Sprintf("slot-%d", r.seq)
		}
		r.slots[slots[i].ID] = slots[i]
	}
	return slots, nil
}

func (r *fakeSlotRepo) UpdateByID(_ context.Context, slot models.Slot) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.slots[slot.ID]
	if !ok || existing.InstructorID != slot.InstructorID {
		return nil, nil
	}
	existing.StartTime = slot.StartTime
	existing.EndTime = slot.EndTime
	existing.Price = slot.Price
	r.slots[slot.ID] = existing
	return &existing, nil
}

func (r *fakeSlotRepo) DeleteByID(_ context.Context, instructorID, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok || s.InstructorID != instructorID {
		return fmt.Errorf("no document matched %s", slotID)
	}
	delete(r.slots, slotID)
	return nil
}

func (r *fakeSlotRepo) DeleteManyByIDs(_ context.Context, instructorID string, slotIDs []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for _, id := range slotIDs {
		if s, ok := r.slots[id]; ok && s.InstructorID == instructorID {
			delete(r.slots, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeSlotRepo) FindByID(_ context.Context, slotID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[slotID]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *fakeSlotRepo) FindByInstructor(_ context.Context, instructorID string, window *models.TimeRange) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if s.InstructorID != instructorID {
			continue
		}
		if window != nil && (s.StartTime.Before(window.From) || s.StartTime.After(window.To)) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeSlotRepo) FindInRange(_ context.Context, window models.TimeRange) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if s.StartTime.Before(window.From) || s.StartTime.After(window.To) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeSlotRepo) FindOverlapping(_ context.Context, instructorID string, start, end time.Time, excludeID string) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if s.InstructorID != instructorID || s.ID == excludeID {
			continue
		}
		if s.StartTime.Before(end) && start.Before(s.EndTime) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeSlotRepo) DailyStats(_ context.Context, instructorID string, from, to time.Time) ([]models.DailySlotStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	buckets := make(map[string]*models.DailySlotStats)
	for _, s := range r.slots {
		if s.InstructorID != instructorID {
			continue
		}
		if s.StartTime.Before(from) || !s.StartTime.Before(to) {
			continue
		}
		day := timeutil.FormatDate(s.StartTime)
		b, ok := buckets[day]
		if !ok {
			b = &models.DailySlotStats{Date: day}
			buckets[day] = b
		}
		b.TotalSlots++
		if s.IsBooked {
			b.BookedSlots++
		}
	}
	var out []models.DailySlotStats
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *fakeSlotRepo) DeleteExpiredUnbooked(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, s := range r.slots {
		if !s.IsBooked && s.EndTime.Before(before) {
			delete(r.slots, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeSlotRepo) EnsureIndexes() error { return nil }

func (r *fakeSlotRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// Fixed "now" for most tests: 2025-11-01 00:00 UTC (05:30 IST).
var testNow = time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)

func makeService(now time.Time, seed ...models.Slot) (*DefaultSlotService, *fakeSlotRepo) {
	repo := newFakeSlotRepo(seed...)
	svc := &DefaultSlotService{Repo: repo, Clock: clock.NewFixed(now)}
	return svc, repo
}

func utcAt(day string, hour, min int) time.Time {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.UTC)
}

func isValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

func isConflict(err error) bool {
	var cErr *ConflictError
	return errors.As(err, &cErr)
}

func TestCreateSlot(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		svc, _ := makeService(testNow)

		req := models.CreateSlotRequest{
			StartTime: utcAt("2025-11-03", 3, 30),
			EndTime:   utcAt("2025-11-03", 4, 0),
			Price:     500,
		}
		created, err := svc.CreateSlot(context.Background(), "inst-a", req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Fatal("expected slot ID to be set")
		}
		if created.IsBooked {
			t.Fatal("new slots must be unbooked")
		}

		listed, err := svc.ListSlots(context.Background(), "inst-a", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(listed) != 1 {
			t.Fatalf("expected 1 slot, got %d", len(listed))
		}
		if !listed[0].StartTime.Equal(req.StartTime) || !listed[0].EndTime.Equal(req.EndTime) || listed[0].Price != req.Price {
			t.Fatalf("stored slot does not match request: %+v", listed[0])
		}
	})

	t.Run("rejects end before start", func(t *testing.T) {
		svc, repo := makeService(testNow)
		_, err := svc.CreateSlot(context.Background(), "inst-a", models.CreateSlotRequest{
			StartTime: utcAt("2025-11-03", 4, 0),
			EndTime:   utcAt("2025-11-03", 3, 30),
			Price:     100,
		})
		if !isValidation(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if repo.count() != 0 {
			t.Fatal("nothing must be persisted on validation failure")
		}
	})

	t.Run("rejects zero-length interval", func(t *testing.T) {
		svc, _ := makeService(testNow)
		start := utcAt("2025-11-03", 4, 0)
		_, err := svc.CreateSlot(context.Background(), "inst-a", models.CreateSlotRequest{
			StartTime: start, EndTime: start, Price: 100,
		})
		if !isValidation(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("rejects past start", func(t *testing.T) {
		svc, _ := makeService(testNow)
		_, err := svc.CreateSlot(context.Background(), "inst-a", models.CreateSlotRequest{
			StartTime: utcAt("2025-10-31", 9, 0),
			EndTime:   utcAt("2025-10-31", 10, 0),
			Price:     100,
		})
		if !isValidation(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("rejects start equal to now", func(t *testing.T) {
		svc, _ := makeService(testNow)
		_, err := svc.CreateSlot(context.Background(), "inst-a", models.CreateSlotRequest{
			StartTime: testNow,
			EndTime:   testNow.Add(30 * time.Minute),
			Price:     100,
		})
		if !isValidation(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("rejects negative price", func(t *testing.T) {
		svc, _ := makeService(testNow)
		_, err := svc.CreateSlot(context.Background(), "inst-a", models.CreateSlotRequest{
			StartTime: utcAt("2025-11-03", 3, 30),
			EndTime:   utcAt("2025-11-03", 4, 0),
			Price:     -1,
		})
		if !isValidation(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("rejects overlap with existing slot", func(t *testing.T) {
		svc, repo := makeService(testNow, models.Slot{
			ID:           "existing",
			InstructorID: "inst-a",
			StartTime:    utcAt("2025-11-03", 3, 30),
			EndTime:      utcAt("2025-11-03", 4, 30),
			Price:        100,
		})
		_, err := svc.CreateSlot(context.Background(), "inst-a", models.CreateSlotRequest{
			StartTime: utcAt("2025-11-03", 4, 0),
			EndTime:   utcAt("2025-11-03", 5, 0),
			Price:     100,
		})
		if !isConflict(err) {
			t.Fatalf("expected ConflictError, got %v", err)
		}
		if repo.count() != 1 {
			t.Fatal("conflicting slot must not be persisted")
		}
	})

	t.Run("allows same interval for another instructor", func(t *testing.T) {
		svc, _ := makeService(testNow, models.Slot{
			ID:           "existing",
			InstructorID: "inst-a",
			StartTime:    utcAt("2025-11-03", 3, 30),
			EndTime:      utcAt("2025-11-03", 4, 30),
			Price:        100,
		})
		if _, err := svc.CreateSlot(context.Background(), "inst-b", models.CreateSlotRequest{
			StartTime: utcAt("2025-11-03", 3, 30),
			EndTime:   utcAt("2025-11-03", 4, 30),
			Price:     100,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("concurrent overlapping creates produce one slot", func(t *testing.T) {
		svc, repo := makeService(testNow)

		req := models.CreateSlotRequest{
			StartTime: utcAt("2025-11-03", 3, 30),
			EndTime:   utcAt("2025-11-03", 4, 0),
			Price:     100,
		}

		errs := make(chan error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.CreateSlot(context.Background(), "inst-a", req)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		var conflicts, successes int
		for err := range errs {
			switch {
			case err == nil:
				successes++
			case isConflict(err):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if successes != 1 || conflicts != 1 {
			t.Fatalf("expected exactly one success and one conflict, got %d/%d", successes, conflicts)
		}
		if repo.count() != 1 {
			t.Fatalf("overlap invariant violated: %d slots persisted", repo.count())
		}
	})
}

func TestCreateRecurringSlots(t *testing.T) {
	template := models.CreateRecurringSlotsRequest{
		StartTime: utcAt("2025-11-03", 3, 30), // 09:00 IST
		EndTime:   utcAt("2025-11-03", 4, 0),  // 09:30 IST
		Price:     750,
		Rule: models.RecurrenceRule{
			DaysOfWeek: []int{1, 3, 5},
			StartDate:  "2025-11-03",
			EndDate:    "2025-11-14",
		},
	}

	t.Run("mon wed fri scenario creates six slots", func(t *testing.T) {
		svc, repo := makeService(testNow)

		created, err := svc.CreateRecurringSlots(context.Background(), "inst-a", template)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(created) != 6 {
			t.Fatalf("expected 6 slots, got %d", len(created))
		}
		if repo.count() != 6 {
			t.Fatalf("expected 6 persisted slots, got %d", repo.count())
		}
		for _, s := range created {
			if s.RecurrenceRule == nil {
				t.Fatal("expected recurrence rule snapshot on each generated slot")
			}
			if s.RecurrenceRule.StartDate != "2025-11-03" || s.RecurrenceRule.EndDate != "2025-11-14" {
				t.Fatalf("bad rule snapshot: %+v", s.RecurrenceRule)
			}
			local := timeutil.ToIST(s.StartTime)
			if local.Hour() != 9 || local.Minute() != 0 {
				t.Fatalf("expected 09:00 IST start, got %02d:%02d", local.Hour(), local.Minute())
			}
		}
	})

	t.Run("conflict on any day persists nothing", func(t *testing.T) {
		// Existing slot collides with the Wednesday Nov 12 instance.
		svc, repo := makeService(testNow, models.Slot{
			ID:           "existing",
			InstructorID: "inst-a",
			StartTime:    utcAt("2025-11-12", 3, 45),
			EndTime:      utcAt("2025-11-12", 4, 15),
			Price:        100,
		})

		_, err := svc.CreateRecurringSlots(context.Background(), "inst-a", template)
		if !isConflict(err) {
			t.Fatalf("expected ConflictError, got %v", err)
		}
		if repo.count() != 1 {
			t.Fatalf("batch must be all-or-nothing, got %d slots", repo.count())
		}
	})

	t.Run("self-overlapping batch is rejected before the store", func(t *testing.T) {
		svc, repo := makeService(testNow)

		req := template
		// 26-hour template duration: Monday's instance runs into Tuesday's.
		req.EndTime = req.StartTime.Add(26 * time.Hour)
		req.Rule = models.RecurrenceRule{
			DaysOfWeek: []int{1, 2},
			StartDate:  "2025-11-03",
			EndDate:    "2025-11-04",
		}

		_, err := svc.CreateRecurringSlots(context.Background(), "inst-a", req)
		if !isConflict(err) {
			t.Fatalf("expected ConflictError, got %v", err)
		}
		if repo.count() != 0 {
			t.Fatal("nothing must be persisted")
		}
	})

	t.Run("rejects startDate in the past", func(t *testing.T) {
		svc, _ := makeService(testNow)
		req := template
		req.Rule.StartDate = "2025-10-27"
		_, err := svc.CreateRecurringSlots(context.Background(), "inst-a", req)
		if !isValidation(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("empty expansion is an error not an empty success", func(t *testing.T) {
		// Saturday 2025-11-01 at 17:30 IST; the day's only 09:00 instance is past.
		now := time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC)
		svc, repo := makeService(now)

		req := template
		req.Rule = models.RecurrenceRule{
			DaysOfWeek: []int{6},
			StartDate:  "2025-11-01",
			EndDate:    "2025-11-01",
		}

		_, err := svc.CreateRecurringSlots(context.Background(), "inst-a", req)
		if !isValidation(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if repo.count() != 0 {
			t.Fatal("nothing must be persisted")
		}
	})
}

func TestUpdateSlot(t *testing.T) {
	seed := func() []models.Slot {
		return []models.Slot{
			{
				ID:           "slot-a1",
				InstructorID: "inst-a",
				StartTime:    utcAt("2025-11-03", 3, 30),
				EndTime:      utcAt("2025-11-03", 4, 0),
				Price:        500,
			},
			{
				ID:           "slot-a2",
				InstructorID: "inst-a",
				StartTime:    utcAt("2025-11-03", 5, 0),
				EndTime:      utcAt("2025-11-03", 5, 30),
				Price:        500,
			},
		}
	}

	t.Run("not found", func(t *testing.T) {
		svc, _ := makeService(testNow, seed()...)
		_, err := svc.UpdateSlot(context.Background(), "inst-a", "missing", models.UpdateSlotRequest{})
		if !errors.Is(err, ErrSlotNotFound) {
			t.Fatalf("expected ErrSlotNotFound, got %v", err)
		}
	})

	t.Run("forbidden for non-owner", func(t *testing.T) {
		svc, _ := makeService(testNow, seed()...)
		_, err := svc.UpdateSlot(context.Background(), "inst-b", "slot-a1", models.UpdateSlotRequest{})
		if !errors.Is(err, ErrNotSlotOwner) {
			t.Fatalf("expected ErrNotSlotOwner, got %v", err)
		}
	})

	t.Run("price-only edit retains times", func(t *testing.T) {
		svc, _ := makeService(testNow, seed()...)
		price := 900.0
		updated, err := svc.UpdateSlot(context.Background(), "inst-a", "slot-a1", models.UpdateSlotRequest{Price: &price})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Price != 900 {
			t.Fatalf("expected price 900, got %v", updated.Price)
		}
		if !updated.StartTime.Equal(utcAt("2025-11-03", 3, 30)) {
			t.Fatalf("start time must be retained, got %v", updated.StartTime)
		}
	})

	t.Run("shifting within own interval does not conflict with itself", func(t *testing.T) {
		svc, _ := makeService(testNow, seed()...)
		start := utcAt("2025-11-03", 3, 45)
		end := utcAt("2025-11-03", 4, 15)
		updated, err := svc.UpdateSlot(context.Background(), "inst-a", "slot-a1", models.UpdateSlotRequest{
			StartTime: &start, EndTime: &end,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated.StartTime.Equal(start) || !updated.EndTime.Equal(end) {
			t.Fatalf("unexpected interval: %v .. %v", updated.StartTime, updated.EndTime)
		}
	})

	t.Run("moving onto a sibling slot conflicts", func(t *testing.T) {
		svc, _ := makeService(testNow, seed()...)
		start := utcAt("2025-11-03", 5, 15)
		end := utcAt("2025-11-03", 5, 45)
		_, err := svc.UpdateSlot(context.Background(), "inst-a", "slot-a1", models.UpdateSlotRequest{
			StartTime: &start, EndTime: &end,
		})
		if !isConflict(err) {
			t.Fatalf("expected ConflictError, got %v", err)
		}
	})

	t.Run("moving into the past is rejected", func(t *testing.T) {
		svc, _ := makeService(testNow, seed()...)
		start := utcAt("2025-10-30", 3, 30)
		end := utcAt("2025-10-30", 4, 0)
		_, err := svc.UpdateSlot(context.Background(), "inst-a", "slot-a1", models.UpdateSlotRequest{
			StartTime: &start, EndTime: &end,
		})
		if !isValidation(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("inverted interval is rejected", func(t *testing.T) {
		svc, _ := makeService(testNow, seed()...)
		end := utcAt("2025-11-03", 3, 0)
		_, err := svc.UpdateSlot(context.Background(), "inst-a", "slot-a1", models.UpdateSlotRequest{EndTime: &end})
		if !isValidation(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestDeleteSlot(t *testing.T) {
	seed := models.Slot{
		ID:           "slot-a1",
		InstructorID: "inst-a",
		StartTime:    utcAt("2025-11-03", 3, 30),
		EndTime:      utcAt("2025-11-03", 4, 0),
		Price:        500,
	}

	t.Run("owner can delete", func(t *testing.T) {
		svc, repo := makeService(testNow, seed)
		if err := svc.DeleteSlot(context.Background(), "inst-a", "slot-a1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.count() != 0 {
			t.Fatal("slot must be gone")
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		svc, repo := makeService(testNow, seed)
		err := svc.DeleteSlot(context.Background(), "inst-b", "slot-a1")
		if !errors.Is(err, ErrNotSlotOwner) {
			t.Fatalf("expected ErrNotSlotOwner, got %v", err)
		}
		if repo.count() != 1 {
			t.Fatal("slot must remain")
		}
	})

	t.Run("missing slot", func(t *testing.T) {
		svc, _ := makeService(testNow)
		err := svc.DeleteSlot(context.Background(), "inst-a", "missing")
		if !errors.Is(err, ErrSlotNotFound) {
			t.Fatalf("expected ErrSlotNotFound, got %v", err)
		}
	})
}

func TestListSlots(t *testing.T) {
	// 19:00 UTC on Nov 3 is already 00:30 IST on Nov 4.
	svc, _ := makeService(testNow,
		models.Slot{ID: "s1", InstructorID: "inst-a", StartTime: utcAt("2025-11-03", 10, 0), EndTime: utcAt("2025-11-03", 11, 0)},
		models.Slot{ID: "s2", InstructorID: "inst-a", StartTime: utcAt("2025-11-03", 3, 30), EndTime: utcAt("2025-11-03", 4, 0)},
		models.Slot{ID: "s3", InstructorID: "inst-a", StartTime: utcAt("2025-11-03", 19, 0), EndTime: utcAt("2025-11-03", 20, 0)},
		models.Slot{ID: "sx", InstructorID: "inst-b", StartTime: utcAt("2025-11-03", 6, 0), EndTime: utcAt("2025-11-03", 7, 0)},
	)

	t.Run("all slots ordered by start", func(t *testing.T) {
		got, err := svc.ListSlots(context.Background(), "inst-a", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 slots, got %d", len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].StartTime.Before(got[i-1].StartTime) {
				t.Fatal("slots not ordered by start time")
			}
		}
	})

	t.Run("date filter uses the IST day", func(t *testing.T) {
		got, err := svc.ListSlots(context.Background(), "inst-a", "2025-11-03")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 slots on the IST day, got %d", len(got))
		}

		got, err = svc.ListSlots(context.Background(), "inst-a", "2025-11-04")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ID != "s3" {
			t.Fatalf("expected only the late-evening slot on 2025-11-04 IST, got %+v", got)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		if _, err := svc.ListSlots(context.Background(), "inst-a", "03/11/2025"); !isValidation(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestDeleteUnbookedSlotsForDate(t *testing.T) {
	day := "2025-12-01"

	t.Run("removes only the unbooked subset", func(t *testing.T) {
		svc, repo := makeService(testNow,
			models.Slot{ID: "booked", InstructorID: "inst-a", IsBooked: true,
				StartTime: utcAt("2025-12-01", 3, 30), EndTime: utcAt("2025-12-01", 4, 0)},
			models.Slot{ID: "free", InstructorID: "inst-a",
				StartTime: utcAt("2025-12-01", 5, 0), EndTime: utcAt("2025-12-01", 5, 30)},
		)

		deleted, err := svc.DeleteUnbookedSlotsForDate(context.Background(), "inst-a", day)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted != 1 {
			t.Fatalf("expected 1 deletion, got %d", deleted)
		}
		remaining, _ := repo.FindByID(context.Background(), "booked")
		if remaining == nil {
			t.Fatal("booked slot must survive")
		}
	})

	t.Run("foreign slots on the day are forbidden with zero deletions", func(t *testing.T) {
		svc, repo := makeService(testNow,
			models.Slot{ID: "a-free", InstructorID: "inst-a",
				StartTime: utcAt("2025-12-01", 5, 0), EndTime: utcAt("2025-12-01", 5, 30)},
		)

		_, err := svc.DeleteUnbookedSlotsForDate(context.Background(), "inst-b", day)
		if !errors.Is(err, ErrNotSlotOwner) {
			t.Fatalf("expected ErrNotSlotOwner, got %v", err)
		}
		if repo.count() != 1 {
			t.Fatal("no slot may be deleted")
		}
	})

	t.Run("empty day is not found", func(t *testing.T) {
		svc, _ := makeService(testNow)
		_, err := svc.DeleteUnbookedSlotsForDate(context.Background(), "inst-a", day)
		if !errors.Is(err, ErrSlotNotFound) {
			t.Fatalf("expected ErrSlotNotFound, got %v", err)
		}
	})

	t.Run("day with only booked slots deletes nothing", func(t *testing.T) {
		svc, repo := makeService(testNow,
			models.Slot{ID: "booked", InstructorID: "inst-a", IsBooked: true,
				StartTime: utcAt("2025-12-01", 3, 30), EndTime: utcAt("2025-12-01", 4, 0)},
		)

		deleted, err := svc.DeleteUnbookedSlotsForDate(context.Background(), "inst-a", day)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted != 0 || repo.count() != 1 {
			t.Fatalf("expected zero deletions, got %d", deleted)
		}
	})
}

func TestGetSlotStats(t *testing.T) {
	seed := []models.Slot{
		{ID: "d1a", InstructorID: "inst-a", IsBooked: true,
			StartTime: utcAt("2025-11-03", 3, 30), EndTime: utcAt("2025-11-03", 4, 0)},
		{ID: "d1b", InstructorID: "inst-a",
			StartTime: utcAt("2025-11-03", 5, 0), EndTime: utcAt("2025-11-03", 5, 30)},
		{ID: "d2a", InstructorID: "inst-a",
			StartTime: utcAt("2025-11-10", 3, 30), EndTime: utcAt("2025-11-10", 4, 0)},
		{ID: "dec", InstructorID: "inst-a",
			StartTime: utcAt("2025-12-05", 3, 30), EndTime: utcAt("2025-12-05", 4, 0)},
		{ID: "other", InstructorID: "inst-b",
			StartTime: utcAt("2025-11-03", 3, 30), EndTime: utcAt("2025-11-03", 4, 0)},
	}

	t.Run("monthly buckets by IST day", func(t *testing.T) {
		svc, _ := makeService(testNow, seed...)
		stats, err := svc.GetSlotStats(context.Background(), "inst-a", StatsModeMonthly, models.StatsOptions{Year: 2025, Month: 11})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stats) != 2 {
			t.Fatalf("expected 2 days, got %d", len(stats))
		}
		if stats[0].Date != "2025-11-03" || stats[1].Date != "2025-11-10" {
			t.Fatalf("unexpected days: %+v", stats)
		}
		if stats[0].TotalSlots != 2 || stats[0].BookedSlots != 1 {
			t.Fatalf("unexpected bucket: %+v", stats[0])
		}
		for _, s := range stats {
			if s.BookedSlots > s.TotalSlots {
				t.Fatalf("bookedSlots exceeds totalSlots: %+v", s)
			}
		}
	})

	t.Run("yearly covers both months", func(t *testing.T) {
		svc, _ := makeService(testNow, seed...)
		stats, err := svc.GetSlotStats(context.Background(), "inst-a", StatsModeYearly, models.StatsOptions{Year: 2025})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stats) != 3 {
			t.Fatalf("expected 3 days, got %d", len(stats))
		}
	})

	t.Run("custom window excludes endDate", func(t *testing.T) {
		svc, _ := makeService(testNow, seed...)
		stats, err := svc.GetSlotStats(context.Background(), "inst-a", StatsModeCustom, models.StatsOptions{
			StartDate: "2025-11-03", EndDate: "2025-11-10",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stats) != 1 || stats[0].Date != "2025-11-03" {
			t.Fatalf("unexpected buckets: %+v", stats)
		}
	})

	t.Run("missing options per mode", func(t *testing.T) {
		svc, _ := makeService(testNow)
		cases := []struct {
			mode string
			opts models.StatsOptions
		}{
			{StatsModeMonthly, models.StatsOptions{Year: 2025}},
			{StatsModeMonthly, models.StatsOptions{Month: 11}},
			{StatsModeMonthly, models.StatsOptions{Year: 2025, Month: 13}},
			{StatsModeYearly, models.StatsOptions{}},
			{StatsModeCustom, models.StatsOptions{StartDate: "2025-11-03"}},
			{StatsModeCustom, models.StatsOptions{StartDate: "2025-11-10", EndDate: "2025-11-03"}},
			{"weekly", models.StatsOptions{}},
		}
		for _, c := range cases {
			if _, err := svc.GetSlotStats(context.Background(), "inst-a", c.mode, c.opts); !isValidation(err) {
				t.Fatalf("mode %q opts %+v: expected ValidationError, got %v", c.mode, c.opts, err)
			}
		}
	})
}
