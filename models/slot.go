package models

import "time"

// RecurrenceRule describes the weekly pattern a recurring slot request was
// expanded from. It is stored on each generated slot as a snapshot only;
// editing one generated slot never affects its siblings.
type RecurrenceRule struct {
	DaysOfWeek []int  `bson:"daysOfWeek" json:"daysOfWeek"` // 0 = Sunday, 6 = Saturday
	StartDate  string `bson:"startDate" json:"startDate"`   // IST calendar date, e.g. "2025-11-03"
	EndDate    string `bson:"endDate" json:"endDate"`       // inclusive
}

// Slot represents one bookable instructor time window.
type Slot struct {
	ID             string          `bson:"id" json:"id"`
	InstructorID   string          `bson:"instructorId" json:"instructorId"`
	StartTime      time.Time       `bson:"startTime" json:"startTime"` // UTC instant
	EndTime        time.Time       `bson:"endTime" json:"endTime"`     // UTC instant, always after StartTime
	Price          float64         `bson:"price" json:"price"`
	IsBooked       bool            `bson:"isBooked" json:"isBooked"` // flipped only by the booking flow
	RecurrenceRule *RecurrenceRule `bson:"recurrenceRule,omitempty" json:"recurrenceRule,omitempty"`
	CreatedAt      time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// TimeRange is an instant window used for day-scoped queries.
// From is inclusive; To is inclusive as well (day ranges end at 23:59:59.999 IST).
type TimeRange struct {
	From time.Time
	To   time.Time
}

// CreateSlotRequest defines the payload for creating a single slot.
type CreateSlotRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	Price     float64   `json:"price"`
}

// CreateRecurringSlotsRequest defines the payload for a recurring batch.
// StartTime/EndTime act as the time-of-day template; their IST wall-clock
// time and duration are applied to every matching day in the rule's range.
type CreateRecurringSlotsRequest struct {
	StartTime time.Time      `json:"startTime" binding:"required"`
	EndTime   time.Time      `json:"endTime" binding:"required"`
	Price     float64        `json:"price"`
	Rule      RecurrenceRule `json:"recurrenceRule" binding:"required"`
}

// UpdateSlotRequest carries a partial edit; nil fields keep their stored value.
type UpdateSlotRequest struct {
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Price     *float64   `json:"price,omitempty"`
}

// StatsOptions selects the aggregation window for GetSlotStats.
type StatsOptions struct {
	Year      int    `json:"year,omitempty"`
	Month     int    `json:"month,omitempty"` // 1-12
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// DailySlotStats is one aggregation bucket: an IST calendar day that has at
// least one slot.
type DailySlotStats struct {
	Date        string `bson:"_id" json:"date"` // "2006-01-02" in IST
	TotalSlots  int    `bson:"totalSlots" json:"totalSlots"`
	BookedSlots int    `bson:"bookedSlots" json:"bookedSlots"`
}
