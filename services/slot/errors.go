package slot

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotNotFound is returned when the referenced slot (or day) has no
	// stored slots at all.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrNotSlotOwner is returned when the calling instructor does not own
	// the slot being mutated.
	ErrNotSlotOwner = errors.New("instructor does not own this slot")
)

// ValidationError reports malformed input: bad interval ordering, a start
// time in the past, an empty recurrence weekday set, or missing stats
// options. It is always detected before any write.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError reports an overlap against an existing slot or against a
// sibling candidate in the same recurring batch.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string { return e.Detail }

func conflictf(format string, args ...interface{}) error {
	return &ConflictError{Detail: fmt.Sprintf(format, args...)}
}
