package slot

import "sync"

// instructorLocks serializes mutating operations per instructor. The overlap
// check is read-then-write; without this lock two concurrent creates for the
// same instructor could both pass the check and persist overlapping slots.
// The lock is held across the check and the write, never across requests for
// different instructors.
type instructorLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// get returns the mutex for a given instructor, creating one if it doesn't exist.
// The zero value of instructorLocks is ready to use.
func (s *instructorLocks) get(instructorID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	l, exists := s.locks[instructorID]
	if !exists {
		l = &sync.Mutex{}
		s.locks[instructorID] = l
	}
	return l
}
