package slot

import (
	"time"

	"tutorhub/timeutil"
)

// intervalsOverlap reports whether the half-open intervals [s1,e1) and
// [s2,e2) share any instant.
func intervalsOverlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// findBatchOverlap scans a candidate batch for internal overlaps and returns
// the IST date of the first collision. A recurring request that overlaps
// itself is rejected before the store is ever consulted.
func findBatchOverlap(candidates []candidate) (string, bool) {
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if intervalsOverlap(candidates[i].start, candidates[i].end, candidates[j].start, candidates[j].end) {
				return timeutil.FormatDate(candidates[j].start), true
			}
		}
	}
	return "", false
}
