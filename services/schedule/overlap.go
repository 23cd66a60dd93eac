package schedule

import "slotgrid/models"

// HasOverlap reports whether the half-open interval [start, start+duration)
// intersects any existing event on the same day. excludeID skips the event
// being moved or resized; pass "" for creates. This is the hard gate before
// any create, move, or resize commits.
func HasOverlap(dayIndex, start, duration int, events []models.AvailabilityEvent, excludeID string) bool {
	end := start + duration
	for _, e := range events {
		if e.DayIndex != dayIndex {
			continue
		}
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		// [s1,e1) overlaps [s2,e2) iff s1 < e2 && s2 < e1.
		if start < e.StartMinutes+e.DurationMinutes && e.StartMinutes < end {
			return true
		}
	}
	return false
}
