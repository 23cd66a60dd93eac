package availability

import (
	"fmt"

	"slotgrid/models"
	"slotgrid/services/schedule"
)

// validateSlot checks one recurring slot's bounds. These mirror the storage
// contract: day 0-6, minutes 0-1439, start strictly before end. Wrapping
// past midnight is a display concern and is not stored.
func validateSlot(slot models.BackendSlot) error {
	if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be 0-6 (Sunday-Saturday)")
	}
	if slot.StartTime < 0 || slot.StartTime >= schedule.MinutesPerDay {
		return fmt.Errorf("start_time must be 0-1439 (minutes in a day)")
	}
	if slot.EndTime < 0 || slot.EndTime >= schedule.MinutesPerDay {
		return fmt.Errorf("end_time must be 0-1439 (minutes in a day)")
	}
	if slot.StartTime >= slot.EndTime {
		return fmt.Errorf("start_time must be less than end_time")
	}
	return nil
}

// checkSlotOverlaps rejects overlapping slots on the same day.
func checkSlotOverlaps(slots []models.BackendSlot) error {
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			a, b := slots[i], slots[j]
			if a.DayOfWeek != b.DayOfWeek {
				continue
			}
			if a.StartTime < b.EndTime && b.StartTime < a.EndTime {
				return fmt.Errorf(
					"overlapping slots on day %d: %02d:%02d-%02d:%02d and %02d:%02d-%02d:%02d",
					a.DayOfWeek,
					a.StartTime/60, a.StartTime%60,
					a.EndTime/60, a.EndTime%60,
					b.StartTime/60, b.StartTime%60,
					b.EndTime/60, b.EndTime%60,
				)
			}
		}
	}
	return nil
}

// validateAvailability checks a full create/update payload.
func validateAvailability(title, description string, slots []models.BackendSlot) error {
	if len(title) == 0 || len(title) > 100 {
		return fmt.Errorf("title must be 1-100 characters")
	}
	if len(description) > 500 {
		return fmt.Errorf("description must be 0-500 characters")
	}
	if len(slots) == 0 {
		return fmt.Errorf("at least 1 slot is required")
	}
	for _, slot := range slots {
		if err := validateSlot(slot); err != nil {
			return err
		}
	}
	return checkSlotOverlaps(slots)
}
