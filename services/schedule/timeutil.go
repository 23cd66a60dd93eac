package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"slotgrid/models"
)

// MinutesPerDay is 24 hours * 60 minutes.
const MinutesPerDay = 1440

// FormatLabel renders minutes-from-midnight as a 12-hour label,
// e.g. 870 -> "2:30 PM". Minutes outside [0, 1439] are clamped.
func FormatLabel(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes >= MinutesPerDay {
		minutes = MinutesPerDay - 1
	}

	h := minutes / 60
	m := minutes % 60

	meridiem := "AM"
	if h >= 12 {
		meridiem = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, meridiem)
}

// ParseLabel converts a 12-hour label back to minutes-from-midnight.
// Meridiem rule: 12 AM -> 0, 12 PM stays 12, other PM hours +12.
func ParseLabel(label string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid time label %q", label)
	}

	clock := strings.SplitN(fields[0], ":", 2)
	if len(clock) != 2 {
		return 0, fmt.Errorf("invalid time label %q", label)
	}
	hour, err := strconv.Atoi(clock[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("invalid hour in time label %q", label)
	}
	minute, err := strconv.Atoi(clock[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in time label %q", label)
	}

	switch strings.ToUpper(fields[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, fmt.Errorf("invalid meridiem in time label %q", label)
	}

	return hour*60 + minute, nil
}

// HoursOf converts a 12-hour label to fractional 24-hour hours,
// e.g. "2:30 PM" -> 14.5. Invalid labels yield 0.
func HoursOf(label string) float64 {
	m, err := ParseLabel(label)
	if err != nil {
		return 0
	}
	return float64(m) / 60.0
}

// DurationHours returns the display duration of a slot in fractional hours.
// Positive by construction since display slots never self-wrap.
func DurationHours(slot models.TimeSlot) float64 {
	return HoursOf(slot.End) - HoursOf(slot.Start)
}
