package schedule

import (
	"sort"
	"time"

	"slotgrid/models"
)

// minuteRange is an interval in minutes from midnight, end exclusive for
// arithmetic but stored inclusive of the final displayed minute.
type minuteRange struct {
	start int
	end   int
}

// DayWindow is the earliest-start-to-latest-end range rendered for one day
// column, in minutes from midnight. It is an explicit concept rather than
// "whatever slot happens to be first".
type DayWindow struct {
	StartMinutes int
	EndMinutes   int
}

// TotalMinutes is the duration of the window.
func (w DayWindow) TotalMinutes() int {
	return w.EndMinutes - w.StartMinutes
}

// rangesByDay resolves midnight-wrapping backend slots into per-weekday
// minute ranges. A slot whose end is not after its start crosses midnight
// and splits into [start, 23:59] on its day and [00:00, end] on the next.
func rangesByDay(slots []models.BackendSlot) map[int][]minuteRange {
	byDay := make(map[int][]minuteRange)
	for _, s := range slots {
		day := ((s.DayOfWeek % 7) + 7) % 7
		if s.EndTime <= s.StartTime {
			byDay[day] = append(byDay[day], minuteRange{start: s.StartTime, end: MinutesPerDay - 1})
			if s.EndTime > 0 {
				next := (day + 1) % 7
				byDay[next] = append(byDay[next], minuteRange{start: 0, end: s.EndTime})
			}
			continue
		}
		byDay[day] = append(byDay[day], minuteRange{start: s.StartTime, end: s.EndTime})
	}
	// Sort so the earliest slot anchors the day's window.
	for day := range byDay {
		rs := byDay[day]
		sort.Slice(rs, func(i, j int) bool { return rs[i].start < rs[j].start })
	}
	return byDay
}

// SplitByDay expands backend slots into formatted display slots keyed by
// day-of-week (0=Sunday). Slots within a day are ordered by start minute.
func SplitByDay(slots []models.BackendSlot) map[int][]models.TimeSlot {
	out := make(map[int][]models.TimeSlot)
	for day, rs := range rangesByDay(slots) {
		display := make([]models.TimeSlot, 0, len(rs))
		for _, r := range rs {
			display = append(display, models.TimeSlot{
				Start: FormatLabel(r.start),
				End:   FormatLabel(r.end),
			})
		}
		out[day] = display
	}
	return out
}

// BuildWeek expands recurring backend slots into per-day display columns for
// the visible range beginning at weekStart. A day with no matching slots is
// rendered as unavailable.
func BuildWeek(slots []models.BackendSlot, weekStart time.Time, days int) []models.DayAvailability {
	byDay := SplitByDay(slots)

	out := make([]models.DayAvailability, 0, days)
	for i := 0; i < days; i++ {
		date := weekStart.AddDate(0, 0, i)
		daySlots := byDay[int(date.Weekday())]
		out = append(out, models.DayAvailability{
			Date:      date,
			DayName:   date.Weekday().String(),
			Available: len(daySlots) > 0,
			TimeSlots: daySlots,
		})
	}
	return out
}

// WindowOf computes the render window for a day column. Returns false when
// the day has no slots.
func WindowOf(day models.DayAvailability) (DayWindow, bool) {
	if len(day.TimeSlots) == 0 {
		return DayWindow{}, false
	}
	w := DayWindow{StartMinutes: MinutesPerDay, EndMinutes: 0}
	for _, slot := range day.TimeSlots {
		start, err := ParseLabel(slot.Start)
		if err != nil {
			return DayWindow{}, false
		}
		end, err := ParseLabel(slot.End)
		if err != nil {
			return DayWindow{}, false
		}
		if start < w.StartMinutes {
			w.StartMinutes = start
		}
		if end > w.EndMinutes {
			w.EndMinutes = end
		}
	}
	return w, true
}
