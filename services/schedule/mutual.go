package schedule

import (
	"fmt"
	"time"

	"slotgrid/models"
)

// MutualWeek computes the free intervals common to a viewer's and an owner's
// recurring weekly slots across [weekStart, weekStart+days), minus the busy
// blocks that fall on each day. A day on which either party has no slots
// contributes no mutual interval. The result is derived data, recomputed
// whenever any input changes.
func MutualWeek(viewer, owner []models.BackendSlot, weekStart time.Time, days int, busy []models.BusyBlock) []models.MutualDay {
	viewerByDay := rangesByDay(viewer)
	ownerByDay := rangesByDay(owner)

	out := make([]models.MutualDay, 0, days)
	for i := 0; i < days; i++ {
		date := weekStart.AddDate(0, 0, i)
		dow := int(date.Weekday())

		common := intersectRanges(viewerByDay[dow], ownerByDay[dow])
		common = subtractBusy(common, busyMinutesOn(busy, date))

		intervals := make([]models.AvailableInterval, 0, len(common))
		for _, r := range common {
			intervals = append(intervals, models.AvailableInterval{
				Start: r.start,
				End:   r.end,
				Label: fmt.Sprintf("%s - %s", FormatLabel(r.start), FormatLabel(r.end)),
			})
		}

		out = append(out, models.MutualDay{
			Date:      date,
			DayName:   date.Weekday().String(),
			Intervals: intervals,
		})
	}
	return out
}

// intersectRanges returns the pairwise intersections of two slot sets.
// Inputs are sorted by start; outputs stay sorted.
func intersectRanges(a, b []minuteRange) []minuteRange {
	var out []minuteRange
	for _, ra := range a {
		for _, rb := range b {
			start := ra.start
			if rb.start > start {
				start = rb.start
			}
			end := ra.end
			if rb.end < end {
				end = rb.end
			}
			if end > start {
				out = append(out, minuteRange{start: start, end: end})
			}
		}
	}
	return out
}

// subtractBusy removes busy intervals from available ones, splitting any
// range a block lands inside.
func subtractBusy(available, busy []minuteRange) []minuteRange {
	for _, block := range busy {
		var updated []minuteRange
		for _, iv := range available {
			if block.end <= iv.start || block.start >= iv.end {
				updated = append(updated, iv)
				continue
			}
			if block.start > iv.start {
				updated = append(updated, minuteRange{start: iv.start, end: block.start})
			}
			if block.end < iv.end {
				updated = append(updated, minuteRange{start: block.end, end: iv.end})
			}
		}
		available = updated
	}
	return available
}

// busyMinutesOn converts the busy blocks touching a calendar date into
// minute ranges on that date, clipped to the day.
func busyMinutesOn(busy []models.BusyBlock, date time.Time) []minuteRange {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var out []minuteRange
	for _, b := range busy {
		if !b.End.After(dayStart) || !dayEnd.After(b.Start) {
			continue
		}
		start := 0
		if b.Start.After(dayStart) {
			start = int(b.Start.Sub(dayStart).Minutes())
		}
		end := MinutesPerDay
		if b.End.Before(dayEnd) {
			end = int(b.End.Sub(dayStart).Minutes())
		}
		if end > start {
			out = append(out, minuteRange{start: start, end: end})
		}
	}
	return out
}
