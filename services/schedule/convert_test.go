package schedule

import (
	"testing"
	"time"

	"slotgrid/models"
)

func TestSplitByDay_MidnightSplit(t *testing.T) {
	// 10 PM Monday to 1 AM Tuesday.
	slots := []models.BackendSlot{{DayOfWeek: 1, StartTime: 1320, EndTime: 60}}

	byDay := SplitByDay(slots)

	mon := byDay[1]
	if len(mon) != 1 {
		t.Fatalf("expected 1 Monday slot, got %d", len(mon))
	}
	if mon[0].Start != "10:00 PM" || mon[0].End != "11:59 PM" {
		t.Errorf("Monday slot = %v - %v, want 10:00 PM - 11:59 PM", mon[0].Start, mon[0].End)
	}

	tue := byDay[2]
	if len(tue) != 1 {
		t.Fatalf("expected 1 Tuesday slot, got %d", len(tue))
	}
	if tue[0].Start != "12:00 AM" || tue[0].End != "1:00 AM" {
		t.Errorf("Tuesday slot = %v - %v, want 12:00 AM - 1:00 AM", tue[0].Start, tue[0].End)
	}

	// Displayed durations sum to the original duration modulo the 1-minute
	// boundary rounding: (1439-1320) + (60-0) = 179 vs original 180.
	sum := (DurationHours(mon[0]) + DurationHours(tue[0])) * 60
	if sum < 178.5 || sum > 180.5 {
		t.Errorf("split durations sum to %v minutes, want ~179-180", sum)
	}
}

func TestSplitByDay_SaturdayWrapsToSunday(t *testing.T) {
	slots := []models.BackendSlot{{DayOfWeek: 6, StartTime: 1350, EndTime: 30}}
	byDay := SplitByDay(slots)
	if len(byDay[6]) != 1 || len(byDay[0]) != 1 {
		t.Fatalf("expected slots on Saturday and Sunday, got %v", byDay)
	}
}

func TestSplitByDay_RoundTrip(t *testing.T) {
	slots := []models.BackendSlot{
		{DayOfWeek: 1, StartTime: 540, EndTime: 1020},
		{DayOfWeek: 3, StartTime: 0, EndTime: 90},
		{DayOfWeek: 5, StartTime: 1000, EndTime: 1439},
	}

	byDay := SplitByDay(slots)
	for _, s := range slots {
		day := byDay[s.DayOfWeek]
		if len(day) != 1 {
			t.Fatalf("day %d: expected 1 slot, got %d", s.DayOfWeek, len(day))
		}
		start, err := ParseLabel(day[0].Start)
		if err != nil {
			t.Fatal(err)
		}
		end, err := ParseLabel(day[0].End)
		if err != nil {
			t.Fatal(err)
		}
		if start != s.StartTime || end != s.EndTime {
			t.Errorf("day %d round trip: got [%d,%d], want [%d,%d]",
				s.DayOfWeek, start, end, s.StartTime, s.EndTime)
		}
	}
}

func TestSplitByDay_MultiSlotDaySortedByStart(t *testing.T) {
	slots := []models.BackendSlot{
		{DayOfWeek: 2, StartTime: 840, EndTime: 1020},
		{DayOfWeek: 2, StartTime: 540, EndTime: 720},
	}
	byDay := SplitByDay(slots)
	tue := byDay[2]
	if len(tue) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(tue))
	}
	if tue[0].Start != "9:00 AM" {
		t.Errorf("first slot should anchor the window at 9:00 AM, got %v", tue[0].Start)
	}
}

func TestBuildWeek(t *testing.T) {
	slots := []models.BackendSlot{
		{DayOfWeek: 1, StartTime: 540, EndTime: 1020},
	}
	// 2026-01-04 is a Sunday.
	weekStart := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)

	week := BuildWeek(slots, weekStart, 7)
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	if week[0].Available {
		t.Error("Sunday has no slots and should be unavailable")
	}
	if !week[1].Available {
		t.Fatal("Monday should be available")
	}
	if week[1].DayName != "Monday" {
		t.Errorf("day name = %q, want Monday", week[1].DayName)
	}
	if len(week[1].TimeSlots) != 1 || week[1].TimeSlots[0].Start != "9:00 AM" {
		t.Errorf("unexpected Monday slots: %v", week[1].TimeSlots)
	}
}

func TestWindowOf(t *testing.T) {
	day := models.DayAvailability{
		Available: true,
		TimeSlots: []models.TimeSlot{
			{Start: "9:00 AM", End: "12:00 PM"},
			{Start: "2:00 PM", End: "6:00 PM"},
		},
	}
	w, ok := WindowOf(day)
	if !ok {
		t.Fatal("expected a window")
	}
	if w.StartMinutes != 540 || w.EndMinutes != 1080 {
		t.Errorf("window = [%d,%d], want [540,1080]", w.StartMinutes, w.EndMinutes)
	}
	if w.TotalMinutes() != 540 {
		t.Errorf("total = %d, want 540", w.TotalMinutes())
	}

	if _, ok := WindowOf(models.DayAvailability{}); ok {
		t.Error("empty day should have no window")
	}
}
