package schedule

import (
	"errors"
	"testing"
	"time"

	"slotgrid/models"
)

// testGrid builds a single Monday column with a 9:00-18:00 window rendered
// at 900px, with the clock fixed at 8:00 that morning.
func testGrid(events []models.AvailabilityEvent) *Engine {
	day := GridDay{
		Date:      time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Available: true,
		Window:    DayWindow{StartMinutes: 540, EndMinutes: 1080},
	}
	day.Geometry = GeometryFor(day.Window)
	now := func() time.Time { return time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC) }
	return NewEngine([]GridDay{day}, events, now)
}

var actor = models.Attendee{Email: "viewer@example.com", DisplayName: "Viewer"}

func TestCreateDrag_Scenario(t *testing.T) {
	en := testGrid(nil)

	if err := en.BeginCreate(0, 100); err != nil {
		t.Fatal(err)
	}
	if err := en.UpdateCreate(200); err != nil {
		t.Fatal(err)
	}

	s, ok := en.Session()
	if !ok {
		t.Fatal("expected an active session")
	}
	if s.PreviewStart != 60 || s.PreviewDuration != 60 {
		t.Fatalf("preview = [%d,+%d], want [60,+60]", s.PreviewStart, s.PreviewDuration)
	}

	res, err := en.Commit(actor, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Create == nil {
		t.Fatal("expected a create payload")
	}
	wantStart := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 1, 5, 11, 0, 0, 0, time.UTC)
	if !res.Create.Start.Equal(wantStart) || !res.Create.End.Equal(wantEnd) {
		t.Errorf("interval = %v - %v, want 10:00 - 11:00", res.Create.Start, res.Create.End)
	}
	if res.Create.Title == "" {
		t.Error("expected a synthesized default title")
	}
	if len(res.Create.Attendees) != 1 || res.Create.Attendees[0].Email != actor.Email {
		t.Errorf("unexpected attendees: %v", res.Create.Attendees)
	}
	if _, active := en.Session(); active {
		t.Error("session must be discarded after commit")
	}
}

func TestCreateDrag_RejectedForOverlap(t *testing.T) {
	// Existing event 10:30-11:00 relative to the 9:00 window start.
	en := testGrid([]models.AvailabilityEvent{
		{ID: "busy", DayIndex: 0, StartMinutes: 90, DurationMinutes: 30, IsFromCalendar: true},
	})

	if err := en.BeginCreate(0, 100); err != nil {
		t.Fatal(err)
	}
	if err := en.UpdateCreate(200); err != nil {
		t.Fatal(err)
	}

	_, err := en.Commit(actor, nil)
	if code, ok := IsValidation(err); !ok || code != CodeOverlap {
		t.Fatalf("expected overlap rejection, got %v", err)
	}
	if _, active := en.Session(); active {
		t.Error("session must be discarded after a failed commit")
	}
}

func TestCreateDrag_MinimumFloorOnRelease(t *testing.T) {
	en := testGrid(nil)

	// Press and release with no meaningful movement still runs the full
	// commit path with the floor interval.
	if err := en.BeginCreate(0, 300); err != nil {
		t.Fatal(err)
	}
	res, err := en.Commit(actor, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := res.Create.End.Sub(res.Create.Start)
	if got != MinEventDuration*time.Minute {
		t.Errorf("duration = %v, want %d minutes", got, MinEventDuration)
	}
}

func TestCreateDrag_FloorAnchoredAtOrigin(t *testing.T) {
	en := testGrid(nil)
	if err := en.BeginCreate(0, 300); err != nil { // minute 180
		t.Fatal(err)
	}
	// Tiny upward movement: floor anchors at the origin as the end bound.
	if err := en.UpdateCreate(295); err != nil {
		t.Fatal(err)
	}
	s, _ := en.Session()
	if s.PreviewStart != 180-MinEventDuration || s.PreviewDuration != MinEventDuration {
		t.Errorf("preview = [%d,+%d], want [%d,+%d]",
			s.PreviewStart, s.PreviewDuration, 180-MinEventDuration, MinEventDuration)
	}
}

func TestCreateDrag_ClampsToWindow(t *testing.T) {
	en := testGrid(nil)
	if err := en.BeginCreate(0, 100); err != nil {
		t.Fatal(err)
	}
	if err := en.UpdateCreate(5000); err != nil {
		t.Fatal(err)
	}
	s, _ := en.Session()
	if s.PreviewStart+s.PreviewDuration > 540 {
		t.Errorf("preview [%d,+%d] escapes the 540-minute window",
			s.PreviewStart, s.PreviewDuration)
	}
}

func TestCreateDrag_Guards(t *testing.T) {
	en := testGrid([]models.AvailabilityEvent{
		{ID: "busy", DayIndex: 0, StartMinutes: 60, DurationMinutes: 60, IsFromCalendar: true},
	})

	// Over an existing event (pixel 150 -> minute 90, inside 60-120).
	if err := en.BeginCreate(0, 150); !errors.Is(err, ErrSpaceOccupied) {
		t.Errorf("expected ErrSpaceOccupied, got %v", err)
	}
	// Out-of-range day.
	if err := en.BeginCreate(3, 100); !errors.Is(err, ErrDayUnavailable) {
		t.Errorf("expected ErrDayUnavailable, got %v", err)
	}
	// Second session while one is active.
	if err := en.BeginCreate(0, 400); err != nil {
		t.Fatal(err)
	}
	if err := en.BeginCreate(0, 500); !errors.Is(err, ErrSessionActive) {
		t.Errorf("expected ErrSessionActive, got %v", err)
	}
	en.Cancel()
	if _, active := en.Session(); active {
		t.Error("cancel must discard the session")
	}
}

func TestResizeTop_ClampsToFloor(t *testing.T) {
	// Existing event 10:00-11:00.
	ev := models.AvailabilityEvent{
		ID: "e1", DayIndex: 0, StartMinutes: 60, DurationMinutes: 60, IsFromCalendar: true,
	}
	en := testGrid([]models.AvailabilityEvent{ev})
	if err := en.SelectEvent("e1"); err != nil {
		t.Fatal(err)
	}
	if err := en.BeginDrag(DragResizeTop, "e1"); err != nil {
		t.Fatal(err)
	}

	// Drag the top handle down by 50 minutes worth of pixels: the duration
	// clamps to the floor and the end never moves: 10:45-11:00.
	day := GridDay{Window: DayWindow{StartMinutes: 540, EndMinutes: 1080}}
	g := GeometryFor(day.Window)
	if err := en.UpdateDrag(g.MinutesToPixels(50)); err != nil {
		t.Fatal(err)
	}

	s, _ := en.Session()
	if s.PreviewStart != 105 || s.PreviewDuration != MinEventDuration {
		t.Fatalf("preview = [%d,+%d], want [105,+15]", s.PreviewStart, s.PreviewDuration)
	}

	res, err := en.Commit(actor, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Update == nil || res.Update.EventID != "e1" {
		t.Fatal("expected an update payload for e1")
	}
	wantStart := time.Date(2026, 1, 5, 10, 45, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 1, 5, 11, 0, 0, 0, time.UTC)
	if !res.Update.Start.Equal(wantStart) || !res.Update.End.Equal(wantEnd) {
		t.Errorf("interval = %v - %v, want 10:45 - 11:00", res.Update.Start, res.Update.End)
	}
}

func TestResizeBottom_StaysInsideWindow(t *testing.T) {
	ev := models.AvailabilityEvent{
		ID: "e1", DayIndex: 0, StartMinutes: 480, DurationMinutes: 30, IsFromCalendar: true,
	}
	en := testGrid([]models.AvailabilityEvent{ev})
	en.SelectEvent("e1")
	if err := en.BeginDrag(DragResizeBottom, "e1"); err != nil {
		t.Fatal(err)
	}
	g := GeometryFor(DayWindow{StartMinutes: 540, EndMinutes: 1080})
	en.UpdateDrag(g.MinutesToPixels(500))

	s, _ := en.Session()
	if s.PreviewStart != 480 || s.PreviewStart+s.PreviewDuration != 540 {
		t.Errorf("preview = [%d,+%d], want end pinned at 540", s.PreviewStart, s.PreviewDuration)
	}
}

func TestMove_TranslatesAndClamps(t *testing.T) {
	ev := models.AvailabilityEvent{
		ID: "e1", DayIndex: 0, StartMinutes: 60, DurationMinutes: 60, IsFromCalendar: true,
	}
	en := testGrid([]models.AvailabilityEvent{ev})
	en.SelectEvent("e1")
	if err := en.BeginDrag(DragMove, "e1"); err != nil {
		t.Fatal(err)
	}
	g := GeometryFor(DayWindow{StartMinutes: 540, EndMinutes: 1080})

	en.UpdateDrag(g.MinutesToPixels(30))
	s, _ := en.Session()
	if s.PreviewStart != 90 || s.PreviewDuration != 60 {
		t.Errorf("preview = [%d,+%d], want [90,+60]", s.PreviewStart, s.PreviewDuration)
	}

	en.UpdateDrag(g.MinutesToPixels(-500))
	s, _ = en.Session()
	if s.PreviewStart != 0 || s.PreviewDuration != 60 {
		t.Errorf("clamped preview = [%d,+%d], want [0,+60]", s.PreviewStart, s.PreviewDuration)
	}
}

func TestBeginDrag_Guards(t *testing.T) {
	ended := models.AvailabilityEvent{
		ID: "past", DayIndex: 0, StartMinutes: 0, DurationMinutes: 15, IsFromCalendar: true,
	}
	local := models.AvailabilityEvent{
		ID: "local", DayIndex: 0, StartMinutes: 120, DurationMinutes: 30, IsFromCalendar: false,
	}
	en := testGrid([]models.AvailabilityEvent{ended, local})

	if err := en.BeginDrag(DragMove, "missing"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
	if err := en.BeginDrag(DragMove, "local"); !errors.Is(err, ErrNotFromCalendar) {
		t.Errorf("expected ErrNotFromCalendar, got %v", err)
	}

	en.SelectEvent("ended")
	if err := en.BeginDrag(DragMove, "past"); !errors.Is(err, ErrNotSelected) {
		t.Errorf("expected ErrNotSelected, got %v", err)
	}

	// 9:00-9:15 has not started at the fixed 8:00 clock, so shift the clock
	// past it to exercise the ended guard.
	en.now = func() time.Time { return time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC) }
	en.SelectEvent("past")
	if err := en.BeginDrag(DragMove, "past"); !errors.Is(err, ErrEventEnded) {
		t.Errorf("expected ErrEventEnded, got %v", err)
	}

	if err := en.BeginDrag(DragCreate, "past"); !errors.Is(err, ErrInvalidDragKind) {
		t.Errorf("expected ErrInvalidDragKind, got %v", err)
	}
}

func TestCommit_RejectsPastInterval(t *testing.T) {
	en := testGrid(nil)
	en.now = func() time.Time { return time.Date(2026, 1, 5, 23, 0, 0, 0, time.UTC) }

	if err := en.BeginCreate(0, 100); err != nil {
		t.Fatal(err)
	}
	_, err := en.Commit(actor, nil)
	if code, ok := IsValidation(err); !ok || code != CodePastTime {
		t.Fatalf("expected past_time rejection, got %v", err)
	}
}

func TestCommit_AttachesOwnerWhenViewingAnotherCalendar(t *testing.T) {
	en := testGrid(nil)
	owner := models.Attendee{Email: "owner@example.com", DisplayName: "Owner"}

	if err := en.BeginCreate(0, 100); err != nil {
		t.Fatal(err)
	}
	res, err := en.Commit(actor, &owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Create.Attendees) != 2 {
		t.Fatalf("expected both attendees, got %v", res.Create.Attendees)
	}
}
