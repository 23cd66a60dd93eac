package schedule

import (
	"fmt"
	"time"

	"slotgrid/models"
)

// DragKind distinguishes the four gesture flows. All of them share one
// session shape and one commit path; they differ only in their entry trigger.
type DragKind int

const (
	DragCreate DragKind = iota
	DragMove
	DragResizeTop
	DragResizeBottom
)

// Duration bounds enforced on every commit, in minutes.
const (
	MinEventDuration = 15
	MaxEventDuration = 480
)

// GridDay is the engine's view of one interactive day column.
type GridDay struct {
	Date      time.Time
	Available bool
	Window    DayWindow
	Geometry  Geometry
}

// NewGridDays derives interactive day columns from display availability.
// Days without slots are rendered but non-interactive.
func NewGridDays(days []models.DayAvailability) []GridDay {
	out := make([]GridDay, 0, len(days))
	for _, d := range days {
		gd := GridDay{Date: d.Date}
		if w, ok := WindowOf(d); ok && d.Available {
			gd.Available = true
			gd.Window = w
			gd.Geometry = GeometryFor(w)
		}
		out = append(out, gd)
	}
	return out
}

// DragSession tracks one in-progress create, move, or resize gesture. The
// engine owns it exclusively for the lifetime of the gesture; it is
// discarded on release, cancel, or validation failure. Preview values never
// touch the materialized events.
type DragSession struct {
	Kind             DragKind
	DayIndex         int
	EventID          string
	OriginalStart    int
	OriginalDuration int
	PreviewStart     int
	PreviewDuration  int

	anchorMinutes int // minute offset of the initial pointer position (create only)
}

// CreatePayload is the structured create request handed to the calendar
// collaborator when a create gesture commits.
type CreatePayload struct {
	Title     string
	Start     time.Time
	End       time.Time
	Attendees []models.Attendee
}

// UpdatePayload carries a reschedule: the referenced event with only its
// interval replaced.
type UpdatePayload struct {
	EventID string
	Start   time.Time
	End     time.Time
}

// CommitResult is the outcome of a committed gesture. Exactly one of Create
// or Update is set.
type CommitResult struct {
	Create *CreatePayload
	Update *UpdatePayload
}

// Engine owns the single gesture session for a grid. All methods run on the
// caller's event loop; there is no internal concurrency and no locking.
type Engine struct {
	days       []GridDay
	events     []models.AvailabilityEvent
	selectedID string
	session    *DragSession
	now        func() time.Time
}

// NewEngine builds an interaction engine over the given day columns and
// materialized events. now is injectable for tests; nil means time.Now.
func NewEngine(days []GridDay, events []models.AvailabilityEvent, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{days: days, events: events, now: now}
}

// SetEvents replaces the materialized event list after a provider refresh.
func (en *Engine) SetEvents(events []models.AvailabilityEvent) {
	en.events = events
}

// Events returns the current materialized event list.
func (en *Engine) Events() []models.AvailabilityEvent {
	return en.events
}

// SelectEvent marks an event as focused. Selection is a prerequisite for
// move/resize gestures, set by a separate click or tap.
func (en *Engine) SelectEvent(id string) error {
	if en.findEvent(id) == nil {
		return ErrEventNotFound
	}
	en.selectedID = id
	return nil
}

// ClearSelection drops the focused event, if any.
func (en *Engine) ClearSelection() {
	en.selectedID = ""
}

// Session returns a copy of the active drag session, if one exists.
func (en *Engine) Session() (DragSession, bool) {
	if en.session == nil {
		return DragSession{}, false
	}
	return *en.session, true
}

// BeginCreate starts a drag-to-create at a vertical pixel offset inside an
// available day column. Starting over an existing event or while another
// session is active is rejected.
func (en *Engine) BeginCreate(dayIndex int, y float64) error {
	if en.session != nil {
		return ErrSessionActive
	}
	if dayIndex < 0 || dayIndex >= len(en.days) {
		return ErrDayUnavailable
	}
	day := en.days[dayIndex]
	total := day.Window.TotalMinutes()
	if !day.Available || total < MinEventDuration {
		return ErrDayUnavailable
	}

	m := clamp(day.Geometry.PixelsToMinutes(y), 0, total)
	if en.eventAt(dayIndex, m) != nil {
		return ErrSpaceOccupied
	}

	start := m
	if start+MinEventDuration > total {
		start = total - MinEventDuration
	}
	en.session = &DragSession{
		Kind:             DragCreate,
		DayIndex:         dayIndex,
		OriginalStart:    start,
		OriginalDuration: MinEventDuration,
		PreviewStart:     start,
		PreviewDuration:  MinEventDuration,
		anchorMinutes:    m,
	}
	return nil
}

// UpdateCreate feeds the current pointer position into the live preview of a
// create session. The span is clamped to the day window, and spans shorter
// than the minimum duration use the floor anchored at the drag start point.
func (en *Engine) UpdateCreate(y float64) error {
	s := en.session
	if s == nil || s.Kind != DragCreate {
		return ErrNoSession
	}
	day := en.days[s.DayIndex]
	total := day.Window.TotalMinutes()

	m := clamp(day.Geometry.PixelsToMinutes(y), 0, total)
	lo, hi := s.anchorMinutes, m
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi-lo < MinEventDuration {
		if m >= s.anchorMinutes {
			lo, hi = s.anchorMinutes, s.anchorMinutes+MinEventDuration
		} else {
			lo, hi = s.anchorMinutes-MinEventDuration, s.anchorMinutes
		}
		if lo < 0 {
			lo, hi = 0, MinEventDuration
		}
		if hi > total {
			lo, hi = total-MinEventDuration, total
		}
	}
	s.PreviewStart = lo
	s.PreviewDuration = hi - lo
	return nil
}

// BeginDrag starts a move or resize on an existing provider-sourced event.
// The event must currently be selected and must not have already ended.
func (en *Engine) BeginDrag(kind DragKind, eventID string) error {
	if kind == DragCreate {
		return ErrInvalidDragKind
	}
	if en.session != nil {
		return ErrSessionActive
	}
	e := en.findEvent(eventID)
	if e == nil {
		return ErrEventNotFound
	}
	if !e.IsFromCalendar {
		return ErrNotFromCalendar
	}
	if en.selectedID != eventID {
		return ErrNotSelected
	}
	_, end := en.AbsoluteInterval(e.DayIndex, e.StartMinutes, e.DurationMinutes)
	if !end.After(en.now()) {
		return ErrEventEnded
	}

	en.session = &DragSession{
		Kind:             kind,
		DayIndex:         e.DayIndex,
		EventID:          eventID,
		OriginalStart:    e.StartMinutes,
		OriginalDuration: e.DurationMinutes,
		PreviewStart:     e.StartMinutes,
		PreviewDuration:  e.DurationMinutes,
	}
	return nil
}

// UpdateDrag feeds the accumulated pixel delta from the drag origin into the
// live preview of a move or resize session.
func (en *Engine) UpdateDrag(deltaPx float64) error {
	s := en.session
	if s == nil || s.Kind == DragCreate {
		return ErrNoSession
	}
	day := en.days[s.DayIndex]
	total := day.Window.TotalMinutes()
	delta := day.Geometry.PixelsToMinutes(deltaPx)

	switch s.Kind {
	case DragMove:
		// Both boundaries translate; the interval stays inside the window.
		s.PreviewStart = clamp(s.OriginalStart+delta, 0, total-s.OriginalDuration)
		s.PreviewDuration = s.OriginalDuration
	case DragResizeTop:
		// The end boundary never moves on a top resize.
		end := s.OriginalStart + s.OriginalDuration
		start := clamp(s.OriginalStart+delta, 0, end-MinEventDuration)
		s.PreviewStart = start
		s.PreviewDuration = end - start
	case DragResizeBottom:
		end := clamp(s.OriginalStart+s.OriginalDuration+delta, s.OriginalStart+MinEventDuration, total)
		s.PreviewStart = s.OriginalStart
		s.PreviewDuration = end - s.OriginalStart
	}
	return nil
}

// Cancel discards the active session without committing. The grid state is
// untouched since previews never leave the session.
func (en *Engine) Cancel() {
	en.session = nil
}

// Commit finalizes the active session: it validates the previewed interval
// against existing events, the wall clock, and the duration bounds, then
// produces the create or update payload for the calendar collaborator. The
// session is discarded whether or not validation passes; on failure the
// prior grid state is retained and the error carries the specific reason.
func (en *Engine) Commit(acting models.Attendee, owner *models.Attendee) (*CommitResult, error) {
	s := en.session
	if s == nil {
		return nil, ErrNoSession
	}
	defer func() { en.session = nil }()

	start, end := en.AbsoluteInterval(s.DayIndex, s.PreviewStart, s.PreviewDuration)

	if !end.After(start) {
		return nil, newValidationError(CodeInvalidRange, "end time must be after start time")
	}
	if s.PreviewDuration < MinEventDuration {
		return nil, newValidationError(CodeTooShort,
			fmt.Sprintf("events must be at least %d minutes long", MinEventDuration))
	}
	if s.PreviewDuration > MaxEventDuration {
		return nil, newValidationError(CodeTooLong,
			fmt.Sprintf("events cannot be longer than %d hours", MaxEventDuration/60))
	}
	if start.Before(en.now()) {
		return nil, newValidationError(CodePastTime, "cannot schedule an event in the past")
	}
	if HasOverlap(s.DayIndex, s.PreviewStart, s.PreviewDuration, en.events, s.EventID) {
		return nil, newValidationError(CodeOverlap, "this time overlaps an existing event")
	}

	if s.Kind == DragCreate {
		attendees := []models.Attendee{acting}
		if owner != nil && owner.Email != acting.Email {
			attendees = append(attendees, *owner)
		}
		return &CommitResult{Create: &CreatePayload{
			Title:     defaultTitle(start),
			Start:     start,
			End:       end,
			Attendees: attendees,
		}}, nil
	}

	return &CommitResult{Update: &UpdatePayload{
		EventID: s.EventID,
		Start:   start,
		End:     end,
	}}, nil
}

// AbsoluteInterval resolves a window-relative interval to wall-clock times
// on the day's date.
func (en *Engine) AbsoluteInterval(dayIndex, startMin, durMin int) (time.Time, time.Time) {
	day := en.days[dayIndex]
	base := time.Date(day.Date.Year(), day.Date.Month(), day.Date.Day(), 0, 0, 0, 0, day.Date.Location())
	start := base.Add(time.Duration(day.Window.StartMinutes+startMin) * time.Minute)
	return start, start.Add(time.Duration(durMin) * time.Minute)
}

func (en *Engine) findEvent(id string) *models.AvailabilityEvent {
	for i := range en.events {
		if en.events[i].ID == id {
			return &en.events[i]
		}
	}
	return nil
}

// eventAt returns the event covering minute offset m on a day, if any.
func (en *Engine) eventAt(dayIndex, m int) *models.AvailabilityEvent {
	for i := range en.events {
		e := &en.events[i]
		if e.DayIndex != dayIndex {
			continue
		}
		if m >= e.StartMinutes && m < e.StartMinutes+e.DurationMinutes {
			return e
		}
	}
	return nil
}

func defaultTitle(start time.Time) string {
	return "Meeting on " + start.Format("Mon, Jan 2 at 3:04 PM")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
