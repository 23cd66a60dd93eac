package schedule

import (
	"time"

	"go.uber.org/zap"

	"slotgrid/models"
	"slotgrid/utils"
)

// MaterializeEvents projects provider events onto the day grid, producing
// the window-relative records the grid renders. Materialization happens
// fresh on every render pass; nothing here is mutated afterwards.
//
// Events with missing or inverted timestamps are skipped with a warning
// rather than crashing the view. Events that fall outside a day's window
// are clipped to it; events with no overlap at all are dropped.
func MaterializeEvents(events []models.Event, days []GridDay) []models.AvailabilityEvent {
	logger := utils.GetLogger()

	var out []models.AvailabilityEvent
	for _, ev := range events {
		if ev.Start.IsZero() || ev.End.IsZero() || !ev.End.After(ev.Start) {
			logger.Warn("skipping event with malformed timestamps",
				zap.String("eventID", ev.ID), zap.String("summary", ev.Summary))
			continue
		}

		dayIndex := dayIndexOf(ev.Start, days)
		if dayIndex < 0 {
			continue
		}
		day := days[dayIndex]
		if !day.Available {
			continue
		}

		localStart := ev.Start.In(day.Date.Location())
		localEnd := ev.End.In(day.Date.Location())
		startMin := minutesFromMidnight(localStart) - day.Window.StartMinutes
		endMin := minutesFromMidnight(localEnd) - day.Window.StartMinutes
		if !sameDate(localStart, localEnd) {
			// Spills past midnight; clip to the end of this day's window.
			endMin = day.Window.TotalMinutes()
		}

		total := day.Window.TotalMinutes()
		if endMin <= 0 || startMin >= total {
			continue
		}
		startMin = clamp(startMin, 0, total)
		endMin = clamp(endMin, 0, total)
		if endMin <= startMin {
			continue
		}

		out = append(out, models.AvailabilityEvent{
			ID:               ev.ID,
			DayIndex:         dayIndex,
			StartMinutes:     startMin,
			DurationMinutes:  endMin - startMin,
			Title:            ev.Summary,
			IsFromCalendar:   true,
			InvitationStatus: InvitationStatusOf(ev.Attendees),
			MeetLink:         ev.HangoutLink,
		})
	}
	return out
}

// InvitationStatusOf summarizes attendee responses for one event. Tentative
// and unanswered invitations count as pending; a mix of accepted and
// declined responses is reported as mixed.
func InvitationStatusOf(attendees []models.Attendee) models.InvitationStatus {
	if len(attendees) == 0 {
		return models.InvitationAccepted
	}

	var accepted, declined, pending bool
	for _, a := range attendees {
		switch a.ResponseStatus {
		case "accepted":
			accepted = true
		case "declined":
			declined = true
		default:
			pending = true
		}
	}

	switch {
	case accepted && !declined && !pending:
		return models.InvitationAccepted
	case declined && !accepted && !pending:
		return models.InvitationDeclined
	case pending && !accepted && !declined:
		return models.InvitationPending
	default:
		return models.InvitationMixed
	}
}

func dayIndexOf(t time.Time, days []GridDay) int {
	for i, d := range days {
		if sameDate(t.In(d.Date.Location()), d.Date) {
			return i
		}
	}
	return -1
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func minutesFromMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
