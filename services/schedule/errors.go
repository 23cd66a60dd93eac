package schedule

import (
	"errors"
	"fmt"
)

// Gesture guard errors. These reject a session before it starts; the grid
// state is untouched.
var (
	ErrSessionActive   = errors.New("another gesture session is already active")
	ErrDayUnavailable  = errors.New("day is not available for scheduling")
	ErrSpaceOccupied   = errors.New("cannot start a create drag over an existing event")
	ErrEventNotFound   = errors.New("event not found in grid")
	ErrNotSelected     = errors.New("event must be selected before dragging")
	ErrNotFromCalendar = errors.New("only provider-sourced events can be rescheduled")
	ErrEventEnded      = errors.New("an event that already ended cannot be rescheduled")
	ErrNoSession       = errors.New("no active gesture session")
	ErrInvalidDragKind = errors.New("drag kind must be move or resize")
)

// Validation codes distinguish the reason a commit was rejected.
const (
	CodeOverlap      = "overlap"
	CodePastTime     = "past_time"
	CodeTooShort     = "too_short"
	CodeTooLong      = "too_long"
	CodeInvalidRange = "invalid_range"
)

// ValidationError rejects a gesture commit before any remote call is made.
// The session is discarded and the prior grid state retained.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(code, msg string) error {
	return &ValidationError{Code: code, Message: msg}
}

// IsValidation reports whether err is a ValidationError and returns its code.
func IsValidation(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code, true
	}
	return "", false
}
