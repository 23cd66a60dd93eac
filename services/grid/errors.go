package grid

import (
	"errors"
	"fmt"
)

// ErrEventNotFound is returned when a referenced event no longer exists on
// the provider side.
var ErrEventNotFound = errors.New("calendar event not found")

// RemoteError wraps a provider failure with the operation that hit it, so
// handlers can report what was being attempted without parsing messages.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("calendar %s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func remoteErr(op string, err error) error {
	return &RemoteError{Op: op, Err: err}
}
