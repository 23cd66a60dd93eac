package models

import "time"

// RefreshPayload asks the background worker to re-poll one account's event
// window until an expected change becomes visible on the provider side.
// ExpectEventID and ExpectStart are empty for plain refreshes with nothing
// to confirm.
type RefreshPayload struct {
	AccountID     string    `json:"accountId"`
	WindowStart   time.Time `json:"windowStart"`
	WindowEnd     time.Time `json:"windowEnd"`
	ExpectEventID string    `json:"expectEventId,omitempty"`
	ExpectStart   time.Time `json:"expectStart,omitempty"`
	ExpectGone    bool      `json:"expectGone,omitempty"`
	Attempt       int       `json:"attempt"`
}
