package models

import "time"

// AvailableInterval represents a continuous time block available for booking.
type AvailableInterval struct {
	Start int    `json:"start"` // Minutes from midnight
	End   int    `json:"end"`   // Minutes from midnight
	Label string `json:"label"` // e.g., "9:00 AM - 10:30 AM"
}

// MutualDay lists the free intervals two people share on one date.
type MutualDay struct {
	Date      time.Time           `json:"date"`
	DayName   string              `json:"dayName"`
	Intervals []AvailableInterval `json:"intervals"`
}
