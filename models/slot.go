package models

import "time"

// BackendSlot is one recurring weekly availability range as stored by the
// availability service: minutes from midnight in the owner's timezone frame.
type BackendSlot struct {
	DayOfWeek int `bson:"dayOfWeek" json:"day_of_week"` // 0=Sunday, 1=Monday, ..., 6=Saturday
	StartTime int `bson:"startTime" json:"start_time"`  // minutes from midnight (0-1439)
	EndTime   int `bson:"endTime" json:"end_time"`      // minutes from midnight (0-1439)
}

// TimeSlot is a single contiguous availability window on one calendar day,
// formatted for display. End is strictly after Start within the same nominal
// day; ranges that wrap midnight are split into two slots before this type
// is built.
type TimeSlot struct {
	Start string `json:"start"` // e.g. "9:00 AM"
	End   string `json:"end"`   // e.g. "5:30 PM"
}

// DayAvailability is one rendered day column. It is derived from the backend
// slots and the visible date range, never persisted.
type DayAvailability struct {
	Date      time.Time  `json:"date"`
	DayName   string     `json:"dayName"`
	Available bool       `json:"available"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

// BusyBlock is an absolute time interval during which a person is occupied
// by a calendar event.
type BusyBlock struct {
	Start time.Time `bson:"startTime" json:"start_time"`
	End   time.Time `bson:"endTime" json:"end_time"`
}
