package models

import "time"

// Availability is a named set of recurring weekly slots owned by one user.
type Availability struct {
	ID           string        `bson:"id" json:"id"`
	OwnerID      string        `bson:"ownerId" json:"ownerId"`
	OwnerEmail   string        `bson:"ownerEmail,omitempty" json:"ownerEmail,omitempty"`
	OwnerName    string        `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	Title        string        `bson:"title" json:"title"`
	Description  string        `bson:"description" json:"description"`
	Slots        []BackendSlot `bson:"slots" json:"slots"`
	Timezone     string        `bson:"timezone" json:"timezone"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
	BusyTimes    []BusyBlock   `bson:"busyTimes,omitempty" json:"busyTimes,omitempty"`
	IsFavorite   bool          `bson:"isFavorite" json:"isFavorite"`
	DisplayOrder int           `bson:"displayOrder" json:"displayOrder"`
}

// CreateAvailabilityRequest is the payload for creating an availability.
type CreateAvailabilityRequest struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	Slots       []BackendSlot `json:"slots" binding:"required"`
	Timezone    string        `json:"timezone" binding:"required"`
	OwnerEmail  string        `json:"ownerEmail"`
	OwnerName   string        `json:"ownerName"`
	BusyTimes   []BusyBlock   `json:"busyTimes"`
}

// UpdateAvailabilityRequest carries a partial update; nil fields are left
// untouched.
type UpdateAvailabilityRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Slots       *[]BackendSlot `json:"slots"`
	Timezone    *string        `json:"timezone"`
}
