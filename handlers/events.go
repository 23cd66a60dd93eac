// File: handlers/events.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"slotgrid/models"
	"slotgrid/services/grid"
	"slotgrid/services/schedule"
)

// GridSvc is wired in main before the routes are registered.
var GridSvc grid.GridService

// ownerID returns the caller identity placed on the context by the
// middleware.
func ownerID(c *gin.Context) string {
	return c.GetString("ownerID")
}

// accountID picks the calendar the request targets.
func accountID(c *gin.Context) string {
	if account := c.Query("account"); account != "" {
		return account
	}
	return "primary"
}

// eventWindow parses the required start and end query parameters.
func eventWindow(c *gin.Context) (models.EventWindow, bool) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be an RFC3339 timestamp"})
		return models.EventWindow{}, false
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be an RFC3339 timestamp"})
		return models.EventWindow{}, false
	}
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be after start"})
		return models.EventWindow{}, false
	}
	return models.EventWindow{Start: start, End: end}, true
}

// ListEvents returns the events in the requested window.
func ListEvents(c *gin.Context) {
	window, ok := eventWindow(c)
	if !ok {
		return
	}
	events, err := GridSvc.ListEvents(c.Request.Context(), accountID(c), window)
	if err != nil {
		respondGridError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// CreateEvent commits a create gesture to the provider.
func CreateEvent(c *gin.Context) {
	window, ok := eventWindow(c)
	if !ok {
		return
	}

	var req struct {
		Title     string            `json:"title" binding:"required"`
		Start     time.Time         `json:"start" binding:"required"`
		End       time.Time         `json:"end" binding:"required"`
		Attendees []models.Attendee `json:"attendees"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if !req.End.After(req.Start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be after start"})
		return
	}

	created, err := GridSvc.CommitCreate(c.Request.Context(), accountID(c), schedule.CreatePayload{
		Title:     req.Title,
		Start:     req.Start,
		End:       req.End,
		Attendees: req.Attendees,
	}, window)
	if err != nil {
		respondGridError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateEvent commits a move or resize gesture.
func UpdateEvent(c *gin.Context) {
	window, ok := eventWindow(c)
	if !ok {
		return
	}

	var req struct {
		Start time.Time `json:"start" binding:"required"`
		End   time.Time `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if !req.End.After(req.Start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be after start"})
		return
	}

	updated, err := GridSvc.CommitUpdate(c.Request.Context(), accountID(c), schedule.UpdatePayload{
		EventID: c.Param("id"),
		Start:   req.Start,
		End:     req.End,
	}, window)
	if err != nil {
		respondGridError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEvent removes an event from the provider calendar.
func DeleteEvent(c *gin.Context) {
	window, ok := eventWindow(c)
	if !ok {
		return
	}
	if err := GridSvc.DeleteEvent(c.Request.Context(), accountID(c), c.Param("id"), window); err != nil {
		respondGridError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// RespondToEvent records the caller's accept or decline on an invitation.
func RespondToEvent(c *gin.Context) {
	window, ok := eventWindow(c)
	if !ok {
		return
	}

	var req struct {
		Accepted *bool `json:"accepted" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := GridSvc.Respond(c.Request.Context(), accountID(c), c.Param("id"), *req.Accepted, window)
	if err != nil {
		respondGridError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func respondGridError(c *gin.Context, err error) {
	var rerr *grid.RemoteError
	switch {
	case errors.Is(err, grid.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &rerr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
