// File: handlers/availability.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"slotgrid/models"
	"slotgrid/services/availability"
)

// AvailabilityService is wired in main before the routes are registered.
var AvailabilityService availability.AvailabilityService

// CreateAvailability stores a new named weekly availability for the caller.
func CreateAvailability(c *gin.Context) {
	var req models.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	a, err := AvailabilityService.Create(c.Request.Context(), ownerID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, a)
}

// GetAvailability resolves a share id. No ownership check: share ids are
// the public handle others use to view a schedule.
func GetAvailability(c *gin.Context) {
	a, err := AvailabilityService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// ListAvailabilities returns the caller's availabilities in display order.
func ListAvailabilities(c *gin.Context) {
	list, err := AvailabilityService.ListByOwner(c.Request.Context(), ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateAvailability applies a partial update to one availability.
func UpdateAvailability(c *gin.Context) {
	var req models.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	a, err := AvailabilityService.Update(c.Request.Context(), ownerID(c), c.Param("id"), req)
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAvailability removes one availability.
func DeleteAvailability(c *gin.Context) {
	if err := AvailabilityService.Delete(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondAvailabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "availability deleted"})
}

// RegenerateAvailabilityID swaps the share id so old links stop working.
func RegenerateAvailabilityID(c *gin.Context) {
	newID, err := AvailabilityService.RegenerateID(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": newID})
}

// SetFavoriteAvailability marks one availability as the caller's favorite.
func SetFavoriteAvailability(c *gin.Context) {
	if err := AvailabilityService.SetFavorite(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondAvailabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite updated"})
}

// UpdateBusyTimes replaces the busy blocks used by the mutual view.
func UpdateBusyTimes(c *gin.Context) {
	var req struct {
		BusyTimes []models.BusyBlock `json:"busyTimes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := AvailabilityService.UpdateBusyTimes(c.Request.Context(), ownerID(c), c.Param("id"), req.BusyTimes); err != nil {
		respondAvailabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "busy times updated"})
}

// SearchAvailabilities looks up shared availabilities by owner email or
// username. Repeating the parameter returns one result group per value, in
// request order.
func SearchAvailabilities(c *gin.Context) {
	ctx := c.Request.Context()

	if emails := c.QueryArray("email"); len(emails) > 0 {
		if len(emails) == 1 {
			list, err := AvailabilityService.SearchByEmail(ctx, emails[0])
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, list)
			return
		}
		groups, err := AvailabilityService.SearchByEmails(ctx, emails)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, groups)
		return
	}
	if usernames := c.QueryArray("username"); len(usernames) > 0 {
		if len(usernames) == 1 {
			list, err := AvailabilityService.SearchByUsername(ctx, usernames[0])
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, list)
			return
		}
		groups, err := AvailabilityService.SearchByUsernames(ctx, usernames)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, groups)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "email or username query parameter is required"})
}

func respondAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, availability.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, availability.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
