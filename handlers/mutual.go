// File: handlers/mutual.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"slotgrid/services/schedule"
)

// GetMutualAvailability intersects two shared availabilities over one week
// and subtracts the owner's stored busy blocks. The viewer passes both
// share ids; no ownership is required to read either side.
func GetMutualAvailability(c *gin.Context) {
	ctx := c.Request.Context()

	viewer, err := AvailabilityService.GetByID(ctx, c.Query("viewer"))
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}
	owner, err := AvailabilityService.GetByID(ctx, c.Query("owner"))
	if err != nil {
		respondAvailabilityError(c, err)
		return
	}

	weekStart, err := time.Parse("2006-01-02", c.Query("weekStart"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekStart must be a YYYY-MM-DD date"})
		return
	}

	days := 7
	if raw := c.Query("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 1 || days > 31 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 31"})
			return
		}
	}

	week := schedule.MutualWeek(viewer.Slots, owner.Slots, weekStart, days, owner.BusyTimes)
	c.JSON(http.StatusOK, gin.H{
		"weekStart": weekStart.Format("2006-01-02"),
		"days":      week,
	})
}
