package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotgrid/handlers"
	"slotgrid/middleware"
	"slotgrid/utils"
)

// RegisterAvailabilityRoutes registers the availability store endpoints.
// Reads by share id and searches are public; everything that mutates a
// record requires the owner header.
func RegisterAvailabilityRoutes(r *gin.Engine) {
	api := r.Group("/api/availabilities")
	{
		api.GET("/search", handlers.SearchAvailabilities)
		api.GET("/:id", handlers.GetAvailability)

		protected := api.Group("")
		protected.Use(middleware.RequireOwner())
		protected.GET("", handlers.ListAvailabilities)
		protected.POST("", handlers.CreateAvailability)
		protected.PATCH("/:id", handlers.UpdateAvailability)
		protected.DELETE("/:id", handlers.DeleteAvailability)
		protected.POST("/:id/regenerate-id", handlers.RegenerateAvailabilityID)
		protected.POST("/:id/favorite", handlers.SetFavoriteAvailability)
		protected.PUT("/:id/busy-times", handlers.UpdateBusyTimes)
	}
}

// RegisterEventRoutes registers the calendar event endpoints.
func RegisterEventRoutes(r *gin.Engine) {
	api := r.Group("/api/events")
	api.Use(middleware.RequireOwner())
	{
		api.GET("", handlers.ListEvents)
		api.POST("", handlers.CreateEvent)
		api.PATCH("/:id", handlers.UpdateEvent)
		api.DELETE("/:id", handlers.DeleteEvent)
		api.POST("/:id/respond", handlers.RespondToEvent)
	}
}

// RegisterMutualRoutes registers the mutual availability endpoint.
func RegisterMutualRoutes(r *gin.Engine) {
	r.GET("/api/mutual", handlers.GetMutualAvailability)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.OwnerHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAvailabilityRoutes(r)
	RegisterEventRoutes(r)
	RegisterMutualRoutes(r)
	RegisterHealthRoute(r)
}
