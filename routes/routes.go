package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"suplient/handlers"
	"suplient/middleware"
	"suplient/utils"
)

// SetupRouter builds the gin engine with the global middleware stack and all
// scheduling routes registered.
func SetupRouter(hb *handlers.HandlerBundle) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSchedulingRoutes(r, hb)
	RegisterHealthRoute(r)
	return r
}

// RegisterSchedulingRoutes sets up the endpoints for the scheduling engine.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/scheduling")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("/availability", hb.GetAvailability)
		api.GET("/bookings", hb.ListBookings)
		api.POST("/bookings", hb.CommitBooking)
		api.POST("/bookings/:id/meeting", hb.AttachMeeting)
		api.PATCH("/bookings/:id/status", hb.UpdateBookingStatus)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": status})
	})
}
