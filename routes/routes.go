package routes

import (
	"net/http"
	"time"

	"tutorhub/handlers"
	"tutorhub/middleware"
	"tutorhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSlotRoutes registers the slot scheduling endpoints.
func RegisterSlotRoutes(r *gin.Engine, sh *handlers.SlotHandler) {
	api := r.Group("/api/slots")
	{
		// All slot endpoints require an authenticated instructor.
		api.Use(middleware.JWTAuthInstructorMiddleware())
		api.POST("", sh.CreateSlotHandler)
		api.POST("/recurring", sh.CreateRecurringSlotsHandler)
		api.GET("", sh.ListSlotsHandler)
		api.GET("/stats", sh.SlotStatsHandler)
		api.PATCH("/:slotID", sh.UpdateSlotHandler)
		api.DELETE("/:slotID", sh.DeleteSlotHandler)
		// Bulk day deletion keys on ?date= to avoid a path clash with :slotID.
		api.DELETE("", sh.DeleteUnbookedSlotsForDateHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, sh *handlers.SlotHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSlotRoutes(r, sh)
	RegisterHealthRoute(r)
}
