package routes

import (
	"net/http"
	"time"

	"inhotel/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAssistantRoutes registers the conversational session endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant/sessions")
	{
		api.POST("", hb.CreateSessionHandler)
		api.POST("/:sessionID/messages", hb.SendMessageHandler)
		api.GET("/:sessionID/transcript", hb.GetTranscriptHandler)
		api.GET("/:sessionID/view", hb.GetViewStateHandler)
		api.POST("/:sessionID/selection", hb.SelectHotelHandler)
		api.DELETE("/:sessionID/selection", hb.ClearSelectionHandler)
		api.DELETE("/:sessionID", hb.ResetSessionHandler)
		api.GET("/:sessionID/hub", hb.GetHubHandler)
		api.PUT("/:sessionID/hub", hb.UpdateHubHandler)
	}
}

// RegisterHotelRoutes registers the read-only catalog endpoints.
func RegisterHotelRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/hotels")
	{
		api.GET("", hb.ListHotelsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm InHotel"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAssistantRoutes(r, hb)
	RegisterHotelRoutes(r, hb)
	RegisterHealthRoute(r)
}
