package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle collects every route handler for registration.
type HandlerBundle struct {
	// Assistant endpoints.
	CreateSessionHandler  gin.HandlerFunc
	ResetSessionHandler   gin.HandlerFunc
	SendMessageHandler    gin.HandlerFunc
	GetTranscriptHandler  gin.HandlerFunc
	GetViewStateHandler   gin.HandlerFunc
	SelectHotelHandler    gin.HandlerFunc
	ClearSelectionHandler gin.HandlerFunc

	// Hub endpoints.
	GetHubHandler    gin.HandlerFunc
	UpdateHubHandler gin.HandlerFunc

	// Catalog endpoints.
	ListHotelsHandler gin.HandlerFunc
}
