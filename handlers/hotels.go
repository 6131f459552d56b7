package handlers

import (
	"net/http"

	"inhotel/database/repository/catalog"
	"inhotel/utils"

	"github.com/gin-gonic/gin"
)

// HotelsHandler serves the catalog directly: the initial "show all hotels"
// panel and plain substring search.
type HotelsHandler struct {
	Catalog catalog.Repository
}

func NewHotelsHandler(cat catalog.Repository) *HotelsHandler {
	return &HotelsHandler{Catalog: cat}
}

// ListHotelsHandler returns all hotels, or those matching ?query= by name or
// location substring.
func (h *HotelsHandler) ListHotelsHandler(c *gin.Context) {
	query := c.Query("query")

	var err error
	var hotels any
	if query == "" {
		hotels, err = h.Catalog.All(c.Request.Context())
	} else {
		hotels, err = h.Catalog.Search(c.Request.Context(), query)
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load hotels", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"allHotels": hotels})
}
