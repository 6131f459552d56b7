package handlers

import (
	"net/http"

	"inhotel/models"
	"inhotel/services/assistant"
	"inhotel/utils"

	"github.com/gin-gonic/gin"
)

// HubHandler exposes the smart-home hub state of a session.
type HubHandler struct {
	Svc assistant.AssistantService
}

func NewHubHandler(svc assistant.AssistantService) *HubHandler {
	return &HubHandler{Svc: svc}
}

// GetHubHandler returns the session's hub state.
func (h *HubHandler) GetHubHandler(c *gin.Context) {
	state, err := h.Svc.HubState(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// UpdateHubHandler replaces the session's hub state.
func (h *HubHandler) UpdateHubHandler(c *gin.Context) {
	var state models.HubState
	if err := c.ShouldBindJSON(&state); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid hub state", err.Error())
		return
	}
	updated, err := h.Svc.UpdateHub(c.Request.Context(), c.Param("sessionID"), state)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
