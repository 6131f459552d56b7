package handlers

import (
	"errors"
	"io"
	"net/http"

	"inhotel/models"
	"inhotel/services/assistant"
	"inhotel/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler exposes the conversational assistant endpoints.
type AssistantHandler struct {
	Svc assistant.AssistantService
}

func NewAssistantHandler(svc assistant.AssistantService) *AssistantHandler {
	return &AssistantHandler{Svc: svc}
}

// CreateSessionHandler starts a new conversation.
func (h *AssistantHandler) CreateSessionHandler(c *gin.Context) {
	resp, err := h.Svc.CreateSession(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create session", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetSessionHandler clears a session back to its initial state.
func (h *AssistantHandler) ResetSessionHandler(c *gin.Context) {
	resp, err := h.Svc.ResetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTranscriptHandler returns the session transcript.
func (h *AssistantHandler) GetTranscriptHandler(c *gin.Context) {
	turns, err := h.Svc.Transcript(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"turns": turns})
}

// GetViewStateHandler returns the derived view state.
func (h *AssistantHandler) GetViewStateHandler(c *gin.Context) {
	view, err := h.Svc.ViewState(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SelectHotelHandler opens the detail panel for a displayed hotel.
func (h *AssistantHandler) SelectHotelHandler(c *gin.Context) {
	var req models.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid selection request", err.Error())
		return
	}
	view, err := h.Svc.SelectHotel(c.Request.Context(), c.Param("sessionID"), req.Name)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ClearSelectionHandler closes the detail panel.
func (h *AssistantHandler) ClearSelectionHandler(c *gin.Context) {
	view, err := h.Svc.ClearSelection(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SendMessageHandler accepts a user message and streams the assistant's
// reply as server-sent events: "snapshot" events with the accumulated
// partial text, then a single "done" event with the finalized render.
func (h *AssistantHandler) SendMessageHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid chat request", err.Error())
		return
	}

	handle, err := h.Svc.SendMessageStream(c.Request.Context(), c.Param("sessionID"), req.Text)
	if err != nil {
		if errors.Is(err, assistant.ErrTurnInFlight) {
			utils.JSONError(c, http.StatusConflict, "A turn is already in flight", err.Error())
			return
		}
		respondSessionError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	sub := handle.Stream.Subscribe()
	c.Stream(func(w io.Writer) bool {
		snapshot, ok := <-sub
		if ok {
			c.SSEvent("snapshot", gin.H{"text": snapshot})
			return true
		}

		outcome := <-handle.Result
		if outcome.Err != nil {
			h.emitTurnError(c, logger, c.Param("sessionID"), outcome.Err)
			return false
		}
		c.SSEvent("done", outcome.Render)
		return false
	})
}

// emitTurnError maps turn failures onto the SSE surface. Invalid tool
// arguments become a generic "couldn't process that" render; oracle failures
// are surfaced as retryable.
func (h *AssistantHandler) emitTurnError(c *gin.Context, logger *zap.Logger, sessionID string, err error) {
	var invalidArgs *assistant.InvalidToolArgumentsError
	var unavailable *assistant.ModelUnavailableError

	switch {
	case errors.As(err, &invalidArgs):
		logger.Warn("tool arguments rejected", zap.Error(err))
		// The render keeps the current view so the hotel panel does not blank.
		view, verr := h.Svc.ViewState(c.Request.Context(), sessionID)
		if verr != nil {
			logger.Warn("failed to load view state for error render", zap.Error(verr))
		}
		c.SSEvent("done", models.ChatRender{
			Text: "Sorry, I couldn't process that request. Please try rephrasing it.",
			View: view,
		})
	case errors.As(err, &unavailable):
		logger.Warn("model unavailable", zap.Error(err))
		c.SSEvent("error", gin.H{
			"message":   "The assistant is temporarily unavailable. Please try again.",
			"retryable": true,
		})
	default:
		logger.Error("turn failed", zap.Error(err))
		c.SSEvent("error", gin.H{
			"message":   "Something went wrong while processing your message.",
			"retryable": false,
		})
	}
}

func respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, assistant.ErrSessionNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Session not found", err.Error())
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
}
