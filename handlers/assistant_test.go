package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inhotel/models"
	"inhotel/services/assistant"
	"inhotel/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAssistant implements assistant.AssistantService with overridable hooks.
type stubAssistant struct {
	createSession     func(ctx context.Context) (*models.SessionResponse, error)
	sendMessageStream func(ctx context.Context, sessionID, text string) (*assistant.TurnHandle, error)
	viewState         func(ctx context.Context, sessionID string) (models.ViewState, error)
	selectHotel       func(ctx context.Context, sessionID, name string) (models.ViewState, error)
}

func (s *stubAssistant) CreateSession(ctx context.Context) (*models.SessionResponse, error) {
	return s.createSession(ctx)
}

func (s *stubAssistant) ResetSession(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	return &models.SessionResponse{SessionID: sessionID}, nil
}

func (s *stubAssistant) SendMessage(ctx context.Context, sessionID, text string) (*models.ChatRender, error) {
	handle, err := s.sendMessageStream(ctx, sessionID, text)
	if err != nil {
		return nil, err
	}
	outcome := <-handle.Result
	return outcome.Render, outcome.Err
}

func (s *stubAssistant) SendMessageStream(ctx context.Context, sessionID, text string) (*assistant.TurnHandle, error) {
	return s.sendMessageStream(ctx, sessionID, text)
}

func (s *stubAssistant) Transcript(ctx context.Context, sessionID string) ([]models.Turn, error) {
	return nil, nil
}

func (s *stubAssistant) ViewState(ctx context.Context, sessionID string) (models.ViewState, error) {
	return s.viewState(ctx, sessionID)
}

func (s *stubAssistant) SelectHotel(ctx context.Context, sessionID, name string) (models.ViewState, error) {
	return s.selectHotel(ctx, sessionID, name)
}

func (s *stubAssistant) ClearSelection(ctx context.Context, sessionID string) (models.ViewState, error) {
	return models.ViewState{}, nil
}

func (s *stubAssistant) HubState(ctx context.Context, sessionID string) (models.HubState, error) {
	return models.HubState{}, nil
}

func (s *stubAssistant) UpdateHub(ctx context.Context, sessionID string, state models.HubState) (models.HubState, error) {
	return state, nil
}

func newAssistantRouter(svc assistant.AssistantService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()

	h := NewAssistantHandler(svc)
	router := gin.New()
	router.POST("/api/sessions", h.CreateSessionHandler)
	router.POST("/api/sessions/:sessionID/messages", h.SendMessageHandler)
	router.GET("/api/sessions/:sessionID/view", h.GetViewStateHandler)
	router.POST("/api/sessions/:sessionID/selection", h.SelectHotelHandler)
	return router
}

// closeNotifyRecorder adds the http.CloseNotifier method gin's
// Context.Stream requires, which httptest.ResponseRecorder lacks.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool {
	return make(chan bool)
}

func newStreamRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder()}
}

func finishedTurn(text string, outcome assistant.TurnOutcome) *assistant.TurnHandle {
	stream := assistant.NewStreamValue()
	if text != "" {
		_ = stream.Push(text)
	}
	_ = stream.Finish()
	result := make(chan assistant.TurnOutcome, 1)
	result <- outcome
	return &assistant.TurnHandle{Stream: stream, Result: result}
}

func TestCreateSessionHandler(t *testing.T) {
	router := newAssistantRouter(&stubAssistant{
		createSession: func(context.Context) (*models.SessionResponse, error) {
			return &models.SessionResponse{SessionID: "abc-123"}, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "abc-123")
}

func TestSendMessageHandlerRejectsBadBody(t *testing.T) {
	router := newAssistantRouter(&stubAssistant{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/s1/messages", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendMessageHandlerTurnInFlight(t *testing.T) {
	router := newAssistantRouter(&stubAssistant{
		sendMessageStream: func(context.Context, string, string) (*assistant.TurnHandle, error) {
			return nil, assistant.ErrTurnInFlight
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/s1/messages", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSendMessageHandlerUnknownSession(t *testing.T) {
	router := newAssistantRouter(&stubAssistant{
		sendMessageStream: func(context.Context, string, string) (*assistant.TurnHandle, error) {
			return nil, assistant.ErrSessionNotFound
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/s1/messages", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendMessageHandlerStreamsSnapshotsThenDone(t *testing.T) {
	render := &models.ChatRender{Text: "Hello there"}
	router := newAssistantRouter(&stubAssistant{
		sendMessageStream: func(context.Context, string, string) (*assistant.TurnHandle, error) {
			return finishedTurn("Hello there", assistant.TurnOutcome{Render: render}), nil
		},
	})

	w := newStreamRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/s1/messages", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "event:snapshot")
	assert.Contains(t, body, "event:done")
	assert.Contains(t, body, "Hello there")
}

func TestSendMessageHandlerModelUnavailable(t *testing.T) {
	router := newAssistantRouter(&stubAssistant{
		sendMessageStream: func(context.Context, string, string) (*assistant.TurnHandle, error) {
			outcome := assistant.TurnOutcome{Err: &assistant.ModelUnavailableError{Err: errors.New("upstream 503")}}
			return finishedTurn("", outcome), nil
		},
	})

	w := newStreamRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/s1/messages", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Contains(t, body, "event:error")
	assert.Contains(t, body, `"retryable":true`)
}

func TestSendMessageHandlerInvalidToolArguments(t *testing.T) {
	router := newAssistantRouter(&stubAssistant{
		sendMessageStream: func(context.Context, string, string) (*assistant.TurnHandle, error) {
			outcome := assistant.TurnOutcome{Err: &assistant.InvalidToolArgumentsError{Tool: "findHotel", Reason: "missing query"}}
			return finishedTurn("", outcome), nil
		},
		viewState: func(context.Context, string) (models.ViewState, error) {
			return models.ViewState{
				DisplayedHotels: []models.Hotel{{Name: "Paris Grand"}},
				ActiveQuery:     "Paris",
			}, nil
		},
	})

	w := newStreamRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/s1/messages", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Contains(t, body, "event:done")
	assert.Contains(t, body, "couldn't process that request")
	assert.NotContains(t, body, "event:error")

	// The rejected turn keeps showing the current hotel panel.
	assert.Contains(t, body, "Paris Grand")
	assert.NotContains(t, body, `"displayedHotels":null`)
}

func TestGetViewStateHandlerUnknownSession(t *testing.T) {
	router := newAssistantRouter(&stubAssistant{
		viewState: func(context.Context, string) (models.ViewState, error) {
			return models.ViewState{}, assistant.ErrSessionNotFound
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/s1/view", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectHotelHandler(t *testing.T) {
	router := newAssistantRouter(&stubAssistant{
		selectHotel: func(_ context.Context, _ string, name string) (models.ViewState, error) {
			return models.ViewState{SelectedHotelName: name, DetailPanelOpen: true}, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/s1/selection", strings.NewReader(`{"name":"Paris Grand"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Paris Grand")
	assert.Contains(t, w.Body.String(), `"detailPanelOpen":true`)
}
