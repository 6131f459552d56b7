package assistant

import (
	"context"
	"sync"
	"time"

	"inhotel/database/repository/catalog"
	"inhotel/models"
	"inhotel/services/hub"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssistantService is the conversational front-end over the hotel catalog.
type AssistantService interface {
	// Session lifecycle.
	CreateSession(ctx context.Context) (*models.SessionResponse, error)
	ResetSession(ctx context.Context, sessionID string) (*models.SessionResponse, error)

	// Messaging. SendMessage blocks until the turn commits; SendMessageStream
	// returns as soon as the turn is accepted, exposing the partial-text
	// stream and a channel carrying the final outcome.
	SendMessage(ctx context.Context, sessionID, text string) (*models.ChatRender, error)
	SendMessageStream(ctx context.Context, sessionID, text string) (*TurnHandle, error)

	// Derived state.
	Transcript(ctx context.Context, sessionID string) ([]models.Turn, error)
	ViewState(ctx context.Context, sessionID string) (models.ViewState, error)
	SelectHotel(ctx context.Context, sessionID, name string) (models.ViewState, error)
	ClearSelection(ctx context.Context, sessionID string) (models.ViewState, error)

	// Hub mirror.
	HubState(ctx context.Context, sessionID string) (models.HubState, error)
	UpdateHub(ctx context.Context, sessionID string, state models.HubState) (models.HubState, error)
}

// TurnOutcome is the resolution of one turn.
type TurnOutcome struct {
	Render *models.ChatRender
	Err    error
}

// TurnHandle exposes a turn in flight: the partial-text stream and a
// single-element channel with the final outcome.
type TurnHandle struct {
	Stream *StreamValue
	Result <-chan TurnOutcome
}

// DefaultAssistantService is the production implementation.
type DefaultAssistantService struct {
	Catalog catalog.Repository
	Oracle  Oracle
	Mirror  *RedisTranscriptStore // optional transcript persistence
	Logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewDefaultAssistantService(cat catalog.Repository, oracle Oracle, mirror *RedisTranscriptStore, logger *zap.Logger) *DefaultAssistantService {
	return &DefaultAssistantService{
		Catalog:  cat,
		Oracle:   oracle,
		Mirror:   mirror,
		Logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// CreateSession starts a fresh conversation showing the full catalog.
func (s *DefaultAssistantService) CreateSession(ctx context.Context) (*models.SessionResponse, error) {
	sess := s.registerSession(uuid.New().String(), nil)
	view := s.refreshView(ctx, sess)
	return &models.SessionResponse{SessionID: sess.ID, View: view}, nil
}

// ResetSession clears the transcript, hub and selection of a session.
func (s *DefaultAssistantService) ResetSession(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Transcript.Commit(nil)
	sess.Hub.Update(hub.DefaultState())
	sess.setView(models.ViewState{})
	if s.Mirror != nil {
		if err := s.Mirror.Clear(ctx, sess.ID); err != nil {
			s.Logger.Warn("failed to clear mirrored transcript", zap.String("sessionID", sess.ID), zap.Error(err))
		}
	}
	view := s.refreshView(ctx, sess)
	return &models.SessionResponse{SessionID: sess.ID, View: view}, nil
}

// Transcript returns a snapshot of the session transcript.
func (s *DefaultAssistantService) Transcript(ctx context.Context, sessionID string) ([]models.Turn, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Transcript.Read(), nil
}

// ViewState returns the current derived view state.
func (s *DefaultAssistantService) ViewState(ctx context.Context, sessionID string) (models.ViewState, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return models.ViewState{}, err
	}
	return sess.View(), nil
}

// SelectHotel opens the detail panel for a displayed hotel. Selecting a name
// that is not currently displayed is a no-op on the selection.
func (s *DefaultAssistantService) SelectHotel(ctx context.Context, sessionID, name string) (models.ViewState, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return models.ViewState{}, err
	}
	view := sess.View()
	if containsHotel(view.DisplayedHotels, name) {
		view.SelectedHotelName = name
		view.DetailPanelOpen = true
		sess.setView(view)
	}
	return sess.View(), nil
}

// ClearSelection closes the detail panel and drops the selection.
func (s *DefaultAssistantService) ClearSelection(ctx context.Context, sessionID string) (models.ViewState, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return models.ViewState{}, err
	}
	view := sess.View()
	view.SelectedHotelName = ""
	view.DetailPanelOpen = false
	sess.setView(view)
	return view, nil
}

// HubState returns the session's hub state.
func (s *DefaultAssistantService) HubState(ctx context.Context, sessionID string) (models.HubState, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return models.HubState{}, err
	}
	return sess.Hub.Get(), nil
}

// UpdateHub replaces the session's hub state directly (the non-tool path).
func (s *DefaultAssistantService) UpdateHub(ctx context.Context, sessionID string, state models.HubState) (models.HubState, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return models.HubState{}, err
	}
	return sess.Hub.Update(state), nil
}

// session resolves a session by ID, rehydrating from the Redis mirror when
// the process has not seen it yet.
func (s *DefaultAssistantService) session(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	if s.Mirror != nil {
		turns, err := s.Mirror.Get(ctx, sessionID)
		if err != nil {
			s.Logger.Warn("failed to load mirrored transcript", zap.String("sessionID", sessionID), zap.Error(err))
		} else if turns != nil {
			sess := s.registerSession(sessionID, turns)
			s.refreshView(ctx, sess)
			return sess, nil
		}
	}
	return nil, ErrSessionNotFound
}

func (s *DefaultAssistantService) registerSession(id string, initial []models.Turn) *Session {
	sess := newSession(id, initial)
	if s.Mirror != nil {
		sess.Transcript.OnCommit(func(turns []models.Turn) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := s.Mirror.Set(ctx, sess.ID, turns); err != nil {
				s.Logger.Warn("failed to mirror transcript", zap.String("sessionID", sess.ID), zap.Error(err))
			}
		})
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return sess
}

// refreshView replays the transcript into a fresh view state.
func (s *DefaultAssistantService) refreshView(ctx context.Context, sess *Session) models.ViewState {
	all, err := s.Catalog.All(ctx)
	if err != nil {
		s.Logger.Error("failed to load catalog for view state", zap.Error(err))
	}
	view := Recompute(sess.Transcript.Read(), all, sess.View())
	sess.setView(view)
	return view
}
