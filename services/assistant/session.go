package assistant

import (
	"sync"

	"inhotel/models"
	"inhotel/services/hub"
)

// turnState tracks where a session's in-flight turn is in the orchestration
// state machine.
type turnState int

const (
	stateIdle turnState = iota
	stateAwaitingModelDecision
	stateStreaming
	stateExecutingTool
	stateCommitted
)

// Session is the per-conversation context: the transcript (source of truth),
// the hub state, the derived view state and the stream of the current turn.
type Session struct {
	ID         string
	Transcript *TranscriptStore
	Hub        *hub.Service

	mu     sync.Mutex
	state  turnState
	stream *StreamValue
	view   models.ViewState
}

func newSession(id string, initial []models.Turn) *Session {
	return &Session{
		ID:         id,
		Transcript: NewTranscriptStore(initial),
		Hub:        hub.NewService(),
	}
}

// beginTurn claims the session for a new turn. The orchestrator accepts one
// message at a time per session; concurrent sends are rejected rather than
// queued.
func (s *Session) beginTurn(stream *StreamValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateIdle {
		return ErrTurnInFlight
	}
	s.state = stateAwaitingModelDecision
	s.stream = stream
	return nil
}

func (s *Session) setState(st turnState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Session) endTurn() {
	s.mu.Lock()
	s.state = stateIdle
	s.mu.Unlock()
}

// Stream returns the stream value of the current (or most recent) turn.
func (s *Session) Stream() *StreamValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream
}

// View returns the last computed view state.
func (s *Session) View() models.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Session) setView(view models.ViewState) {
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
}
