package assistant

import (
	"context"
	"errors"
	"io"

	"inhotel/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// systemPrompt is the fixed instruction sent with every oracle request.
const systemPrompt = `- You are a helpful, friendly, and efficient virtual travel assistant specializing in hotel reservations. Your primary role is to assist users in finding and booking hotel accommodations that match their preferences.

- You can help users find hotels by location (e.g., "New York", "Los Angeles") or by hotel name (e.g., "Hotel 1").

- When users ask about hotels, use the findHotel tool to search for available accommodations.

- When hotel data is provided to you, generate a comprehensive and engaging summary that includes the hotel name and location, price range, key amenities, rating and review count, availability status, and a brief description highlighting what makes each hotel special.

- Present the information in a conversational, helpful manner that helps users make informed decisions.

- Always present hotel lists as Markdown bullet points (never numbers).

- Always be concise, polite, and professional. Speak in natural, conversational English.`

// SendMessage runs one full turn and blocks until it resolves.
func (s *DefaultAssistantService) SendMessage(ctx context.Context, sessionID, text string) (*models.ChatRender, error) {
	handle, err := s.SendMessageStream(ctx, sessionID, text)
	if err != nil {
		return nil, err
	}
	outcome := <-handle.Result
	return outcome.Render, outcome.Err
}

// SendMessageStream accepts a user message and starts resolving the turn.
// The user turn is appended before this returns; rejection (unknown session,
// turn already in flight) is synchronous.
func (s *DefaultAssistantService) SendMessageStream(ctx context.Context, sessionID, text string) (*TurnHandle, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	stream := NewStreamValue()
	if err := sess.beginTurn(stream); err != nil {
		return nil, err
	}

	withUser := append(sess.Transcript.Read(), models.UserTurn(text))
	sess.Transcript.Update(withUser)

	result := make(chan TurnOutcome, 1)
	go func() {
		render, err := s.resolveTurn(ctx, sess, withUser, stream)
		if !stream.Finished() {
			_ = stream.Finish()
		}
		sess.endTurn()
		result <- TurnOutcome{Render: render, Err: err}
	}()

	return &TurnHandle{Stream: stream, Result: result}, nil
}

// resolveTurn drives one turn from AwaitingModelDecision to Committed. All
// failure paths leave the transcript exactly as it was after the user-turn
// append; every commit is a complete, well-formed turn.
func (s *DefaultAssistantService) resolveTurn(ctx context.Context, sess *Session, withUser []models.Turn, stream *StreamValue) (*models.ChatRender, error) {
	decision, err := s.Oracle.Decide(ctx, Request{
		SystemPrompt: systemPrompt,
		Transcript:   withUser,
		Tools:        Declarations(),
	})
	if err != nil {
		s.Logger.Warn("oracle call failed", zap.String("sessionID", sess.ID), zap.Error(err))
		return nil, &ModelUnavailableError{Err: err}
	}

	switch {
	case decision.Tool != nil:
		sess.setState(stateExecutingTool)
		return s.runTool(ctx, sess, withUser, decision.Tool, stream)
	case decision.Text != nil:
		sess.setState(stateStreaming)
		return s.runText(ctx, sess, withUser, decision.Text, stream)
	default:
		return nil, &ModelUnavailableError{Err: errors.New("oracle returned neither text nor a tool selection")}
	}
}

// runText pushes deltas into the stream, then commits the finalized
// assistant turn before finishing the stream.
func (s *DefaultAssistantService) runText(ctx context.Context, sess *Session, withUser []models.Turn, text TextStream, stream *StreamValue) (*models.ChatRender, error) {
	for {
		delta, err := text.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.Logger.Warn("oracle stream failed", zap.String("sessionID", sess.ID), zap.Error(err))
			return nil, &ModelUnavailableError{Err: err}
		}
		if err := stream.Push(delta); err != nil {
			return nil, err
		}
	}

	full := stream.Current()
	sess.Transcript.Commit(append(withUser, models.AssistantTextTurn(full)))
	sess.setState(stateCommitted)
	_ = stream.Finish()

	return s.render(ctx, sess, full), nil
}

// runTool validates the selection, executes the tool and commits the
// call/result pair as one atomic transcript write under a shared call ID.
func (s *DefaultAssistantService) runTool(ctx context.Context, sess *Session, withUser []models.Turn, sel *ToolSelection, stream *StreamValue) (*models.ChatRender, error) {
	kind, ok := KindForName(sel.Name)
	if !ok {
		return nil, &InvalidToolArgumentsError{Tool: sel.Name, Reason: "unknown tool"}
	}
	args, err := ParseArgs(kind, sel.Args)
	if err != nil {
		return nil, err
	}

	result, summary, err := ExecuteTool(ctx, kind, args, ToolDeps{Catalog: s.Catalog, Hub: sess.Hub})
	if err != nil {
		return nil, err
	}

	_ = stream.Push(summary)

	callID := uuid.New().String()
	committed := append(withUser,
		models.ToolCallTurn(callID, sel.Name, sel.Args),
		models.ToolResultTurn(callID, sel.Name, result),
	)
	sess.Transcript.Commit(committed)
	sess.setState(stateCommitted)
	_ = stream.Finish()

	return s.render(ctx, sess, summary), nil
}

// render recomputes the view state and links hotel names in the final text.
func (s *DefaultAssistantService) render(ctx context.Context, sess *Session, text string) *models.ChatRender {
	view := s.refreshView(ctx, sess)
	all, err := s.Catalog.All(ctx)
	if err != nil {
		s.Logger.Error("failed to load catalog for linking", zap.Error(err))
	}
	return &models.ChatRender{
		Text:     text,
		Segments: Link(text, all),
		View:     view,
	}
}
