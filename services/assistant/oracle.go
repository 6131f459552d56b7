package assistant

import (
	"context"

	"inhotel/models"
)

// Request is what the orchestrator hands the model oracle: the fixed system
// instruction, the full transcript ending in the new user turn, and the
// declared tool set.
type Request struct {
	SystemPrompt string
	Transcript   []models.Turn
	Tools        []Declaration
}

// ToolSelection is the oracle's choice to invoke a single tool.
type ToolSelection struct {
	Name string
	Args map[string]any
}

// TextStream yields incremental text deltas from the oracle. Next returns
// io.EOF after the final delta.
type TextStream interface {
	Next() (string, error)
}

// Decision is the oracle's response to one turn: either a text stream or a
// single tool selection. Exactly one field is non-nil; other response shapes
// are out of contract.
type Decision struct {
	Text TextStream
	Tool *ToolSelection
}

// Oracle is the external model service deciding between a conversational
// answer and a tool call.
type Oracle interface {
	Decide(ctx context.Context, req Request) (*Decision, error)
}
