package models

// TurnKind discriminates the transcript turn union.
type TurnKind string

const (
	// TurnUser is a raw user message.
	TurnUser TurnKind = "user"
	// TurnAssistantText is a finalized streamed assistant answer.
	TurnAssistantText TurnKind = "assistant"
	// TurnToolCall is the assistant's decision to invoke a tool.
	TurnToolCall TurnKind = "tool-call"
	// TurnToolResult carries the output of the invoked tool. It always
	// immediately follows its matching TurnToolCall in the transcript.
	TurnToolResult TurnKind = "tool-result"
)

// Turn is one entry in the conversation transcript.
//
// Text is set for TurnUser and TurnAssistantText. ToolCallID and ToolName are
// set for TurnToolCall and TurnToolResult; Args only for TurnToolCall, Result
// only for TurnToolResult.
type Turn struct {
	Kind       TurnKind       `json:"kind"`
	Text       string         `json:"text,omitempty"`
	ToolCallID string         `json:"toolCallId,omitempty"`
	ToolName   string         `json:"toolName,omitempty"`
	Args       map[string]any `json:"args,omitempty"`
	Result     *ToolResult    `json:"result,omitempty"`
}

// ToolResult is the typed union of tool outputs. Exactly one field is set,
// matching the tool named on the turn.
type ToolResult struct {
	Search *SearchResult `json:"search,omitempty"`
	Hub    *HubState     `json:"hub,omitempty"`
}

// UserTurn builds a user-message turn.
func UserTurn(text string) Turn {
	return Turn{Kind: TurnUser, Text: text}
}

// AssistantTextTurn builds a finalized assistant text turn.
func AssistantTextTurn(text string) Turn {
	return Turn{Kind: TurnAssistantText, Text: text}
}

// ToolCallTurn builds the call half of a tool invocation pair.
func ToolCallTurn(callID, toolName string, args map[string]any) Turn {
	return Turn{Kind: TurnToolCall, ToolCallID: callID, ToolName: toolName, Args: args}
}

// ToolResultTurn builds the result half of a tool invocation pair.
func ToolResultTurn(callID, toolName string, result *ToolResult) Turn {
	return Turn{Kind: TurnToolResult, ToolCallID: callID, ToolName: toolName, Result: result}
}
