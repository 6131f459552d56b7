package models

// ChatRequest is the payload posted to the session message endpoint.
type ChatRequest struct {
	Text string `json:"text" binding:"required"`
}

// ChatRender is the finalized renderable output of one assistant turn.
type ChatRender struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	View     ViewState `json:"view"`
}

// SessionResponse is returned when a session is created or inspected.
type SessionResponse struct {
	SessionID string    `json:"sessionId"`
	View      ViewState `json:"view"`
}

// SelectionRequest names the hotel a user clicked.
type SelectionRequest struct {
	Name string `json:"name" binding:"required"`
}
