package assistant

import (
	"errors"
	"fmt"
)

var (
	// ErrStreamClosed is returned when a push or finish is attempted on a
	// stream value that has already been finished. This is a programming
	// contract violation, not a user-facing condition.
	ErrStreamClosed = errors.New("stream value already finished")

	// ErrTurnInFlight is returned when a second message is sent to a session
	// whose previous turn has not resolved yet.
	ErrTurnInFlight = errors.New("a turn is already in flight for this session")

	// ErrSessionNotFound is returned for unknown session IDs.
	ErrSessionNotFound = errors.New("session not found")
)

// InvalidToolArgumentsError indicates the model selected a tool with
// arguments that fail schema validation. The turn is aborted with the
// transcript left at its pre-tool-call state.
type InvalidToolArgumentsError struct {
	Tool   string
	Reason string
}

func (e *InvalidToolArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %q: %s", e.Tool, e.Reason)
}

// ModelUnavailableError indicates the oracle call failed or timed out. The
// transcript is left at its pre-assistant-turn state so the user can retry.
type ModelUnavailableError struct {
	Err error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model unavailable: %v", e.Err)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Err
}
