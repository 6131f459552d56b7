package assistant

import (
	"context"
	"sync"
)

// StreamValue is the incremental value used to make partial assistant text
// visible before the turn is committed. A single producer appends deltas with
// Push and terminates with Finish; subscribers receive latest-value snapshots
// of the accumulated text, ending with a channel close once Finish is
// observed.
type StreamValue struct {
	mu   sync.Mutex
	text string
	done bool
	subs []chan string
}

func NewStreamValue() *StreamValue {
	return &StreamValue{}
}

// Push appends a delta to the accumulated text and notifies subscribers.
func (s *StreamValue) Push(delta string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return ErrStreamClosed
	}
	s.text += delta
	for _, ch := range s.subs {
		sendSnapshot(ch, s.text)
	}
	return nil
}

// Finish marks the stream terminal. Subscribers receive the final snapshot
// and then a close. Further pushes fail with ErrStreamClosed.
func (s *StreamValue) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return ErrStreamClosed
	}
	s.done = true
	for _, ch := range s.subs {
		sendSnapshot(ch, s.text)
		close(ch)
	}
	s.subs = nil
	return nil
}

// Current returns the accumulated text so far.
func (s *StreamValue) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Finished reports whether Finish has been called.
func (s *StreamValue) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Subscribe returns a channel of text snapshots, starting from the current
// value. Intermediate snapshots may be coalesced; the final value is always
// delivered before the channel closes.
func (s *StreamValue) Subscribe() <-chan string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan string, 1)
	ch <- s.text
	if s.done {
		close(ch)
		return ch
	}
	s.subs = append(s.subs, ch)
	return ch
}

// Wait blocks until the stream is finished and returns the final text.
func (s *StreamValue) Wait(ctx context.Context) (string, error) {
	ch := s.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return s.Current(), ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return s.Current(), nil
			}
		}
	}
}

// sendSnapshot replaces any undelivered snapshot with the latest one. Called
// with the stream mutex held, so the post-drain send cannot block.
func sendSnapshot(ch chan string, snapshot string) {
	select {
	case <-ch:
	default:
	}
	ch <- snapshot
}
