package assistant

import (
	"sync"

	"inhotel/models"
)

// CommitHook is invoked with a snapshot of the transcript after every commit.
// Commit is the designated place to persist the transcript.
type CommitHook func(turns []models.Turn)

// TranscriptStore holds the ordered list of conversation turns. The only
// permitted mutation is whole-array replacement under the write lock, so
// readers see either the fully-old or fully-new transcript, never a partial
// one. Update writes an uncommitted intermediate state (the user-turn
// append); Commit finalizes the turn, runs the commit hooks and unblocks
// anyone waiting on Committed.
type TranscriptStore struct {
	mu       sync.RWMutex
	turns    []models.Turn
	hooks    []CommitHook
	commitCh chan struct{}
}

func NewTranscriptStore(initial []models.Turn) *TranscriptStore {
	s := &TranscriptStore{commitCh: make(chan struct{})}
	if len(initial) > 0 {
		s.turns = make([]models.Turn, len(initial))
		copy(s.turns, initial)
	}
	return s
}

// Read returns a snapshot copy of the current transcript. It never blocks on
// an in-flight turn.
func (s *TranscriptStore) Read() []models.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Update replaces the whole transcript without marking the turn complete.
func (s *TranscriptStore) Update(turns []models.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = turns
}

// Commit replaces the whole transcript, marks the turn complete and fires
// the commit hooks with a snapshot.
func (s *TranscriptStore) Commit(turns []models.Turn) {
	s.mu.Lock()
	s.turns = turns
	snapshot := make([]models.Turn, len(turns))
	copy(snapshot, turns)
	hooks := s.hooks
	close(s.commitCh)
	s.commitCh = make(chan struct{})
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(snapshot)
	}
}

// OnCommit registers a hook run after every commit.
func (s *TranscriptStore) OnCommit(hook CommitHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Committed returns a channel closed by the next Commit.
func (s *TranscriptStore) Committed() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commitCh
}
