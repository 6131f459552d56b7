package assistant

import (
	"testing"

	"inhotel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptStoreReadReturnsSnapshot(t *testing.T) {
	store := NewTranscriptStore([]models.Turn{models.UserTurn("hi")})

	snapshot := store.Read()
	require.Len(t, snapshot, 1)

	// Mutating the snapshot must not affect the store.
	snapshot[0].Text = "tampered"
	assert.Equal(t, "hi", store.Read()[0].Text)
}

func TestTranscriptStoreUpdateThenCommit(t *testing.T) {
	store := NewTranscriptStore(nil)

	withUser := []models.Turn{models.UserTurn("find hotels")}
	store.Update(withUser)
	assert.Len(t, store.Read(), 1)

	committed := append(withUser, models.AssistantTextTurn("sure"))
	store.Commit(committed)
	turns := store.Read()
	require.Len(t, turns, 2)
	assert.Equal(t, models.TurnAssistantText, turns[1].Kind)
}

func TestTranscriptStoreCommitFiresHooks(t *testing.T) {
	store := NewTranscriptStore(nil)

	var got []models.Turn
	store.OnCommit(func(turns []models.Turn) { got = turns })

	store.Update([]models.Turn{models.UserTurn("uncommitted")})
	assert.Nil(t, got, "Update must not fire commit hooks")

	store.Commit([]models.Turn{models.UserTurn("uncommitted"), models.AssistantTextTurn("ok")})
	require.Len(t, got, 2)

	// The hook receives a snapshot, not the live slice.
	got[0].Text = "tampered"
	assert.Equal(t, "uncommitted", store.Read()[0].Text)
}

func TestTranscriptStoreCommittedUnblocks(t *testing.T) {
	store := NewTranscriptStore(nil)

	done := store.Committed()
	select {
	case <-done:
		t.Fatal("Committed channel closed before any commit")
	default:
	}

	store.Commit([]models.Turn{models.UserTurn("hi")})
	select {
	case <-done:
	default:
		t.Fatal("Committed channel not closed by commit")
	}
}

func TestToolPairNeverObservedHalfAppended(t *testing.T) {
	store := NewTranscriptStore(nil)
	withUser := []models.Turn{models.UserTurn("search")}
	store.Update(withUser)

	result := &models.ToolResult{Search: &models.SearchResult{SearchQuery: "Paris"}}
	store.Commit(append(withUser,
		models.ToolCallTurn("call-1", ToolNameFindHotel, map[string]any{"query": "Paris"}),
		models.ToolResultTurn("call-1", ToolNameFindHotel, result),
	))

	turns := store.Read()
	for i, turn := range turns {
		if turn.Kind == models.TurnToolResult {
			require.Greater(t, i, 0)
			prev := turns[i-1]
			assert.Equal(t, models.TurnToolCall, prev.Kind)
			assert.Equal(t, turn.ToolCallID, prev.ToolCallID)
			assert.Equal(t, turn.ToolName, prev.ToolName)
		}
	}
}
