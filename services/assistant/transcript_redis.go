package assistant

import (
	"context"
	"encoding/json"
	"time"

	"inhotel/models"

	"github.com/go-redis/redis/v8"
)

const transcriptKeyPrefix = "assistant:transcript:"

// RedisTranscriptStore mirrors committed transcripts to Redis with a TTL so
// a session survives process restarts for its lifetime. The in-memory
// transcript store remains the source of truth.
type RedisTranscriptStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTranscriptStore(client *redis.Client, ttl time.Duration) *RedisTranscriptStore {
	return &RedisTranscriptStore{client: client, ttl: ttl}
}

// Get loads the mirrored transcript for a session. A missing key yields
// (nil, nil).
func (s *RedisTranscriptStore) Get(ctx context.Context, sessionID string) ([]models.Turn, error) {
	data, err := s.client.Get(ctx, transcriptKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var turns []models.Turn
	if err := json.Unmarshal([]byte(data), &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

// Set stores the transcript for a session, refreshing its TTL.
func (s *RedisTranscriptStore) Set(ctx context.Context, sessionID string, turns []models.Turn) error {
	b, err := json.Marshal(turns)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, transcriptKeyPrefix+sessionID, b, s.ttl).Err()
}

// Clear drops the mirrored transcript for a session.
func (s *RedisTranscriptStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, transcriptKeyPrefix+sessionID).Err()
}
