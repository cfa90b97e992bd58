package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fiberise-be/internal/entity"
	"fiberise-be/internal/repository/contract"
)

const sessionTTL = 24 * time.Hour

// TranscriptRepository is the durable transcript backend. Each session is a
// redis list of JSON-encoded turns, trimmed to the transcript limit on append.
type TranscriptRepository struct {
	client *redis.Client
}

func NewTranscriptRepository(client *redis.Client) contract.TranscriptRepository {
	return &TranscriptRepository{client: client}
}

func key(sessionId string) string {
	return "chat:transcript:" + sessionId
}

func (r *TranscriptRepository) Get(ctx context.Context, sessionId string) ([]entity.ChatTurn, error) {
	raw, err := r.client.LRange(ctx, key(sessionId), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis transcript read: %w", err)
	}

	turns := make([]entity.ChatTurn, 0, len(raw))
	for _, item := range raw {
		var turn entity.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("redis transcript decode: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (r *TranscriptRepository) Append(ctx context.Context, sessionId string, turns ...entity.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		encoded, err := json.Marshal(turn)
		if err != nil {
			return fmt.Errorf("redis transcript encode: %w", err)
		}
		values = append(values, encoded)
	}

	k := key(sessionId)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, k, values...)
	pipe.LTrim(ctx, k, -int64(entity.TranscriptLimit), -1)
	pipe.Expire(ctx, k, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis transcript append: %w", err)
	}
	return nil
}

func (r *TranscriptRepository) Clear(ctx context.Context, sessionId string) error {
	if err := r.client.Del(ctx, key(sessionId)).Err(); err != nil {
		return fmt.Errorf("redis transcript clear: %w", err)
	}
	return nil
}
