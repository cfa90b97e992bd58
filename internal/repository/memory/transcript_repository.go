package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"fiberise-be/internal/entity"
	"fiberise-be/internal/repository/contract"
)

// TranscriptRepository keeps transcripts in process memory. Sessions idle for
// an hour are evicted; everything is lost on restart. That is the documented
// durability level of the default backend.
type TranscriptRepository struct {
	cache *cache.Cache
}

func NewTranscriptRepository() contract.TranscriptRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &TranscriptRepository{cache: c}
}

func (r *TranscriptRepository) Get(_ context.Context, sessionId string) ([]entity.ChatTurn, error) {
	if x, found := r.cache.Get(sessionId); found {
		turns := x.([]entity.ChatTurn)
		out := make([]entity.ChatTurn, len(turns))
		copy(out, turns)
		return out, nil
	}
	return []entity.ChatTurn{}, nil
}

func (r *TranscriptRepository) Append(ctx context.Context, sessionId string, turns ...entity.ChatTurn) error {
	existing, _ := r.Get(ctx, sessionId)
	existing = append(existing, turns...)
	if len(existing) > entity.TranscriptLimit {
		existing = existing[len(existing)-entity.TranscriptLimit:]
	}
	r.cache.Set(sessionId, existing, cache.DefaultExpiration)
	return nil
}

func (r *TranscriptRepository) Clear(_ context.Context, sessionId string) error {
	r.cache.Delete(sessionId)
	return nil
}
