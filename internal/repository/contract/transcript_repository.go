package contract

import (
	"context"

	"fiberise-be/internal/entity"
)

// TranscriptRepository stores the per-session conversation window.
//
// Contract: Append adds turns in order and then trims the transcript to the
// most recent entity.TranscriptLimit turns, oldest first. Get on an unknown
// session returns an empty transcript, not an error. Transcripts are
// best-effort state: the memory backend loses them on restart, the redis
// backend expires them after its TTL.
type TranscriptRepository interface {
	Get(ctx context.Context, sessionId string) ([]entity.ChatTurn, error)
	Append(ctx context.Context, sessionId string, turns ...entity.ChatTurn) error
	Clear(ctx context.Context, sessionId string) error
}
