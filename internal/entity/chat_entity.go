package entity

const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatTurn is a single message in a session transcript.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// TranscriptLimit caps a transcript at the most recent 20 turns (10 exchanges).
// Oldest turns are dropped first; the trim happens on append, after a
// successful exchange, never on a failed one.
const TranscriptLimit = 20
