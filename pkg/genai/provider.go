package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Message is a chat turn in a provider-agnostic format.
type Message struct {
	Role    string // "user" or "model"
	Content string
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Provider is the contract for a generative-AI backend. The model identifier
// is a per-call argument so callers can walk a fallback list over one client.
type Provider interface {
	Chat(ctx context.Context, model, systemInstruction string, history []Message) (string, error)
}

// StatusError is returned when the upstream API answers with a non-2xx code.
type StatusError struct {
	StatusCode int
	Model      string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("genai: model %s returned status %d: %s", e.Model, e.StatusCode, e.Body)
}

// IsModelNotFound classifies a provider error as "this model does not exist",
// the only failure the fallback loop is allowed to skip past. Anything else
// is fatal for the request.
func IsModelNotFound(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound
	}
	return false
}
