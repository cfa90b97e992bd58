package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiberise-be/internal/dto"
	"fiberise-be/internal/entity"
	"fiberise-be/internal/pkg/apperror"
	"fiberise-be/internal/repository/memory"
	"fiberise-be/pkg/genai"
)

type fakeProvider struct {
	// failures maps a model id to the error it should return; models not in
	// the map succeed with a canned reply.
	failures map[string]error
	calls    []string
	reply    string
}

func (p *fakeProvider) Chat(_ context.Context, model, _ string, _ []genai.Message) (string, error) {
	p.calls = append(p.calls, model)
	if err, ok := p.failures[model]; ok {
		return "", err
	}
	if p.reply == "" {
		return "hello from " + model, nil
	}
	return p.reply, nil
}

func notFound(model string) error {
	return &genai.StatusError{StatusCode: http.StatusNotFound, Model: model, Body: "model not found"}
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestChatService(provider *fakeProvider, models []string) (IChatService, *memory.TranscriptRepository) {
	transcripts := memory.NewTranscriptRepository().(*memory.TranscriptRepository)
	svc := NewChatService(provider, transcripts, models, nil, nopLogger{})
	return svc, transcripts
}

func TestSendChatRejectsBlankMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{name: "empty", message: ""},
		{name: "spaces", message: "   "},
		{name: "whitespace mix", message: " \t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{}
			svc, _ := newTestChatService(provider, []string{"model-a"})

			_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: tt.message})

			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
			assert.Empty(t, provider.calls, "provider must never be called for blank input")
		})
	}
}

func TestSendChatDefaultsSessionId(t *testing.T) {
	provider := &fakeProvider{}
	svc, _ := newTestChatService(provider, []string{"model-a"})

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionId, res.SessionId)
	assert.Equal(t, "hello from model-a", res.Reply)
	assert.False(t, res.Timestamp.IsZero())
}

func TestSendChatTrimsTranscriptWindow(t *testing.T) {
	provider := &fakeProvider{}
	svc, transcripts := newTestChatService(provider, []string{"model-a"})

	for i := 0; i < 15; i++ {
		_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
			Message:   fmt.Sprintf("message %d", i),
			SessionId: "s1",
		})
		require.NoError(t, err)

		turns, err := transcripts.Get(context.Background(), "s1")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(turns), entity.TranscriptLimit)
	}

	turns, err := transcripts.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, turns, entity.TranscriptLimit)

	// Oldest dropped first: the window starts at exchange 5 of 15
	assert.Equal(t, entity.ChatRoleUser, turns[0].Role)
	assert.Equal(t, "message 5", turns[0].Text)
	assert.Equal(t, entity.ChatRoleModel, turns[len(turns)-1].Role)
}

func TestSendChatFallsBackPastMissingModels(t *testing.T) {
	models := []string{"model-a", "model-b", "model-c"}
	provider := &fakeProvider{
		failures: map[string]error{
			"model-a": notFound("model-a"),
			"model-b": notFound("model-b"),
		},
	}
	svc, transcripts := newTestChatService(provider, models)

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "hi", SessionId: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "hello from model-c", res.Reply)
	assert.Equal(t, models, provider.calls)

	// Failed attempts never touched the transcript; one exchange stored
	turns, err := transcripts.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, turns, 2)
}

func TestSendChatStopsOnFatalError(t *testing.T) {
	provider := &fakeProvider{
		failures: map[string]error{
			"model-a": &genai.StatusError{StatusCode: http.StatusTooManyRequests, Model: "model-a", Body: "quota"},
		},
	}
	svc, transcripts := newTestChatService(provider, []string{"model-a", "model-b"})

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "hi", SessionId: "s1"})
	require.Error(t, err)

	assert.Equal(t, []string{"model-a"}, provider.calls, "fallback must stop at the first fatal error")

	turns, getErr := transcripts.Get(context.Background(), "s1")
	require.NoError(t, getErr)
	assert.Empty(t, turns, "transcript must stay unmutated on failure")
}

func TestSendChatExhaustedNamesAllModels(t *testing.T) {
	models := []string{"model-a", "model-b", "model-c"}
	provider := &fakeProvider{
		failures: map[string]error{
			"model-a": notFound("model-a"),
			"model-b": notFound("model-b"),
			"model-c": notFound("model-c"),
		},
	}
	svc, _ := newTestChatService(provider, models)

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "hi"})
	require.Error(t, err)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	for _, model := range models {
		assert.Contains(t, appErr.Err.Error(), model)
	}
}

func TestSendChatCustomClassifier(t *testing.T) {
	// A classifier that treats a plain error as retryable
	retryAll := func(err error) bool { return !errors.Is(err, context.Canceled) }
	provider := &fakeProvider{
		failures: map[string]error{"model-a": errors.New("transient blip")},
	}
	transcripts := memory.NewTranscriptRepository()
	svc := NewChatService(provider, transcripts, []string{"model-a", "model-b"}, retryAll, nopLogger{})

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello from model-b", res.Reply)
}

func TestClearSession(t *testing.T) {
	provider := &fakeProvider{}
	svc, transcripts := newTestChatService(provider, []string{"model-a"})

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "hi", SessionId: "s1"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearSession(context.Background(), "s1"))

	turns, err := transcripts.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}
