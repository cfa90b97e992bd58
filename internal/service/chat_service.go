package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fiberise-be/internal/constant"
	"fiberise-be/internal/dto"
	"fiberise-be/internal/entity"
	"fiberise-be/internal/pkg/apperror"
	"fiberise-be/internal/pkg/logger"
	"fiberise-be/internal/repository/contract"
	"fiberise-be/pkg/genai"
)

const DefaultSessionId = "default"

type IChatService interface {
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ClearSession(ctx context.Context, sessionId string) error
}

// ErrorClassifier decides whether a provider failure is recoverable (try the
// next model in the fallback list) or fatal for the request.
type ErrorClassifier func(error) bool

type chatService struct {
	provider    genai.Provider
	transcripts contract.TranscriptRepository
	models      []string
	retryable   ErrorClassifier
	log         logger.ILogger

	// Serializes concurrent messages on the same session id so transcript
	// appends never interleave.
	mu       sync.Mutex
	sessions map[string]*sync.Mutex
}

func NewChatService(
	provider genai.Provider,
	transcripts contract.TranscriptRepository,
	models []string,
	retryable ErrorClassifier,
	log logger.ILogger,
) IChatService {
	if retryable == nil {
		retryable = genai.IsModelNotFound
	}
	return &chatService{
		provider:    provider,
		transcripts: transcripts,
		models:      models,
		retryable:   retryable,
		log:         log,
		sessions:    make(map[string]*sync.Mutex),
	}
}

func (s *chatService) sessionLock(sessionId string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.sessions[sessionId]
	if !ok {
		lock = &sync.Mutex{}
		s.sessions[sessionId] = lock
	}
	return lock
}

func (s *chatService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperror.Validation("Message is required and must be a non-empty string")
	}

	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = DefaultSessionId
	}

	lock := s.sessionLock(sessionId)
	lock.Lock()
	defer lock.Unlock()

	transcript, err := s.transcripts.Get(ctx, sessionId)
	if err != nil {
		return nil, apperror.Upstream("Failed to load conversation history", err)
	}

	history := make([]genai.Message, 0, len(transcript)+1)
	for _, turn := range transcript {
		history = append(history, genai.Message{Role: turn.Role, Content: turn.Text})
	}
	history = append(history, genai.Message{Role: genai.RoleUser, Content: message})

	reply, err := s.chatWithFallback(ctx, history)
	if err != nil {
		return nil, err
	}

	// Transcript mutates only after a successful exchange; the repository
	// trims to the window cap on append.
	err = s.transcripts.Append(ctx, sessionId,
		entity.ChatTurn{Role: entity.ChatRoleUser, Text: message},
		entity.ChatTurn{Role: entity.ChatRoleModel, Text: reply},
	)
	if err != nil {
		return nil, apperror.Upstream("Failed to save conversation history", err)
	}

	return &dto.SendChatResponse{
		Reply:     reply,
		SessionId: sessionId,
		Timestamp: time.Now().UTC(),
	}, nil
}

// chatWithFallback walks the model preference list in order. A "model not
// found" failure moves on to the next candidate; any other failure stops the
// loop and surfaces immediately.
func (s *chatService) chatWithFallback(ctx context.Context, history []genai.Message) (string, error) {
	var lastErr error

	for _, model := range s.models {
		reply, err := s.provider.Chat(ctx, model, constant.ZoePersonaPromptV1, history)
		if err == nil {
			s.log.Info("chat", "model responded", map[string]interface{}{"model": model})
			return reply, nil
		}

		if s.retryable(err) {
			s.log.Warn("chat", "model unavailable, trying next", map[string]interface{}{
				"model": model,
				"error": err.Error(),
			})
			lastErr = err
			continue
		}

		s.log.Error("chat", "model call failed", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		return "", apperror.Upstream("An error occurred while processing your message. Please try again.", err)
	}

	err := fmt.Errorf("no available models found, tried: %s, last error: %w",
		strings.Join(s.models, ", "), lastErr)
	return "", apperror.Upstream("AI service is currently unavailable. Please try again later.", err)
}

func (s *chatService) ClearSession(ctx context.Context, sessionId string) error {
	if sessionId == "" {
		sessionId = DefaultSessionId
	}
	if err := s.transcripts.Clear(ctx, sessionId); err != nil {
		return apperror.Upstream("Failed to clear conversation history", err)
	}
	return nil
}
