package service

import (
	"context"
	"strings"
	"time"

	"fiberise-be/internal/dto"
	"fiberise-be/internal/entity"
	"fiberise-be/internal/identity"
	"fiberise-be/internal/pkg/apperror"
	"fiberise-be/internal/pkg/logger"
	"fiberise-be/internal/pkg/token"
	"fiberise-be/internal/repository/contract"
)

type IAuthService interface {
	VerifyIdentity(ctx context.Context, idToken string) (*dto.VerifyFirebaseTokenResponse, error)
	Refresh(ctx context.Context, claims *token.SessionClaims) (string, error)
	CurrentUser(ctx context.Context, claims *token.SessionClaims) (*dto.UserResponse, error)
}

type authService struct {
	verifier identity.Verifier
	users    contract.UserRepository
	tokens   *token.Service
	log      logger.ILogger
}

func NewAuthService(
	verifier identity.Verifier,
	users contract.UserRepository,
	tokens *token.Service,
	log logger.ILogger,
) IAuthService {
	return &authService{
		verifier: verifier,
		users:    users,
		tokens:   tokens,
		log:      log,
	}
}

// normalizePhone strips whitespace so the same number always maps to the same
// user key regardless of formatting.
func normalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

func (s *authService) VerifyIdentity(ctx context.Context, idToken string) (*dto.VerifyFirebaseTokenResponse, error) {
	if idToken == "" {
		return nil, apperror.Validation("Firebase ID token is required")
	}

	decoded, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.log.Warn("auth", "firebase token verification failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, apperror.Unauthorized("Invalid Firebase token")
	}

	if decoded.PhoneNumber == "" {
		return nil, apperror.Validation("Phone number not found in Firebase token")
	}

	phone := normalizePhone(decoded.PhoneNumber)
	now := time.Now().UTC()

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, apperror.Upstream("An error occurred while verifying Firebase token", err)
	}

	if user == nil {
		user = &entity.User{
			Phone:       phone,
			FirebaseUid: decoded.UID,
			CreatedAt:   now,
			UpdatedAt:   now,
			LastLogin:   now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, apperror.Upstream("An error occurred while verifying Firebase token", err)
		}
	} else {
		user.FirebaseUid = decoded.UID
		user.UpdatedAt = now
		user.LastLogin = now
		if err := s.users.Update(ctx, user); err != nil {
			return nil, apperror.Upstream("An error occurred while verifying Firebase token", err)
		}
	}

	signed, err := s.tokens.Sign(user.Phone, user.Phone, user.FirebaseUid)
	if err != nil {
		return nil, apperror.Upstream("An error occurred while verifying Firebase token", err)
	}

	return &dto.VerifyFirebaseTokenResponse{
		Token: signed,
		User:  toUserResponse(user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, claims *token.SessionClaims) (string, error) {
	user, err := s.users.FindByPhone(ctx, claims.UserID)
	if err != nil {
		return "", apperror.Upstream("An error occurred while refreshing token", err)
	}
	if user == nil {
		return "", apperror.NotFound("User not found")
	}

	signed, err := s.tokens.Sign(user.Phone, user.Phone, user.FirebaseUid)
	if err != nil {
		return "", apperror.Upstream("An error occurred while refreshing token", err)
	}
	return signed, nil
}

func (s *authService) CurrentUser(ctx context.Context, claims *token.SessionClaims) (*dto.UserResponse, error) {
	user, err := s.users.FindByPhone(ctx, claims.UserID)
	if err != nil {
		return nil, apperror.Upstream("An error occurred while fetching user data", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return toUserResponse(user), nil
}

func toUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		UserId:    user.Phone,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		LastLogin: user.LastLogin,
	}
}
