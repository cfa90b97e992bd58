package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiberise-be/internal/entity"
	"fiberise-be/internal/identity"
	"fiberise-be/internal/pkg/apperror"
	"fiberise-be/internal/pkg/token"
)

type fakeVerifier struct {
	token *identity.Token
	err   error
}

func (v *fakeVerifier) VerifyIDToken(_ context.Context, _ string) (*identity.Token, error) {
	return v.token, v.err
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	u := *user
	r.users[user.Phone] = &u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	u := *user
	r.users[user.Phone] = &u
	return nil
}

func (r *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*entity.User, error) {
	if u, ok := r.users[phone]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func newTestAuthService(verifier identity.Verifier, repo *fakeUserRepo) (IAuthService, *token.Service) {
	tokens := token.NewService("test-secret", time.Hour)
	return NewAuthService(verifier, repo, tokens, nopLogger{}), tokens
}

func TestVerifyIdentityCreatesUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc, tokens := newTestAuthService(&fakeVerifier{
		token: &identity.Token{UID: "firebase-uid-1", PhoneNumber: "+1 555 000 1234"},
	}, repo)

	res, err := svc.VerifyIdentity(context.Background(), "proof")
	require.NoError(t, err)

	// Whitespace stripped and used as the stable key
	assert.Equal(t, "+15550001234", res.User.UserId)
	assert.Equal(t, "+15550001234", res.User.Phone)
	require.Contains(t, repo.users, "+15550001234")

	claims, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "+15550001234", claims.UserID)
	assert.Equal(t, "firebase-uid-1", claims.FirebaseUID)
}

func TestVerifyIdentityUpdatesExistingUser(t *testing.T) {
	repo := newFakeUserRepo()
	created := time.Now().UTC().Add(-48 * time.Hour)
	repo.users["+15550001234"] = &entity.User{
		Phone:       "+15550001234",
		FirebaseUid: "old-uid",
		CreatedAt:   created,
		UpdatedAt:   created,
		LastLogin:   created,
	}

	svc, _ := newTestAuthService(&fakeVerifier{
		token: &identity.Token{UID: "new-uid", PhoneNumber: "+1 555 0001234"},
	}, repo)

	res, err := svc.VerifyIdentity(context.Background(), "proof")
	require.NoError(t, err)

	require.Len(t, repo.users, 1, "second verification must update, not duplicate")
	stored := repo.users["+15550001234"]
	assert.Equal(t, "new-uid", stored.FirebaseUid)
	assert.Equal(t, created, stored.CreatedAt, "createdAt must survive re-verification")
	assert.True(t, stored.LastLogin.After(created))
	assert.True(t, stored.UpdatedAt.After(created))
	assert.Equal(t, created, res.User.CreatedAt)
}

func TestVerifyIdentityRejectsBadToken(t *testing.T) {
	svc, _ := newTestAuthService(&fakeVerifier{err: errors.New("token malformed")}, newFakeUserRepo())

	_, err := svc.VerifyIdentity(context.Background(), "proof")
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
}

func TestVerifyIdentityRequiresPhoneClaim(t *testing.T) {
	svc, _ := newTestAuthService(&fakeVerifier{
		token: &identity.Token{UID: "uid-without-phone"},
	}, newFakeUserRepo())

	_, err := svc.VerifyIdentity(context.Background(), "proof")
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestVerifyIdentityRequiresToken(t *testing.T) {
	svc, _ := newTestAuthService(&fakeVerifier{}, newFakeUserRepo())

	_, err := svc.VerifyIdentity(context.Background(), "")
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestRefreshIssuesNewToken(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["+15550001234"] = &entity.User{Phone: "+15550001234", FirebaseUid: "uid-1"}

	svc, tokens := newTestAuthService(&fakeVerifier{}, repo)

	signed, err := svc.Refresh(context.Background(), &token.SessionClaims{UserID: "+15550001234"})
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "+15550001234", claims.UserID)
}

func TestRefreshFailsWhenUserVanished(t *testing.T) {
	svc, _ := newTestAuthService(&fakeVerifier{}, newFakeUserRepo())

	_, err := svc.Refresh(context.Background(), &token.SessionClaims{UserID: "+15550001234"})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestCurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["+15550001234"] = &entity.User{Phone: "+15550001234", FirebaseUid: "uid-1"}

	svc, _ := newTestAuthService(&fakeVerifier{}, repo)

	user, err := svc.CurrentUser(context.Background(), &token.SessionClaims{UserID: "+15550001234"})
	require.NoError(t, err)
	assert.Equal(t, "+15550001234", user.UserId)

	_, err = svc.CurrentUser(context.Background(), &token.SessionClaims{UserID: "+19990000000"})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+15550001234", "+15550001234"},
		{"+1 555 000 1234", "+15550001234"},
		{" +1\t555 0001234 ", "+15550001234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePhone(tt.in))
	}
}
