package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bexshelf/bexshelf-server/internal/auth"
	domainerrors "github.com/bexshelf/bexshelf-server/internal/errors"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	st := newTestStore(t)
	key, err := auth.LoadOrGenerateKey(st.DataPath())
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)
	return NewAuthService(st, tokens, testLogger())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Name:     "Bex",
		Email:    "bex@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.ID)
	assert.Empty(t, resp.User.PasswordHash, "hash must not leak in responses")

	login, err := svc.Login(ctx, LoginRequest{Email: "bex@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Bex", Email: "bex@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Other", Email: "BEX@example.com", Password: "different pass"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestAuthService_Register_Invalid(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Bex", Email: "not-an-email", Password: "correct horse"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Five characters is under the minimum, six is allowed.
	_, err = svc.Register(ctx, RegisterRequest{Name: "Bex", Email: "bex@example.com", Password: "short"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Bex", Email: "bex@example.com", Password: "sixish"})
	assert.NoError(t, err)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Bex", Email: "bex@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "bex@example.com", Password: "wrong horse"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "whatever1"})
	// Same error as a wrong password so the response doesn't reveal
	// which emails have accounts.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_VerifyAccessToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{Name: "Bex", Email: "bex@example.com", Password: "correct horse"})
	require.NoError(t, err)

	user, err := svc.VerifyAccessToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)

	_, err = svc.VerifyAccessToken(ctx, "v4.local.garbage")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}
