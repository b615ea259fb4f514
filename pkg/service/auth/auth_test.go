package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/splitshare/internal/fixtures/memory"
	"github.com/amirasaad/splitshare/pkg/config"
	"github.com/amirasaad/splitshare/pkg/domain/user"
	authsvc "github.com/amirasaad/splitshare/pkg/service/auth"
	usersvc "github.com/amirasaad/splitshare/pkg/service/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*authsvc.Service, *usersvc.Service) {
	t.Helper()
	uow := memory.NewUoW(memory.NewStore())
	cfg := &config.Jwt{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	}
	return authsvc.New(uow, cfg, slog.Default()), usersvc.New(uow, slog.Default())
}

func TestLogin_WithUsername(t *testing.T) {
	t.Parallel()
	svc, users := newAuthService(t)
	_, err := users.CreateUser(context.Background(), "alice", "alice@example.com", "password1")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "alice", "password1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
}

func TestLogin_WithEmail(t *testing.T) {
	t.Parallel()
	svc, users := newAuthService(t)
	_, err := users.CreateUser(context.Background(), "alice", "alice@example.com", "password1")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "alice@example.com", "password1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	svc, users := newAuthService(t)
	_, err := users.CreateUser(context.Background(), "alice", "alice@example.com", "password1")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, user.ErrUserUnauthorized)
	assert.Nil(t, u)
}

func TestLogin_UnknownIdentity(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(t)

	u, err := svc.Login(context.Background(), "nobody", "password1")
	require.ErrorIs(t, err, user.ErrUserUnauthorized)
	assert.Nil(t, u)
}

func TestGenerateTokenPair_Claims(t *testing.T) {
	t.Parallel()
	svc, users := newAuthService(t)
	created, err := users.CreateUser(context.Background(), "alice", "alice@example.com", "password1")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "alice", "password1")
	require.NoError(t, err)
	pair, err := svc.GenerateTokenPair(u)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	token, err := jwt.Parse(pair.Access, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	id, err := svc.GetCurrentUserID(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["username"])
	assert.Nil(t, claims["token_type"], "access token must not carry the refresh marker")
}

func TestRefresh_RotatesPair(t *testing.T) {
	t.Parallel()
	svc, users := newAuthService(t)
	created, err := users.CreateUser(context.Background(), "alice", "alice@example.com", "password1")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "alice", "password1")
	require.NoError(t, err)
	pair, err := svc.GenerateTokenPair(u)
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), pair.Refresh)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.Access)
	require.NotEmpty(t, rotated.Refresh)

	// The new access token must be usable.
	token, err := jwt.Parse(rotated.Access, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	id, err := svc.GetCurrentUserID(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()
	svc, users := newAuthService(t)
	_, err := users.CreateUser(context.Background(), "alice", "alice@example.com", "password1")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "alice", "password1")
	require.NoError(t, err)
	pair, err := svc.GenerateTokenPair(u)
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), pair.Access)
	require.ErrorIs(t, err, user.ErrUserUnauthorized)
	assert.Nil(t, rotated)
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(t)

	rotated, err := svc.Refresh(context.Background(), "not-a-token")
	require.ErrorIs(t, err, user.ErrUserUnauthorized)
	assert.Nil(t, rotated)
}
