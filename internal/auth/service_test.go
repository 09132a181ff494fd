package auth

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/century-soap/century-soap/internal/shared"
)

type mockUsers struct {
	users map[string]User
}

func (m *mockUsers) FindByEmail(ctx context.Context, email string) (User, error) {
	u, ok := m.users[email]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (*Service, *mockUsers) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &mockUsers{users: map[string]User{
		"admin@centurysoap.rw": {
			ID:           "u-1",
			Name:         "Admin",
			Email:        "admin@centurysoap.rw",
			PasswordHash: string(hash),
			Role:         RoleAdmin,
			IsActive:     true,
		},
	}}
	return NewService(repo, client, time.Hour), repo
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, user, err := svc.Login(ctx, "admin@centurysoap.rw", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "Admin", user.Name)

	actor, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "u-1", actor.ID)
	require.True(t, actor.IsAdmin())
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.Login(context.Background(), "admin@centurysoap.rw", "nope")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.Login(context.Background(), "ghost@centurysoap.rw", "secret123")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo := newTestService(t)
	u := repo.users["admin@centurysoap.rw"]
	u.IsActive = false
	repo.users["admin@centurysoap.rw"] = u

	_, _, err := svc.Login(context.Background(), "admin@centurysoap.rw", "secret123")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "admin@centurysoap.rw", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
