package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/century-soap/century-soap/internal/shared"
)

type mockRepo struct {
	users  map[string]User
	hashes map[string]string
	emails map[string]bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: map[string]User{}, hashes: map[string]string{}, emails: map[string]bool{}}
}

func (m *mockRepo) List(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (User, error) {
	u, ok := m.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) Create(ctx context.Context, u User, passwordHash string) error {
	if m.emails[u.Email] {
		return shared.ErrDuplicate
	}
	m.emails[u.Email] = true
	m.users[u.ID] = u
	m.hashes[u.ID] = passwordHash
	return nil
}

func (m *mockRepo) Update(ctx context.Context, u User, passwordHash string) error {
	if _, ok := m.users[u.ID]; !ok {
		return shared.ErrNotFound
	}
	m.users[u.ID] = u
	if passwordHash != "" {
		m.hashes[u.ID] = passwordHash
	}
	return nil
}

var admin = shared.Actor{ID: "u-0", Name: "Admin", Role: "admin"}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	u, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "eric@centurysoap.rw",
		Name:     "Eric",
		Role:     "seller",
		Password: "seller12345",
	}, admin)
	require.NoError(t, err)
	require.True(t, u.IsActive)

	hash := repo.hashes[u.ID]
	require.NotEmpty(t, hash)
	require.NotEqual(t, "seller12345", hash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("seller12345")))
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "eric@centurysoap.rw",
		Name:     "Eric",
		Role:     "seller",
		Password: "short",
	}, admin)
	require.Error(t, err)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	req := CreateUserRequest{
		Email:    "eric@centurysoap.rw",
		Name:     "Eric",
		Role:     "seller",
		Password: "seller12345",
	}
	_, err := svc.Create(context.Background(), req, admin)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), req, admin)
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestUpdateUserKeepsHashWithoutNewPassword(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	u, err := svc.Create(context.Background(), CreateUserRequest{
		Email:    "eric@centurysoap.rw",
		Name:     "Eric",
		Role:     "seller",
		Password: "seller12345",
	}, admin)
	require.NoError(t, err)
	originalHash := repo.hashes[u.ID]

	inactive := false
	updated, err := svc.Update(context.Background(), u.ID, UpdateUserRequest{IsActive: &inactive}, admin)
	require.NoError(t, err)
	require.False(t, updated.IsActive)
	require.Equal(t, originalHash, repo.hashes[u.ID])
}
