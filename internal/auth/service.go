package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/century-soap/century-soap/internal/shared"
)

const sessionKeyPrefix = "session:"

// UserPort abstracts user lookups for the service.
type UserPort interface {
	FindByEmail(ctx context.Context, email string) (User, error)
}

// Service wraps authentication business rules. Sessions are opaque bearer
// tokens stored in Redis with a TTL; the token maps to the actor identity
// that the rules engine receives via context.
type Service struct {
	repo  UserPort
	redis *redis.Client
	ttl   time.Duration
}

// NewService constructs a Service.
func NewService(repo UserPort, redisClient *redis.Client, ttl time.Duration) *Service {
	return &Service{repo: repo, redis: redisClient, ttl: ttl}
}

type sessionRecord struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Login validates credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", User{}, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", User{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", User{}, shared.ErrInvalidCredentials
	}

	token := uuid.NewString()
	payload, err := json.Marshal(sessionRecord{UserID: user.ID, Name: user.Name, Role: user.Role})
	if err != nil {
		return "", User{}, err
	}
	if err := s.redis.Set(ctx, sessionKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", User{}, fmt.Errorf("auth: store session: %w", err)
	}
	return token, user, nil
}

// Logout removes the session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.redis.Del(ctx, sessionKeyPrefix+token).Err()
}

// Authenticate resolves a bearer token to an actor, refreshing the TTL.
func (s *Service) Authenticate(ctx context.Context, token string) (shared.Actor, error) {
	if token == "" {
		return shared.Actor{}, shared.ErrInvalidCredentials
	}
	payload, err := s.redis.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return shared.Actor{}, shared.ErrInvalidCredentials
	}
	if err != nil {
		return shared.Actor{}, err
	}
	var rec sessionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return shared.Actor{}, err
	}
	_ = s.redis.Expire(ctx, sessionKeyPrefix+token, s.ttl).Err()
	return shared.Actor{ID: rec.UserID, Name: rec.Name, Role: rec.Role}, nil
}
