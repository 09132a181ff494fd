package users

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/century-soap/century-soap/internal/shared"
)

// RepositoryPort abstracts user persistence.
type RepositoryPort interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, u User, passwordHash string) error
	Update(ctx context.Context, u User, passwordHash string) error
}

// Service manages operator accounts.
type Service struct {
	repo     RepositoryPort
	audit    AuditPort
	validate *validator.Validate
}

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// NewService builds a Service.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit, validate: validator.New()}
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get returns one account.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.Get(ctx, id)
}

// Create registers an account with a bcrypt password hash.
func (s *Service) Create(ctx context.Context, req CreateUserRequest, actor shared.Actor) (User, error) {
	if err := s.validate.Struct(req); err != nil {
		return User{}, fmt.Errorf("users: invalid account: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("users: hash password: %w", err)
	}
	now := time.Now().UTC()
	u := User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Name:      req.Name,
		Role:      req.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, u, string(hash)); err != nil {
		return User{}, err
	}
	s.recordAudit(ctx, actor, "users:create", u.ID)
	return u, nil
}

// Update changes account fields; deactivation blocks future logins but
// keeps the seller name on historical sales.
func (s *Service) Update(ctx context.Context, id string, req UpdateUserRequest, actor shared.Actor) (User, error) {
	if err := s.validate.Struct(req); err != nil {
		return User{}, fmt.Errorf("users: invalid update: %w", err)
	}
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	var hash string
	if req.Password != nil {
		raw, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, fmt.Errorf("users: hash password: %w", err)
		}
		hash = string(raw)
	}
	u.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, u, hash); err != nil {
		return User{}, err
	}
	s.recordAudit(ctx, actor, "users:update", u.ID)
	return u, nil
}

func (s *Service) recordAudit(ctx context.Context, actor shared.Actor, action, entityID string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "user",
		EntityID: entityID,
	})
}
