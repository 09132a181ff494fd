package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/century-soap/century-soap/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	Get(ctx context.Context, id string) (Client, error)
	List(ctx context.Context, filters ListFilters) ([]Client, int, error)
	Create(ctx context.Context, c Client) error
	Update(ctx context.Context, c Client) error
	Delete(ctx context.Context, id string) error
}

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service implements client management.
type Service struct {
	repo     RepositoryPort
	audit    AuditPort
	validate *validator.Validate
}

// NewService builds a Service.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit, validate: validator.New()}
}

// Get returns one client.
func (s *Service) Get(ctx context.Context, id string) (Client, error) {
	return s.repo.Get(ctx, id)
}

// List returns clients and the total count.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Client, int, error) {
	return s.repo.List(ctx, filters)
}

// Create registers a new client with zeroed purchase rollups.
func (s *Service) Create(ctx context.Context, req CreateClientRequest, actor shared.Actor) (Client, error) {
	if err := s.validate.Struct(req); err != nil {
		return Client{}, fmt.Errorf("clients: invalid create request: %w", err)
	}
	now := time.Now().UTC()
	c := Client{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Type:      req.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Client{}, err
	}
	s.recordAudit(ctx, actor, "clients:create", c.ID)
	return c, nil
}

// Update applies the non-nil fields of req. Purchase rollups are not
// updatable through this path.
func (s *Service) Update(ctx context.Context, id string, req UpdateClientRequest, actor shared.Actor) (Client, error) {
	if err := s.validate.Struct(req); err != nil {
		return Client{}, fmt.Errorf("clients: invalid update request: %w", err)
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Client{}, err
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Type != nil {
		c.Type = *req.Type
	}
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return Client{}, err
	}
	s.recordAudit(ctx, actor, "clients:update", c.ID)
	return c, nil
}

// Delete removes a client.
func (s *Service) Delete(ctx context.Context, id string, actor shared.Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, actor, "clients:delete", id)
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actor shared.Actor, action, entityID string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "client",
		EntityID: entityID,
	})
}
