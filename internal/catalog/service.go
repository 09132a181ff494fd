package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/century-soap/century-soap/internal/shared"
)

// RepositoryPort abstracts product persistence for the service.
type RepositoryPort interface {
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, filters ListFilters) ([]Product, int, error)
	Create(ctx context.Context, p Product) error
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
}

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates catalog operations.
type Service struct {
	repo     RepositoryPort
	audit    AuditPort
	validate *validator.Validate
}

// NewService builds a Service.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit, validate: validator.New()}
}

// Create validates the request and inserts a new product.
func (s *Service) Create(ctx context.Context, req CreateProductRequest, actor shared.Actor) (Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return Product{}, fmt.Errorf("catalog: invalid product: %w", err)
	}
	now := time.Now().UTC()
	p := Product{
		ID:           uuid.NewString(),
		Category:     req.Category,
		Name:         req.Name,
		Description:  req.Description,
		Size:         req.Size,
		SizeUnit:     req.SizeUnit,
		Unit:         req.Unit,
		ItemsPerBox:  req.ItemsPerBox,
		RegularPrice: req.RegularPrice,
		RandomPrice:  req.RandomPrice,
		Stock:        req.Stock,
		MinStock:     req.MinStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Product{}, fmt.Errorf("catalog: create product: %w", err)
	}
	s.recordAudit(ctx, actor, "catalog:create", p.ID, map[string]any{"name": p.Name})
	return p, nil
}

// Update applies partial catalog changes to an existing product.
func (s *Service) Update(ctx context.Context, id string, req UpdateProductRequest, actor shared.Actor) (Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return Product{}, fmt.Errorf("catalog: invalid update: %w", err)
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Size != nil {
		p.Size = *req.Size
	}
	if req.SizeUnit != nil {
		p.SizeUnit = *req.SizeUnit
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.ItemsPerBox != nil {
		p.ItemsPerBox = req.ItemsPerBox
	}
	if req.RegularPrice != nil {
		p.RegularPrice = *req.RegularPrice
	}
	if req.RandomPrice != nil {
		p.RandomPrice = *req.RandomPrice
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return Product{}, fmt.Errorf("catalog: update product: %w", err)
	}
	s.recordAudit(ctx, actor, "catalog:update", p.ID, map[string]any{"name": p.Name})
	return p, nil
}

// Get fetches one product.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.Get(ctx, id)
}

// List returns products with their classified stock status. The status
// filter is evaluated here so every caller shares one classification rule.
// With a status filter the repository pagination is bypassed: the full
// result set is classified and the filtered views paginated here, otherwise
// matches beyond the first SQL page would be dropped.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]ProductView, int, error) {
	repoFilters := filters
	if filters.Status != "" {
		repoFilters.Limit = 0
		repoFilters.Offset = 0
	}
	products, total, err := s.repo.List(ctx, repoFilters)
	if err != nil {
		return nil, 0, err
	}
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		status := p.StockStatus()
		if filters.Status != "" && status != filters.Status {
			continue
		}
		views = append(views, ProductView{Product: p, Status: status})
	}
	if filters.Status != "" {
		total = len(views)
		if filters.Offset >= len(views) {
			views = views[:0]
		} else if filters.Offset > 0 {
			views = views[filters.Offset:]
		}
		if filters.Limit > 0 && len(views) > filters.Limit {
			views = views[:filters.Limit]
		}
	}
	return views, total, nil
}

// Delete removes a product from the catalog. Historical sales keep their
// denormalized product snapshot.
func (s *Service) Delete(ctx context.Context, id string, actor shared.Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, actor, "catalog:delete", id, nil)
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actor shared.Actor, action, entityID string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "product",
		EntityID: entityID,
		Meta:     meta,
	})
}
