package inventory

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
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	ListUpdates(ctx context.Context, filter UpdatesFilter) ([]StockUpdate, error)
}

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// MetricsPort counts applied adjustments.
type MetricsPort interface {
	AdjustmentApplied()
}

// Service coordinates stock adjustments.
type Service struct {
	repo     RepositoryPort
	audit    AuditPort
	metrics  MetricsPort
	validate *validator.Validate
}

// NewService builds a Service. Audit and metrics may be nil.
func NewService(repo RepositoryPort, audit AuditPort, metrics MetricsPort) *Service {
	return &Service{repo: repo, audit: audit, metrics: metrics, validate: validator.New()}
}

// ApplyAdjustment applies a signed stock delta to a product and appends one
// audit record, both in a single transaction. A removal that would drive
// stock below zero is rejected with ErrNegativeStock and nothing changes.
func (s *Service) ApplyAdjustment(ctx context.Context, input AdjustmentInput, actor shared.Actor) (StockUpdate, error) {
	if err := s.validate.Struct(input); err != nil {
		return StockUpdate{}, fmt.Errorf("inventory: invalid adjustment: %w", err)
	}
	if input.Delta == 0 {
		return StockUpdate{}, ErrInvalidQuantity
	}

	now := time.Now().UTC()
	var record StockUpdate
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		product, err := tx.GetProductForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		newStock := product.Stock + input.Delta
		if newStock < 0 {
			return ErrNegativeStock
		}

		updateType := UpdateTypeRestock
		quantity := input.Delta
		if input.Delta < 0 {
			updateType = UpdateTypeAdjustment
			quantity = -input.Delta
		}
		record = StockUpdate{
			ID:            uuid.NewString(),
			ProductID:     product.ID,
			ProductName:   product.Name,
			Type:          updateType,
			Quantity:      quantity,
			PreviousStock: product.Stock,
			NewStock:      newStock,
			Reason:        input.Reason,
			UserID:        actor.ID,
			UserName:      actor.Name,
			Date:          now,
			CreatedAt:     now,
		}
		if err := tx.InsertStockUpdate(ctx, record); err != nil {
			return err
		}
		return tx.UpdateProductStock(ctx, product.ID, newStock, now)
	})
	if err != nil {
		return StockUpdate{}, err
	}

	if s.metrics != nil {
		s.metrics.AdjustmentApplied()
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actor.ID,
			Action:   fmt.Sprintf("inventory:%s", record.Type),
			Entity:   "product",
			EntityID: record.ProductID,
			Meta: map[string]any{
				"delta":     input.Delta,
				"new_stock": record.NewStock,
				"reason":    input.Reason,
			},
		})
	}
	return record, nil
}

// ListUpdates lists audit records for the inventory history page.
func (s *Service) ListUpdates(ctx context.Context, filter UpdatesFilter) ([]StockUpdate, error) {
	return s.repo.ListUpdates(ctx, filter)
}
