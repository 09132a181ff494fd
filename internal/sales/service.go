package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/century-soap/century-soap/internal/clients"
	"github.com/century-soap/century-soap/internal/inventory"
	"github.com/century-soap/century-soap/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context, filters ListFilters) ([]Sale, int, error)
	Get(ctx context.Context, id string) (Sale, error)
	UpdateStatus(ctx context.Context, id string, status PaymentStatus) error
}

// AuditPort abstracts audit logging.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// CachePort invalidates derived report data after a write.
type CachePort interface {
	Bump(ctx context.Context) error
}

// MetricsPort counts recorded sales.
type MetricsPort interface {
	SaleRecorded(amount int64)
}

// Config tunes sale recording behavior.
type Config struct {
	// MirrorSaleAudit controls whether each sale also appends a
	// stock_updates record of type sale.
	MirrorSaleAudit bool
}

// Service implements sale recording and listing.
type Service struct {
	repo     RepositoryPort
	audit    AuditPort
	cache    CachePort
	metrics  MetricsPort
	cfg      Config
	validate *validator.Validate
}

// NewService builds a Service. Audit, cache and metrics may be nil.
func NewService(repo RepositoryPort, audit AuditPort, cache CachePort, metrics MetricsPort, cfg Config) *Service {
	return &Service{repo: repo, audit: audit, cache: cache, metrics: metrics, cfg: cfg, validate: validator.New()}
}

// RecordSale records one sale atomically: the product row is locked, stock
// checked and decremented, the sale row inserted with snapshot fields, and
// the client rollup updated. Insufficient stock rolls everything back.
func (s *Service) RecordSale(ctx context.Context, input RecordSaleInput, actor shared.Actor) (Sale, error) {
	if err := s.validate.Struct(input); err != nil {
		return Sale{}, fmt.Errorf("sales: invalid record request: %w", err)
	}

	now := time.Now().UTC()
	var sale Sale
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		product, err := tx.GetProductForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product.Stock < input.Quantity {
			return ErrInsufficientStock
		}

		clientName := input.ClientName
		clientType := input.ClientType
		var client *LockedClient
		if input.ClientID != nil {
			c, err := tx.GetClientForUpdate(ctx, *input.ClientID)
			if err != nil {
				return err
			}
			client = &c
			clientName = c.Name
			clientType = c.Type
		}
		if clientType == "" {
			clientType = string(clients.ClientTypeRandom)
		}
		if clientName == "" {
			clientName = "Walk-in"
		}

		unitPrice := product.RandomPrice
		if clientType == string(clients.ClientTypeRegular) {
			unitPrice = product.RegularPrice
		}
		total := unitPrice * int64(input.Quantity)

		sale = Sale{
			ID:              uuid.NewString(),
			ProductID:       product.ID,
			ProductName:     product.Name,
			ProductCategory: product.Category,
			Quantity:        input.Quantity,
			UnitPrice:       unitPrice,
			TotalAmount:     total,
			ClientID:        input.ClientID,
			ClientName:      clientName,
			ClientType:      clientType,
			PaymentMethod:   input.PaymentMethod,
			PaymentStatus:   input.PaymentStatus,
			SellerID:        actor.ID,
			SellerName:      actor.Name,
			Date:            now,
			CreatedAt:       now,
		}
		if err := tx.InsertSale(ctx, sale); err != nil {
			return err
		}

		newStock := product.Stock - input.Quantity
		if err := tx.UpdateProductStock(ctx, product.ID, newStock, now); err != nil {
			return err
		}
		if s.cfg.MirrorSaleAudit {
			mirror := inventory.StockUpdate{
				ID:            uuid.NewString(),
				ProductID:     product.ID,
				ProductName:   product.Name,
				Type:          inventory.UpdateTypeSale,
				Quantity:      input.Quantity,
				PreviousStock: product.Stock,
				NewStock:      newStock,
				Reason:        "sale " + sale.ID,
				UserID:        actor.ID,
				UserName:      actor.Name,
				Date:          now,
				CreatedAt:     now,
			}
			if err := tx.InsertStockUpdate(ctx, mirror); err != nil {
				return err
			}
		}

		if client != nil {
			if err := tx.UpdateClientPurchases(ctx, client.ID, client.TotalPurchases+total, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Sale{}, err
	}

	if s.metrics != nil {
		s.metrics.SaleRecorded(sale.TotalAmount)
	}
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actor.ID,
			Action:   "sales:record",
			Entity:   "sale",
			EntityID: sale.ID,
			Meta: map[string]any{
				"product_id":   sale.ProductID,
				"quantity":     sale.Quantity,
				"total_amount": sale.TotalAmount,
			},
		})
	}
	return sale, nil
}

// List returns sales matching the filters.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Sale, int, error) {
	return s.repo.List(ctx, filters)
}

// Get returns one sale.
func (s *Service) Get(ctx context.Context, id string) (Sale, error) {
	return s.repo.Get(ctx, id)
}

// UpdateStatus flips the payment status of a sale.
func (s *Service) UpdateStatus(ctx context.Context, id string, status PaymentStatus, actor shared.Actor) error {
	if status != StatusPaid && status != StatusNotPaid {
		return fmt.Errorf("sales: unknown payment status %q", status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actor.ID,
			Action:   "sales:update_status",
			Entity:   "sale",
			EntityID: id,
			Meta:     map[string]any{"payment_status": status},
		})
	}
	return nil
}
