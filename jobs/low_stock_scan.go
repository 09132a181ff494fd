package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/century-soap/century-soap/internal/catalog"
	"github.com/century-soap/century-soap/internal/shared"
)

// ProductLister reads the catalog for the scan.
type ProductLister interface {
	List(ctx context.Context, filters catalog.ListFilters) ([]catalog.Product, int, error)
}

// AuditPort records scan outcomes.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// LowStockScanJob walks the catalog and logs every product whose stock has
// fallen into the low band so operators can restock.
type LowStockScanJob struct {
	Products ProductLister
	Audit    AuditPort
	Logger   *slog.Logger
}

// NewLowStockScanJob wires dependencies for the scan handler. Audit may be
// nil.
func NewLowStockScanJob(products ProductLister, audit AuditPort, logger *slog.Logger) *LowStockScanJob {
	return &LowStockScanJob{Products: products, Audit: audit, Logger: logger}
}

// Handle processes low-stock scan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Products == nil {
		return errors.New("low stock scan: handler not configured")
	}
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	products, _, err := j.Products.List(ctx, catalog.ListFilters{})
	if err != nil {
		j.logger().Error("load products for scan", slog.Any("error", err))
		return err
	}

	flagged := 0
	for _, p := range products {
		status := p.StockStatus()
		if status == catalog.StockStatusGood {
			continue
		}
		if status == catalog.StockStatusMedium && !payload.IncludeMedium {
			continue
		}
		flagged++
		j.logger().Warn("product needs restock",
			slog.String("product_id", p.ID),
			slog.String("name", p.Name),
			slog.String("status", string(status)),
			slog.Int("stock", p.Stock),
			slog.Int("min_stock", p.MinStock))
	}
	j.logger().Info("low stock scan finished",
		slog.Int("products", len(products)),
		slog.Int("flagged", flagged))

	if j.Audit != nil && flagged > 0 {
		_ = j.Audit.Record(ctx, shared.AuditLog{
			ActorID:  "worker",
			Action:   "inventory:low_stock_scan",
			Entity:   "catalog",
			EntityID: "all",
			Meta:     map[string]any{"flagged": flagged, "products": len(products)},
		})
	}
	return nil
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
