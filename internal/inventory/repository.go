package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/century-soap/century-soap/internal/platform/db"
	"github.com/century-soap/century-soap/internal/shared"
)

// LockedProduct is the slice of the product row the adjustment rule needs
// while holding the row lock.
type LockedProduct struct {
	ID    string
	Name  string
	Stock int
}

// TxRepository exposes the transactional operations used by the service.
type TxRepository interface {
	GetProductForUpdate(ctx context.Context, productID string) (LockedProduct, error)
	UpdateProductStock(ctx context.Context, productID string, newStock int, updatedAt time.Time) error
	InsertStockUpdate(ctx context.Context, update StockUpdate) error
}

// Repository persists stock movements in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction. The
// product row lock taken by GetProductForUpdate serializes concurrent
// adjustments and sales against the same product.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r == nil {
		return errors.New("inventory repository not initialised")
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

// Every nullable parameter carries an explicit cast so the prepared
// statement types do not depend on inference from the surrounding clause.
const listUpdatesQuery = `SELECT id, product_id, product_name, type, quantity, previous_stock, new_stock, reason, user_id, user_name, date, created_at
FROM stock_updates
WHERE ($1::uuid IS NULL OR product_id = $1)
  AND ($2::text IS NULL OR type = $2)
  AND date BETWEEN COALESCE($3::timestamptz, '-infinity') AND COALESCE($4::timestamptz, 'infinity')
ORDER BY date DESC, created_at DESC
LIMIT $5`

// ListUpdates returns audit records, newest first.
func (r *Repository) ListUpdates(ctx context.Context, filter UpdatesFilter) ([]StockUpdate, error) {
	if r == nil {
		return nil, errors.New("inventory repository not initialised")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.pool.Query(ctx, listUpdatesQuery, nullString(filter.ProductID), nullString(string(filter.Type)), nullTime(filter.From), nullTime(filter.To), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	updates := []StockUpdate{}
	for rows.Next() {
		var u StockUpdate
		if err := rows.Scan(&u.ID, &u.ProductID, &u.ProductName, &u.Type, &u.Quantity, &u.PreviousStock, &u.NewStock, &u.Reason, &u.UserID, &u.UserName, &u.Date, &u.CreatedAt); err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *txRepository) GetProductForUpdate(ctx context.Context, productID string) (LockedProduct, error) {
	var p LockedProduct
	err := r.tx.QueryRow(ctx, `SELECT id, name, stock FROM products WHERE id=$1 FOR UPDATE`, productID).
		Scan(&p.ID, &p.Name, &p.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LockedProduct{}, shared.ErrNotFound
		}
		return LockedProduct{}, err
	}
	return p, nil
}

func (r *txRepository) UpdateProductStock(ctx context.Context, productID string, newStock int, updatedAt time.Time) error {
	_, err := r.tx.Exec(ctx, `UPDATE products SET stock=$2, updated_at=$3 WHERE id=$1`, productID, newStock, updatedAt)
	return err
}

func (r *txRepository) InsertStockUpdate(ctx context.Context, update StockUpdate) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO stock_updates (id, product_id, product_name, type, quantity, previous_stock, new_stock, reason, user_id, user_name, date, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		update.ID, update.ProductID, update.ProductName, string(update.Type), update.Quantity,
		update.PreviousStock, update.NewStock, update.Reason, update.UserID, update.UserName, update.Date, update.CreatedAt)
	return err
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
