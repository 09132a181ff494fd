package sales

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/century-soap/century-soap/internal/inventory"
	"github.com/century-soap/century-soap/internal/platform/db"
	"github.com/century-soap/century-soap/internal/shared"
)

// LockedProduct is the product snapshot taken under a row lock when a sale
// is recorded.
type LockedProduct struct {
	ID           string
	Name         string
	Category     string
	RegularPrice int64
	RandomPrice  int64
	Stock        int
}

// LockedClient is the client snapshot taken under a row lock.
type LockedClient struct {
	ID             string
	Name           string
	Type           string
	TotalPurchases int64
}

// TxRepository is the set of statements available inside a sale transaction.
type TxRepository interface {
	GetProductForUpdate(ctx context.Context, productID string) (LockedProduct, error)
	GetClientForUpdate(ctx context.Context, clientID string) (LockedClient, error)
	InsertSale(ctx context.Context, sale Sale) error
	UpdateProductStock(ctx context.Context, productID string, newStock int, now time.Time) error
	InsertStockUpdate(ctx context.Context, update inventory.StockUpdate) error
	UpdateClientPurchases(ctx context.Context, clientID string, totalPurchases int64, lastPurchase time.Time) error
}

// Repository persists sales in PostgreSQL.
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

// WithTx runs fn inside a repeatable-read transaction, committing on nil
// error and rolling back otherwise.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

func (t *txRepository) GetProductForUpdate(ctx context.Context, productID string) (LockedProduct, error) {
	var p LockedProduct
	err := t.tx.QueryRow(ctx,
		`SELECT id, name, category, regular_price, random_price, stock FROM products WHERE id=$1 FOR UPDATE`,
		productID,
	).Scan(&p.ID, &p.Name, &p.Category, &p.RegularPrice, &p.RandomPrice, &p.Stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return LockedProduct{}, shared.ErrNotFound
	}
	return p, err
}

func (t *txRepository) GetClientForUpdate(ctx context.Context, clientID string) (LockedClient, error) {
	var c LockedClient
	err := t.tx.QueryRow(ctx,
		`SELECT id, name, type, total_purchases FROM clients WHERE id=$1 FOR UPDATE`,
		clientID,
	).Scan(&c.ID, &c.Name, &c.Type, &c.TotalPurchases)
	if errors.Is(err, pgx.ErrNoRows) {
		return LockedClient{}, shared.ErrNotFound
	}
	return c, err
}

func (t *txRepository) InsertSale(ctx context.Context, s Sale) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO sales
(id, product_id, product_name, product_category, quantity, unit_price, total_amount,
 client_id, client_name, client_type, payment_method, payment_status,
 seller_id, seller_name, date, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		s.ID, s.ProductID, s.ProductName, s.ProductCategory, s.Quantity, s.UnitPrice, s.TotalAmount,
		s.ClientID, s.ClientName, s.ClientType, s.PaymentMethod, s.PaymentStatus,
		s.SellerID, s.SellerName, s.Date, s.CreatedAt)
	return err
}

func (t *txRepository) UpdateProductStock(ctx context.Context, productID string, newStock int, now time.Time) error {
	_, err := t.tx.Exec(ctx, `UPDATE products SET stock=$2, updated_at=$3 WHERE id=$1`, productID, newStock, now)
	return err
}

func (t *txRepository) InsertStockUpdate(ctx context.Context, u inventory.StockUpdate) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO stock_updates
(id, product_id, product_name, type, quantity, previous_stock, new_stock, reason, user_id, user_name, date, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		u.ID, u.ProductID, u.ProductName, u.Type, u.Quantity, u.PreviousStock, u.NewStock,
		u.Reason, u.UserID, u.UserName, u.Date, u.CreatedAt)
	return err
}

func (t *txRepository) UpdateClientPurchases(ctx context.Context, clientID string, totalPurchases int64, lastPurchase time.Time) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE clients SET total_purchases=$2, last_purchase_date=$3, updated_at=$3 WHERE id=$1`,
		clientID, totalPurchases, lastPurchase)
	return err
}

const saleColumns = `id, product_id, product_name, product_category, quantity, unit_price, total_amount,
client_id, client_name, client_type, payment_method, payment_status, seller_id, seller_name, date, created_at`

func scanSale(row pgx.Row) (Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.ProductCategory, &s.Quantity, &s.UnitPrice, &s.TotalAmount,
		&s.ClientID, &s.ClientName, &s.ClientType, &s.PaymentMethod, &s.PaymentStatus,
		&s.SellerID, &s.SellerName, &s.Date, &s.CreatedAt)
	return s, err
}

// List returns sales matching the filters plus the total count, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Sale, int, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM sales WHERE 1=1`
	args := []any{}

	if !filters.From.IsZero() {
		args = append(args, filters.From)
		cond := ` AND date >= $` + strconv.Itoa(len(args))
		query += cond
		countQuery += cond
	}
	if !filters.To.IsZero() {
		args = append(args, filters.To)
		cond := ` AND date <= $` + strconv.Itoa(len(args))
		query += cond
		countQuery += cond
	}
	if filters.SellerID != "" {
		args = append(args, filters.SellerID)
		cond := ` AND seller_id = $` + strconv.Itoa(len(args))
		query += cond
		countQuery += cond
	}
	if filters.PaymentStatus != "" {
		args = append(args, filters.PaymentStatus)
		cond := ` AND payment_status = $` + strconv.Itoa(len(args))
		query += cond
		countQuery += cond
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY date DESC, created_at DESC`
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
		args = append(args, filters.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// Get fetches one sale.
func (r *Repository) Get(ctx context.Context, id string) (Sale, error) {
	s, err := scanSale(r.pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sale{}, shared.ErrNotFound
		}
		return Sale{}, err
	}
	return s, nil
}

// UpdateStatus flips the payment status of a sale.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status PaymentStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE sales SET payment_status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
