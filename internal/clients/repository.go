package clients

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/century-soap/century-soap/internal/shared"
)

const clientColumns = `id, name, phone, email, type, total_purchases, last_purchase_date, created_at, updated_at`

// Repository persists clients in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Type, &c.TotalPurchases, &c.LastPurchaseDate, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Get fetches a client by id.
func (r *Repository) Get(ctx context.Context, id string) (Client, error) {
	c, err := scanClient(r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, shared.ErrNotFound
		}
		return Client{}, err
	}
	return c, nil
}

// List returns clients matching the filters plus the total count.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Client, int, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM clients WHERE 1=1`
	args := []any{}

	if filters.Type != "" {
		args = append(args, filters.Type)
		cond := ` AND type = $` + strconv.Itoa(len(args))
		query += cond
		countQuery += cond
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		cond := ` AND (name ILIKE $` + strconv.Itoa(len(args)) + ` OR phone ILIKE $` + strconv.Itoa(len(args)) + `)`
		query += cond
		countQuery += cond
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY name ASC`
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

	var result []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// ListAll returns every client; used by the reporting aggregator.
func (r *Repository) ListAll(ctx context.Context) ([]Client, error) {
	all, _, err := r.List(ctx, ListFilters{})
	return all, err
}

// Create inserts a client.
func (r *Repository) Create(ctx context.Context, c Client) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO clients (id, name, phone, email, type, total_purchases, last_purchase_date, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		c.ID, c.Name, c.Phone, c.Email, c.Type, c.TotalPurchases, c.LastPurchaseDate, c.CreatedAt, c.UpdatedAt)
	if isUniqueViolation(err) {
		return shared.ErrDuplicate
	}
	return err
}

// Update writes contact details and tier. The purchase rollup columns are
// excluded: only the sale-recording rule mutates them.
func (r *Repository) Update(ctx context.Context, c Client) error {
	tag, err := r.pool.Exec(ctx, `UPDATE clients SET name=$2, phone=$3, email=$4, type=$5, updated_at=$6 WHERE id=$1`,
		c.ID, c.Name, c.Phone, c.Email, c.Type, c.UpdatedAt)
	if isUniqueViolation(err) {
		return shared.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a client. Sales keep their denormalized client snapshot.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
