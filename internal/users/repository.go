package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/century-soap/century-soap/internal/shared"
)

// Repository provides PostgreSQL backed persistence for users.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all users ordered by name.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, name, role, is_active, created_at, updated_at FROM users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns one user by id.
func (r *Repository) Get(ctx context.Context, id string) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `SELECT id, email, name, role, is_active, created_at, updated_at FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// Create inserts a user with its password hash.
func (r *Repository) Create(ctx context.Context, u User, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO users (id, email, name, role, password_hash, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`, u.ID, u.Email, u.Name, u.Role, passwordHash, u.IsActive, u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return shared.ErrDuplicate
	}
	return err
}

// Update writes mutable account fields; passwordHash is ignored when empty.
func (r *Repository) Update(ctx context.Context, u User, passwordHash string) error {
	var (
		tag pgconn.CommandTag
		err error
	)
	if passwordHash != "" {
		tag, err = r.pool.Exec(ctx, `UPDATE users SET name=$2, role=$3, is_active=$4, password_hash=$5, updated_at=$6 WHERE id=$1`,
			u.ID, u.Name, u.Role, u.IsActive, passwordHash, u.UpdatedAt)
	} else {
		tag, err = r.pool.Exec(ctx, `UPDATE users SET name=$2, role=$3, is_active=$4, updated_at=$5 WHERE id=$1`,
			u.ID, u.Name, u.Role, u.IsActive, u.UpdatedAt)
	}
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
