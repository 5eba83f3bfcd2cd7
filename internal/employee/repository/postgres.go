package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"lead-crm/backend/internal/employee/domain"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an employee repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByEmail returns the employee with the given email, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM employees WHERE email = $1`

	e := &domain.Employee{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("employee get by email: %w", err)
	}
	return e, nil
}

// Create persists the employee. The employee must have ID set; it is not
// assigned by this method. Returns ErrDuplicateEmail when the email is taken.
func (r *PostgresRepository) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (id, name, email, password_hash, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.Email, e.PasswordHash, e.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("employee create: %w", err)
	}
	return nil
}
