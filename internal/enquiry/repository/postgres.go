package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lead-crm/backend/internal/enquiry/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an enquiry repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the enquiry. The enquiry must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, e *domain.Enquiry) error {
	query := `INSERT INTO enquiries (id, name, email, course_interest, claimed_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	claimedBy := sql.NullString{}
	if e.ClaimedBy != nil {
		claimedBy = sql.NullString{String: *e.ClaimedBy, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.Email, e.CourseInterest, claimedBy, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("enquiry create: %w", err)
	}
	return nil
}

// GetByID returns the enquiry for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	query := `SELECT id, name, email, course_interest, claimed_by, created_at
	          FROM enquiries WHERE id = $1`

	e, err := scanEnquiry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("enquiry get: %w", err)
	}
	return e, nil
}

// ListUnclaimed returns unclaimed enquiries ordered by creation time, newest first.
func (r *PostgresRepository) ListUnclaimed(ctx context.Context) ([]*domain.Enquiry, error) {
	query := `SELECT id, name, email, course_interest, claimed_by, created_at
	          FROM enquiries WHERE claimed_by IS NULL ORDER BY created_at DESC`

	return r.list(ctx, query)
}

// ListClaimedBy returns enquiries claimed by the given email, newest first.
func (r *PostgresRepository) ListClaimedBy(ctx context.Context, email string) ([]*domain.Enquiry, error) {
	query := `SELECT id, name, email, course_interest, claimed_by, created_at
	          FROM enquiries WHERE claimed_by = $1 ORDER BY created_at DESC`

	return r.list(ctx, query, email)
}

// Claim is a single conditional update: it sets claimed_by only when the row
// is still unclaimed, so concurrent claims on the same enquiry have at most
// one winner.
func (r *PostgresRepository) Claim(ctx context.Context, id, email string) (bool, error) {
	query := `UPDATE enquiries SET claimed_by = $2 WHERE id = $1 AND claimed_by IS NULL`

	res, err := r.db.ExecContext(ctx, query, id, email)
	if err != nil {
		return false, fmt.Errorf("enquiry claim: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("enquiry claim: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Enquiry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("enquiry list: %w", err)
	}
	defer rows.Close()

	var out []*domain.Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("enquiry list: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("enquiry list: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEnquiry(row rowScanner) (*domain.Enquiry, error) {
	e := &domain.Enquiry{}
	var claimedBy sql.NullString
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.CourseInterest, &claimedBy, &e.CreatedAt); err != nil {
		return nil, err
	}
	if claimedBy.Valid {
		e.ClaimedBy = &claimedBy.String
	}
	return e, nil
}
