package repository

import (
	"context"
	"errors"

	"lead-crm/backend/internal/employee/domain"
)

// ErrDuplicateEmail is returned by Create when the email is already registered.
// The employees table enforces uniqueness with a unique index, so concurrent
// registrations with the same email cannot both succeed.
var ErrDuplicateEmail = errors.New("email already registered")

// Repository defines persistence for employees.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	Create(ctx context.Context, e *domain.Employee) error
}
