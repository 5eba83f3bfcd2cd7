package repository

import (
	"context"

	"lead-crm/backend/internal/enquiry/domain"
)

// Repository defines persistence for enquiries.
type Repository interface {
	Create(ctx context.Context, e *domain.Enquiry) error
	GetByID(ctx context.Context, id string) (*domain.Enquiry, error)
	// ListUnclaimed returns unclaimed enquiries ordered newest first.
	ListUnclaimed(ctx context.Context) ([]*domain.Enquiry, error)
	// ListClaimedBy returns enquiries claimed by the given email, newest first.
	ListClaimedBy(ctx context.Context, email string) ([]*domain.Enquiry, error)
	// Claim sets claimed_by to email only if the enquiry is currently
	// unclaimed. Returns true when this call won the claim; false when the
	// enquiry does not exist or was already claimed.
	Claim(ctx context.Context, id, email string) (bool, error)
}
