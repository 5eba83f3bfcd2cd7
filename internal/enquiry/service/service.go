package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"lead-crm/backend/internal/enquiry/domain"
)

// Sentinel errors for the enquiry service; the handler maps them to HTTP statuses.
var (
	ErrMissingFields  = errors.New("all fields required")
	ErrNotFound       = errors.New("enquiry not found")
	ErrAlreadyClaimed = errors.New("enquiry already claimed")
)

// EnquiryRepo is the minimal enquiry repository needed by the service.
type EnquiryRepo interface {
	Create(ctx context.Context, e *domain.Enquiry) error
	GetByID(ctx context.Context, id string) (*domain.Enquiry, error)
	ListUnclaimed(ctx context.Context) ([]*domain.Enquiry, error)
	ListClaimedBy(ctx context.Context, email string) ([]*domain.Enquiry, error)
	Claim(ctx context.Context, id, email string) (bool, error)
}

// Service implements public enquiry intake and the claim workflow.
type Service struct {
	repo EnquiryRepo
}

// NewService returns a Service with the given repository.
func NewService(repo EnquiryRepo) *Service {
	return &Service{repo: repo}
}

// Submit records a public enquiry with no claimant. Returns ErrMissingFields
// when any field is empty.
func (s *Service) Submit(ctx context.Context, name, email, courseInterest string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	courseInterest = strings.TrimSpace(courseInterest)
	if name == "" || email == "" || courseInterest == "" {
		return ErrMissingFields
	}
	e := &domain.Enquiry{
		ID:             uuid.New().String(),
		Name:           name,
		Email:          email,
		CourseInterest: courseInterest,
		CreatedAt:      time.Now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, e)
}

// ListUnclaimed returns unclaimed enquiries, newest first.
func (s *Service) ListUnclaimed(ctx context.Context) ([]*domain.Enquiry, error) {
	return s.repo.ListUnclaimed(ctx)
}

// ListClaimedBy returns enquiries claimed by the given employee email, newest first.
func (s *Service) ListClaimedBy(ctx context.Context, email string) ([]*domain.Enquiry, error) {
	return s.repo.ListClaimedBy(ctx, email)
}

// Claim transitions the enquiry from unclaimed to claimed by the caller. The
// store performs the transition as one conditional update, so two concurrent
// claims on the same enquiry have exactly one winner. Returns ErrNotFound for
// an unknown id and ErrAlreadyClaimed when a claimant is already set,
// regardless of who set it.
func (s *Service) Claim(ctx context.Context, id, callerEmail string) error {
	if _, err := uuid.Parse(id); err != nil {
		// A malformed id can never match a stored enquiry.
		return ErrNotFound
	}
	won, err := s.repo.Claim(ctx, id, callerEmail)
	if err != nil {
		return err
	}
	if won {
		return nil
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return ErrAlreadyClaimed
}
