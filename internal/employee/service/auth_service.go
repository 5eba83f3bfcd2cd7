package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lead-crm/backend/internal/employee/domain"
	"lead-crm/backend/internal/employee/repository"
	"lead-crm/backend/internal/security"
)

// Sentinel errors for the auth service; the handler maps them to HTTP statuses.
var (
	ErrMissingFields          = errors.New("all fields required")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
)

// LoginResult holds the outcome of a successful Login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Email     string
}

// EmployeeRepo is the minimal employee repository needed by the auth service.
type EmployeeRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	Create(ctx context.Context, e *domain.Employee) error
}

// AuthService implements employee registration and password login.
type AuthService struct {
	repo   EmployeeRepo
	hasher *security.Hasher
	tokens *security.TokenProvider
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(repo EmployeeRepo, hasher *security.Hasher, tokens *security.TokenProvider) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens}
}

// Register creates an employee with the given name, email, and password.
// Returns ErrMissingFields when any field is empty and ErrEmailAlreadyRegistered
// when the email is taken. The lookup before insert gives the friendly error in
// the sequential case; the unique index on email decides the winner when two
// registrations race.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return ErrMissingFields
	}
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailAlreadyRegistered
	}
	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	emp := &domain.Employee{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := emp.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, emp); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrEmailAlreadyRegistered
		}
		return err
	}
	return nil
}

// Login authenticates with email/password and returns a session token.
// Returns ErrInvalidCredentials for both unknown email and wrong password, so
// callers cannot probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	emp, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(emp.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, expiresAt, err := s.tokens.Issue(emp.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Email: emp.Email}, nil
}
