package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lead-crm/backend/internal/employee/domain"
	"lead-crm/backend/internal/employee/repository"
	"lead-crm/backend/internal/security"
)

type memEmployeeRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.Employee
	failGet error
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{byEmail: map[string]*domain.Employee{}}
}

func (r *memEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet != nil {
		return nil, r.failGet
	}
	return r.byEmail[email], nil
}

func (r *memEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[e.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	r.byEmail[e.Email] = e
	return nil
}

func newTestAuthService(repo EmployeeRepo) *AuthService {
	hasher := security.NewHasher(4) // min cost keeps tests fast
	tokens := security.NewTokenProvider([]byte("test-secret"), "lead-crm", 24*time.Hour)
	return NewAuthService(repo, hasher, tokens)
}

func TestRegister_Success(t *testing.T) {
	repo := newMemEmployeeRepo()
	svc := newTestAuthService(repo)

	if err := svc.Register(context.Background(), "Alice", "Alice@Example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	emp := repo.byEmail["alice@example.com"]
	if emp == nil {
		t.Fatal("employee not stored under normalized email")
	}
	if emp.PasswordHash == "" || emp.PasswordHash == "secret123" {
		t.Error("password must be stored as a hash")
	}
	if emp.ID == "" {
		t.Error("employee ID should be assigned")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestAuthService(newMemEmployeeRepo())
	cases := []struct {
		name, n, e, p string
	}{
		{"no name", "", "a@b.com", "pw"},
		{"no email", "Alice", "", "pw"},
		{"no password", "Alice", "a@b.com", ""},
		{"whitespace name", "   ", "a@b.com", "pw"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Register(context.Background(), tc.n, tc.e, tc.p); !errors.Is(err, ErrMissingFields) {
				t.Errorf("want ErrMissingFields, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMemEmployeeRepo()
	svc := newTestAuthService(repo)

	if err := svc.Register(context.Background(), "Alice", "a@b.com", "pw1"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := svc.Register(context.Background(), "Bob", "a@b.com", "pw2"); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Errorf("second Register: want ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_RacingDuplicateMapsUniqueViolation(t *testing.T) {
	// Simulate the racing case: the existence check misses but the insert
	// hits the unique index.
	repo := newMemEmployeeRepo()
	repo.byEmail["a@b.com"] = &domain.Employee{Email: "a@b.com"}
	svc := newTestAuthService(&racingRepo{inner: repo})
	if err := svc.Register(context.Background(), "Bob", "a@b.com", "pw"); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Errorf("want ErrEmailAlreadyRegistered from unique violation, got %v", err)
	}
}

type racingRepo struct {
	inner *memEmployeeRepo
}

func (r *racingRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return nil, nil // pretend the row is not there yet
}

func (r *racingRepo) Create(ctx context.Context, e *domain.Employee) error {
	return r.inner.Create(ctx, e)
}

func TestLogin_Success(t *testing.T) {
	repo := newMemEmployeeRepo()
	svc := newTestAuthService(repo)
	if err := svc.Register(context.Background(), "Alice", "a@b.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := svc.Login(context.Background(), "A@B.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Fatal("Login returned empty token")
	}
	if res.Email != "a@b.com" {
		t.Errorf("Email = %q, want %q", res.Email, "a@b.com")
	}

	tokens := security.NewTokenProvider([]byte("test-secret"), "lead-crm", 24*time.Hour)
	email, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if email != "a@b.com" {
		t.Errorf("token decodes to %q, want %q", email, "a@b.com")
	}
}

func TestLogin_GenericFailure(t *testing.T) {
	repo := newMemEmployeeRepo()
	svc := newTestAuthService(repo)
	if err := svc.Register(context.Background(), "Alice", "a@b.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	_, errUnknown := svc.Login(context.Background(), "nobody@b.com", "secret123")
	_, errWrongPw := svc.Login(context.Background(), "a@b.com", "wrong")
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown email: want ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Errorf("wrong password: want ErrInvalidCredentials, got %v", errWrongPw)
	}
	if errUnknown != errWrongPw {
		t.Error("unknown email and wrong password must return the same error")
	}
}

func TestLogin_RepoError(t *testing.T) {
	repo := newMemEmployeeRepo()
	repo.failGet = errors.New("db down")
	svc := newTestAuthService(repo)

	if _, err := svc.Login(context.Background(), "a@b.com", "pw"); err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("store failure must surface, got %v", err)
	}
}
